package semanticscholar

// batchRequest ist der Body des Batch-Endpoints (POST /paper/batch).
type batchRequest struct {
	IDs []string `json:"ids"`
}

// paperResponse bildet die für uns relevanten Felder der Graph-API ab.
// Ein Null-Eintrag in der Batch-Antwort (unbekannter Identifier) wird beim
// Dekodieren zu einem nil-Pointer.
type paperResponse struct {
	PaperID       string   `json:"paperId"`
	Title         string   `json:"title"`
	Abstract      string   `json:"abstract"`
	Venue         string   `json:"venue"`
	Year          *int     `json:"year"`
	CitationCount *int     `json:"citationCount"`
	FieldsOfStudy []string `json:"fieldsOfStudy"`

	OpenAccessPDF *struct {
		URL string `json:"url"`
	} `json:"openAccessPdf"`

	ExternalIDs *struct {
		DOI string `json:"DOI"`
	} `json:"externalIds"`
}
