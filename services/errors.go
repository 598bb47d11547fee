package services

import "errors"

// Sentinel-Fehler der Service-Schicht; die HTTP-Handler mappen sie auf
// Statuscodes.
var (
	ErrConferenceNotFound = errors.New("conference not found")
	ErrInterestNotFound   = errors.New("interest not found")
	ErrAlreadyInterested  = errors.New("already marked as interested")
)
