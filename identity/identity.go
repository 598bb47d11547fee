// Package identity leitet stabile synthetische IDs für extern entdeckte
// Konferenzen aus ihrer kanonischen URL ab.
package identity

import (
	"github.com/cespare/xxhash/v2"
)

// Der synthetische ID-Raum liegt oberhalb der Autoincrement-Sequenz der
// owned Zeilen (die bei 1 beginnt), damit beide Quellen sich praktisch
// nicht überschneiden.
const (
	idRange  = 900_000_000
	idOffset = 100_000_000
)

// ResolveID bildet eine kanonische URL deterministisch auf eine positive ID
// in [100_000_000, 1_000_000_000) ab. Pur und zustandslos: dieselbe URL
// ergibt immer dieselbe ID, auch über Prozessneustarts hinweg.
//
// Bekannte Schwäche: zwei verschiedene URLs können auf dieselbe ID fallen
// (Checksummen-Kollision im reduzierten Raum). Der Raum ist gegenüber dem
// ursprünglichen 8-stelligen Schema deutlich verbreitert, eine Garantie
// gibt es ohne explizite URL→ID-Tabelle aber nicht.
func ResolveID(canonicalURL string) uint {
	sum := xxhash.Sum64String(canonicalURL)
	return uint(sum%idRange) + idOffset
}

// IsSynthetic meldet, ob eine ID im synthetischen Bereich liegt, also von
// ResolveID stammen kann statt aus der Datenbanksequenz.
func IsSynthetic(id uint) bool {
	return id >= idOffset && id < idOffset+idRange
}
