package ingest

import "strings"

// ShortName strips a trailing "Underground Station", or failing that a
// trailing "Station", from a TfL stop name:
//
//	ShortName("Euston Underground Station") == "Euston"
//	ShortName("Covent Garden Station")      == "Covent Garden"
//
// Names that would be left empty are returned unchanged.
func ShortName(fullName string) string {
	name := strings.TrimSpace(fullName)
	for _, suffix := range []string{"Underground Station", "Station"} {
		if !strings.HasSuffix(name, suffix) {
			continue
		}
		if short := strings.TrimSpace(strings.TrimSuffix(name, suffix)); short != "" {
			return short
		}
		break
	}
	return name
}
