package ingest

import "testing"

func TestShortName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Euston Underground Station", "Euston"},
		{"Covent Garden Station", "Covent Garden"},
		{"  Bank Underground Station ", "Bank"},
		{"St. Paul's", "St. Paul's"},
		{"Station", "Station"},
		{"Underground Station", "Underground Station"},
		{"Station Road", "Station Road"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ShortName(tt.in); got != tt.want {
			t.Errorf("ShortName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
