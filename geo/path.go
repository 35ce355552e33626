package geo

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedPath is returned when a path string does not match the
// [[[lon,lat],[lon,lat],...]]] grammar.
var ErrMalformedPath = errors.New("malformed coordinate path")

// pathDelimiters matches the opening "[[[", the "],[" between points,
// the "," inside a point and the closing "]]]".
var pathDelimiters = regexp.MustCompile(`\[{3}|\],\[|,|\]{3}`)

// ParsePath decodes one route path string, e.g. "[[[-0.1,51.5],[-0.2,51.6]]]",
// into ordered coordinates. Input pairs are longitude first.
func ParsePath(raw string) ([]Coordinate, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "[[[") || !strings.HasSuffix(raw, "]]]") {
		return nil, fmt.Errorf("%w: expected [[[ ... ]]]", ErrMalformedPath)
	}
	// The leading token is always the empty string before "[[[".
	tokens := pathDelimiters.Split(raw, -1)[1:]
	for len(tokens) > 0 && tokens[len(tokens)-1] == "" {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of values (%d)", ErrMalformedPath, len(tokens))
	}

	pts := make([]Coordinate, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		lon, err := parseValue(tokens[i])
		if err != nil {
			return nil, err
		}
		lat, err := parseValue(tokens[i+1])
		if err != nil {
			return nil, err
		}
		pts = append(pts, Coordinate{Lat: lat, Lon: lon})
	}
	return pts, nil
}

func parseValue(tok string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedPath, tok)
	}
	return v, nil
}
