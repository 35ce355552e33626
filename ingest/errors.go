package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedInput matches documents that cannot be decoded.
	ErrMalformedInput = errors.New("malformed input")
	// ErrRequiredDataMissing matches documents that decode but lack mandatory data.
	ErrRequiredDataMissing = errors.New("required data missing")
)

// MalformedInputError reports where decoding failed.
type MalformedInputError struct {
	Path string // location in the document, empty for the whole document
	Err  error
}

func (e *MalformedInputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrMalformedInput, e.Err)
	}
	return fmt.Sprintf("%v at %s: %v", ErrMalformedInput, e.Path, e.Err)
}

func (e *MalformedInputError) Unwrap() []error { return []error{ErrMalformedInput, e.Err} }

// MissingDataError reports which required fields were absent.
type MissingDataError struct {
	Path   string   // location in the document, empty for the root object
	Fields []string // JSON field names
}

func (e *MissingDataError) Error() string {
	var b strings.Builder
	b.WriteString(ErrRequiredDataMissing.Error())
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	if len(e.Fields) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Fields, ", "))
	}
	return b.String()
}

func (e *MissingDataError) Unwrap() error { return ErrRequiredDataMissing }

// failureReason is the metrics label for a whole-call failure.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrMalformedInput):
		return "malformed"
	case errors.Is(err, ErrRequiredDataMissing):
		return "missing"
	default:
		return "other"
	}
}
