package ingest

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Pointer fields distinguish an absent key from a zero value (lat 0 is a
// valid latitude).

type lineDocument struct {
	LineName           *string             `json:"lineName" validate:"required"`
	LineID             *string             `json:"lineId" validate:"required"`
	LineStrings        []string            `json:"lineStrings" validate:"required"`
	StopPointSequences []stopPointSequence `json:"stopPointSequences" validate:"required"`
}

type stopPointSequence struct {
	StopPoint []stopPoint `json:"stopPoint" validate:"required"`
}

type stopPoint struct {
	Name      *string  `json:"name" validate:"required"`
	Lat       *float64 `json:"lat" validate:"required"`
	Lon       *float64 `json:"lon" validate:"required"`
	StationID *string  `json:"stationId" validate:"required"`
}

// ArrivalEntry is one prediction in an arrivals document. Either
// DestinationName or Towards must be present.
type ArrivalEntry struct {
	TimeToStation   *int    `json:"timeToStation" validate:"required,gte=0"`
	PlatformName    *string `json:"platformName" validate:"required"`
	LineID          *string `json:"lineId" validate:"required"`
	DestinationName *string `json:"destinationName" validate:"required_without=Towards"`
	Towards         *string `json:"towards" validate:"required_without=DestinationName"`
}

// Destination returns the normalised destination name, falling back to the
// towards text verbatim.
func (e ArrivalEntry) Destination() string {
	if e.DestinationName != nil {
		return ShortName(*e.DestinationName)
	}
	if e.Towards != nil {
		return *e.Towards
	}
	return ""
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// invalidFields lists the fields named in a validation error.
func invalidFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Field())
	}
	return out
}

// fieldSet accumulates missing field names across several entries.
type fieldSet map[string]struct{}

func (s fieldSet) add(fields []string) {
	for _, f := range fields {
		s[f] = struct{}{}
	}
}

func (s fieldSet) sorted() []string {
	out := make([]string, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
