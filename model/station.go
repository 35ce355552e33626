package model

import (
	"sort"

	"github.com/theoremus-urban-solutions/mindthegap/geo"
)

// Station is a stop on the network. Interchange stations are shared by
// every line that serves them.
type Station struct {
	id    string
	name  string
	locn  geo.Coordinate
	lines map[string]*Line // line id -> line
	// boards are kept in discovery order.
	boards []*ArrivalBoard
}

// NewStation returns a station with no lines and no arrival boards.
func NewStation(id, name string, locn geo.Coordinate) *Station {
	return &Station{
		id:    id,
		name:  name,
		locn:  locn,
		lines: map[string]*Line{},
	}
}

func (s *Station) ID() string { return s.id }

func (s *Station) Name() string { return s.name }

func (s *Station) Location() geo.Coordinate { return s.locn }

// Equal reports whether s and other have the same identifier.
func (s *Station) Equal(other *Station) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.id == other.id
}

// AddLine records that line serves this station and appends the station to
// the line.
func (s *Station) AddLine(line *Line) {
	link(line, s)
}

// RemoveLine removes line from this station and the station from the line.
func (s *Station) RemoveLine(line *Line) {
	unlink(line, s)
}

// HasLine reports whether line serves this station.
func (s *Station) HasLine(line *Line) bool {
	if line == nil {
		return false
	}
	_, ok := s.lines[line.id]
	return ok
}

// LineWithID returns the line serving this station with the given id.
func (s *Station) LineWithID(id string) (*Line, bool) {
	l, ok := s.lines[id]
	return l, ok
}

// Lines returns the lines serving this station ordered by id.
func (s *Station) Lines() []*Line {
	out := make([]*Line, 0, len(s.lines))
	for _, l := range s.lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// AddArrival files a on the board for line and the arrival's travel
// direction, creating the board if needed. Arrivals without a line are
// not filed and AddArrival reports false.
func (s *Station) AddArrival(line *Line, a Arrival) bool {
	if line == nil {
		return false
	}
	dir := a.TravelDirection()
	for _, b := range s.boards {
		if b.Matches(line, dir) {
			b.AddArrival(a)
			return true
		}
	}
	b := NewArrivalBoard(line, dir)
	b.AddArrival(a)
	s.boards = append(s.boards, b)
	return true
}

// ArrivalBoards returns the station's boards in discovery order.
func (s *Station) ArrivalBoards() []*ArrivalBoard {
	out := make([]*ArrivalBoard, len(s.boards))
	copy(out, s.boards)
	return out
}

func (s *Station) NumArrivalBoards() int { return len(s.boards) }

// ClearArrivalBoards removes all arrival boards.
func (s *Station) ClearArrivalBoards() {
	s.boards = nil
}
