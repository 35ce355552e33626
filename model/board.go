package model

import "sort"

// ArrivalBoard holds the arrivals for one line and travel direction at a
// station.
type ArrivalBoard struct {
	line      *Line
	direction string
	arrivals  []Arrival
}

// NewArrivalBoard returns an empty board for line travelling in direction.
func NewArrivalBoard(line *Line, direction string) *ArrivalBoard {
	return &ArrivalBoard{line: line, direction: direction}
}

func (b *ArrivalBoard) Line() *Line { return b.line }

func (b *ArrivalBoard) TravelDirection() string { return b.direction }

// Matches reports whether the board is keyed by line and direction.
func (b *ArrivalBoard) Matches(line *Line, direction string) bool {
	return b.line.Equal(line) && b.direction == direction
}

// AddArrival appends a to the board.
func (b *ArrivalBoard) AddArrival(a Arrival) {
	b.arrivals = append(b.arrivals, a)
}

// NumArrivals returns the number of arrivals on the board.
func (b *ArrivalBoard) NumArrivals() int { return len(b.arrivals) }

// Arrivals returns a copy of the board's arrivals in their current order.
func (b *ArrivalBoard) Arrivals() []Arrival {
	out := make([]Arrival, len(b.arrivals))
	copy(out, b.arrivals)
	return out
}

// SortArrivals orders the board by time to station. Ties keep insertion order.
func (b *ArrivalBoard) SortArrivals() {
	sort.SliceStable(b.arrivals, func(i, j int) bool {
		return b.arrivals[i].Compare(b.arrivals[j]) < 0
	})
}

// ClearArrivals removes every arrival from the board.
func (b *ArrivalBoard) ClearArrivals() {
	b.arrivals = nil
}
