package registry

import (
	"fmt"
	"sort"

	"github.com/theoremus-urban-solutions/mindthegap/model"
)

// Tx is the registry as seen from inside Update or View. It must not be
// retained after the callback returns.
type Tx struct {
	r *Registry
}

func (tx *Tx) StationWithID(id string) (*model.Station, bool) {
	s, ok := tx.r.stations[id]
	return s, ok
}

func (tx *Tx) LineWithID(id string) (*model.Line, bool) {
	l, ok := tx.r.lines[id]
	return l, ok
}

// AddStationsOnLine registers line and its stations. A station whose id is
// already registered keeps the registered instance.
func (tx *Tx) AddStationsOnLine(line *model.Line) {
	if line == nil {
		return
	}
	tx.r.lines[line.ID()] = line
	for _, stn := range line.Stations() {
		if _, ok := tx.r.stations[stn.ID()]; !ok {
			tx.r.stations[stn.ID()] = stn
		}
	}
}

func (tx *Tx) Stations() []*model.Station {
	out := make([]*model.Station, 0, len(tx.r.stations))
	for _, s := range tx.r.stations {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Select marks the registered station with stn's id as selected.
func (tx *Tx) Select(stn *model.Station) error {
	if stn == nil {
		return fmt.Errorf("%w: nil station", ErrNotRegistered)
	}
	canonical, ok := tx.r.stations[stn.ID()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRegistered, stn.ID())
	}
	tx.r.selected = canonical
	return nil
}
