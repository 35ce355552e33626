package registry

import (
	"errors"
	"sort"
	"sync"

	"github.com/theoremus-urban-solutions/mindthegap/geo"
	"github.com/theoremus-urban-solutions/mindthegap/model"
)

// DefaultRadiusMeters bounds nearest-station searches.
const DefaultRadiusMeters = 10_000.0

// ErrNotRegistered is returned when selecting a station the registry does not hold.
var ErrNotRegistered = errors.New("station not registered")

// Registry stores the network's stations and lines and the selected station.
type Registry struct {
	mu       sync.RWMutex
	radius   float64
	stations map[string]*model.Station // station id -> canonical station
	lines    map[string]*model.Line    // line id -> line
	selected *model.Station
}

// Option configures a Registry.
type Option func(*Registry)

// WithRadius sets the nearest-station search radius in meters.
func WithRadius(meters float64) Option {
	return func(r *Registry) {
		if meters > 0 {
			r.radius = meters
		}
	}
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		radius:   DefaultRadiusMeters,
		stations: map[string]*model.Station{},
		lines:    map[string]*model.Line{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Radius returns the nearest-station search radius in meters.
func (r *Registry) Radius() float64 { return r.radius }

// Update runs fn with exclusive access to the registry.
func (r *Registry) Update(fn func(tx *Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(&Tx{r: r})
}

// View runs fn with shared read access to the registry. fn must not mutate
// registry state or model objects reachable from it.
func (r *Registry) View(fn func(tx *Tx) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fn(&Tx{r: r})
}

// AddStationsOnLine registers line and every station on it that is not
// already registered.
func (r *Registry) AddStationsOnLine(line *model.Line) {
	r.mu.Lock()
	defer r.mu.Unlock()
	(&Tx{r: r}).AddStationsOnLine(line)
}

// StationWithID returns the registered station with id.
func (r *Registry) StationWithID(id string) (*model.Station, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return (&Tx{r: r}).StationWithID(id)
}

// LineWithID returns the registered line with id.
func (r *Registry) LineWithID(id string) (*model.Line, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return (&Tx{r: r}).LineWithID(id)
}

// Stations returns all registered stations ordered by id.
func (r *Registry) Stations() []*model.Station {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return (&Tx{r: r}).Stations()
}

// Lines returns all registered lines ordered by id.
func (r *Registry) Lines() []*model.Line {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Line, 0, len(r.lines))
	for _, l := range r.lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (r *Registry) NumStations() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stations)
}

// Select marks stn as the selected station. stn must be registered.
func (r *Registry) Select(stn *model.Station) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (&Tx{r: r}).Select(stn)
}

// Selected returns the selected station, if any.
func (r *Registry) Selected() (*model.Station, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selected, r.selected != nil
}

// ClearSelection deselects the selected station.
func (r *Registry) ClearSelection() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = nil
}

// Reset removes every station and line and clears the selection.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stations = map[string]*model.Station{}
	r.lines = map[string]*model.Line{}
	r.selected = nil
}

// FindNearestTo returns the registered station closest to pt, provided it
// is strictly closer than the search radius. Equidistant stations resolve
// to the lowest identifier.
func (r *Registry) FindNearestTo(pt geo.Coordinate) (*model.Station, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var nearest *model.Station
	closest := r.radius
	for _, stn := range r.stations {
		d := geo.DistanceBetween(stn.Location(), pt)
		switch {
		case d < closest:
			nearest, closest = stn, d
		case d == closest && nearest != nil && stn.ID() < nearest.ID():
			nearest = stn
		}
	}
	return nearest, nearest != nil
}
