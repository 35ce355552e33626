package model

// Line is a transit line: an ordered, duplicate-free list of stations plus
// the set of branches that make up its route geometry.
type Line struct {
	id       string
	name     string
	resource LineResource

	stations []*Station
	members  map[string]struct{} // station id set mirroring stations

	branches    []Branch
	branchIndex map[string]struct{}
}

// NewLine returns a line with no stations or branches.
func NewLine(res LineResource, id, name string) *Line {
	return &Line{
		id:          id,
		name:        name,
		resource:    res,
		members:     map[string]struct{}{},
		branchIndex: map[string]struct{}{},
	}
}

func (l *Line) ID() string { return l.id }

func (l *Line) Name() string { return l.name }

func (l *Line) Resource() LineResource { return l.resource }

// Colour returns the ARGB colour used to draw the line.
func (l *Line) Colour() uint32 { return l.resource.Colour }

// Equal reports whether l and other have the same identifier.
func (l *Line) Equal(other *Line) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.id == other.id
}

// AddStation appends stn to the line and records the line on stn.
// Adding a station that is already on the line does nothing.
func (l *Line) AddStation(stn *Station) {
	link(l, stn)
}

// RemoveStation removes stn from the line and the line from stn.
func (l *Line) RemoveStation(stn *Station) {
	unlink(l, stn)
}

// ClearStations removes every station from the line.
func (l *Line) ClearStations() {
	for _, stn := range l.Stations() {
		unlink(l, stn)
	}
}

// HasStation reports whether stn is on the line.
func (l *Line) HasStation(stn *Station) bool {
	if stn == nil {
		return false
	}
	_, ok := l.members[stn.id]
	return ok
}

// Stations returns the line's stations in the order they were added.
func (l *Line) Stations() []*Station {
	out := make([]*Station, len(l.stations))
	copy(out, l.stations)
	return out
}

func (l *Line) NumStations() int { return len(l.stations) }

// AddBranch adds b unless a branch with the same points is already present.
func (l *Line) AddBranch(b Branch) {
	k := b.key()
	if _, ok := l.branchIndex[k]; ok {
		return
	}
	l.branchIndex[k] = struct{}{}
	l.branches = append(l.branches, b)
}

// Branches returns the line's distinct branches.
func (l *Line) Branches() []Branch {
	out := make([]Branch, len(l.branches))
	copy(out, l.branches)
	return out
}

// link and unlink are the only places membership changes, so the line's
// station list and the station's line index never disagree.
func link(l *Line, stn *Station) {
	if l == nil || stn == nil || l.HasStation(stn) {
		return
	}
	l.stations = append(l.stations, stn)
	l.members[stn.id] = struct{}{}
	stn.lines[l.id] = l
}

func unlink(l *Line, stn *Station) {
	if l == nil || stn == nil || !l.HasStation(stn) {
		return
	}
	for i, s := range l.stations {
		if s.id == stn.id {
			l.stations = append(l.stations[:i], l.stations[i+1:]...)
			break
		}
	}
	delete(l.members, stn.id)
	delete(stn.lines, l.id)
}
