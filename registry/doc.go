/*
Package registry holds the canonical set of stations and lines for one
network.

A Registry is constructed explicitly and passed to whoever needs it; there
is no package-level instance. Interchange stations stay singular: when a
line brings a station whose identifier is already registered, the existing
station remains canonical so that its line membership and arrival boards
are shared by every line serving it.

# Concurrency

All state is guarded by one RWMutex. Single calls (Select, FindNearestTo,
AddStationsOnLine, Reset) lock internally. Multi-step mutations that must
look atomic to readers, such as ingesting a whole line or replacing a
station's arrival boards, run inside Update; readers that walk station
boards run inside View:

	err := reg.Update(func(tx *registry.Tx) error {
	    stn, ok := tx.StationWithID("940GZZLUOXC")
	    ...
	    return nil
	})
*/
package registry
