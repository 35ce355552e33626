// Package model defines the transit network entities: stations, lines,
// branches, arrival boards and arrivals.
//
// Station and line membership is a many-to-many relation kept symmetric by
// every mutating call: Line.AddStation and Station.AddLine both update the
// line's ordered station list and the station's line index in one step.
// Stations and lines compare by identifier only.
//
// Model values are not safe for concurrent mutation on their own. Shared
// instances are guarded by the registry (see registry.Registry.Update and
// registry.Registry.View).
package model
