package model

import "strings"

const secsPerMin = 60

// Arrival is a predicted train arrival at a station. The platform label has
// the form "<travel direction> - <platform name>" with arbitrary whitespace
// around the separator and at either end.
type Arrival struct {
	timeToStation int
	destination   string
	platform      string
}

// NewArrival returns an arrival due in timeToStation seconds.
func NewArrival(timeToStation int, destination, platform string) Arrival {
	return Arrival{timeToStation: timeToStation, destination: destination, platform: platform}
}

// TimeToStation returns the time until arrival in seconds.
func (a Arrival) TimeToStation() int { return a.timeToStation }

// TimeToStationInMins returns the time until arrival rounded up to the next
// whole minute.
func (a Arrival) TimeToStationInMins() int {
	if a.timeToStation%secsPerMin == 0 {
		return a.timeToStation / secsPerMin
	}
	return a.timeToStation/secsPerMin + 1
}

func (a Arrival) Destination() string { return a.destination }

// Platform returns the raw platform label.
func (a Arrival) Platform() string { return a.platform }

// TravelDirection returns the part of the platform label before the first
// "-", trimmed. A label with no separator has no travel direction.
func (a Arrival) TravelDirection() string {
	dir, _, found := strings.Cut(a.platform, "-")
	if !found {
		return ""
	}
	return strings.TrimSpace(dir)
}

// PlatformName returns the part of the platform label after the first "-",
// trimmed, or the whole trimmed label when there is no separator.
func (a Arrival) PlatformName() string {
	_, name, found := strings.Cut(a.platform, "-")
	if !found {
		return strings.TrimSpace(a.platform)
	}
	return strings.TrimSpace(name)
}

// Compare orders arrivals by time to station, sooner first.
func (a Arrival) Compare(other Arrival) int {
	return a.timeToStation - other.timeToStation
}
