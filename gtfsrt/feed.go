package gtfsrt

import (
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/mindthegap/ingest"
)

// Feed stores one TripUpdates message in memory for stop lookups.
type Feed struct {
	headerTimestamp int64

	trips       []string                    // trip ids in feed order
	tripRoute   map[string]string           // trip_id -> route_id
	tripDir     map[string]uint32           // trip_id -> direction_id
	onwardStops map[string][]string         // trip_id -> ordered stop_ids
	etaByStop   map[string]map[string]int64 // trip_id -> stop_id -> arrival epoch
	etdByStop   map[string]map[string]int64 // trip_id -> stop_id -> departure epoch
	skipped     map[string]map[string]bool  // trip_id -> stop_id -> SKIPPED
}

// ParseFeed decodes a protobuf FeedMessage. Trip updates without a trip
// id fall back to the entity id; updates with neither are ignored.
func ParseFeed(data []byte) (*Feed, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, &ingest.MalformedInputError{Path: "feed", Err: err}
	}
	return newFeed(&fm), nil
}

func newFeed(fm *gtfsrtpb.FeedMessage) *Feed {
	f := &Feed{
		tripRoute:   map[string]string{},
		tripDir:     map[string]uint32{},
		onwardStops: map[string][]string{},
		etaByStop:   map[string]map[string]int64{},
		etdByStop:   map[string]map[string]int64{},
		skipped:     map[string]map[string]bool{},
	}
	if ts := fm.GetHeader().GetTimestamp(); ts > 0 {
		f.headerTimestamp = int64(ts)
	}

	for _, e := range fm.GetEntity() {
		tu := e.GetTripUpdate()
		if tu == nil {
			continue
		}
		trip := tu.GetTrip()
		tripID := trip.GetTripId()
		if tripID == "" {
			tripID = e.GetId()
		}
		if tripID == "" {
			continue
		}
		if _, seen := f.onwardStops[tripID]; !seen {
			f.trips = append(f.trips, tripID)
		}
		if trip != nil && trip.RouteId != nil {
			f.tripRoute[tripID] = trip.GetRouteId()
		}
		if trip != nil && trip.DirectionId != nil {
			f.tripDir[tripID] = trip.GetDirectionId()
		}

		f.onwardStops[tripID] = make([]string, 0, len(tu.GetStopTimeUpdate()))
		f.etaByStop[tripID] = map[string]int64{}
		f.etdByStop[tripID] = map[string]int64{}
		f.skipped[tripID] = map[string]bool{}
		for _, stu := range tu.GetStopTimeUpdate() {
			if stu.StopId == nil {
				continue
			}
			sid := stu.GetStopId()
			f.onwardStops[tripID] = append(f.onwardStops[tripID], sid)
			if stu.GetArrival() != nil && stu.GetArrival().Time != nil {
				f.etaByStop[tripID][sid] = stu.GetArrival().GetTime()
			}
			if stu.GetDeparture() != nil && stu.GetDeparture().Time != nil {
				f.etdByStop[tripID][sid] = stu.GetDeparture().GetTime()
			}
			if stu.GetScheduleRelationship() == gtfsrtpb.TripUpdate_StopTimeUpdate_SKIPPED {
				f.skipped[tripID][sid] = true
			}
		}
	}
	return f
}

// Timestamp returns the feed header time, or zero when the header has none.
func (f *Feed) Timestamp() int64 { return f.headerTimestamp }

func (f *Feed) NumTrips() int { return len(f.trips) }

// ArrivalsAt returns one entry per trip that calls at stopID. Predictions
// are measured from the feed header time, or from now when the feed has
// no header time; predictions already in the past and skipped stops are
// left out. Trips without a route id yield an entry without a line id, which
// arrivals ingestion counts as deficient.
func (f *Feed) ArrivalsAt(stopID string) []ingest.ArrivalEntry {
	ref := f.headerTimestamp
	if ref == 0 {
		ref = time.Now().Unix()
	}

	var out []ingest.ArrivalEntry
	for _, tripID := range f.trips {
		if f.skipped[tripID][stopID] {
			continue
		}
		at, ok := f.etaByStop[tripID][stopID]
		if !ok {
			at, ok = f.etdByStop[tripID][stopID]
		}
		if !ok || at < ref {
			continue
		}

		stops := f.onwardStops[tripID]
		e := ingest.ArrivalEntry{
			TimeToStation: ptr(int(at - ref)),
			PlatformName:  ptr(f.direction(tripID) + " - " + stopID),
			Towards:       ptr(stops[len(stops)-1]),
		}
		if route, ok := f.tripRoute[tripID]; ok {
			e.LineID = ptr(route)
		}
		out = append(out, e)
	}
	return out
}

func (f *Feed) direction(tripID string) string {
	dir, ok := f.tripDir[tripID]
	switch {
	case !ok:
		return "Unknown"
	case dir == 0:
		return "Outbound"
	default:
		return "Inbound"
	}
}

// DecodeArrivals parses data and returns the arrivals at stopID.
func DecodeArrivals(data []byte, stopID string) ([]ingest.ArrivalEntry, error) {
	f, err := ParseFeed(data)
	if err != nil {
		return nil, err
	}
	return f.ArrivalsAt(stopID), nil
}

func ptr[T any](v T) *T { return &v }
