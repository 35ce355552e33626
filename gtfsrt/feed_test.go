package gtfsrt

import (
	"errors"
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/mindthegap/ingest"
)

const feedTime = 1_700_000_000

func stopUpdate(stopID string, arrival int64) *gtfsrtpb.TripUpdate_StopTimeUpdate {
	return &gtfsrtpb.TripUpdate_StopTimeUpdate{
		StopId:  proto.String(stopID),
		Arrival: &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(arrival)},
	}
}

func tripEntity(id, route string, dir *uint32, stus ...*gtfsrtpb.TripUpdate_StopTimeUpdate) *gtfsrtpb.FeedEntity {
	return &gtfsrtpb.FeedEntity{
		Id: proto.String(id),
		TripUpdate: &gtfsrtpb.TripUpdate{
			Trip: &gtfsrtpb.TripDescriptor{
				TripId:      proto.String(id),
				RouteId:     proto.String(route),
				DirectionId: dir,
			},
			StopTimeUpdate: stus,
		},
	}
}

func buildFeed(t *testing.T, entities ...*gtfsrtpb.FeedEntity) []byte {
	t.Helper()
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(feedTime),
		},
		Entity: entities,
	}
	data, err := proto.Marshal(fm)
	if err != nil {
		t.Fatalf("Failed to marshal feed: %v", err)
	}
	return data
}

func TestDecodeArrivals(t *testing.T) {
	data := buildFeed(t,
		tripEntity("T1", "victoria", proto.Uint32(0),
			stopUpdate("940GZZLUVIC", feedTime+60),
			stopUpdate("940GZZLUGPK", feedTime+150),
			stopUpdate("940GZZLUOXC", feedTime+240),
		),
		tripEntity("T2", "victoria", proto.Uint32(1),
			stopUpdate("940GZZLUWRR", feedTime-30),
			stopUpdate("940GZZLUOXC", feedTime+90),
			stopUpdate("940GZZLUBXN", feedTime+900),
		),
		// Already departed.
		tripEntity("T3", "victoria", proto.Uint32(1),
			stopUpdate("940GZZLUOXC", feedTime-10),
		),
		// Does not call at the stop.
		tripEntity("T4", "central", nil,
			stopUpdate("940GZZLUBND", feedTime+30),
		),
	)

	entries, err := DecodeArrivals(data, "940GZZLUGPK")
	if err != nil {
		t.Fatalf("DecodeArrivals returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry at Green Park, got %d", len(entries))
	}
	e := entries[0]
	if *e.TimeToStation != 150 {
		t.Errorf("expected 150s, got %d", *e.TimeToStation)
	}
	if *e.LineID != "victoria" {
		t.Errorf("expected line victoria, got %s", *e.LineID)
	}
	if *e.PlatformName != "Outbound - 940GZZLUGPK" {
		t.Errorf("unexpected platform %q", *e.PlatformName)
	}
	if e.Destination() != "940GZZLUOXC" {
		t.Errorf("expected towards the last stop, got %q", e.Destination())
	}

	entries, err = DecodeArrivals(data, "940GZZLUOXC")
	if err != nil {
		t.Fatalf("DecodeArrivals returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries at Oxford Circus, got %d", len(entries))
	}
	if *entries[1].PlatformName != "Inbound - 940GZZLUOXC" || *entries[1].TimeToStation != 90 {
		t.Errorf("unexpected second entry %q %d", *entries[1].PlatformName, *entries[1].TimeToStation)
	}
}

func TestFeed_DepartureFallbackAndSkippedStops(t *testing.T) {
	departOnly := &gtfsrtpb.TripUpdate_StopTimeUpdate{
		StopId:    proto.String("940GZZLUBND"),
		Departure: &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(feedTime + 45)},
	}
	skipped := stopUpdate("940GZZLUBND", feedTime+100)
	skipped.ScheduleRelationship = gtfsrtpb.TripUpdate_StopTimeUpdate_SKIPPED.Enum()

	f, err := ParseFeed(buildFeed(t,
		tripEntity("A", "central", nil, departOnly),
		tripEntity("B", "central", proto.Uint32(0), skipped, stopUpdate("940GZZLUOXC", feedTime+200)),
	))
	if err != nil {
		t.Fatalf("ParseFeed returned error: %v", err)
	}
	if f.Timestamp() != feedTime || f.NumTrips() != 2 {
		t.Errorf("unexpected feed header %d / trips %d", f.Timestamp(), f.NumTrips())
	}

	entries := f.ArrivalsAt("940GZZLUBND")
	if len(entries) != 1 {
		t.Fatalf("expected only the departure-only trip, got %d", len(entries))
	}
	if *entries[0].TimeToStation != 45 || *entries[0].PlatformName != "Unknown - 940GZZLUBND" {
		t.Errorf("unexpected entry %d %q", *entries[0].TimeToStation, *entries[0].PlatformName)
	}
}

func TestParseFeed_Malformed(t *testing.T) {
	_, err := ParseFeed([]byte("not a protobuf"))
	if !errors.Is(err, ingest.ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput, got %v", err)
	}
}
