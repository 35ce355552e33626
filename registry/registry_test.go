package registry

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/theoremus-urban-solutions/mindthegap/geo"
	"github.com/theoremus-urban-solutions/mindthegap/model"
)

// northOf returns the point meters due north of c.
func northOf(c geo.Coordinate, meters float64) geo.Coordinate {
	return geo.NewCoordinate(c.Lat+meters/geo.EarthRadiusMeters*180/math.Pi, c.Lon)
}

func newLine(id string, stations ...*model.Station) *model.Line {
	l := model.NewLine(model.LineResource{ID: id}, id, id)
	for _, s := range stations {
		l.AddStation(s)
	}
	return l
}

var charingCross = geo.NewCoordinate(51.5080, -0.1247)

func TestRegistry_AddStationsOnLineKeepsCanonical(t *testing.T) {
	r := New()
	first := model.NewStation("940GZZLUBND", "Bond Street", charingCross)
	r.AddStationsOnLine(newLine("central", first))

	dup := model.NewStation("940GZZLUBND", "Bond St (dup)", geo.Coordinate{})
	r.AddStationsOnLine(newLine("jubilee", dup, model.NewStation("940GZZLUGPK", "Green Park", charingCross)))

	if r.NumStations() != 2 {
		t.Fatalf("expected 2 stations, got %d", r.NumStations())
	}
	got, ok := r.StationWithID("940GZZLUBND")
	if !ok {
		t.Fatal("expected Bond Street to be registered")
	}
	if got != first {
		t.Error("existing station instance should remain canonical")
	}
	if len(r.Lines()) != 2 {
		t.Errorf("expected 2 lines, got %d", len(r.Lines()))
	}
	if _, ok := r.LineWithID("jubilee"); !ok {
		t.Error("expected jubilee line to be registered")
	}
}

func TestRegistry_Select(t *testing.T) {
	r := New()
	stn := model.NewStation("940GZZLUOXC", "Oxford Circus", charingCross)
	r.AddStationsOnLine(newLine("victoria", stn))

	if _, ok := r.Selected(); ok {
		t.Error("new registry should have no selection")
	}

	if err := r.Select(stn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel, _ := r.Selected(); sel != stn {
		t.Error("expected Oxford Circus to be selected")
	}

	// An equal-by-id instance selects the canonical station.
	if err := r.Select(model.NewStation("940GZZLUOXC", "", geo.Coordinate{})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel, _ := r.Selected(); sel != stn {
		t.Error("selection should resolve to the registered instance")
	}

	err := r.Select(model.NewStation("940GZZLUBNK", "Bank", charingCross))
	if !errors.Is(err, ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered, got %v", err)
	}
	if sel, _ := r.Selected(); sel != stn {
		t.Error("failed selection should leave previous selection in place")
	}

	r.ClearSelection()
	if _, ok := r.Selected(); ok {
		t.Error("expected no selection after ClearSelection")
	}
}

func TestRegistry_Reset(t *testing.T) {
	r := New()
	stn := model.NewStation("940GZZLUOXC", "Oxford Circus", charingCross)
	r.AddStationsOnLine(newLine("victoria", stn))
	_ = r.Select(stn)

	r.Reset()

	if r.NumStations() != 0 {
		t.Errorf("expected 0 stations, got %d", r.NumStations())
	}
	if len(r.Lines()) != 0 {
		t.Errorf("expected 0 lines, got %d", len(r.Lines()))
	}
	if _, ok := r.Selected(); ok {
		t.Error("expected selection cleared by Reset")
	}
}

func TestRegistry_FindNearestTo(t *testing.T) {
	t.Run("empty registry", func(t *testing.T) {
		if _, ok := New().FindNearestTo(charingCross); ok {
			t.Error("expected no station in empty registry")
		}
	})

	t.Run("picks closest within radius", func(t *testing.T) {
		r := New()
		near := model.NewStation("NEAR", "Near", northOf(charingCross, 500))
		far := model.NewStation("FAR", "Far", northOf(charingCross, 2_000))
		r.AddStationsOnLine(newLine("l", far, near))

		got, ok := r.FindNearestTo(charingCross)
		if !ok || got.ID() != "NEAR" {
			t.Errorf("expected NEAR, got %v", got)
		}
	})

	t.Run("default radius", func(t *testing.T) {
		r := New()
		r.AddStationsOnLine(newLine("l", model.NewStation("OUT", "Out", northOf(charingCross, 10_010))))
		if _, ok := r.FindNearestTo(charingCross); ok {
			t.Error("station beyond 10 km should not be found")
		}
		r.AddStationsOnLine(newLine("m", model.NewStation("IN", "In", northOf(charingCross, 9_990))))
		got, ok := r.FindNearestTo(charingCross)
		if !ok || got.ID() != "IN" {
			t.Errorf("expected IN, got %v", got)
		}
	})

	t.Run("threshold is exclusive", func(t *testing.T) {
		stn := model.NewStation("EDGE", "Edge", northOf(charingCross, 10_000))
		d := geo.DistanceBetween(stn.Location(), charingCross)

		exact := New(WithRadius(d))
		exact.AddStationsOnLine(newLine("l", stn))
		if _, ok := exact.FindNearestTo(charingCross); ok {
			t.Errorf("station exactly at the radius (%.3f m) should be excluded", d)
		}

		wider := New(WithRadius(d + 1))
		wider.AddStationsOnLine(newLine("l", stn))
		if _, ok := wider.FindNearestTo(charingCross); !ok {
			t.Error("station one meter inside the radius should be included")
		}
	})

	t.Run("ties resolve to lowest id", func(t *testing.T) {
		r := New()
		pt := northOf(charingCross, 300)
		r.AddStationsOnLine(newLine("l",
			model.NewStation("C", "C", pt),
			model.NewStation("A", "A", pt),
			model.NewStation("B", "B", pt),
		))
		for i := 0; i < 10; i++ {
			got, ok := r.FindNearestTo(charingCross)
			if !ok || got.ID() != "A" {
				t.Fatalf("expected A, got %v", got)
			}
		}
	})
}

func TestRegistry_UpdateAndViewConcurrently(t *testing.T) {
	r := New()
	stn := model.NewStation("940GZZLUOXC", "Oxford Circus", charingCross)
	line := newLine("victoria", stn)
	r.AddStationsOnLine(line)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = r.Update(func(tx *Tx) error {
				s, _ := tx.StationWithID("940GZZLUOXC")
				s.ClearArrivalBoards()
				s.AddArrival(line, model.NewArrival(60, "Brixton", "Southbound - Platform 4"))
				return nil
			})
		}()
		go func() {
			defer wg.Done()
			_ = r.View(func(tx *Tx) error {
				s, _ := tx.StationWithID("940GZZLUOXC")
				for _, b := range s.ArrivalBoards() {
					_ = b.Arrivals()
				}
				return nil
			})
			_, _ = r.FindNearestTo(charingCross)
		}()
	}
	wg.Wait()

	if stn.NumArrivalBoards() != 1 {
		t.Errorf("expected 1 board, got %d", stn.NumArrivalBoards())
	}
}
