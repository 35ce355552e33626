package mindthegap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/theoremus-urban-solutions/mindthegap/config"
	"github.com/theoremus-urban-solutions/mindthegap/formatter"
	"github.com/theoremus-urban-solutions/mindthegap/geo"
	"github.com/theoremus-urban-solutions/mindthegap/gtfsrt"
	"github.com/theoremus-urban-solutions/mindthegap/ingest"
	"github.com/theoremus-urban-solutions/mindthegap/metrics"
	"github.com/theoremus-urban-solutions/mindthegap/model"
	"github.com/theoremus-urban-solutions/mindthegap/provider"
	"github.com/theoremus-urban-solutions/mindthegap/registry"
)

// ErrNoStationNearby is returned when no station lies within the search
// radius of a point.
var ErrNoStationNearby = errors.New("no station nearby")

// Service is the application's single network. Its methods are safe for
// concurrent use.
type Service struct {
	Registry *registry.Registry
	Parser   *ingest.Parser
	Metrics  *metrics.Collector

	cfg         config.AppConfig
	lastRefresh atomic.Int64 // unix seconds of the last successful arrivals refresh
}

// NewService builds an empty network from cfg. m may be nil.
func NewService(cfg config.AppConfig, m *metrics.Collector) *Service {
	reg := registry.New(registry.WithRadius(cfg.Network.NearestRadiusMeters))
	return &Service{
		Registry: reg,
		Parser:   ingest.NewParser(reg, ingest.WithMetrics(m)),
		Metrics:  m,
		cfg:      cfg,
	}
}

// LoadLines ingests every configured line document from the data
// directory. A line that fails is logged and skipped; the others still
// load. The returned error joins every failure.
func (s *Service) LoadLines(ctx context.Context) ([]*model.Line, error) {
	var (
		lines []*model.Line
		errs  []error
	)
	for _, res := range s.cfg.LineResources() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		line, err := s.LoadLine(ctx, res, provider.FileProvider{Path: filepath.Join(s.cfg.Data.LinesDir, res.FileName)})
		if err != nil {
			log.Printf("line %s not loaded: %v", res.ID, err)
			errs = append(errs, err)
			continue
		}
		lines = append(lines, line)
	}
	s.Metrics.StationsRegistered(s.Registry.NumStations())
	log.Printf("loaded %d lines, %d stations", len(lines), s.Registry.NumStations())
	return lines, errors.Join(errs...)
}

// LoadLine ingests one line document from src.
func (s *Service) LoadLine(ctx context.Context, res model.LineResource, src provider.DataProvider) (*model.Line, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		s.Metrics.Failed("line", "fetch")
		return nil, fmt.Errorf("line %s: %w", res.ID, err)
	}
	line, err := s.Parser.Line(res, data)
	if err != nil {
		return nil, fmt.Errorf("line %s: %w", res.ID, err)
	}
	return line, nil
}

// NearestStation returns the registered station closest to pt within the
// configured radius.
func (s *Service) NearestStation(pt geo.Coordinate) (*model.Station, error) {
	stn, ok := s.Registry.FindNearestTo(pt)
	if !ok {
		return nil, fmt.Errorf("%w: %v within %.0fm", ErrNoStationNearby, pt, s.Registry.Radius())
	}
	return stn, nil
}

// RefreshArrivals selects stn and replaces its boards with live TfL
// arrivals for every line serving it. On error the boards are unchanged.
func (s *Service) RefreshArrivals(ctx context.Context, stn *model.Station) (ingest.Report, error) {
	var src provider.DataProvider
	err := s.Registry.Update(func(tx *registry.Tx) error {
		if err := tx.Select(stn); err != nil {
			return err
		}
		selected, _ := tx.StationWithID(stn.ID())
		creds := provider.Credentials{AppID: s.cfg.Arrivals.AppID, AppKey: s.cfg.Arrivals.AppKey}
		p, err := provider.NewArrivalsProvider(s.cfg.Arrivals.BaseURL, creds, s.cfg.Arrivals.Timeout(), selected)
		if err != nil {
			return err
		}
		src = p
		return nil
	})
	if err != nil {
		return ingest.Report{}, err
	}
	return s.refresh(ctx, stn, src, func(data []byte) (ingest.Report, error) {
		return s.Parser.Arrivals(stn, data)
	})
}

// RefreshArrivalsFromFeed selects stn and replaces its boards with the
// predictions for it in a GTFS-Realtime TripUpdates feed. Feed stop ids
// must match station ids.
func (s *Service) RefreshArrivalsFromFeed(ctx context.Context, stn *model.Station, feed provider.DataProvider) (ingest.Report, error) {
	if err := s.Registry.Select(stn); err != nil {
		return ingest.Report{}, err
	}
	return s.refresh(ctx, stn, feed, func(data []byte) (ingest.Report, error) {
		entries, err := gtfsrt.DecodeArrivals(data, stn.ID())
		if err != nil {
			s.Metrics.Failed("arrivals", "malformed")
			return ingest.Report{}, err
		}
		return s.Parser.AttachArrivals(stn, entries)
	})
}

func (s *Service) refresh(ctx context.Context, stn *model.Station, src provider.DataProvider, apply func([]byte) (ingest.Report, error)) (ingest.Report, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		s.Metrics.Failed("arrivals", "fetch")
		return ingest.Report{}, fmt.Errorf("station %s: %w", stn.ID(), err)
	}
	rep, err := apply(data)
	if err != nil {
		return rep, fmt.Errorf("station %s: %w", stn.ID(), err)
	}
	s.lastRefresh.Store(time.Now().Unix())
	return rep, nil
}

// Boards returns a snapshot of the registered station's boards.
func (s *Service) Boards(stationID string) (formatter.StationBoards, error) {
	var sb formatter.StationBoards
	err := s.Registry.View(func(tx *registry.Tx) error {
		stn, ok := tx.StationWithID(stationID)
		if !ok {
			return fmt.Errorf("%w: %s", registry.ErrNotRegistered, stationID)
		}
		sb = formatter.Snapshot(stn, time.Now())
		return nil
	})
	return sb, err
}

// LastRefresh returns the time of the last successful arrivals refresh, or
// the zero time.
func (s *Service) LastRefresh() time.Time {
	if ts := s.lastRefresh.Load(); ts > 0 {
		return time.Unix(ts, 0)
	}
	return time.Time{}
}

// Reset forgets every station, line and selection.
func (s *Service) Reset() {
	s.Registry.Reset()
	s.lastRefresh.Store(0)
	s.Metrics.StationsRegistered(0)
}
