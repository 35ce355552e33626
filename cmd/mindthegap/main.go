package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	lib "github.com/theoremus-urban-solutions/mindthegap"
	"github.com/theoremus-urban-solutions/mindthegap/config"
	"github.com/theoremus-urban-solutions/mindthegap/formatter"
	"github.com/theoremus-urban-solutions/mindthegap/geo"
	"github.com/theoremus-urban-solutions/mindthegap/metrics"
	"github.com/theoremus-urban-solutions/mindthegap/model"
	"github.com/theoremus-urban-solutions/mindthegap/provider"
)

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|server")
	format := flag.String("format", "text", "json|text")
	configPath := flag.String("config", "", "config file (default: config.yml search)")
	lat := flag.Float64("lat", 51.5152, "latitude to search from (oneshot)")
	lon := flag.Float64("lon", -0.1419, "longitude to search from (oneshot)")
	stationID := flag.String("stationId", "", "station id; overrides -lat/-lon (oneshot)")
	tripUpdates := flag.String("gtfsrt", "", "GTFS-RT TripUpdates URL or file (overrides config; replaces TfL arrivals)")
	addr := flag.String("addr", ":16181", "board server listen address (server)")
	origins := flag.String("origins", "*", "comma-separated CORS origins (server)")
	flag.Parse()

	lib.InitLogging()
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *tripUpdates != "" {
		cfg.GTFSRT.TripUpdates = *tripUpdates
	}

	m := metrics.NewCollector()
	svc := lib.NewService(cfg, m)
	ctx := context.Background()
	if _, err := svc.LoadLines(ctx); err != nil {
		log.Printf("some lines failed to load: %v", err)
	}

	switch *mode {
	case "oneshot":
		if err := oneshot(ctx, svc, cfg, *stationID, geo.NewCoordinate(*lat, *lon), *format); err != nil {
			log.Fatalf("%v", err)
		}
	case "server":
		var metricsSrv *http.Server
		if cfg.Metrics.Addr != "" {
			metricsSrv = m.Serve(cfg.Metrics.Addr)
		}
		srv := lib.StartServer(*addr, svc.Handler(splitOrigins(*origins)...))
		lib.HandleGracefulShutdown(srv, metricsSrv)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

func loadConfig(path string) (config.AppConfig, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if err := config.LoadAppConfig(); err != nil {
		return config.AppConfig{}, err
	}
	return config.Config, nil
}

func oneshot(ctx context.Context, svc *lib.Service, cfg config.AppConfig, stationID string, pt geo.Coordinate, format string) error {
	var stn *model.Station
	if stationID != "" {
		s, ok := svc.Registry.StationWithID(stationID)
		if !ok {
			return fmt.Errorf("no such station: %s", stationID)
		}
		stn = s
	} else {
		s, err := svc.NearestStation(pt)
		if err != nil {
			return err
		}
		stn = s
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	var err error
	if cfg.GTFSRT.TripUpdates != "" {
		_, err = svc.RefreshArrivalsFromFeed(ctx, stn, provider.Open(cfg.GTFSRT.TripUpdates, &http.Client{Timeout: cfg.Arrivals.Timeout()}))
	} else {
		_, err = svc.RefreshArrivals(ctx, stn)
	}
	if err != nil {
		return err
	}

	sb, err := svc.Boards(stn.ID())
	if err != nil {
		return err
	}
	rb := formatter.NewResponseBuilder()
	if format == "json" {
		fmt.Println(string(rb.BuildJSON(sb)))
		return nil
	}
	fmt.Print(string(rb.BuildText(sb)))
	return nil
}
