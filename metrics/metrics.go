// Package metrics exposes Prometheus counters for network ingestion.
package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry so several networks can coexist in one
// process (and in tests). A nil *Collector is valid and records nothing.
type Collector struct {
	reg *prometheus.Registry

	LinesIngested     prometheus.Counter
	IngestFailures    *prometheus.CounterVec // labels: kind=line|arrivals, reason=malformed|missing|fetch
	StopPointsSkipped prometheus.Counter

	ArrivalsAttached   prometheus.Counter
	ArrivalsSkipped    prometheus.Counter
	ArrivalsUnresolved prometheus.Counter

	RegisteredStations prometheus.Gauge
	IngestDuration     *prometheus.HistogramVec // label: kind
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		LinesIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mindthegap_lines_ingested_total",
			Help: "Line documents ingested successfully.",
		}),
		IngestFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindthegap_ingest_failures_total",
			Help: "Ingestion calls that failed as a whole.",
		}, []string{"kind", "reason"}),
		StopPointsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mindthegap_stop_points_skipped_total",
			Help: "Stop points skipped for missing required data.",
		}),
		ArrivalsAttached: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mindthegap_arrivals_attached_total",
			Help: "Arrivals filed on a station's boards.",
		}),
		ArrivalsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mindthegap_arrivals_skipped_total",
			Help: "Arrivals skipped for missing required data.",
		}),
		ArrivalsUnresolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mindthegap_arrivals_unresolved_total",
			Help: "Arrivals dropped because their line is not known at the station.",
		}),
		RegisteredStations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mindthegap_registered_stations",
			Help: "Stations currently held by the registry.",
		}),
		IngestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mindthegap_ingest_duration_seconds",
			Help:    "Time spent decoding and applying one document.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"kind"}),
	}

	reg.MustRegister(
		c.LinesIngested, c.IngestFailures, c.StopPointsSkipped,
		c.ArrivalsAttached, c.ArrivalsSkipped, c.ArrivalsUnresolved,
		c.RegisteredStations, c.IngestDuration,
	)
	return c
}

// LineIngested records a successful line ingestion.
func (c *Collector) LineIngested(skippedStopPoints int, stations int, took time.Duration) {
	if c == nil {
		return
	}
	c.LinesIngested.Inc()
	c.StopPointsSkipped.Add(float64(skippedStopPoints))
	c.RegisteredStations.Set(float64(stations))
	c.IngestDuration.WithLabelValues("line").Observe(took.Seconds())
}

// ArrivalsIngested records a successful arrivals ingestion.
func (c *Collector) ArrivalsIngested(attached, skipped, unresolved int, took time.Duration) {
	if c == nil {
		return
	}
	c.ArrivalsAttached.Add(float64(attached))
	c.ArrivalsSkipped.Add(float64(skipped))
	c.ArrivalsUnresolved.Add(float64(unresolved))
	c.IngestDuration.WithLabelValues("arrivals").Observe(took.Seconds())
}

// Failed records a whole-call ingestion failure.
func (c *Collector) Failed(kind, reason string) {
	if c == nil {
		return
	}
	c.IngestFailures.WithLabelValues(kind, reason).Inc()
}

// StationsRegistered sets the registry size gauge.
func (c *Collector) StationsRegistered(n int) {
	if c == nil {
		return
	}
	c.RegisteredStations.Set(float64(n))
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
