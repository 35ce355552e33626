package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/mindthegap/model"
)

// DataConfig locates the line documents shipped with the application
type DataConfig struct {
	LinesDir string `yaml:"linesDir" validate:"required"`
}

// NetworkConfig tunes registry queries
type NetworkConfig struct {
	NearestRadiusMeters float64 `yaml:"nearestRadiusMeters" validate:"gte=0"`
}

// LineConfig describes one line document and its styling
type LineConfig struct {
	ID     string `yaml:"id" validate:"required"`
	Name   string `yaml:"name" validate:"required"`
	File   string `yaml:"file" validate:"required"`
	Colour string `yaml:"colour" validate:"omitempty,hexcolor"`
}

// ArrivalsConfig contains TfL arrivals API configuration
type ArrivalsConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	AppID     string `yaml:"appID"`
	AppKey    string `yaml:"appKey"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// GTFSRTConfig points at an optional GTFS-Realtime TripUpdates feed, by URL
// or file path
type GTFSRTConfig struct {
	TripUpdates string `yaml:"tripUpdates"`
}

// MetricsConfig contains the Prometheus listener configuration
type MetricsConfig struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Data     DataConfig     `yaml:"data" validate:"required"`
	Network  NetworkConfig  `yaml:"network"`
	Lines    []LineConfig   `yaml:"lines" validate:"dive"`
	Arrivals ArrivalsConfig `yaml:"arrivals"`
	GTFSRT   GTFSRTConfig   `yaml:"gtfsrt"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// Timeout returns the arrivals request timeout; zero means none.
func (c ArrivalsConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// LineResources returns the configured lines, or the built-in tube lines
// when none are configured.
func (c AppConfig) LineResources() []model.LineResource {
	if len(c.Lines) == 0 {
		return model.DefaultLineResources()
	}
	out := make([]model.LineResource, 0, len(c.Lines))
	for _, l := range c.Lines {
		out = append(out, model.LineResource{
			ID:       l.ID,
			Name:     l.Name,
			FileName: l.File,
			Colour:   parseColour(l.Colour),
		})
	}
	return out
}

// parseColour turns "#RRGGBB" or "#RGB" into opaque ARGB and reads
// "#AARRGGBB" as is. Other forms yield no colour.
func parseColour(s string) uint32 {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0
	}
	switch len(hex) {
	case 6:
		return 0xFF000000 | uint32(v)
	case 8:
		return uint32(v)
	}
	return 0
}
