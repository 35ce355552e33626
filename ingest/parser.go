package ingest

import (
	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/mindthegap/metrics"
	"github.com/theoremus-urban-solutions/mindthegap/registry"
)

// Parser ingests documents into one registry. A Parser is safe for
// concurrent use; the registry serialises the apply step.
type Parser struct {
	reg      *registry.Registry
	validate *validator.Validate
	metrics  *metrics.Collector
}

// Option configures a Parser.
type Option func(*Parser)

// WithMetrics records ingestion outcomes on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(p *Parser) { p.metrics = c }
}

// NewParser returns a parser that deduplicates stations against reg.
func NewParser(reg *registry.Registry, opts ...Option) *Parser {
	p := &Parser{reg: reg, validate: newValidator()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
