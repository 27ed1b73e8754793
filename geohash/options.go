package geohash

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/royalcat/mapcore/kv"
)

type options struct {
	cache     kv.KVS[string, *Geohash]
	cacheSize int
	maxCells  int
	logger    *slog.Logger
	meter     metric.Meter
}

func defaultOptions() options {
	return options{
		maxCells: 1 << 16,
		logger:   slog.Default(),
		meter:    otel.Meter("github.com/royalcat/mapcore/geohash"),
	}
}

type Option interface {
	apply(*options)
}

type cacheSize int

func (s cacheSize) apply(o *options) {
	o.cacheSize = int(s)
}

// WithCacheSize bounds the canonical cell cache to size entries, evicting
// the least recently used. Default: 0, unbounded.
func WithCacheSize(size int) Option {
	return cacheSize(size)
}

type cacheOption struct{ c kv.KVS[string, *Geohash] }

func (c cacheOption) apply(o *options) {
	o.cache = c.c
}

// WithCache stores canonical cells in c. It takes precedence over
// WithCacheSize.
func WithCache(c kv.KVS[string, *Geohash]) Option {
	return cacheOption{c}
}

type maxCells int

func (m maxCells) apply(o *options) {
	o.maxCells = int(m)
}

// WithMaxCells limits how many cells a single collection may hold.
// Default: 65536
func WithMaxCells(n int) Option {
	return maxCells(n)
}

type loggerOption struct{ l *slog.Logger }

func (l loggerOption) apply(o *options) {
	o.logger = l.l
}

func WithLogger(l *slog.Logger) Option {
	return loggerOption{l}
}

type meterOption struct{ m metric.Meter }

func (m meterOption) apply(o *options) {
	o.meter = m.m
}

func WithMeter(m metric.Meter) Option {
	return meterOption{m}
}
