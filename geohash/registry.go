package geohash

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/metric"

	"github.com/royalcat/mapcore/geom"
	"github.com/royalcat/mapcore/kv"
)

// Registry hands out canonical Geohash instances. It is safe for concurrent
// use; a cell is decoded once and shared afterwards.
type Registry struct {
	cells    kv.KVS[string, *Geohash]
	maxCells int
	log      *slog.Logger

	metricHits   metric.Int64Counter
	metricMisses metric.Int64Counter
}

func NewRegistry(opts ...Option) (*Registry, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}

	cells := o.cache
	switch {
	case cells != nil:
	case o.cacheSize > 0:
		lru, err := kv.NewLRU[string, *Geohash](o.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create geohash cache: %w", err)
		}
		cells = lru
	default:
		cells = kv.NewXMap[string, *Geohash]()
	}

	hits, err := o.meter.Int64Counter("geohash_cache_hits_total")
	if err != nil {
		return nil, err
	}
	misses, err := o.meter.Int64Counter("geohash_cache_misses_total")
	if err != nil {
		return nil, err
	}

	r := &Registry{
		cells:        cells,
		maxCells:     o.maxCells,
		log:          o.logger,
		metricHits:   hits,
		metricMisses: misses,
	}
	r.log.Info("geohash registry initialized", "cache_size", o.cacheSize, "max_cells", o.maxCells)
	return r, nil
}

// WithIdentifier returns the canonical cell for id, case-insensitive.
func (r *Registry) WithIdentifier(id string) (*Geohash, error) {
	key := strings.ToUpper(id)
	if g, ok := r.cells.Get(key); ok {
		r.metricHits.Add(context.Background(), 1)
		return g, nil
	}

	fresh, err := newGeohash(id)
	if err != nil {
		return nil, err
	}
	g, loaded := r.cells.GetOrCompute(key, func() *Geohash { return fresh })
	if loaded {
		r.metricHits.Add(context.Background(), 1)
	} else {
		r.metricMisses.Add(context.Background(), 1)
		r.log.Debug("geohash registered", "id", g.id)
	}
	return g, nil
}

// At returns the canonical cell containing pos at precision.
func (r *Registry) At(pos geom.Position, precision int) (*Geohash, error) {
	id, err := Encode(pos, precision)
	if err != nil {
		return nil, err
	}
	return r.WithIdentifier(id)
}

// Neighbors returns the canonical cells adjacent to g, clockwise from north.
func (r *Registry) Neighbors(g *Geohash) ([]*Geohash, error) {
	ids := g.Neighbors()
	out := make([]*Geohash, 0, len(ids))
	for _, id := range ids {
		n, err := r.WithIdentifier(id)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Len is the number of cached cells.
func (r *Registry) Len() int {
	return r.cells.Len()
}
