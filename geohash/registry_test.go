package geohash_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/thejerf/slogassert"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/royalcat/mapcore/geohash"
	"github.com/royalcat/mapcore/geom"
	"github.com/royalcat/mapcore/kv"
)

func newRegistry(t *testing.T, opts ...geohash.Option) *geohash.Registry {
	t.Helper()
	r, err := geohash.NewRegistry(append([]geohash.Option{geohash.WithLogger(slog.New(slog.DiscardHandler))}, opts...)...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func TestCanonicalInstances(t *testing.T) {
	for name, opts := range map[string][]geohash.Option{
		"xmap":  nil,
		"lru":   {geohash.WithCacheSize(16)},
		"mutex": {geohash.WithCache(kv.NewMutexMap[string, *geohash.Geohash]())},
	} {
		t.Run(name, func(t *testing.T) {
			r := newRegistry(t, opts...)
			upper, err := r.WithIdentifier("Z")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			lower, err := r.WithIdentifier("z")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if upper != lower {
				t.Fatalf("expected the same instance for Z and z")
			}
			if upper.ID() != "z" || upper.Precision() != 1 {
				t.Fatalf("unexpected cell %s", upper)
			}
			if r.Len() != 1 {
				t.Fatalf("expected 1 cached cell, got %d", r.Len())
			}
		})
	}
}

func TestCanonicalInstancesConcurrent(t *testing.T) {
	r := newRegistry(t)
	var wg sync.WaitGroup
	got := make([]*geohash.Geohash, 64)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := "u33dc0"
			if i%2 == 1 {
				id = "U33DC0"
			}
			g, err := r.WithIdentifier(id)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			got[i] = g
		}()
	}
	wg.Wait()
	for _, g := range got {
		if g != got[0] {
			t.Fatalf("goroutines observed different instances")
		}
	}
}

func TestRegistryRejectsInvalid(t *testing.T) {
	r := newRegistry(t)
	if _, err := r.WithIdentifier("ai"); err == nil {
		t.Fatalf("expected error")
	}
	if r.Len() != 0 {
		t.Fatalf("invalid identifiers must not be cached")
	}
}

func TestRegistryAt(t *testing.T) {
	r := newRegistry(t)
	g, err := r.At(geom.NewPosition(10.40744, 57.64911), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.ID() != "u4pru" {
		t.Fatalf("expected u4pru, got %s", g.ID())
	}
}

func TestRegistryLogs(t *testing.T) {
	handler := slogassert.New(t, slog.LevelInfo, nil)
	_, err := geohash.NewRegistry(geohash.WithLogger(slog.New(handler)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	handler.AssertMessage("geohash registry initialized")
}

func TestRegistryMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	r := newRegistry(t, geohash.WithMeter(provider.Meter("test")))

	for _, id := range []string{"u4pru", "U4PRU", "u4pru", "ezs42"} {
		if _, err := r.WithIdentifier(id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				counts[m.Name] += dp.Value
			}
		}
	}
	if counts["geohash_cache_hits_total"] != 2 || counts["geohash_cache_misses_total"] != 2 {
		t.Fatalf("unexpected counters %v", counts)
	}
}
