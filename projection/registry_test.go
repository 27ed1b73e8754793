package projection_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/thejerf/slogassert"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/royalcat/mapcore/projection"
)

func TestRegistryLogs(t *testing.T) {
	handler := slogassert.New(t, slog.LevelDebug, nil)
	r, err := projection.NewRegistry(projection.WithLogger(slog.New(handler)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	handler.AssertMessage("projection registry initialized")

	if _, err := r.WithSRIDAndUnits("EPSG:3857", projection.Degrees); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	handler.AssertMessage("projection registered")
}

func TestRegistryLookupMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	r := newRegistry(t, projection.WithMeter(provider.Meter("test")))

	r.ForSRID("EPSG:4326")
	r.ForSRID("3857")
	r.ForSRID("EPSG:1")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "projection_lookups_total" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				total += dp.Value
			}
		}
	}
	if total != 3 {
		t.Fatalf("expected 3 lookups, got %d", total)
	}
}

func TestRegistryConcurrentRegistration(t *testing.T) {
	r := newRegistry(t)
	var wg sync.WaitGroup
	got := make([]*projection.Projection, 32)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := r.WithSRIDAndUnits("EPSG:31468", projection.Degrees)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			got[i] = p
		}()
	}
	wg.Wait()
	for _, p := range got {
		if p != got[0] {
			t.Fatalf("goroutines observed different instances")
		}
	}
}

func TestRegistryBuiltins(t *testing.T) {
	r := newRegistry(t)
	srids := map[string]bool{}
	for _, s := range r.SRIDs() {
		srids[s] = true
	}
	for _, s := range []string{"EPSG:4326", "CRS:84", "EPSG:3857", "EPSG:3395", "EPSG:32601", "EPSG:32760"} {
		if !srids[s] {
			t.Errorf("expected %s to be registered", s)
		}
	}
}
