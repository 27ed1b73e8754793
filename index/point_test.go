package index_test

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/royalcat/mapcore/geom"
	"github.com/royalcat/mapcore/index"
)

func randomItems(n int, seed int64) []index.Item[int] {
	r := rand.New(rand.NewSource(seed))
	items := make([]index.Item[int], n)
	for i := range items {
		items[i] = index.Item[int]{
			Position: geom.NewPosition(r.Float64()*360-180, r.Float64()*170-85),
			Data:     i,
		}
	}
	return items
}

func TestRangeMatchesScan(t *testing.T) {
	items := randomItems(5000, 1)
	idx := index.NewPointIndex(items, 16)
	if idx.Len() != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), idx.Len())
	}

	for _, box := range []geom.BoundingBox{
		geom.NewBoundingBox(-10, -10, 10, 10),
		geom.NewBoundingBox(100, 20, 140, 60),
		geom.NewBoundingBox(160, -30, -160, 30),
		geom.NewBoundingBox(-180, -90, 180, 90),
	} {
		expect := map[int]bool{}
		for _, it := range items {
			if box.Contains(it.Position) {
				expect[it.Data] = true
			}
		}
		got := map[int]bool{}
		idx.Range(box, func(it index.Item[int]) bool {
			if got[it.Data] {
				t.Fatalf("%v: item %d reported twice", box, it.Data)
			}
			got[it.Data] = true
			return true
		})
		if len(got) != len(expect) {
			t.Fatalf("%v: expected %d items, got %d", box, len(expect), len(got))
		}
		for id := range expect {
			if !got[id] {
				t.Fatalf("%v: missing item %d", box, id)
			}
		}
	}
}

func TestWithinMatchesOrb(t *testing.T) {
	items := randomItems(5000, 2)
	idx := index.NewPointIndex(items, 0)

	for _, c := range []struct {
		center geom.Position
		radius float64
	}{
		{geom.NewPosition(13.4, 52.5), 1_000_000},
		{geom.NewPosition(179.5, 0), 800_000},
		{geom.NewPosition(0, 84), 1_500_000},
	} {
		expect := 0
		for _, it := range items {
			d := geo.DistanceHaversine(
				orb.Point{c.center.Longitude, c.center.Latitude},
				orb.Point{it.Position.Longitude, it.Position.Latitude},
			)
			if d <= c.radius {
				expect++
			}
		}
		got := 0
		idx.Within(c.center, c.radius, func(_ index.Item[int], d float64) bool {
			if d > c.radius {
				t.Fatalf("reported distance %g beyond radius %g", d, c.radius)
			}
			got++
			return true
		})
		if got != expect {
			t.Fatalf("%v within %gm: expected %d items, got %d", c.center, c.radius, expect, got)
		}
	}
}

func TestNearest(t *testing.T) {
	idx := index.NewPointIndex([]index.Item[string]{
		{Position: geom.NewPosition(13.4, 52.5), Data: "berlin"},
		{Position: geom.NewPosition(2.35, 48.85), Data: "paris"},
		{Position: geom.NewPosition(-179.9, 0), Data: "west"},
	}, 1)

	if it, ok := idx.Nearest(geom.NewPosition(12, 51), 500_000); !ok || it.Data != "berlin" {
		t.Fatalf("expected berlin, got %v %v", it, ok)
	}
	if it, ok := idx.Nearest(geom.NewPosition(179.9, 0), 50_000); !ok || it.Data != "west" {
		t.Fatalf("expected the item across the antimeridian, got %v %v", it, ok)
	}
	if _, ok := idx.Nearest(geom.NewPosition(-100, -40), 100_000); ok {
		t.Fatalf("expected nothing in range")
	}
}

func TestEmptyPointIndex(t *testing.T) {
	idx := index.NewPointIndex[int](nil, 8)
	idx.Range(geom.NewBoundingBox(-180, -90, 180, 90), func(index.Item[int]) bool {
		t.Fatalf("expected no items")
		return false
	})
}

func BenchmarkWithin(b *testing.B) {
	idx := index.NewPointIndex(randomItems(100_000, 3), 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx.Within(geom.NewPosition(float64(i%360)-180, 0), 50_000, func(index.Item[int], float64) bool { return true })
	}
}
