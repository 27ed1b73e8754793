package cluster_test

import (
	"errors"
	"testing"

	"github.com/royalcat/mapcore/cluster"
	"github.com/royalcat/mapcore/geom"
	"github.com/royalcat/mapcore/tile"
)

func TestGrid(t *testing.T) {
	g, err := cluster.NewGrid[string](1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.Add("berlin", geom.NewPosition(13.4, 52.5))
	g.Add("paris", geom.NewPosition(2.35, 48.85))
	g.Add("nyc", geom.NewPosition(-74, 40.7))

	if g.Len() != 2 {
		t.Fatalf("expected 2 clusters, got %d", g.Len())
	}
	europe, ok := g.At(geom.NewPosition(10, 50))
	if !ok || europe.Len() != 2 {
		t.Fatalf("expected the european cluster to hold 2 members")
	}

	g.Add("nyc", geom.NewPosition(0.1, 51.5))
	if g.Len() != 1 || europe.Len() != 3 {
		t.Fatalf("expected moving nyc to empty its old cluster, got %d clusters", g.Len())
	}

	for _, id := range []string{"berlin", "paris", "nyc"} {
		if !g.Remove(id) {
			t.Fatalf("expected %s to be removed", id)
		}
	}
	if g.Len() != 0 || g.Remove("berlin") {
		t.Fatalf("expected an empty grid")
	}
}

func TestGridRange(t *testing.T) {
	g, _ := cluster.NewGrid[int](3)
	for i := 0; i < 8; i++ {
		g.Add(i, geom.NewPosition(-180+45*float64(i)+1, 10))
	}
	seen := 0
	g.Range(func(tl tile.Tile, c *cluster.Cluster[int]) bool {
		centroid, _ := c.Centroid()
		if !tl.Bounds().Contains(centroid) {
			t.Errorf("centroid %v outside tile %s", centroid, tl)
		}
		seen++
		return true
	})
	if seen != 8 {
		t.Fatalf("expected 8 clusters, got %d", seen)
	}
}

func TestGridInvalidZoom(t *testing.T) {
	if _, err := cluster.NewGrid[int](-1); !errors.Is(err, tile.ErrInvalidZoom) {
		t.Fatalf("expected ErrInvalidZoom, got %v", err)
	}
}
