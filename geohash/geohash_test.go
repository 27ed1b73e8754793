package geohash_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/royalcat/mapcore/geohash"
	"github.com/royalcat/mapcore/geom"
)

func TestEncode(t *testing.T) {
	cases := []struct {
		pos       geom.Position
		precision int
		expect    string
	}{
		{geom.NewPosition(10.40744, 57.64911), 11, "u4pruydqqvj"},
		{geom.NewPosition(-5.6, 42.6), 5, "ezs42"},
		{geom.NewPosition(0, 0), 1, "s"},
		{geom.NewPosition(-0.1, -0.1), 1, "7"},
		{geom.NewPosition(180, 90), 2, "zz"},
		{geom.NewPosition(-180, -90), 2, "00"},
	}
	for _, c := range cases {
		got, err := geohash.Encode(c.pos, c.precision)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != c.expect {
			t.Errorf("Encode(%v, %d) = %q, expected %q", c.pos, c.precision, got, c.expect)
		}
	}

	if _, err := geohash.Encode(geom.NewPosition(0, 0), 13); !errors.Is(err, geohash.ErrInvalidGeohash) {
		t.Fatalf("expected ErrInvalidGeohash, got %v", err)
	}
	if _, err := geohash.Encode(geom.NewPosition(0, 91), 5); !errors.Is(err, geom.ErrInvalidCoordinates) {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestDecode(t *testing.T) {
	b, err := geohash.Decode("ezs42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.InDelta(t, -5.625, b.XMin, 1e-9)
	assert.InDelta(t, -5.5810546875, b.XMax, 1e-9)
	assert.InDelta(t, 42.5830078125, b.YMin, 1e-9)
	assert.InDelta(t, 42.626953125, b.YMax, 1e-9)

	upper, err := geohash.Decode("EZS42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upper != b {
		t.Fatalf("decoding must be case-insensitive, got %v and %v", upper, b)
	}

	for _, bad := range []string{"", "a", "ezs4i", "0123456789bcd"} {
		if _, err := geohash.Decode(bad); !errors.Is(err, geohash.ErrInvalidGeohash) {
			t.Errorf("Decode(%q): expected ErrInvalidGeohash, got %v", bad, err)
		}
	}
}

func TestEncodeDecodeAgree(t *testing.T) {
	positions := []geom.Position{
		geom.NewPosition(13.4, 52.5),
		geom.NewPosition(-122.4194, 37.7749),
		geom.NewPosition(151.2093, -33.8688),
		geom.NewPosition(179.999, -89.999),
	}
	for _, p := range positions {
		for precision := 1; precision <= geohash.MaxPrecision; precision++ {
			id, err := geohash.Encode(p, precision)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			b, err := geohash.Decode(id)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !b.Contains(p) {
				t.Fatalf("cell %s %v does not contain %v", id, b, p)
			}
			w, h := geohash.CellSize(precision)
			assert.InDelta(t, w, b.Width(), 1e-9)
			assert.InDelta(t, h, b.Height(), 1e-9)
		}
	}
}

func TestNeighbors(t *testing.T) {
	r := newRegistry(t)
	g, err := r.WithIdentifier("ezs42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expect := map[geohash.Direction]string{
		geohash.North: "ezs48",
		geohash.East:  "ezs43",
		geohash.South: "ezefr",
		geohash.West:  "ezefp",
	}
	for d, id := range expect {
		got, ok := g.Neighbor(d)
		if !ok || got != id {
			t.Errorf("neighbor %d = %q, expected %q", d, got, id)
		}
	}
	if n := g.Neighbors(); len(n) != 8 {
		t.Fatalf("expected 8 neighbours, got %v", n)
	}

	east, err := r.WithIdentifier("z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := east.Neighbor(geohash.North); ok {
		t.Fatalf("expected no cell beyond the north pole")
	}
	if id, ok := east.Neighbor(geohash.East); !ok || id != "b" {
		t.Fatalf("expected eastern neighbour to wrap to b, got %q", id)
	}

	cells, err := r.Neighbors(east)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 5 {
		t.Fatalf("expected 5 neighbours at the pole, got %d", len(cells))
	}
}
