package geom_test

import (
	"errors"
	"testing"

	"github.com/royalcat/mapcore/geom"
)

func TestPositionFromArray(t *testing.T) {
	p, err := geom.PositionFromArray([]float64{10, 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.HasAltitude || p.Longitude != 10 || p.Latitude != 20 {
		t.Fatalf("unexpected position %v", p)
	}

	p, err = geom.PositionFromArray([]float64{10, 20, 30})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.HasAltitude || p.Altitude != 30 {
		t.Fatalf("expected altitude 30, got %v", p)
	}

	for _, arr := range [][]float64{nil, {1}, {1, 2, 3, 4}} {
		if _, err := geom.PositionFromArray(arr); !errors.Is(err, geom.ErrInvalidCoordinates) {
			t.Errorf("array %v: expected ErrInvalidCoordinates, got %v", arr, err)
		}
	}
}

func TestPositionEquals(t *testing.T) {
	a := geom.NewPosition(1, 2)
	if !a.Equals(geom.NewPosition(1, 2)) {
		t.Fatalf("expected equal positions")
	}
	if a.Equals(geom.NewPositionWithAltitude(1, 2, 0)) {
		t.Fatalf("position with altitude must differ from one without")
	}
	if geom.NewPositionWithAltitude(1, 2, 3).Equals(geom.NewPositionWithAltitude(1, 2, 4)) {
		t.Fatalf("altitudes differ")
	}
	if a.Equals(geom.NewPosition(361, 2)) {
		t.Fatalf("equality must not normalize longitude")
	}
}

func TestNormalizeLongitude(t *testing.T) {
	cases := []struct {
		in, out float64
	}{
		{0, 0},
		{180, 180},
		{-180, -180},
		{190, -170},
		{-190, 170},
		{360, 0},
		{-360, 0},
		{725, 5},
	}
	for _, c := range cases {
		if got := geom.NormalizeLongitude(c.in); got != c.out {
			t.Errorf("NormalizeLongitude(%v) = %v, expected %v", c.in, got, c.out)
		}
	}

	p := geom.NewPositionWithAltitude(190, 5, 7).Normalized()
	if p.Longitude != -170 || p.Latitude != 5 || p.Altitude != 7 {
		t.Fatalf("unexpected normalized position %v", p)
	}
}

func TestPositionToArray(t *testing.T) {
	if got := geom.NewPosition(1, 2).ToArray(); len(got) != 2 {
		t.Fatalf("expected 2 values, got %v", got)
	}
	if got := geom.NewPositionWithAltitude(1, 2, 3).ToArray(); len(got) != 3 || got[2] != 3 {
		t.Fatalf("expected 3 values, got %v", got)
	}
}
