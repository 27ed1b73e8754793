package geom_test

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"

	"github.com/royalcat/mapcore/geom"
)

func TestOrbConversion(t *testing.T) {
	geoms := []geom.Geometry{
		geom.NewPoint(pos(1, 2)),
		geom.NewMultiPoint(pos(1, 2), pos(3, 4)),
		mustLine(t, pos(0, 0), pos(1, 1)),
		geom.NewMultiLineString(mustLine(t, pos(0, 0), pos(1, 1))),
		mustPolygon(t, square(0, 0, 1, 1), square(0.2, 0.2, 0.4, 0.4)),
		geom.NewMultiPolygon(mustPolygon(t, square(0, 0, 1, 1))),
		mustCollection(t, geom.NewPoint(pos(1, 2)), mustLine(t, pos(0, 0), pos(1, 1))),
	}
	for _, g := range geoms {
		back, err := geom.FromOrb(geom.ToOrb(g))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", g.Kind(), err)
		}
		if !g.Equals(back) {
			t.Errorf("%s: conversion changed the geometry", g.Kind())
		}
	}

	b := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 3}}
	g, err := geom.FromOrb(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Bounds() != geom.NewBoundingBox(0, 0, 2, 3) {
		t.Fatalf("unexpected bounds %v", g.Bounds())
	}

	if _, err := geom.FromOrb(orb.LineString{{0, 0}}); !errors.Is(err, geom.ErrTooFewPositions) {
		t.Fatalf("expected ErrTooFewPositions, got %v", err)
	}
}

func TestBoundingBoxToOrb(t *testing.T) {
	bounds := geom.NewBoundingBox(170, -10, -170, 10).ToOrb()
	if len(bounds) != 2 {
		t.Fatalf("expected 2 bounds, got %d", len(bounds))
	}
	if !bounds[0].Contains(orb.Point{175, 0}) || !bounds[1].Contains(orb.Point{-175, 0}) {
		t.Fatalf("unexpected bounds %v", bounds)
	}
}
