package geom

import (
	"fmt"

	"github.com/paulmach/orb"
)

// ToOrb converts g into the equivalent orb geometry. Altitudes are dropped.
func ToOrb(g Geometry) orb.Geometry {
	switch g := g.(type) {
	case *Point:
		return orbPoint(g.pos)
	case *MultiPoint:
		return orb.MultiPoint(orbPath(g.coords))
	case *LineString:
		return orb.LineString(orbPath(g.coords))
	case *MultiLineString:
		out := make(orb.MultiLineString, len(g.lines))
		for i, l := range g.lines {
			out[i] = orbPath(l)
		}
		return out
	case *Polygon:
		return orbPolygon(g.rings)
	case *MultiPolygon:
		out := make(orb.MultiPolygon, len(g.polys))
		for i, p := range g.polys {
			out[i] = orbPolygon(p)
		}
		return out
	case *GeometryCollection:
		out := make(orb.Collection, len(g.children))
		for i, c := range g.children {
			out[i] = ToOrb(c)
		}
		return out
	}
	panic(fmt.Sprintf("geom: unknown geometry %T", g))
}

// ToOrb returns one orb.Bound per antimeridian part of the box.
func (b BoundingBox) ToOrb() []orb.Bound {
	parts, n := b.parts()
	out := make([]orb.Bound, n)
	for i := 0; i < n; i++ {
		out[i] = orb.Bound{
			Min: orb.Point{parts[i].XMin, parts[i].YMin},
			Max: orb.Point{parts[i].XMax, parts[i].YMax},
		}
	}
	return out
}

// FromOrb converts an orb geometry. Rings and bounds become polygons.
func FromOrb(g orb.Geometry) (Geometry, error) {
	switch g := g.(type) {
	case orb.Point:
		return NewPoint(fromOrbPoint(g)), nil
	case orb.MultiPoint:
		return NewMultiPoint(fromOrbPath(g)...), nil
	case orb.LineString:
		l, err := NewLineString(fromOrbPath(g)...)
		if err != nil {
			return nil, err
		}
		return l, nil
	case orb.MultiLineString:
		m := NewMultiLineString()
		for i, l := range g {
			if err := m.AddLineString(fromOrbPath(l)...); err != nil {
				return nil, fmt.Errorf("line string %d: %w", i, err)
			}
		}
		return m, nil
	case orb.Ring:
		return fromOrbPolygon(orb.Polygon{g})
	case orb.Polygon:
		return fromOrbPolygon(g)
	case orb.Bound:
		return fromOrbPolygon(g.ToPolygon())
	case orb.MultiPolygon:
		m := NewMultiPolygon()
		for i, p := range g {
			poly, err := fromOrbPolygon(p)
			if err != nil {
				return nil, fmt.Errorf("polygon %d: %w", i, err)
			}
			m.AddPolygon(poly.(*Polygon))
		}
		return m, nil
	case orb.Collection:
		c := &GeometryCollection{}
		for i, child := range g {
			converted, err := FromOrb(child)
			if err != nil {
				return nil, fmt.Errorf("member %d: %w", i, err)
			}
			if err := c.Add(converted); err != nil {
				return nil, err
			}
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedGeometry, g)
}

func orbPoint(p Position) orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

func orbPath(ps []Position) []orb.Point {
	out := make([]orb.Point, len(ps))
	for i, p := range ps {
		out[i] = orbPoint(p)
	}
	return out
}

func orbPolygon(rings [][]Position) orb.Polygon {
	out := make(orb.Polygon, len(rings))
	for i, r := range rings {
		out[i] = orbPath(r)
	}
	return out
}

func fromOrbPoint(p orb.Point) Position {
	return NewPosition(p.Lon(), p.Lat())
}

func fromOrbPath[P ~[]orb.Point](path P) []Position {
	out := make([]Position, len(path))
	for i, p := range path {
		out[i] = fromOrbPoint(p)
	}
	return out
}

func fromOrbPolygon(p orb.Polygon) (Geometry, error) {
	rings := make([][]Position, len(p))
	for i, r := range p {
		rings[i] = fromOrbPath(r)
	}
	poly, err := NewPolygon(rings...)
	if err != nil {
		return nil, err
	}
	return poly, nil
}
