package geom

import (
	"fmt"
	"math"
)

// rule decides intersection for one ordered pair of kinds. Both shapes are
// non empty and their bounding boxes already overlap.
type rule func(a, b Shape) bool

var rules = map[[2]Kind]rule{}

// register installs fn for (a, b) and its mirror for (b, a).
func register(a, b Kind, fn rule) {
	rules[[2]Kind{a, b}] = fn
	if a != b {
		rules[[2]Kind{b, a}] = func(x, y Shape) bool { return fn(y, x) }
	}
}

var (
	puntal    = []Kind{KindPoint, KindMultiPoint}
	lineal    = []Kind{KindLineString, KindMultiLineString}
	polygonal = []Kind{KindPolygon, KindMultiPolygon, KindBoundingBox}
	allKinds  = []Kind{
		KindPoint, KindMultiPoint, KindLineString, KindMultiLineString,
		KindPolygon, KindMultiPolygon, KindGeometryCollection, KindBoundingBox,
	}
)

func init() {
	for _, a := range puntal {
		for _, b := range puntal {
			register(a, b, pointsWithPoints)
		}
		for _, b := range lineal {
			register(a, b, pointsWithLines)
		}
		for _, b := range polygonal {
			register(a, b, pointsWithPolygons)
		}
	}
	for _, a := range lineal {
		for _, b := range lineal {
			register(a, b, linesWithLines)
		}
		for _, b := range polygonal {
			register(a, b, linesWithPolygons)
		}
	}
	for _, a := range polygonal {
		for _, b := range polygonal {
			register(a, b, polygonsWithPolygons)
		}
	}
	for _, b := range allKinds {
		register(KindGeometryCollection, b, collectionWithAny)
	}

	for _, a := range allKinds {
		for _, b := range allKinds {
			if _, ok := rules[[2]Kind{a, b}]; !ok {
				panic(fmt.Sprintf("geom: no intersection rule for %s and %s", a, b))
			}
		}
	}
}

// Intersects reports whether two shapes share at least one point. Empty
// geometries intersect nothing. The bounding boxes are compared first. The
// exact test then runs on the stored coordinates, with b shifted by whole
// turns into the longitude frame of a, so data written with unwrapped
// longitudes such as 170..190 agrees with its wrapped bounds.
func Intersects(a, b Shape) bool {
	if isEmpty(a) || isEmpty(b) {
		return false
	}
	if !boxesIntersect(a.Bounds(), b.Bounds()) {
		return false
	}
	fn, ok := rules[[2]Kind{a.Kind(), b.Kind()}]
	if !ok {
		panic(fmt.Sprintf("geom: no intersection rule for %s and %s", a.Kind(), b.Kind()))
	}
	if a.Kind() == KindGeometryCollection || b.Kind() == KindGeometryCollection {
		// children are framed one by one
		return fn(a, b)
	}

	a, aLo, aHi := frame(a)
	b, bLo, bHi := frame(b)
	for turn := math.Ceil((aLo - bHi) / 360); turn*360 <= aHi-bLo; turn++ {
		if fn(a, shift(b, turn*360)) {
			return true
		}
	}
	return false
}

// frame returns s with the raw longitude interval its coordinates span.
// Crossing boxes are unwrapped past 180 into a single rectangle.
func frame(s Shape) (Shape, float64, float64) {
	if b, ok := s.(BoundingBox); ok {
		if b.CrossesAntimeridian() {
			b.XMax += 360
		}
		return b, b.XMin, b.XMax
	}
	e := newExtent()
	switch g := s.(type) {
	case *Point:
		e.add(g.pos)
	case *MultiPoint:
		e.add(g.coords...)
	case *LineString:
		e.add(g.coords...)
	case *MultiLineString:
		for _, l := range g.lines {
			e.add(l...)
		}
	case *Polygon:
		e.add(g.rings[0]...)
	case *MultiPolygon:
		for _, p := range g.polys {
			e.add(p[0]...)
		}
	}
	return s, e.xMin, e.xMax
}

// shift translates the coordinates of a framed shape by dx degrees of
// longitude. The result is only fit for the intersection rules.
func shift(s Shape, dx float64) Shape {
	if dx == 0 {
		return s
	}
	switch g := s.(type) {
	case BoundingBox:
		g.XMin += dx
		g.XMax += dx
		return g
	case *Point:
		return &Point{pos: shiftPosition(g.pos, dx)}
	case *MultiPoint:
		return &MultiPoint{coords: shiftPositions(g.coords, dx)}
	case *LineString:
		return &LineString{coords: shiftPositions(g.coords, dx)}
	case *MultiLineString:
		return &MultiLineString{lines: shiftRings(g.lines, dx)}
	case *Polygon:
		return &Polygon{rings: shiftRings(g.rings, dx)}
	case *MultiPolygon:
		polys := make([][][]Position, len(g.polys))
		for i, p := range g.polys {
			polys[i] = shiftRings(p, dx)
		}
		return &MultiPolygon{polys: polys}
	}
	panic(fmt.Sprintf("geom: cannot shift %s", s.Kind()))
}

func shiftPosition(p Position, dx float64) Position {
	p.Longitude += dx
	return p
}

func shiftPositions(ps []Position, dx float64) []Position {
	out := make([]Position, len(ps))
	for i, p := range ps {
		out[i] = shiftPosition(p, dx)
	}
	return out
}

func shiftRings(rings [][]Position, dx float64) [][]Position {
	out := make([][]Position, len(rings))
	for i, r := range rings {
		out[i] = shiftPositions(r, dx)
	}
	return out
}

func isEmpty(s Shape) bool {
	g, ok := s.(Geometry)
	return ok && g.IsEmpty()
}

func pointsOf(s Shape) []Position {
	switch g := s.(type) {
	case *Point:
		return []Position{g.pos}
	case *MultiPoint:
		return g.coords
	}
	panic(fmt.Sprintf("geom: %s has no points", s.Kind()))
}

func linesOf(s Shape) [][]Position {
	switch g := s.(type) {
	case *LineString:
		return [][]Position{g.coords}
	case *MultiLineString:
		return g.lines
	}
	panic(fmt.Sprintf("geom: %s has no lines", s.Kind()))
}

func polygonsOf(s Shape) [][][]Position {
	switch g := s.(type) {
	case *Polygon:
		return [][][]Position{g.rings}
	case *MultiPolygon:
		return g.polys
	case BoundingBox:
		parts, n := g.parts()
		out := make([][][]Position, n)
		for i := 0; i < n; i++ {
			out[i] = [][]Position{rectangle(parts[i])}
		}
		return out
	}
	panic(fmt.Sprintf("geom: %s has no polygons", s.Kind()))
}

func rectangle(b BoundingBox) []Position {
	return []Position{
		NewPosition(b.XMin, b.YMin),
		NewPosition(b.XMax, b.YMin),
		NewPosition(b.XMax, b.YMax),
		NewPosition(b.XMin, b.YMax),
		NewPosition(b.XMin, b.YMin),
	}
}

func pointsWithPoints(a, b Shape) bool {
	for _, p := range pointsOf(a) {
		for _, q := range pointsOf(b) {
			if p.equals2D(q) {
				return true
			}
		}
	}
	return false
}

func pointsWithLines(a, b Shape) bool {
	for _, p := range pointsOf(a) {
		for _, l := range linesOf(b) {
			if pointOnPath(l, p) {
				return true
			}
		}
	}
	return false
}

func pointsWithPolygons(a, b Shape) bool {
	for _, p := range pointsOf(a) {
		for _, poly := range polygonsOf(b) {
			if polygonCovers(poly, p) {
				return true
			}
		}
	}
	return false
}

func linesWithLines(a, b Shape) bool {
	for _, l := range linesOf(a) {
		for _, m := range linesOf(b) {
			if pathsIntersect(l, m) {
				return true
			}
		}
	}
	return false
}

func linesWithPolygons(a, b Shape) bool {
	for _, l := range linesOf(a) {
		for _, poly := range polygonsOf(b) {
			if polygonTouchesPath(poly, l) {
				return true
			}
		}
	}
	return false
}

func polygonsWithPolygons(a, b Shape) bool {
	for _, p := range polygonsOf(a) {
		for _, q := range polygonsOf(b) {
			if polygonsIntersect(p, q) {
				return true
			}
		}
	}
	return false
}

func collectionWithAny(a, b Shape) bool {
	for _, child := range a.(*GeometryCollection).children {
		if Intersects(child, b) {
			return true
		}
	}
	return false
}
