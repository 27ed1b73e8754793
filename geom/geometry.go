package geom

import (
	"fmt"
	"math"
	"sync/atomic"
)

type Kind uint8

const (
	KindPoint Kind = iota + 1
	KindMultiPoint
	KindLineString
	KindMultiLineString
	KindPolygon
	KindMultiPolygon
	KindGeometryCollection
	KindBoundingBox
)

var kindNames = map[Kind]string{
	KindPoint:              "Point",
	KindMultiPoint:         "MultiPoint",
	KindLineString:         "LineString",
	KindMultiLineString:    "MultiLineString",
	KindPolygon:            "Polygon",
	KindMultiPolygon:       "MultiPolygon",
	KindGeometryCollection: "GeometryCollection",
	KindBoundingBox:        "BoundingBox",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Shape is anything that takes part in intersection tests: every geometry
// variant and BoundingBox. The set is closed.
type Shape interface {
	Kind() Kind
	Bounds() BoundingBox
	sealed()
}

// Geometry is one of the seven GeoJSON geometry variants. Geometries own
// their coordinates; accessors return copies and mutators invalidate the
// cached bounding box.
type Geometry interface {
	Shape
	Equals(other Geometry) bool
	Clone() Geometry
	Intersects(other Shape) bool
	IsEmpty() bool

	revision() uint64
}

// revisions hands out stamps that grow across all geometries, so the newest
// mutation anywhere in a collection tree carries the largest stamp.
var revisions atomic.Uint64

// bboxCache holds the lazily derived bounding box of a geometry. rev is
// restamped by every mutation, at records the stamp the box was computed for.
type bboxCache struct {
	rev   uint64
	at    uint64
	valid bool
	bbox  BoundingBox
}

func (c *bboxCache) touch() {
	c.rev = revisions.Add(1)
}

func (c *bboxCache) get(rev uint64, compute func() BoundingBox) BoundingBox {
	if !c.valid || c.at != rev {
		c.bbox = compute()
		c.at = rev
		c.valid = true
	}
	return c.bbox
}

// extent accumulates the planar min/max of raw positions.
type extent struct {
	xMin, yMin, xMax, yMax float64
	empty                  bool
}

func newExtent() extent {
	return extent{
		xMin: math.Inf(1), yMin: math.Inf(1),
		xMax: math.Inf(-1), yMax: math.Inf(-1),
		empty: true,
	}
}

func (e *extent) add(ps ...Position) {
	for _, p := range ps {
		e.xMin = math.Min(e.xMin, p.Longitude)
		e.yMin = math.Min(e.yMin, p.Latitude)
		e.xMax = math.Max(e.xMax, p.Longitude)
		e.yMax = math.Max(e.yMax, p.Latitude)
		e.empty = false
	}
}

func (e extent) planar() BoundingBox {
	if e.empty {
		return BoundingBox{}
	}
	return BoundingBox{XMin: e.xMin, YMin: e.yMin, XMax: e.xMax, YMax: e.yMax}
}

// box returns the extent with its longitudes wrapped into the canonical range.
func (e extent) box() BoundingBox {
	return e.planar().Normalized()
}

func clonePositions(ps []Position) []Position {
	if ps == nil {
		return nil
	}
	out := make([]Position, len(ps))
	copy(out, ps)
	return out
}

func cloneRings(rings [][]Position) [][]Position {
	out := make([][]Position, len(rings))
	for i, r := range rings {
		out[i] = clonePositions(r)
	}
	return out
}

func positionsEqual(a, b []Position) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

func ringsEqual(a, b [][]Position) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !positionsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func validateLine(line []Position) error {
	if len(line) < 2 {
		return fmt.Errorf("%w: line string needs at least 2 positions, got %d", ErrTooFewPositions, len(line))
	}
	return nil
}

func validateRing(ring []Position) error {
	if len(ring) < 4 {
		return fmt.Errorf("%w: ring needs at least 4 positions, got %d", ErrTooFewPositions, len(ring))
	}
	if !ring[0].Equals(ring[len(ring)-1]) {
		return fmt.Errorf("%w: first %s and last %s differ", ErrRingNotClosed, ring[0], ring[len(ring)-1])
	}
	return nil
}

func validateRings(rings [][]Position) error {
	if len(rings) == 0 {
		return fmt.Errorf("%w: polygon needs an exterior ring", ErrTooFewPositions)
	}
	for i, r := range rings {
		if err := validateRing(r); err != nil {
			return fmt.Errorf("ring %d: %w", i, err)
		}
	}
	return nil
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, n)
	}
	return nil
}
