package geom

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// BoundingBox is an axis aligned box in degrees. XMin > XMax means the box
// crosses the antimeridian and spans [XMin, 180] plus [-180, XMax].
type BoundingBox struct {
	XMin, YMin, XMax, YMax float64
}

// NewBoundingBox stores the edges as given, without validation.
func NewBoundingBox(xMin, yMin, xMax, yMax float64) BoundingBox {
	return BoundingBox{XMin: xMin, YMin: yMin, XMax: xMax, YMax: yMax}
}

// BoundingBoxFromArray reads a GeoJSON [xMin, yMin, xMax, yMax] array.
func BoundingBoxFromArray(box []float64) (BoundingBox, error) {
	if len(box) != 4 {
		return BoundingBox{}, fmt.Errorf("%w: bounding box needs 4 values, got %d", ErrInvalidCoordinates, len(box))
	}
	if box[1] > box[3] {
		return BoundingBox{}, fmt.Errorf("%w: yMin %g is greater than yMax %g", ErrInvalidCoordinates, box[1], box[3])
	}
	return NewBoundingBox(box[0], box[1], box[2], box[3]), nil
}

func (b BoundingBox) Box() [4]float64 {
	return [4]float64{b.XMin, b.YMin, b.XMax, b.YMax}
}

func (b BoundingBox) Kind() Kind          { return KindBoundingBox }
func (b BoundingBox) Bounds() BoundingBox { return b }
func (b BoundingBox) sealed()             {}

func (b BoundingBox) CrossesAntimeridian() bool {
	return b.XMin > b.XMax
}

func (b BoundingBox) Width() float64 {
	if b.CrossesAntimeridian() {
		return b.XMax - b.XMin + 360
	}
	return b.XMax - b.XMin
}

func (b BoundingBox) Height() float64 {
	return b.YMax - b.YMin
}

func (b BoundingBox) Center() Position {
	x := b.XMin + b.Width()/2
	if b.CrossesAntimeridian() {
		x = NormalizeLongitude(x)
	}
	return NewPosition(x, b.YMin+b.Height()/2)
}

// Contains reports whether p lies inside the box, edges included.
func (b BoundingBox) Contains(p Position) bool {
	if p.Latitude < b.YMin || p.Latitude > b.YMax {
		return false
	}
	if b.CrossesAntimeridian() {
		return p.Longitude >= b.XMin || p.Longitude <= b.XMax
	}
	return p.Longitude >= b.XMin && p.Longitude <= b.XMax
}

func (b BoundingBox) Equals(o BoundingBox) bool {
	return b == o
}

// Intersects tests the box against any shape. Two boxes intersect when they
// share at least one point, so touching edges count.
func (b BoundingBox) Intersects(other Shape) bool {
	if o, ok := other.(BoundingBox); ok {
		return boxesIntersect(b, o)
	}
	return Intersects(b, other)
}

// SplitAlongAntimeridian returns the non crossing parts of the box: the box
// itself, or its eastern and western halves.
func (b BoundingBox) SplitAlongAntimeridian() []BoundingBox {
	parts, n := b.parts()
	return parts[:n:n]
}

func (b BoundingBox) parts() ([2]BoundingBox, int) {
	if !b.CrossesAntimeridian() {
		return [2]BoundingBox{b}, 1
	}
	return [2]BoundingBox{
		{XMin: b.XMin, YMin: b.YMin, XMax: 180, YMax: b.YMax},
		{XMin: -180, YMin: b.YMin, XMax: b.XMax, YMax: b.YMax},
	}, 2
}

func boxesIntersect(a, b BoundingBox) bool {
	if a.YMin > b.YMax || b.YMin > a.YMax {
		return false
	}
	pa, na := a.parts()
	pb, nb := b.parts()
	for i := 0; i < na; i++ {
		for j := 0; j < nb; j++ {
			if pa[i].XMin <= pb[j].XMax && pb[j].XMin <= pa[i].XMax {
				return true
			}
		}
	}
	return false
}

// Union returns the smallest box covering both inputs, see UnionAll. Two non
// crossing overlapping boxes reduce to a componentwise min/max.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if !b.CrossesAntimeridian() && !o.CrossesAntimeridian() && b.XMin <= o.XMax && o.XMin <= b.XMax {
		return BoundingBox{
			XMin: math.Min(b.XMin, o.XMin), YMin: math.Min(b.YMin, o.YMin),
			XMax: math.Max(b.XMax, o.XMax), YMax: math.Max(b.YMax, o.YMax),
		}
	}
	return UnionAll(b, o)
}

// UnionAll returns the smallest box covering every input, whatever their
// order. Longitudes are treated as arcs on the circle: the arcs are merged
// and the largest uncovered gap is left out, so the result may cross the
// antimeridian. It becomes [-180, 180] once the arcs cover a full turn. On
// a tie the non crossing result wins. UnionAll of nothing is the zero box.
func UnionAll(boxes ...BoundingBox) BoundingBox {
	if len(boxes) == 0 {
		return BoundingBox{}
	}
	out := BoundingBox{YMin: math.Inf(1), YMax: math.Inf(-1)}
	arcs := make([][2]float64, 0, len(boxes)+1)
	full := false
	for _, b := range boxes {
		out.YMin = math.Min(out.YMin, b.YMin)
		out.YMax = math.Max(out.YMax, b.YMax)
		b = b.Normalized()
		if b.Width() >= 360 {
			full = true
			continue
		}
		parts, n := b.parts()
		for _, p := range parts[:n] {
			arcs = append(arcs, [2]float64{p.XMin, p.XMax})
		}
	}
	if full {
		out.XMin, out.XMax = -180, 180
		return out
	}

	slices.SortFunc(arcs, func(a, b [2]float64) int { return cmp.Compare(a[0], b[0]) })
	merged := [][2]float64{arcs[0]}
	for _, a := range arcs[1:] {
		last := &merged[len(merged)-1]
		if a[0] <= last[1] {
			last[1] = math.Max(last[1], a[1])
			continue
		}
		merged = append(merged, a)
	}

	last := len(merged) - 1
	out.XMin, out.XMax = merged[0][0], merged[last][1]
	gap := merged[0][0] + 360 - merged[last][1]
	for i := 0; i < last; i++ {
		if g := merged[i+1][0] - merged[i][1]; g > gap {
			gap = g
			out.XMin, out.XMax = merged[i+1][0], merged[i][1]
		}
	}
	return out
}

// Normalized maps the box onto canonical longitudes. A box wider than a full
// turn becomes [-180, 180], out of range edges wrap and may produce a
// crossing box.
func (b BoundingBox) Normalized() BoundingBox {
	if b.XMin >= -180 && b.XMax <= 180 {
		return b
	}
	if !b.CrossesAntimeridian() && b.XMax-b.XMin >= 360 {
		b.XMin, b.XMax = -180, 180
		return b
	}
	xMin, xMax := NormalizeLongitude(b.XMin), NormalizeLongitude(b.XMax)
	if xMax == -180 && b.XMax > b.XMin {
		xMax = 180
	}
	if xMin == 180 && xMax > -180 && b.XMax > b.XMin {
		xMin = -180
	}
	b.XMin, b.XMax = xMin, xMax
	return b
}

// Rect is a box in web mercator pixel space, origin at the top left.
type Rect struct {
	X, Y, Width, Height float64
}

// ToRect projects the box into pixel space at the given zoom, where the world
// is TileSize * 2^zoom pixels wide. Crossing boxes extend past the right edge
// of the world.
func (b BoundingBox) ToRect(zoom float64) Rect {
	x0, y0 := MercatorPixel(b.XMin, b.YMax, zoom)
	x1, y1 := MercatorPixel(b.XMax, b.YMin, zoom)
	w := x1 - x0
	if b.CrossesAntimeridian() {
		w += WorldSize(zoom)
	}
	return Rect{X: x0, Y: y0, Width: w, Height: y1 - y0}
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%g, %g, %g, %g]", b.XMin, b.YMin, b.XMax, b.YMax)
}
