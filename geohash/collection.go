package geohash

import (
	"fmt"
	"math"

	"github.com/google/btree"

	"github.com/royalcat/mapcore/geom"
)

// MaxCoverPrecision is the finest precision CollectionFor picks.
const MaxCoverPrecision = 10

// Collection is a set of canonical cells covering a bounding box, ordered by
// identifier.
type Collection struct {
	bounds    geom.BoundingBox
	precision int
	cells     []*Geohash
}

func (c *Collection) Bounds() geom.BoundingBox { return c.bounds }

func (c *Collection) Precision() int { return c.precision }

func (c *Collection) Len() int { return len(c.cells) }

func (c *Collection) Geohashes() []*Geohash {
	out := make([]*Geohash, len(c.cells))
	copy(out, c.cells)
	return out
}

func (c *Collection) IDs() []string {
	out := make([]string, len(c.cells))
	for i, g := range c.cells {
		out[i] = g.id
	}
	return out
}

// Contains reports whether any cell of the collection contains pos.
func (c *Collection) Contains(pos geom.Position) bool {
	for _, g := range c.cells {
		if g.Contains(pos) {
			return true
		}
	}
	return false
}

// CoverPrecision picks the finest precision whose cells are at least as
// wide and as tall as the box. Degenerate boxes get MaxCoverPrecision.
func CoverPrecision(bbox geom.BoundingBox) int {
	if isDegenerate(bbox) {
		return MaxCoverPrecision
	}
	width, height := bbox.Width(), bbox.Height()
	for p := MaxCoverPrecision; p > 1; p-- {
		w, h := CellSize(p)
		if w >= width && h >= height {
			return p
		}
	}
	return 1
}

func isDegenerate(bbox geom.BoundingBox) bool {
	return bbox.XMin == bbox.XMax || bbox.YMin == bbox.YMax
}

// CollectionFor covers bbox with cells at CoverPrecision. A zero-width or
// zero-height box yields an empty collection at MaxCoverPrecision.
func (r *Registry) CollectionFor(bbox geom.BoundingBox) (*Collection, error) {
	return r.CollectionWithPrecision(bbox, CoverPrecision(bbox))
}

// CollectionWithPrecision covers bbox with every cell at precision that
// shares a positive area with it. Unlike BoundingBox.Intersects, which is
// closed, the cover is half-open on the maximum edges: a cell that only
// touches the east or north edge of bbox is left out. Boxes crossing the
// antimeridian are covered on both sides.
func (r *Registry) CollectionWithPrecision(bbox geom.BoundingBox, precision int) (*Collection, error) {
	if precision < 1 || precision > MaxPrecision {
		return nil, fmt.Errorf("%w: precision %d not in [1, %d]", ErrInvalidGeohash, precision, MaxPrecision)
	}
	c := &Collection{bounds: bbox, precision: precision}
	if isDegenerate(bbox) {
		return c, nil
	}

	ranges := cellRanges(bbox.Normalized(), precision)
	total := 0
	for _, cr := range ranges {
		total += cr.len()
	}
	if total > r.maxCells {
		return nil, fmt.Errorf("%w: %d cells at precision %d, limit is %d", ErrTooManyCells, total, precision, r.maxCells)
	}

	ids := btree.NewG(16, func(a, b string) bool { return a < b })
	for _, cr := range ranges {
		for y := cr.y0; y <= cr.y1; y++ {
			for x := cr.x0; x <= cr.x1; x++ {
				ids.ReplaceOrInsert(encodeIndex(x, y, precision))
			}
		}
	}

	c.cells = make([]*Geohash, 0, ids.Len())
	var err error
	ids.Ascend(func(id string) bool {
		var g *Geohash
		g, err = r.WithIdentifier(id)
		if err != nil {
			return false
		}
		c.cells = append(c.cells, g)
		return true
	})
	if err != nil {
		return nil, err
	}

	r.log.Debug("geohash collection built", "bbox", bbox.String(), "precision", precision, "cells", len(c.cells))
	return c, nil
}

type cellRange struct {
	x0, y0, x1, y1 uint64
}

func (c cellRange) len() int {
	return int((c.x1 - c.x0 + 1) * (c.y1 - c.y0 + 1))
}

// cellRanges lists the index ranges per antimeridian part. Max edges are
// half-open so cells merely touching the box are left out.
func cellRanges(bbox geom.BoundingBox, precision int) []cellRange {
	w, h := CellSize(precision)
	lb, ab := lonBits(precision), latBits(precision)
	yMin, yMax := math.Max(bbox.YMin, -90), math.Min(bbox.YMax, 90)

	var out []cellRange
	for _, part := range bbox.SplitAlongAntimeridian() {
		if part.XMin == part.XMax {
			continue
		}
		x0, x1 := span(part.XMin+180, part.XMax+180, w, lb)
		y0, y1 := span(yMin+90, yMax+90, h, ab)
		out = append(out, cellRange{x0: x0, y0: y0, x1: x1, y1: y1})
	}
	return out
}

func span(lo, hi, size float64, bits int) (uint64, uint64) {
	first := cellIndex(lo, size, bits)
	end := math.Min(math.Ceil(hi/size)-1, math.Exp2(float64(bits))-1)
	if end <= float64(first) {
		return first, first
	}
	return first, uint64(end)
}
