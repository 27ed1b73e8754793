// Package index holds spatial indexes over geometries and positions.
package index

import (
	"sync"

	"github.com/tidwall/qtree"

	"github.com/royalcat/mapcore/geom"
)

// ShapeIndex finds stored geometries by intersection. Entries whose bounds
// cross the antimeridian are stored once per half. It is safe for
// concurrent use; stored geometries must not be mutated afterwards.
type ShapeIndex[Data any] struct {
	mu      sync.RWMutex
	entries []entry[Data]
	qt      qtree.QTree
}

type entry[D any] struct {
	Data  D
	Shape geom.Shape
}

func NewShapeIndex[Data any]() *ShapeIndex[Data] {
	return &ShapeIndex[Data]{}
}

func corners(b geom.BoundingBox) (lo, hi [2]float64) {
	return [2]float64{b.XMin, b.YMin}, [2]float64{b.XMax, b.YMax}
}

// Insert stores shape under data. Empty geometries are ignored.
func (si *ShapeIndex[Data]) Insert(data Data, shape geom.Shape) {
	if g, ok := shape.(geom.Geometry); ok && g.IsEmpty() {
		return
	}
	if g, ok := shape.(geom.Geometry); ok {
		shape = g.Clone()
	}
	parts := shape.Bounds().Normalized().SplitAlongAntimeridian()

	si.mu.Lock()
	defer si.mu.Unlock()

	id := len(si.entries)
	si.entries = append(si.entries, entry[Data]{Data: data, Shape: shape})
	for _, part := range parts {
		lo, hi := corners(part)
		si.qt.Insert(lo, hi, id)
	}
}

func (si *ShapeIndex[Data]) Len() int {
	si.mu.RLock()
	defer si.mu.RUnlock()
	return len(si.entries)
}

// Search calls fn with every stored entry intersecting shape until fn
// returns false. Each entry is reported once.
func (si *ShapeIndex[Data]) Search(shape geom.Shape, fn func(Data, geom.Shape) bool) {
	if g, ok := shape.(geom.Geometry); ok && g.IsEmpty() {
		return
	}

	si.mu.RLock()
	defer si.mu.RUnlock()

	seen := map[int]struct{}{}
	for _, part := range shape.Bounds().Normalized().SplitAlongAntimeridian() {
		lo, hi := corners(part)
		stopped := false
		si.qt.Search(lo, hi, func(_, _ [2]float64, data interface{}) bool {
			id := data.(int)
			if _, ok := seen[id]; ok {
				return true
			}
			seen[id] = struct{}{}

			e := si.entries[id]
			if geom.Intersects(e.Shape, shape) && !fn(e.Data, e.Shape) {
				stopped = true
				return false
			}
			return true
		})
		if stopped {
			return
		}
	}
}

// QueryPoint returns the first entry containing pos.
func (si *ShapeIndex[Data]) QueryPoint(pos geom.Position) (Data, bool) {
	var out Data
	found := false
	si.Search(geom.NewPoint(pos.Normalized()), func(d Data, _ geom.Shape) bool {
		out, found = d, true
		return false
	})
	return out, found
}
