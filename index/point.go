package index

import (
	"math"

	"github.com/royalcat/mapcore/geom"
)

const defaultNodeSize = 64

// Item is a position carrying user data.
type Item[T any] struct {
	Position geom.Position
	Data     T
}

// PointIndex is a static KD tree over positions, built once and then
// queried concurrently without locking.
type PointIndex[T any] struct {
	nodeSize int
	items    []Item[T]
	ids      []int
	coords   []float64
}

// NewPointIndex builds the tree. A nodeSize below one selects the default
// leaf size.
func NewPointIndex[T any](items []Item[T], nodeSize int) *PointIndex[T] {
	if nodeSize < 1 {
		nodeSize = defaultNodeSize
	}
	idx := &PointIndex[T]{
		nodeSize: nodeSize,
		items:    items,
		ids:      make([]int, len(items)),
		coords:   make([]float64, 2*len(items)),
	}
	for i, it := range items {
		p := it.Position.Normalized()
		idx.ids[i] = i
		idx.coords[2*i] = p.Longitude
		idx.coords[2*i+1] = p.Latitude
	}
	idx.sortKD(0, len(items)-1, 0)
	return idx
}

func (idx *PointIndex[T]) Len() int { return len(idx.items) }

type span struct{ left, right, axis int }

// Range calls fn for each item inside b until fn returns false. Boxes
// crossing the antimeridian are searched as two halves.
func (idx *PointIndex[T]) Range(b geom.BoundingBox, fn func(Item[T]) bool) {
	for _, part := range b.Normalized().SplitAlongAntimeridian() {
		if !idx.rangeBox(part, fn) {
			return
		}
	}
}

func (idx *PointIndex[T]) rangeBox(b geom.BoundingBox, fn func(Item[T]) bool) bool {
	if len(idx.ids) == 0 {
		return true
	}
	inside := func(i int) bool {
		x, y := idx.coords[2*i], idx.coords[2*i+1]
		return x >= b.XMin && x <= b.XMax && y >= b.YMin && y <= b.YMax
	}

	stack := []span{{0, len(idx.ids) - 1, 0}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.right-s.left <= idx.nodeSize {
			for i := s.left; i <= s.right; i++ {
				if inside(i) && !fn(idx.items[idx.ids[i]]) {
					return false
				}
			}
			continue
		}

		m := (s.left + s.right) / 2
		if inside(m) && !fn(idx.items[idx.ids[m]]) {
			return false
		}

		v := idx.coords[2*m+s.axis]
		lo, hi := b.XMin, b.XMax
		if s.axis == 1 {
			lo, hi = b.YMin, b.YMax
		}
		next := 1 - s.axis
		if lo <= v {
			stack = append(stack, span{s.left, m - 1, next})
		}
		if hi >= v {
			stack = append(stack, span{m + 1, s.right, next})
		}
	}
	return true
}

// Within calls fn for each item at most radius metres from center until fn
// returns false.
func (idx *PointIndex[T]) Within(center geom.Position, radius float64, fn func(Item[T], float64) bool) {
	idx.Range(geom.RadiusBounds(center, radius), func(it Item[T]) bool {
		d := geom.Distance(center, it.Position)
		if d > radius {
			return true
		}
		return fn(it, d)
	})
}

// Nearest returns the closest item within radius metres.
func (idx *PointIndex[T]) Nearest(center geom.Position, radius float64) (Item[T], bool) {
	var best Item[T]
	bestDist := math.Inf(1)
	idx.Within(center, radius, func(it Item[T], d float64) bool {
		if d < bestDist {
			best, bestDist = it, d
		}
		return true
	})
	return best, !math.IsInf(bestDist, 1)
}

// sortKD arranges ids so that every node's median splits its range on the
// alternating axis.
func (idx *PointIndex[T]) sortKD(left, right, depth int) {
	if right-left <= idx.nodeSize {
		return
	}
	m := (left + right) / 2
	idx.selectK(m, left, right, depth%2)
	idx.sortKD(left, m-1, depth+1)
	idx.sortKD(m+1, right, depth+1)
}

// selectK is Floyd-Rivest selection on one axis.
func (idx *PointIndex[T]) selectK(k, left, right, axis int) {
	for right > left {
		if right-left > 600 {
			n := float64(right - left + 1)
			m := float64(k - left + 1)
			z := math.Log(n)
			s := 0.5 * math.Exp(2*z/3)
			sd := 0.5 * math.Sqrt(z*s*(n-s)/n)
			if m-n/2 < 0 {
				sd = -sd
			}
			newLeft := max(left, int(math.Floor(float64(k)-m*s/n+sd)))
			newRight := min(right, int(math.Floor(float64(k)+(n-m)*s/n+sd)))
			idx.selectK(k, newLeft, newRight, axis)
		}

		t := idx.coords[2*k+axis]
		i, j := left, right

		idx.swap(left, k)
		if idx.coords[2*right+axis] > t {
			idx.swap(left, right)
		}

		for i < j {
			idx.swap(i, j)
			i++
			j--
			for idx.coords[2*i+axis] < t {
				i++
			}
			for idx.coords[2*j+axis] > t {
				j--
			}
		}

		if idx.coords[2*left+axis] == t {
			idx.swap(left, j)
		} else {
			j++
			idx.swap(j, right)
		}

		if j <= k {
			left = j + 1
		}
		if k <= j {
			right = j - 1
		}
	}
}

func (idx *PointIndex[T]) swap(i, j int) {
	idx.ids[i], idx.ids[j] = idx.ids[j], idx.ids[i]
	idx.coords[2*i], idx.coords[2*j] = idx.coords[2*j], idx.coords[2*i]
	idx.coords[2*i+1], idx.coords[2*j+1] = idx.coords[2*j+1], idx.coords[2*i+1]
}
