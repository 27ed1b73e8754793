package geom

import "fmt"

// Polygon is an exterior ring followed by zero or more holes. Every ring is
// closed and has at least four positions.
type Polygon struct {
	rings [][]Position
	cache bboxCache
}

func NewPolygon(rings ...[]Position) (*Polygon, error) {
	if err := validateRings(rings); err != nil {
		return nil, err
	}
	return &Polygon{rings: cloneRings(rings)}, nil
}

func (p *Polygon) Kind() Kind { return KindPolygon }
func (p *Polygon) sealed()    {}

func (p *Polygon) NumRings() int { return len(p.rings) }

func (p *Polygon) Ring(i int) ([]Position, error) {
	if err := checkIndex(i, len(p.rings)); err != nil {
		return nil, err
	}
	return clonePositions(p.rings[i]), nil
}

func (p *Polygon) Exterior() []Position {
	return clonePositions(p.rings[0])
}

func (p *Polygon) Holes() [][]Position {
	return cloneRings(p.rings[1:])
}

func (p *Polygon) Rings() [][]Position {
	return cloneRings(p.rings)
}

// AddRing appends a hole.
func (p *Polygon) AddRing(ring []Position) error {
	if err := validateRing(ring); err != nil {
		return err
	}
	p.rings = append(p.rings, clonePositions(ring))
	p.cache.touch()
	return nil
}

func (p *Polygon) SetRing(i int, ring []Position) error {
	if err := checkIndex(i, len(p.rings)); err != nil {
		return err
	}
	if err := validateRing(ring); err != nil {
		return err
	}
	p.rings[i] = clonePositions(ring)
	p.cache.touch()
	return nil
}

// RemoveRing drops ring i. Removing the exterior promotes the first hole; the
// last ring cannot be removed.
func (p *Polygon) RemoveRing(i int) error {
	var err error
	p.rings, err = removeRing(p.rings, i)
	if err != nil {
		return err
	}
	p.cache.touch()
	return nil
}

func removeRing(rings [][]Position, i int) ([][]Position, error) {
	if err := checkIndex(i, len(rings)); err != nil {
		return rings, err
	}
	if len(rings) == 1 {
		return rings, fmt.Errorf("%w: polygon cannot lose its only ring", ErrTooFewPositions)
	}
	return append(rings[:i], rings[i+1:]...), nil
}

func (p *Polygon) IsEmpty() bool { return false }

func (p *Polygon) Bounds() BoundingBox {
	return p.cache.get(p.revision(), func() BoundingBox {
		e := newExtent()
		for _, r := range p.rings {
			e.add(r...)
		}
		return e.box()
	})
}

func (p *Polygon) Equals(other Geometry) bool {
	o, ok := other.(*Polygon)
	return ok && ringsEqual(p.rings, o.rings)
}

func (p *Polygon) Clone() Geometry {
	return &Polygon{rings: cloneRings(p.rings)}
}

func (p *Polygon) Intersects(other Shape) bool {
	return Intersects(p, other)
}

func (p *Polygon) revision() uint64 { return p.cache.rev }

type MultiPolygon struct {
	polys [][][]Position
	cache bboxCache
}

func NewMultiPolygon(polys ...*Polygon) *MultiPolygon {
	m := &MultiPolygon{polys: make([][][]Position, 0, len(polys))}
	for _, p := range polys {
		m.polys = append(m.polys, cloneRings(p.rings))
	}
	return m
}

func (m *MultiPolygon) Kind() Kind { return KindMultiPolygon }
func (m *MultiPolygon) sealed()    {}

func (m *MultiPolygon) Len() int { return len(m.polys) }

func (m *MultiPolygon) Polygon(i int) (*Polygon, error) {
	if err := checkIndex(i, len(m.polys)); err != nil {
		return nil, err
	}
	return &Polygon{rings: cloneRings(m.polys[i])}, nil
}

func (m *MultiPolygon) Coordinates() [][][]Position {
	out := make([][][]Position, len(m.polys))
	for i, p := range m.polys {
		out[i] = cloneRings(p)
	}
	return out
}

func (m *MultiPolygon) AddPolygon(p *Polygon) {
	m.polys = append(m.polys, cloneRings(p.rings))
	m.cache.touch()
}

func (m *MultiPolygon) RemovePolygon(i int) error {
	if err := checkIndex(i, len(m.polys)); err != nil {
		return err
	}
	m.polys = append(m.polys[:i], m.polys[i+1:]...)
	m.cache.touch()
	return nil
}

// AddRing appends a hole to polygon poly.
func (m *MultiPolygon) AddRing(poly int, ring []Position) error {
	if err := checkIndex(poly, len(m.polys)); err != nil {
		return err
	}
	if err := validateRing(ring); err != nil {
		return err
	}
	m.polys[poly] = append(m.polys[poly], clonePositions(ring))
	m.cache.touch()
	return nil
}

func (m *MultiPolygon) RemoveRing(poly, ring int) error {
	if err := checkIndex(poly, len(m.polys)); err != nil {
		return err
	}
	rings, err := removeRing(m.polys[poly], ring)
	if err != nil {
		return err
	}
	m.polys[poly] = rings
	m.cache.touch()
	return nil
}

func (m *MultiPolygon) IsEmpty() bool { return len(m.polys) == 0 }

func (m *MultiPolygon) Bounds() BoundingBox {
	return m.cache.get(m.revision(), func() BoundingBox {
		e := newExtent()
		for _, p := range m.polys {
			for _, r := range p {
				e.add(r...)
			}
		}
		return e.box()
	})
}

func (m *MultiPolygon) Equals(other Geometry) bool {
	o, ok := other.(*MultiPolygon)
	if !ok || len(m.polys) != len(o.polys) {
		return false
	}
	for i := range m.polys {
		if !ringsEqual(m.polys[i], o.polys[i]) {
			return false
		}
	}
	return true
}

func (m *MultiPolygon) Clone() Geometry {
	return &MultiPolygon{polys: m.Coordinates()}
}

func (m *MultiPolygon) Intersects(other Shape) bool {
	return Intersects(m, other)
}

func (m *MultiPolygon) revision() uint64 { return m.cache.rev }
