package geom

type Point struct {
	pos   Position
	cache bboxCache
}

func NewPoint(pos Position) *Point {
	return &Point{pos: pos}
}

func (p *Point) Kind() Kind { return KindPoint }
func (p *Point) sealed()    {}

func (p *Point) Position() Position {
	return p.pos
}

func (p *Point) SetPosition(pos Position) {
	p.pos = pos
	p.cache.touch()
}

func (p *Point) IsEmpty() bool { return false }

func (p *Point) Bounds() BoundingBox {
	return p.cache.get(p.revision(), func() BoundingBox {
		e := newExtent()
		e.add(p.pos)
		return e.box()
	})
}

func (p *Point) Equals(other Geometry) bool {
	o, ok := other.(*Point)
	return ok && p.pos.Equals(o.pos)
}

func (p *Point) Clone() Geometry {
	return NewPoint(p.pos)
}

func (p *Point) Intersects(other Shape) bool {
	return Intersects(p, other)
}

func (p *Point) revision() uint64 { return p.cache.rev }

// MultiPoint is a possibly empty set of positions.
type MultiPoint struct {
	coords []Position
	cache  bboxCache
}

func NewMultiPoint(coords ...Position) *MultiPoint {
	return &MultiPoint{coords: clonePositions(coords)}
}

func (m *MultiPoint) Kind() Kind { return KindMultiPoint }
func (m *MultiPoint) sealed()    {}

func (m *MultiPoint) Len() int { return len(m.coords) }

func (m *MultiPoint) At(i int) (Position, error) {
	if err := checkIndex(i, len(m.coords)); err != nil {
		return Position{}, err
	}
	return m.coords[i], nil
}

func (m *MultiPoint) Coordinates() []Position {
	return clonePositions(m.coords)
}

func (m *MultiPoint) Append(ps ...Position) {
	m.coords = append(m.coords, ps...)
	m.cache.touch()
}

func (m *MultiPoint) Set(i int, p Position) error {
	if err := checkIndex(i, len(m.coords)); err != nil {
		return err
	}
	m.coords[i] = p
	m.cache.touch()
	return nil
}

func (m *MultiPoint) RemoveAt(i int) error {
	if err := checkIndex(i, len(m.coords)); err != nil {
		return err
	}
	m.coords = append(m.coords[:i], m.coords[i+1:]...)
	m.cache.touch()
	return nil
}

func (m *MultiPoint) IsEmpty() bool { return len(m.coords) == 0 }

func (m *MultiPoint) Bounds() BoundingBox {
	return m.cache.get(m.revision(), func() BoundingBox {
		e := newExtent()
		e.add(m.coords...)
		return e.box()
	})
}

func (m *MultiPoint) Equals(other Geometry) bool {
	o, ok := other.(*MultiPoint)
	return ok && positionsEqual(m.coords, o.coords)
}

func (m *MultiPoint) Clone() Geometry {
	return NewMultiPoint(m.coords...)
}

func (m *MultiPoint) Intersects(other Shape) bool {
	return Intersects(m, other)
}

func (m *MultiPoint) revision() uint64 { return m.cache.rev }
