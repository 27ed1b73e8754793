package geom

import "fmt"

// LineString is an ordered sequence of at least two positions.
type LineString struct {
	coords []Position
	cache  bboxCache
}

func NewLineString(coords ...Position) (*LineString, error) {
	if err := validateLine(coords); err != nil {
		return nil, err
	}
	return &LineString{coords: clonePositions(coords)}, nil
}

func (l *LineString) Kind() Kind { return KindLineString }
func (l *LineString) sealed()    {}

func (l *LineString) Len() int { return len(l.coords) }

func (l *LineString) At(i int) (Position, error) {
	if err := checkIndex(i, len(l.coords)); err != nil {
		return Position{}, err
	}
	return l.coords[i], nil
}

func (l *LineString) Coordinates() []Position {
	return clonePositions(l.coords)
}

func (l *LineString) Append(ps ...Position) {
	l.coords = append(l.coords, ps...)
	l.cache.touch()
}

func (l *LineString) Set(i int, p Position) error {
	if err := checkIndex(i, len(l.coords)); err != nil {
		return err
	}
	l.coords[i] = p
	l.cache.touch()
	return nil
}

// Insert places p before index i; i == Len() appends.
func (l *LineString) Insert(i int, p Position) error {
	if err := checkIndex(i, len(l.coords)+1); err != nil {
		return err
	}
	l.coords = append(l.coords, Position{})
	copy(l.coords[i+1:], l.coords[i:])
	l.coords[i] = p
	l.cache.touch()
	return nil
}

// RemoveAt fails with ErrTooFewPositions when the line would drop below two
// positions.
func (l *LineString) RemoveAt(i int) error {
	if err := checkIndex(i, len(l.coords)); err != nil {
		return err
	}
	if len(l.coords) <= 2 {
		return fmt.Errorf("%w: line string cannot have fewer than 2 positions", ErrTooFewPositions)
	}
	l.coords = append(l.coords[:i], l.coords[i+1:]...)
	l.cache.touch()
	return nil
}

func (l *LineString) IsEmpty() bool { return false }

func (l *LineString) Bounds() BoundingBox {
	return l.cache.get(l.revision(), func() BoundingBox {
		e := newExtent()
		e.add(l.coords...)
		return e.box()
	})
}

func (l *LineString) Equals(other Geometry) bool {
	o, ok := other.(*LineString)
	return ok && positionsEqual(l.coords, o.coords)
}

func (l *LineString) Clone() Geometry {
	return &LineString{coords: clonePositions(l.coords)}
}

func (l *LineString) Intersects(other Shape) bool {
	return Intersects(l, other)
}

func (l *LineString) revision() uint64 { return l.cache.rev }

type MultiLineString struct {
	lines [][]Position
	cache bboxCache
}

func NewMultiLineString(lines ...*LineString) *MultiLineString {
	m := &MultiLineString{lines: make([][]Position, 0, len(lines))}
	for _, l := range lines {
		m.lines = append(m.lines, clonePositions(l.coords))
	}
	return m
}

func (m *MultiLineString) Kind() Kind { return KindMultiLineString }
func (m *MultiLineString) sealed()    {}

func (m *MultiLineString) Len() int { return len(m.lines) }

func (m *MultiLineString) LineString(i int) (*LineString, error) {
	if err := checkIndex(i, len(m.lines)); err != nil {
		return nil, err
	}
	return &LineString{coords: clonePositions(m.lines[i])}, nil
}

func (m *MultiLineString) Coordinates() [][]Position {
	return cloneRings(m.lines)
}

func (m *MultiLineString) AddLineString(coords ...Position) error {
	if err := validateLine(coords); err != nil {
		return err
	}
	m.lines = append(m.lines, clonePositions(coords))
	m.cache.touch()
	return nil
}

func (m *MultiLineString) SetLineString(i int, coords ...Position) error {
	if err := checkIndex(i, len(m.lines)); err != nil {
		return err
	}
	if err := validateLine(coords); err != nil {
		return err
	}
	m.lines[i] = clonePositions(coords)
	m.cache.touch()
	return nil
}

func (m *MultiLineString) RemoveLineString(i int) error {
	if err := checkIndex(i, len(m.lines)); err != nil {
		return err
	}
	m.lines = append(m.lines[:i], m.lines[i+1:]...)
	m.cache.touch()
	return nil
}

func (m *MultiLineString) IsEmpty() bool { return len(m.lines) == 0 }

func (m *MultiLineString) Bounds() BoundingBox {
	return m.cache.get(m.revision(), func() BoundingBox {
		e := newExtent()
		for _, l := range m.lines {
			e.add(l...)
		}
		return e.box()
	})
}

func (m *MultiLineString) Equals(other Geometry) bool {
	o, ok := other.(*MultiLineString)
	return ok && ringsEqual(m.lines, o.lines)
}

func (m *MultiLineString) Clone() Geometry {
	return &MultiLineString{lines: cloneRings(m.lines)}
}

func (m *MultiLineString) Intersects(other Shape) bool {
	return Intersects(m, other)
}

func (m *MultiLineString) revision() uint64 { return m.cache.rev }
