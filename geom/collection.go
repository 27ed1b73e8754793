package geom

import "fmt"

// GeometryCollection owns an ordered list of child geometries. Children may
// be mutated in place through At; the collection notices through their
// revisions.
type GeometryCollection struct {
	children []Geometry
	cache    bboxCache
}

func NewGeometryCollection(children ...Geometry) (*GeometryCollection, error) {
	c := &GeometryCollection{}
	for _, g := range children {
		if err := c.Add(g); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *GeometryCollection) Kind() Kind { return KindGeometryCollection }
func (c *GeometryCollection) sealed()    {}

func (c *GeometryCollection) Len() int { return len(c.children) }

func (c *GeometryCollection) At(i int) (Geometry, error) {
	if err := checkIndex(i, len(c.children)); err != nil {
		return nil, err
	}
	return c.children[i], nil
}

// Add appends g. A collection cannot contain itself, directly or through
// nested collections.
func (c *GeometryCollection) Add(g Geometry) error {
	if g == nil {
		return fmt.Errorf("%w: nil geometry", ErrUnsupportedGeometry)
	}
	if contains(g, c) {
		return fmt.Errorf("%w: collection cannot contain itself", ErrUnsupportedGeometry)
	}
	c.children = append(c.children, g)
	c.cache.touch()
	return nil
}

func contains(g Geometry, target *GeometryCollection) bool {
	gc, ok := g.(*GeometryCollection)
	if !ok {
		return false
	}
	if gc == target {
		return true
	}
	for _, child := range gc.children {
		if contains(child, target) {
			return true
		}
	}
	return false
}

func (c *GeometryCollection) RemoveAt(i int) error {
	if err := checkIndex(i, len(c.children)); err != nil {
		return err
	}
	c.children = append(c.children[:i], c.children[i+1:]...)
	c.cache.touch()
	return nil
}

func (c *GeometryCollection) IsEmpty() bool {
	for _, g := range c.children {
		if !g.IsEmpty() {
			return false
		}
	}
	return true
}

// Bounds is UnionAll over the child boxes, so children on both sides of
// the antimeridian produce a crossing box.
func (c *GeometryCollection) Bounds() BoundingBox {
	return c.cache.get(c.revision(), func() BoundingBox {
		boxes := make([]BoundingBox, 0, len(c.children))
		for _, g := range c.children {
			if !g.IsEmpty() {
				boxes = append(boxes, g.Bounds())
			}
		}
		return UnionAll(boxes...)
	})
}

func (c *GeometryCollection) Equals(other Geometry) bool {
	o, ok := other.(*GeometryCollection)
	if !ok || len(c.children) != len(o.children) {
		return false
	}
	for i := range c.children {
		if !c.children[i].Equals(o.children[i]) {
			return false
		}
	}
	return true
}

func (c *GeometryCollection) Clone() Geometry {
	out := &GeometryCollection{children: make([]Geometry, len(c.children))}
	for i, g := range c.children {
		out.children[i] = g.Clone()
	}
	return out
}

func (c *GeometryCollection) Intersects(other Shape) bool {
	return Intersects(c, other)
}

// revision is the newest stamp in the subtree, so it changes whenever the
// collection or any descendant is mutated.
func (c *GeometryCollection) revision() uint64 {
	rev := c.cache.rev
	for _, g := range c.children {
		rev = max(rev, g.revision())
	}
	return rev
}
