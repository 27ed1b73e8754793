// Package cluster groups positions and tracks their centroid as members
// come and go.
package cluster

import (
	"github.com/royalcat/mapcore/geom"
)

// Cluster keeps running coordinate sums so that adding and then removing a
// member restores the previous centroid. It is not safe for concurrent use.
type Cluster[ID comparable] struct {
	members map[ID]geom.Position
	sumX    float64
	sumY    float64

	bounds geom.BoundingBox
	dirty  bool
}

func New[ID comparable]() *Cluster[ID] {
	return &Cluster[ID]{members: map[ID]geom.Position{}}
}

func (c *Cluster[ID]) Len() int {
	return len(c.members)
}

// Add inserts or moves a member.
func (c *Cluster[ID]) Add(id ID, pos geom.Position) {
	if old, ok := c.members[id]; ok {
		c.sumX -= old.Longitude
		c.sumY -= old.Latitude
	}
	c.members[id] = pos
	c.sumX += pos.Longitude
	c.sumY += pos.Latitude
	c.dirty = true
}

// Remove drops a member and reports whether it was present.
func (c *Cluster[ID]) Remove(id ID) bool {
	old, ok := c.members[id]
	if !ok {
		return false
	}
	delete(c.members, id)
	c.dirty = true
	if len(c.members) == 0 {
		c.sumX, c.sumY = 0, 0
		return true
	}
	c.sumX -= old.Longitude
	c.sumY -= old.Latitude
	return true
}

func (c *Cluster[ID]) Member(id ID) (geom.Position, bool) {
	p, ok := c.members[id]
	return p, ok
}

// Centroid is the mean member position; false when the cluster is empty.
func (c *Cluster[ID]) Centroid() (geom.Position, bool) {
	n := float64(len(c.members))
	if n == 0 {
		return geom.Position{}, false
	}
	return geom.NewPosition(c.sumX/n, c.sumY/n), true
}

// Bounds is the smallest box around the members, crossing the antimeridian
// when that is narrower.
func (c *Cluster[ID]) Bounds() (geom.BoundingBox, bool) {
	if len(c.members) == 0 {
		return geom.BoundingBox{}, false
	}
	if c.dirty {
		boxes := make([]geom.BoundingBox, 0, len(c.members))
		for _, p := range c.members {
			boxes = append(boxes, geom.NewPoint(p).Bounds())
		}
		c.bounds = geom.UnionAll(boxes...)
		c.dirty = false
	}
	return c.bounds, true
}

// Range calls fn for every member until fn returns false.
func (c *Cluster[ID]) Range(fn func(ID, geom.Position) bool) {
	for id, p := range c.members {
		if !fn(id, p) {
			return
		}
	}
}
