package cluster

import (
	"github.com/royalcat/mapcore/geom"
	"github.com/royalcat/mapcore/tile"
)

// Grid assigns members to one Cluster per tile at a fixed zoom.
type Grid[ID comparable] struct {
	zoom     int
	clusters map[tile.Tile]*Cluster[ID]
	owner    map[ID]tile.Tile
}

func NewGrid[ID comparable](zoom int) (*Grid[ID], error) {
	if _, err := tile.At(geom.Position{}, zoom, tile.TopLeft); err != nil {
		return nil, err
	}
	return &Grid[ID]{
		zoom:     zoom,
		clusters: map[tile.Tile]*Cluster[ID]{},
		owner:    map[ID]tile.Tile{},
	}, nil
}

func (g *Grid[ID]) Zoom() int { return g.zoom }

// Len is the number of non-empty clusters.
func (g *Grid[ID]) Len() int { return len(g.clusters) }

func (g *Grid[ID]) key(pos geom.Position) tile.Tile {
	t, _ := tile.At(pos, g.zoom, tile.TopLeft)
	return t
}

// Add places id in the cluster of the tile containing pos, moving it out of
// its previous cluster if needed.
func (g *Grid[ID]) Add(id ID, pos geom.Position) {
	t := g.key(pos)
	if prev, ok := g.owner[id]; ok && prev != t {
		g.removeFrom(prev, id)
	}
	c, ok := g.clusters[t]
	if !ok {
		c = New[ID]()
		g.clusters[t] = c
	}
	c.Add(id, pos)
	g.owner[id] = t
}

func (g *Grid[ID]) Remove(id ID) bool {
	t, ok := g.owner[id]
	if !ok {
		return false
	}
	g.removeFrom(t, id)
	delete(g.owner, id)
	return true
}

func (g *Grid[ID]) removeFrom(t tile.Tile, id ID) {
	c := g.clusters[t]
	c.Remove(id)
	if c.Len() == 0 {
		delete(g.clusters, t)
	}
}

// At returns the cluster for the tile containing pos.
func (g *Grid[ID]) At(pos geom.Position) (*Cluster[ID], bool) {
	c, ok := g.clusters[g.key(pos)]
	return c, ok
}

func (g *Grid[ID]) Range(fn func(tile.Tile, *Cluster[ID]) bool) {
	for t, c := range g.clusters {
		if !fn(t, c) {
			return
		}
	}
}
