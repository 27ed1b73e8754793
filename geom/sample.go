package geom

import (
	"github.com/fogleman/poissondisc"
)

// SamplePolygon fills the polygon with evenly spread positions at least
// distance degrees apart, using poisson disc sampling over the exterior's
// extent. Positions in holes are discarded.
func SamplePolygon(p *Polygon, distance float64) []Position {
	e := newExtent()
	e.add(p.rings[0]...)

	var out []Position
	for _, s := range poissondisc.Sample(e.xMin, e.yMin, e.xMax, e.yMax, distance, 10, nil) {
		pos := NewPosition(s.X, s.Y)
		if polygonCovers(p.rings, pos) {
			out = append(out, pos)
		}
	}
	return out
}
