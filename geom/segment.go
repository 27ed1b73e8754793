package geom

// Planar predicates on raw coordinates, longitude as x and latitude as y.

func orientation(a, b, c Position) int {
	v := (b.Longitude-a.Longitude)*(c.Latitude-a.Latitude) - (b.Latitude-a.Latitude)*(c.Longitude-a.Longitude)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// withinSpan reports whether p, known to be collinear with a and b, lies on
// segment ab.
func withinSpan(a, b, p Position) bool {
	return min(a.Longitude, b.Longitude) <= p.Longitude && p.Longitude <= max(a.Longitude, b.Longitude) &&
		min(a.Latitude, b.Latitude) <= p.Latitude && p.Latitude <= max(a.Latitude, b.Latitude)
}

func onSegment(a, b, p Position) bool {
	return orientation(a, b, p) == 0 && withinSpan(a, b, p)
}

// segmentsIntersect reports whether p1p2 and q1q2 share a point, touching
// and collinear overlap included.
func segmentsIntersect(p1, p2, q1, q2 Position) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)
	if o1 != o2 && o3 != o4 {
		return true
	}
	return (o1 == 0 && withinSpan(p1, p2, q1)) ||
		(o2 == 0 && withinSpan(p1, p2, q2)) ||
		(o3 == 0 && withinSpan(q1, q2, p1)) ||
		(o4 == 0 && withinSpan(q1, q2, p2))
}

func pointOnPath(path []Position, p Position) bool {
	for i := 1; i < len(path); i++ {
		if onSegment(path[i-1], path[i], p) {
			return true
		}
	}
	return false
}

func pathsIntersect(a, b []Position) bool {
	for i := 1; i < len(a); i++ {
		for j := 1; j < len(b); j++ {
			if segmentsIntersect(a[i-1], a[i], b[j-1], b[j]) {
				return true
			}
		}
	}
	return false
}

// ringContains is the even-odd ray casting test. Points on the ring boundary
// may land on either side.
func ringContains(ring []Position, p Position) bool {
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Latitude > p.Latitude) != (b.Latitude > p.Latitude) &&
			p.Longitude < (b.Longitude-a.Longitude)*(p.Latitude-a.Latitude)/(b.Latitude-a.Latitude)+a.Longitude {
			inside = !inside
		}
	}
	return inside
}

// polygonCovers reports whether p is inside the polygon or on any of its
// rings. Points strictly inside a hole are outside.
func polygonCovers(rings [][]Position, p Position) bool {
	for _, r := range rings {
		if pointOnPath(r, p) {
			return true
		}
	}
	if !ringContains(rings[0], p) {
		return false
	}
	for _, hole := range rings[1:] {
		if ringContains(hole, p) {
			return false
		}
	}
	return true
}

func polygonTouchesPath(rings [][]Position, path []Position) bool {
	for _, p := range path {
		if polygonCovers(rings, p) {
			return true
		}
	}
	for _, r := range rings {
		if pathsIntersect(r, path) {
			return true
		}
	}
	return false
}

func polygonsIntersect(a, b [][]Position) bool {
	for _, ra := range a {
		for _, rb := range b {
			if pathsIntersect(ra, rb) {
				return true
			}
		}
	}
	for _, p := range a[0] {
		if polygonCovers(b, p) {
			return true
		}
	}
	for _, p := range b[0] {
		if polygonCovers(a, p) {
			return true
		}
	}
	return false
}
