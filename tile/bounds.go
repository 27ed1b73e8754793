package tile

import (
	"fmt"
	"math"
	"sync"

	"github.com/royalcat/mapcore/geom"
)

// Bounds is an immutable inclusive range of tile indices at one zoom level.
// Tiles are materialized on first use, row by row from MinY to MaxY. Use it
// through the pointer the constructors return.
type Bounds struct {
	minX, minY, maxX, maxY int
	zoom                   int
	origin                 Origin

	once  sync.Once
	tiles []Tile
}

func NewBounds(minX, minY, maxX, maxY, zoom int, origin Origin) (*Bounds, error) {
	if err := checkZoom(zoom); err != nil {
		return nil, err
	}
	if minX > maxX || minY > maxY {
		return nil, fmt.Errorf("%w: empty range [%d..%d]x[%d..%d]", ErrInvalidTile, minX, maxX, minY, maxY)
	}
	if n := 1 << zoom; minY < 0 || maxY >= n {
		return nil, fmt.Errorf("%w: rows [%d..%d] outside [0, %d)", ErrInvalidTile, minY, maxY, n)
	}
	return &Bounds{minX: minX, minY: minY, maxX: maxX, maxY: maxY, zoom: zoom, origin: origin}, nil
}

// ForBoundingBox returns the tiles covering b at zoom. Latitudes are clamped
// to the mercator limit and the maximum edges are exclusive, so a box ending
// on a tile boundary does not pull in the next tile. For boxes crossing the
// antimeridian the east edge is unwrapped by 360 degrees and MaxX may run
// past the last column.
func ForBoundingBox(b geom.BoundingBox, zoom int, origin Origin) (*Bounds, error) {
	if err := checkZoom(zoom); err != nil {
		return nil, err
	}
	b = b.Normalized()
	xMax := b.XMax
	if b.CrossesAntimeridian() {
		xMax += 360
	}

	z := float64(zoom)
	x0, y0 := geom.MercatorPixel(b.XMin, b.YMax, z)
	x1, y1 := geom.MercatorPixel(xMax, b.YMin, z)

	n := 1 << zoom
	minX := clamp(int(math.Floor(x0/geom.TileSize)), 0, 2*n-1)
	maxX := clamp(int(math.Ceil(x1/geom.TileSize))-1, minX, 2*n-1)
	minY := clamp(int(math.Floor(y0/geom.TileSize)), 0, n-1)
	maxY := clamp(int(math.Ceil(y1/geom.TileSize))-1, minY, n-1)

	if origin == BottomLeft {
		minY, maxY = n-1-maxY, n-1-minY
	}
	return &Bounds{minX: minX, minY: minY, maxX: maxX, maxY: maxY, zoom: zoom, origin: origin}, nil
}

func (b *Bounds) MinX() int      { return b.minX }
func (b *Bounds) MinY() int      { return b.minY }
func (b *Bounds) MaxX() int      { return b.maxX }
func (b *Bounds) MaxY() int      { return b.maxY }
func (b *Bounds) Zoom() int      { return b.zoom }
func (b *Bounds) Origin() Origin { return b.origin }

func (b *Bounds) Columns() int { return b.maxX - b.minX + 1 }
func (b *Bounds) Rows() int    { return b.maxY - b.minY + 1 }
func (b *Bounds) Len() int     { return b.Columns() * b.Rows() }

// Range calls fn for every tile in row-major order until fn returns false.
func (b *Bounds) Range(fn func(Tile) bool) {
	for y := b.minY; y <= b.maxY; y++ {
		for x := b.minX; x <= b.maxX; x++ {
			if !fn(Tile{X: x, Y: y, Z: b.zoom, Origin: b.origin}) {
				return
			}
		}
	}
}

// Tiles returns the materialized tile list. The slice is shared; callers
// must not modify it.
func (b *Bounds) Tiles() []Tile {
	b.once.Do(func() {
		b.tiles = make([]Tile, 0, b.Len())
		b.Range(func(t Tile) bool {
			b.tiles = append(b.tiles, t)
			return true
		})
	})
	return b.tiles
}

// Contains reports whether t, after wrapping, lies in the range.
func (b *Bounds) Contains(t Tile) bool {
	if t.Z != b.zoom {
		return false
	}
	t = t.WithOrigin(b.origin)
	if t.Y < b.minY || t.Y > b.maxY {
		return false
	}
	n := t.Size()
	x := t.Normalized().X
	for _, c := range []int{x, x + n} {
		if c >= b.minX && c <= b.maxX {
			return true
		}
	}
	return false
}

// Extent is the union of the tiles' geographic bounds.
func (b *Bounds) Extent() geom.BoundingBox {
	nw := Tile{X: b.minX, Y: b.minY, Z: b.zoom, Origin: b.origin}.WithOrigin(TopLeft)
	se := Tile{X: b.maxX, Y: b.maxY, Z: b.zoom, Origin: b.origin}.WithOrigin(TopLeft)
	if b.origin == BottomLeft {
		nw.Y, se.Y = se.Y, nw.Y
	}
	if b.Columns() >= nw.Size() {
		return geom.NewBoundingBox(-180, se.Bounds().YMin, 180, nw.Bounds().YMax)
	}
	return geom.NewBoundingBox(nw.Bounds().XMin, se.Bounds().YMin, se.Bounds().XMax, nw.Bounds().YMax)
}

func (b *Bounds) String() string {
	return fmt.Sprintf("z%d [%d..%d]x[%d..%d]", b.zoom, b.minX, b.maxX, b.minY, b.maxY)
}
