// Package tile addresses the web mercator tile pyramid.
package tile

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/royalcat/mapcore/geom"
)

// MaxZoom is the deepest supported level; columns still fit in an int.
const MaxZoom = 30

var (
	ErrInvalidZoom = errors.New("invalid zoom")
	ErrInvalidTile = errors.New("invalid tile")
)

// Origin selects where row zero of the grid is.
type Origin int

const (
	// TopLeft is the XYZ scheme, row 0 at the north edge.
	TopLeft Origin = iota
	// BottomLeft is the TMS scheme, row 0 at the south edge.
	BottomLeft
)

func (o Origin) String() string {
	switch o {
	case TopLeft:
		return "top-left"
	case BottomLeft:
		return "bottom-left"
	}
	return fmt.Sprintf("Origin(%d)", int(o))
}

func checkZoom(z int) error {
	if z < 0 || z > MaxZoom {
		return fmt.Errorf("%w: %d outside [0, %d]", ErrInvalidZoom, z, MaxZoom)
	}
	return nil
}

// Tile is a raw (x, y, z) pyramid coordinate. X may fall outside the grid
// when a covering range crosses the antimeridian; Normalized wraps it.
type Tile struct {
	X, Y, Z int
	Origin  Origin
}

func New(x, y, z int, origin Origin) (Tile, error) {
	if err := checkZoom(z); err != nil {
		return Tile{}, err
	}
	if n := 1 << z; y < 0 || y >= n {
		return Tile{}, fmt.Errorf("%w: row %d outside [0, %d)", ErrInvalidTile, y, n)
	}
	return Tile{X: x, Y: y, Z: z, Origin: origin}, nil
}

// At returns the tile containing pos at zoom z. Longitude is wrapped and
// latitude clamped to the mercator limit.
func At(pos geom.Position, z int, origin Origin) (Tile, error) {
	if err := checkZoom(z); err != nil {
		return Tile{}, err
	}
	n := 1 << z
	px, py := geom.MercatorPixel(geom.NormalizeLongitude(pos.Longitude), pos.Latitude, float64(z))
	x := clamp(int(math.Floor(px/geom.TileSize)), 0, n-1)
	y := clamp(int(math.Floor(py/geom.TileSize)), 0, n-1)
	return Tile{X: x, Y: y, Z: z, Origin: TopLeft}.WithOrigin(origin), nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Size is the number of columns and rows at the tile's zoom.
func (t Tile) Size() int {
	return 1 << t.Z
}

// Normalized wraps the column into [0, 2^z).
func (t Tile) Normalized() Tile {
	n := t.Size()
	t.X = ((t.X % n) + n) % n
	return t
}

// WithOrigin returns the same tile addressed from the other origin.
func (t Tile) WithOrigin(origin Origin) Tile {
	if t.Origin != origin {
		t.Y = t.Size() - 1 - t.Y
		t.Origin = origin
	}
	return t
}

// row is the top-left row index.
func (t Tile) row() int {
	return t.WithOrigin(TopLeft).Y
}

// Bounds is the geographic extent of the tile. Columns outside the grid
// report the extent of the column they wrap to.
func (t Tile) Bounds() geom.BoundingBox {
	x := t.Normalized().X
	y := t.row()
	z := float64(t.Z)
	nw := geom.PixelToPosition(float64(x*geom.TileSize), float64(y*geom.TileSize), z)
	se := geom.PixelToPosition(float64((x+1)*geom.TileSize), float64((y+1)*geom.TileSize), z)
	return geom.NewBoundingBox(nw.Longitude, se.Latitude, se.Longitude, nw.Latitude)
}

// Parent is the tile one level up. The root has no parent.
func (t Tile) Parent() (Tile, bool) {
	if t.Z == 0 {
		return Tile{}, false
	}
	return Tile{X: t.X >> 1, Y: t.Y >> 1, Z: t.Z - 1, Origin: t.Origin}, true
}

// Children returns the four tiles one level down, or nil at MaxZoom.
func (t Tile) Children() []Tile {
	if t.Z >= MaxZoom {
		return nil
	}
	x, y, z := t.X<<1, t.Y<<1, t.Z+1
	return []Tile{
		{X: x, Y: y, Z: z, Origin: t.Origin},
		{X: x + 1, Y: y, Z: z, Origin: t.Origin},
		{X: x, Y: y + 1, Z: z, Origin: t.Origin},
		{X: x + 1, Y: y + 1, Z: z, Origin: t.Origin},
	}
}

// Quadkey is the Bing maps key of the normalized tile.
func (t Tile) Quadkey() string {
	x, y := t.Normalized().X, t.row()
	var sb strings.Builder
	sb.Grow(t.Z)
	for i := t.Z; i > 0; i-- {
		digit := byte('0')
		mask := 1 << (i - 1)
		if x&mask != 0 {
			digit++
		}
		if y&mask != 0 {
			digit += 2
		}
		sb.WriteByte(digit)
	}
	return sb.String()
}

// FromQuadkey parses a quadkey back into a top-left tile.
func FromQuadkey(key string) (Tile, error) {
	if len(key) > MaxZoom {
		return Tile{}, fmt.Errorf("%w: quadkey %q longer than %d", ErrInvalidZoom, key, MaxZoom)
	}
	t := Tile{Z: len(key)}
	for i := 0; i < len(key); i++ {
		mask := 1 << (len(key) - i - 1)
		switch key[i] {
		case '0':
		case '1':
			t.X |= mask
		case '2':
			t.Y |= mask
		case '3':
			t.X |= mask
			t.Y |= mask
		default:
			return Tile{}, fmt.Errorf("%w: quadkey %q", ErrInvalidTile, key)
		}
	}
	return t, nil
}

func (t Tile) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// Expand fills a tile URL template. Supported placeholders are {z}, {x},
// {y}, {-y}, {tms_y} and {quadkey}. The column is normalized; {-y} and
// {tms_y} are the row counted from the opposite origin.
func Expand(template string, t Tile) string {
	n := t.Normalized()
	flipped := n.Size() - 1 - n.Y
	return strings.NewReplacer(
		"{z}", fmt.Sprintf("%d", n.Z),
		"{x}", fmt.Sprintf("%d", n.X),
		"{y}", fmt.Sprintf("%d", n.Y),
		"{-y}", fmt.Sprintf("%d", flipped),
		"{tms_y}", fmt.Sprintf("%d", flipped),
		"{quadkey}", n.Quadkey(),
	).Replace(template)
}
