// Package geohash encodes positions into base-32 geohash cells, keeps a
// canonical registry of cells and covers bounding boxes with cell
// collections.
package geohash

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/royalcat/mapcore/geom"
)

const (
	alphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

	// MaxPrecision is the longest identifier Decode accepts.
	MaxPrecision = 12
)

var (
	ErrInvalidGeohash = errors.New("invalid geohash")
	ErrTooManyCells   = errors.New("too many geohash cells")
)

var decodeTable = func() (t [256]int8) {
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = int8(i)
		t[strings.ToUpper(alphabet[i : i+1])[0]] = int8(i)
	}
	return t
}()

// lonBits and latBits split the 5*precision identifier bits; longitude takes
// the even positions.
func lonBits(precision int) int { return (5*precision + 1) / 2 }
func latBits(precision int) int { return 5 * precision / 2 }

// CellSize returns the width and height in degrees of a cell at precision.
func CellSize(precision int) (width, height float64) {
	return 360 / math.Exp2(float64(lonBits(precision))), 180 / math.Exp2(float64(latBits(precision)))
}

// Encode returns the lowercase identifier of the cell containing pos.
func Encode(pos geom.Position, precision int) (string, error) {
	if precision < 1 || precision > MaxPrecision {
		return "", fmt.Errorf("%w: precision %d not in [1, %d]", ErrInvalidGeohash, precision, MaxPrecision)
	}
	if math.IsNaN(pos.Longitude) || math.IsNaN(pos.Latitude) || pos.Latitude < -90 || pos.Latitude > 90 {
		return "", fmt.Errorf("%w: %s", geom.ErrInvalidCoordinates, pos)
	}
	w, h := CellSize(precision)
	x := cellIndex(geom.NormalizeLongitude(pos.Longitude)+180, w, lonBits(precision))
	y := cellIndex(pos.Latitude+90, h, latBits(precision))
	return encodeIndex(x, y, precision), nil
}

func cellIndex(offset, size float64, bits int) uint64 {
	i := math.Floor(offset / size)
	last := math.Exp2(float64(bits)) - 1
	return uint64(math.Max(0, math.Min(last, i)))
}

func encodeIndex(x, y uint64, precision int) string {
	xi, yi := lonBits(precision)-1, latBits(precision)-1
	buf := make([]byte, precision)
	for c := range buf {
		var v byte
		for b := 0; b < 5; b++ {
			var bit uint64
			if (c*5+b)%2 == 0 {
				bit = (x >> uint(xi)) & 1
				xi--
			} else {
				bit = (y >> uint(yi)) & 1
				yi--
			}
			v = v<<1 | byte(bit)
		}
		buf[c] = alphabet[v]
	}
	return string(buf)
}

func decodeIndex(id string) (x, y uint64, err error) {
	if len(id) == 0 || len(id) > MaxPrecision {
		return 0, 0, fmt.Errorf("%w: %q has length %d, expected 1 to %d", ErrInvalidGeohash, id, len(id), MaxPrecision)
	}
	for c := 0; c < len(id); c++ {
		v := decodeTable[id[c]]
		if v < 0 {
			return 0, 0, fmt.Errorf("%w: %q contains %q", ErrInvalidGeohash, id, id[c])
		}
		for b := 4; b >= 0; b-- {
			bit := uint64(v>>uint(b)) & 1
			if (c*5+4-b)%2 == 0 {
				x = x<<1 | bit
			} else {
				y = y<<1 | bit
			}
		}
	}
	return x, y, nil
}

func cellBounds(x, y uint64, precision int) geom.BoundingBox {
	w, h := CellSize(precision)
	return geom.NewBoundingBox(
		float64(x)*w-180,
		float64(y)*h-90,
		float64(x+1)*w-180,
		float64(y+1)*h-90,
	)
}

// Decode returns the cell of a case-insensitive identifier.
func Decode(id string) (geom.BoundingBox, error) {
	x, y, err := decodeIndex(id)
	if err != nil {
		return geom.BoundingBox{}, err
	}
	return cellBounds(x, y, len(id)), nil
}

// Geohash is a decoded cell. Instances handed out by a Registry are
// canonical: one per identifier regardless of case.
type Geohash struct {
	id     string
	x, y   uint64
	bounds geom.BoundingBox
}

func newGeohash(id string) (*Geohash, error) {
	x, y, err := decodeIndex(id)
	if err != nil {
		return nil, err
	}
	return &Geohash{
		id:     strings.ToLower(id),
		x:      x,
		y:      y,
		bounds: cellBounds(x, y, len(id)),
	}, nil
}

// ID is the lowercase identifier.
func (g *Geohash) ID() string { return g.id }

func (g *Geohash) Precision() int { return len(g.id) }

func (g *Geohash) Bounds() geom.BoundingBox { return g.bounds }

func (g *Geohash) Center() geom.Position { return g.bounds.Center() }

func (g *Geohash) Contains(pos geom.Position) bool { return g.bounds.Contains(pos) }

func (g *Geohash) String() string { return g.id }

// Direction of a neighbouring cell.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var offsets = [...][2]int64{
	North:     {0, 1},
	NorthEast: {1, 1},
	East:      {1, 0},
	SouthEast: {1, -1},
	South:     {0, -1},
	SouthWest: {-1, -1},
	West:      {-1, 0},
	NorthWest: {-1, 1},
}

// Neighbor returns the identifier of the adjacent cell in direction d.
// Columns wrap around the antimeridian; there is no cell beyond a pole.
func (g *Geohash) Neighbor(d Direction) (string, bool) {
	p := g.Precision()
	cols, rows := int64(1)<<lonBits(p), int64(1)<<latBits(p)
	off := offsets[d]
	y := int64(g.y) + off[1]
	if y < 0 || y >= rows {
		return "", false
	}
	x := ((int64(g.x)+off[0])%cols + cols) % cols
	return encodeIndex(uint64(x), uint64(y), p), true
}

// Neighbors returns the identifiers of all existing adjacent cells, clockwise
// from north.
func (g *Geohash) Neighbors() []string {
	out := make([]string, 0, len(offsets))
	for d := range offsets {
		if id, ok := g.Neighbor(Direction(d)); ok {
			out = append(out, id)
		}
	}
	return out
}
