package projection

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/royalcat/mapcore/geom"
)

const (
	bandLetters = "CDEFGHJKLMNPQRSTUVWX"
	rowLetters  = "ABCDEFGHJKLMNPQRSTUV"

	minMGRSLatitude = -80.0
	maxMGRSLatitude = 84.0
)

// column letters of the 100 km squares by zone mod 3
var columnSets = [3]string{"STUVWXYZ", "ABCDEFGH", "JKLMNPQR"}

// lowest northing of each latitude band, used to resolve the 2,000 km
// ambiguity of the row letter
var bandMinNorthing = map[byte]float64{
	'C': 1100000, 'D': 2000000, 'E': 2800000, 'F': 3700000, 'G': 4600000,
	'H': 5500000, 'J': 6400000, 'K': 7300000, 'L': 8200000, 'M': 9100000,
	'N': 0, 'P': 800000, 'Q': 1700000, 'R': 2600000, 'S': 3500000,
	'T': 4400000, 'U': 5300000, 'V': 6200000, 'W': 7000000, 'X': 7900000,
}

// UTMCoord is a position in universal transverse mercator terms.
type UTMCoord struct {
	Zone     int
	Band     byte
	Easting  float64
	Northing float64
}

func (c UTMCoord) South() bool {
	return c.Band < 'N'
}

func (c UTMCoord) String() string {
	return fmt.Sprintf("%d%c %.0f %.0f", c.Zone, c.Band, c.Easting, c.Northing)
}

// UTMZone returns the zone for pos, including the Norway and Svalbard
// exceptions.
func UTMZone(pos geom.Position) int {
	lon := geom.NormalizeLongitude(pos.Longitude)
	lat := pos.Latitude

	if lat >= 56 && lat < 64 && lon >= 3 && lon < 12 {
		return 32
	}
	if lat >= 72 && lat <= 84 && lon >= 0 && lon < 42 {
		switch {
		case lon < 9:
			return 31
		case lon < 21:
			return 33
		case lon < 33:
			return 35
		default:
			return 37
		}
	}
	zone := int(math.Floor((lon+180)/6)) + 1
	if zone > 60 {
		zone = 1
	}
	return zone
}

func latitudeBand(lat float64) byte {
	i := int(math.Floor((lat - minMGRSLatitude) / 8))
	i = max(0, min(i, len(bandLetters)-1))
	return bandLetters[i]
}

// ToUTM converts a position with latitude in [-80, 84].
func ToUTM(pos geom.Position) (UTMCoord, error) {
	if math.IsNaN(pos.Latitude) || pos.Latitude < minMGRSLatitude || pos.Latitude > maxMGRSLatitude {
		return UTMCoord{}, fmt.Errorf("%w: latitude %g outside [%g, %g]", ErrOutOfRange, pos.Latitude, minMGRSLatitude, maxMGRSLatitude)
	}
	zone := UTMZone(pos)
	p := UTM{Zone: zone, South: pos.Latitude < 0}.Forward(pos)
	return UTMCoord{
		Zone:     zone,
		Band:     latitudeBand(pos.Latitude),
		Easting:  p.Longitude,
		Northing: p.Latitude,
	}, nil
}

// FromUTM converts back to a geographic position.
func FromUTM(c UTMCoord) geom.Position {
	return UTM{Zone: c.Zone, South: c.South()}.Inverse(geom.NewPosition(c.Easting, c.Northing))
}

// ToMGRS formats pos as a military grid reference with digits of precision
// per axis, 1 (10 km) to 5 (1 m). Coordinates are truncated, not rounded.
func ToMGRS(pos geom.Position, digits int) (string, error) {
	if digits < 1 || digits > 5 {
		return "", fmt.Errorf("%w: %d digits, expected 1 to 5", ErrInvalidMGRS, digits)
	}
	c, err := ToUTM(pos)
	if err != nil {
		return "", err
	}

	e, n := int(math.Floor(c.Easting)), int(math.Floor(c.Northing))
	colIdx := e/100000 - 1
	if colIdx < 0 || colIdx >= len(columnSets[c.Zone%3]) {
		return "", fmt.Errorf("%w: easting %g outside the zone %d grid", ErrOutOfRange, c.Easting, c.Zone)
	}
	col := columnSets[c.Zone%3][colIdx]
	row := rowLetters[(n/100000+rowOffset(c.Zone))%len(rowLetters)]

	scale := int(math.Pow10(5 - digits))
	return fmt.Sprintf("%02d%c%c%c%0*d%0*d", c.Zone, c.Band, col, row,
		digits, (e%100000)/scale, digits, (n%100000)/scale), nil
}

func rowOffset(zone int) int {
	if zone%2 == 0 {
		return 5
	}
	return 0
}

// ParseMGRS reads a reference such as "33UUU9177920072", spaces allowed,
// and returns the centre of the square it denotes.
func ParseMGRS(ref string) (geom.Position, error) {
	c, resolution, err := parseMGRS(ref)
	if err != nil {
		return geom.Position{}, err
	}
	c.Easting += resolution / 2
	c.Northing += resolution / 2
	return FromUTM(c), nil
}

func parseMGRS(ref string) (UTMCoord, float64, error) {
	s := strings.ToUpper(strings.Join(strings.Fields(ref), ""))
	fail := func(format string, args ...any) (UTMCoord, float64, error) {
		return UTMCoord{}, 0, fmt.Errorf("%w: %q: %s", ErrInvalidMGRS, ref, fmt.Sprintf(format, args...))
	}

	i := 0
	for i < len(s) && i < 2 && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return fail("missing zone")
	}
	zone, _ := strconv.Atoi(s[:i])
	if zone < 1 || zone > 60 {
		return fail("zone %d out of range", zone)
	}
	if len(s) < i+3 {
		return fail("missing letters")
	}

	band := s[i]
	minNorthing, ok := bandMinNorthing[band]
	if !ok {
		return fail("unknown band %q", band)
	}
	colIdx := strings.IndexByte(columnSets[zone%3], s[i+1])
	if colIdx < 0 {
		return fail("column %q not used in zone %d", s[i+1], zone)
	}
	rowIdx := strings.IndexByte(rowLetters, s[i+2])
	if rowIdx < 0 {
		return fail("unknown row %q", s[i+2])
	}

	digits := s[i+3:]
	if len(digits)%2 != 0 || len(digits) > 10 {
		return fail("expected an even number of up to 10 digits")
	}
	for j := 0; j < len(digits); j++ {
		if digits[j] < '0' || digits[j] > '9' {
			return fail("unexpected %q in the digits", digits[j])
		}
	}
	half := len(digits) / 2
	resolution := math.Pow10(5 - half)
	var e, n float64
	if half > 0 {
		ev, err := strconv.Atoi(digits[:half])
		if err != nil {
			return fail("bad easting digits")
		}
		nv, err := strconv.Atoi(digits[half:])
		if err != nil {
			return fail("bad northing digits")
		}
		e, n = float64(ev)*resolution, float64(nv)*resolution
	}

	easting := float64(colIdx+1)*100000 + e
	row := (rowIdx - rowOffset(zone) + len(rowLetters)) % len(rowLetters)
	northing := float64(row)*100000 + n
	for northing < minNorthing {
		northing += 2000000
	}
	return UTMCoord{Zone: zone, Band: band, Easting: easting, Northing: northing}, resolution, nil
}
