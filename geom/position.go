// Package geom is the geometric data model of mapcore: positions, antimeridian
// aware bounding boxes and the GeoJSON geometry variants with their bounds,
// equality, cloning and intersection rules.
package geom

import (
	"fmt"
	"math"
)

// Position is a single geographic coordinate. Longitude is kept exactly as
// provided; algorithms treat [-180, 180] as the canonical range.
type Position struct {
	Longitude   float64
	Latitude    float64
	Altitude    float64
	HasAltitude bool
}

func NewPosition(lon, lat float64) Position {
	return Position{Longitude: lon, Latitude: lat}
}

func NewPositionWithAltitude(lon, lat, alt float64) Position {
	return Position{Longitude: lon, Latitude: lat, Altitude: alt, HasAltitude: true}
}

// PositionFromArray builds a position from a GeoJSON style [lon, lat] or
// [lon, lat, alt] array.
func PositionFromArray(coords []float64) (Position, error) {
	switch len(coords) {
	case 2:
		return NewPosition(coords[0], coords[1]), nil
	case 3:
		return NewPositionWithAltitude(coords[0], coords[1], coords[2]), nil
	}
	return Position{}, fmt.Errorf("%w: position needs 2 or 3 values, got %d", ErrInvalidCoordinates, len(coords))
}

func (p Position) ToArray() []float64 {
	if p.HasAltitude {
		return []float64{p.Longitude, p.Latitude, p.Altitude}
	}
	return []float64{p.Longitude, p.Latitude}
}

// Equals compares every field numerically, no normalization is applied.
func (p Position) Equals(o Position) bool {
	if p.Longitude != o.Longitude || p.Latitude != o.Latitude || p.HasAltitude != o.HasAltitude {
		return false
	}
	return !p.HasAltitude || p.Altitude == o.Altitude
}

func (p Position) equals2D(o Position) bool {
	return p.Longitude == o.Longitude && p.Latitude == o.Latitude
}

// Normalized returns the position with its longitude wrapped into [-180, 180].
func (p Position) Normalized() Position {
	p.Longitude = NormalizeLongitude(p.Longitude)
	return p
}

func (p Position) String() string {
	if p.HasAltitude {
		return fmt.Sprintf("[%g, %g, %g]", p.Longitude, p.Latitude, p.Altitude)
	}
	return fmt.Sprintf("[%g, %g]", p.Longitude, p.Latitude)
}

// NormalizeLongitude wraps lon into [-180, 180]. Values already in range are
// returned untouched, so 180 stays 180.
func NormalizeLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
