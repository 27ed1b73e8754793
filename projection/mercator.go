package projection

import (
	"math"

	"github.com/royalcat/mapcore/geom"
)

const (
	// WGS84 ellipsoid.
	semiMajorAxis = 6378137.0
	flattening    = 1 / 298.257223563

	mercatorPole = geom.EarthRadius * math.Pi
)

var eccentricity = math.Sqrt(flattening * (2 - flattening))

func withXY(p geom.Position, x, y float64) geom.Position {
	p.Longitude, p.Latitude = x, y
	return p
}

// SphericalMercator is web mercator on a sphere of geom.EarthRadius.
type SphericalMercator struct{}

func (SphericalMercator) Forward(p geom.Position) geom.Position {
	x := mercatorPole / 180 * p.Longitude
	y := math.Log(math.Tan((90+p.Latitude)*math.Pi/360)) * geom.EarthRadius
	y = math.Max(-mercatorPole, math.Min(y, mercatorPole))
	return withXY(p, x, y)
}

func (SphericalMercator) Inverse(p geom.Position) geom.Position {
	lon := p.Longitude * 180 / mercatorPole
	lat := 180 / math.Pi * (2*math.Atan(math.Exp(p.Latitude/geom.EarthRadius)) - math.Pi/2)
	return withXY(p, lon, lat)
}

// EllipsoidalMercator is the world mercator projection on the WGS84
// ellipsoid.
type EllipsoidalMercator struct{}

// maxEllipsoidalLatitude keeps the forward transform finite.
const maxEllipsoidalLatitude = 89.5

func (EllipsoidalMercator) Forward(p geom.Position) geom.Position {
	phi := geom.ClampLatitude(p.Latitude, maxEllipsoidalLatitude) * math.Pi / 180
	es := eccentricity * math.Sin(phi)
	x := semiMajorAxis * p.Longitude * math.Pi / 180
	y := semiMajorAxis * math.Log(math.Tan(math.Pi/4+phi/2)*math.Pow((1-es)/(1+es), eccentricity/2))
	return withXY(p, x, y)
}

func (EllipsoidalMercator) Inverse(p geom.Position) geom.Position {
	t := math.Exp(-p.Latitude / semiMajorAxis)
	phi := math.Pi/2 - 2*math.Atan(t)
	for i := 0; i < 15; i++ {
		es := eccentricity * math.Sin(phi)
		next := math.Pi/2 - 2*math.Atan(t*math.Pow((1-es)/(1+es), eccentricity/2))
		done := math.Abs(next-phi) < 1e-12
		phi = next
		if done {
			break
		}
	}
	return withXY(p, p.Longitude/semiMajorAxis*180/math.Pi, phi*180/math.Pi)
}
