package projection

import (
	"math"

	"github.com/royalcat/mapcore/geom"
)

// Transverse mercator on the WGS84 ellipsoid using the third order Krüger
// series.
var (
	tmN = flattening / (2 - flattening)
	tmA = semiMajorAxis / (1 + tmN) * (1 + tmN*tmN/4 + tmN*tmN*tmN*tmN/64)

	tmAlpha = [3]float64{
		tmN/2 - 2*tmN*tmN/3 + 5*tmN*tmN*tmN/16,
		13*tmN*tmN/48 - 3*tmN*tmN*tmN/5,
		61 * tmN * tmN * tmN / 240,
	}
	tmBeta = [3]float64{
		tmN/2 - 2*tmN*tmN/3 + 37*tmN*tmN*tmN/96,
		tmN*tmN/48 + tmN*tmN*tmN/15,
		17 * tmN * tmN * tmN / 480,
	}
	tmDelta = [3]float64{
		2*tmN - 2*tmN*tmN/3 - 2*tmN*tmN*tmN,
		7*tmN*tmN/3 - 8*tmN*tmN*tmN/5,
		56 * tmN * tmN * tmN / 15,
	}
	tmE = 2 * math.Sqrt(tmN) / (1 + tmN)
)

const (
	utmScale         = 0.9996
	utmFalseEasting  = 500000.0
	utmFalseNorthing = 10000000.0
)

// UTM is one universal transverse mercator zone. South zones add the
// 10,000 km false northing.
type UTM struct {
	Zone  int
	South bool
}

// CentralMeridian of the zone in degrees.
func (u UTM) CentralMeridian() float64 {
	return float64(u.Zone*6 - 183)
}

func (u UTM) Forward(p geom.Position) geom.Position {
	dLambda := geom.NormalizeLongitude(p.Longitude-u.CentralMeridian()) * math.Pi / 180
	e, n := tmForward(p.Latitude*math.Pi/180, dLambda)
	if u.South {
		n += utmFalseNorthing
	}
	return withXY(p, e, n)
}

func (u UTM) Inverse(p geom.Position) geom.Position {
	n := p.Latitude
	if u.South {
		n -= utmFalseNorthing
	}
	phi, dLambda := tmInverse(p.Longitude, n)
	lon := geom.NormalizeLongitude(u.CentralMeridian() + dLambda*180/math.Pi)
	return withXY(p, lon, phi*180/math.Pi)
}

func tmForward(phi, dLambda float64) (easting, northing float64) {
	t := math.Sinh(math.Atanh(math.Sin(phi)) - tmE*math.Atanh(tmE*math.Sin(phi)))
	xi := math.Atan2(t, math.Cos(dLambda))
	eta := math.Atanh(math.Sin(dLambda) / math.Sqrt(1+t*t))

	x, y := eta, xi
	for j, a := range tmAlpha {
		k := 2 * float64(j+1)
		x += a * math.Cos(k*xi) * math.Sinh(k*eta)
		y += a * math.Sin(k*xi) * math.Cosh(k*eta)
	}
	return utmFalseEasting + utmScale*tmA*x, utmScale * tmA * y
}

func tmInverse(easting, northing float64) (phi, dLambda float64) {
	xi := northing / (utmScale * tmA)
	eta := (easting - utmFalseEasting) / (utmScale * tmA)

	xiP, etaP := xi, eta
	for j, b := range tmBeta {
		k := 2 * float64(j+1)
		xiP -= b * math.Sin(k*xi) * math.Cosh(k*eta)
		etaP -= b * math.Cos(k*xi) * math.Sinh(k*eta)
	}

	chi := math.Asin(math.Sin(xiP) / math.Cosh(etaP))
	phi = chi
	for j, d := range tmDelta {
		phi += d * math.Sin(2*float64(j+1)*chi)
	}
	return phi, math.Atan2(math.Sinh(etaP), math.Cos(xiP))
}
