package geom

import "math"

// EarthRadius is the spherical earth radius in metres, matching web mercator.
const EarthRadius = 6378137.0

func rad(deg float64) float64 { return deg * math.Pi / 180 }
func deg(rad float64) float64 { return rad * 180 / math.Pi }

// Distance is the haversine great circle distance in metres.
func Distance(a, b Position) float64 {
	dLat := rad(b.Latitude - a.Latitude)
	dLon := rad(b.Longitude - a.Longitude)
	sLat, sLon := math.Sin(dLat/2), math.Sin(dLon/2)
	h := sLat*sLat + math.Cos(rad(a.Latitude))*math.Cos(rad(b.Latitude))*sLon*sLon
	return 2 * EarthRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Bearing is the initial great circle bearing from a to b in degrees,
// clockwise from north, in [0, 360).
func Bearing(a, b Position) float64 {
	lat1, lat2 := rad(a.Latitude), rad(b.Latitude)
	dLon := rad(b.Longitude - a.Longitude)
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return math.Mod(deg(math.Atan2(y, x))+360, 360)
}

// Destination travels distance metres from p along bearing degrees.
func Destination(p Position, bearing, distance float64) Position {
	lat1, lon1 := rad(p.Latitude), rad(p.Longitude)
	brng := rad(bearing)
	ang := distance / EarthRadius

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(ang) + math.Cos(lat1)*math.Sin(ang)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(math.Sin(brng)*math.Sin(ang)*math.Cos(lat1), math.Cos(ang)-math.Sin(lat1)*math.Sin(lat2))
	return NewPosition(NormalizeLongitude(deg(lon2)), deg(lat2))
}

// Midpoint is the half way point along the great circle from a to b.
func Midpoint(a, b Position) Position {
	lat1, lon1 := rad(a.Latitude), rad(a.Longitude)
	lat2 := rad(b.Latitude)
	dLon := rad(b.Longitude - a.Longitude)

	bx := math.Cos(lat2) * math.Cos(dLon)
	by := math.Cos(lat2) * math.Sin(dLon)
	lat := math.Atan2(math.Sin(lat1)+math.Sin(lat2), math.Sqrt((math.Cos(lat1)+bx)*(math.Cos(lat1)+bx)+by*by))
	lon := lon1 + math.Atan2(by, math.Cos(lat1)+bx)
	return NewPosition(NormalizeLongitude(deg(lon)), deg(lat))
}

// RadiusBounds returns a box around center covering every position within
// radius metres. Near the poles the box widens to all longitudes.
func RadiusBounds(center Position, radius float64) BoundingBox {
	dLat := deg(radius / EarthRadius)
	yMin, yMax := center.Latitude-dLat, center.Latitude+dLat
	if yMin <= -90 || yMax >= 90 {
		return BoundingBox{XMin: -180, YMin: math.Max(yMin, -90), XMax: 180, YMax: math.Min(yMax, 90)}
	}
	maxLat := math.Max(math.Abs(yMin), math.Abs(yMax))
	dLon := deg(radius / (EarthRadius * math.Cos(rad(maxLat))))
	if dLon >= 180 {
		return BoundingBox{XMin: -180, YMin: yMin, XMax: 180, YMax: yMax}
	}
	lon := NormalizeLongitude(center.Longitude)
	return BoundingBox{
		XMin: NormalizeLongitude(lon - dLon),
		YMin: yMin,
		XMax: NormalizeLongitude(lon + dLon),
		YMax: yMax,
	}
}
