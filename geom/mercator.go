package geom

import "math"

const (
	// TileSize is the edge of a web mercator tile in pixels.
	TileSize = 256
	// MaxMercatorLatitude is the latitude where web mercator becomes square.
	MaxMercatorLatitude = 85.0511287798
)

// WorldSize is the pixel width of the world at zoom.
func WorldSize(zoom float64) float64 {
	return TileSize * math.Exp2(zoom)
}

// MercatorPixel converts lon/lat to web mercator pixel coordinates at zoom.
// Latitude is clamped to MaxMercatorLatitude, longitude is not wrapped.
func MercatorPixel(lon, lat, zoom float64) (x, y float64) {
	size := WorldSize(zoom)
	lat = ClampLatitude(lat, MaxMercatorLatitude)
	sin := math.Sin(lat * math.Pi / 180)
	x = (lon + 180) / 360 * size
	y = (0.5 - math.Log((1+sin)/(1-sin))/(4*math.Pi)) * size
	return x, y
}

// PixelToPosition is the inverse of MercatorPixel.
func PixelToPosition(x, y, zoom float64) Position {
	size := WorldSize(zoom)
	lon := x/size*360 - 180
	n := math.Pi - 2*math.Pi*y/size
	lat := 180 / math.Pi * math.Atan(math.Sinh(n))
	return NewPosition(lon, lat)
}

func ClampLatitude(lat, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, lat))
}
