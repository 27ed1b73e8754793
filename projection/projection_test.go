package projection_test

import (
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/royalcat/mapcore/geom"
	"github.com/royalcat/mapcore/projection"
)

func newRegistry(t *testing.T, opts ...projection.Option) *projection.Registry {
	t.Helper()
	r, err := projection.NewRegistry(append([]projection.Option{projection.WithLogger(slog.New(slog.DiscardHandler))}, opts...)...)
	require.NoError(t, err)
	return r
}

func mustProjection(t *testing.T, r *projection.Registry, srid string) *projection.Projection {
	t.Helper()
	p, ok := r.ForSRID(srid)
	if !ok {
		t.Fatalf("projection %s not registered", srid)
	}
	return p
}

func TestWebMercator(t *testing.T) {
	p := mustProjection(t, newRegistry(t), "EPSG:3857")
	require.Equal(t, projection.Meters, p.Units())

	got := p.ProjectPosition(geom.NewPosition(10, 20))
	assert.InDelta(t, 1.1131949077777779e+06, got.Longitude, 1e-3)
	assert.InDelta(t, 2.2730309266712805e+06, got.Latitude, 1e-3)

	back := p.InversePosition(got)
	assert.InDelta(t, 10, back.Longitude, 1e-9)
	assert.InDelta(t, 20, back.Latitude, 1e-9)
}

func TestWebMercatorMatchesOrb(t *testing.T) {
	p := mustProjection(t, newRegistry(t), "EPSG:3857")
	for _, pos := range []geom.Position{
		geom.NewPosition(0, 0),
		geom.NewPosition(13.4, 52.5),
		geom.NewPosition(-122.4, 37.8),
		geom.NewPosition(179.9, -85),
	} {
		expect := project.WGS84.ToMercator(orb.Point{pos.Longitude, pos.Latitude})
		got := p.ProjectPosition(pos)
		assert.InDelta(t, expect.X(), got.Longitude, 1e-6)
		assert.InDelta(t, expect.Y(), got.Latitude, 1e-6)
	}
}

func TestMercatorAliases(t *testing.T) {
	r := newRegistry(t)
	base := mustProjection(t, r, "EPSG:3857").ProjectPosition(geom.NewPosition(30, 40))
	for _, srid := range []string{"EPSG:900913", "epsg:102100", "102113", "3857", "urn:ogc:def:crs:EPSG::3857"} {
		got := mustProjection(t, r, srid).ProjectPosition(geom.NewPosition(30, 40))
		if got != base {
			t.Errorf("%s: expected %v, got %v", srid, base, got)
		}
	}
}

func TestWorldMercator(t *testing.T) {
	p := mustProjection(t, newRegistry(t), "EPSG:3395")
	got := p.ProjectPosition(geom.NewPosition(0, 0))
	assert.InDelta(t, 0, got.Longitude, 1e-9)
	assert.InDelta(t, 0, got.Latitude, 1e-9)

	got = p.ProjectPosition(geom.NewPosition(10, 45))
	assert.InDelta(t, 1113194.9079, got.Longitude, 1e-3)
	assert.InDelta(t, 5591295.9185, got.Latitude, 1e-3)

	for _, lat := range []float64{-80, -45, -1, 0, 1, 30, 60, 84} {
		back := p.InversePosition(p.ProjectPosition(geom.NewPosition(12, lat)))
		assert.InDelta(t, 12, back.Longitude, 1e-9)
		assert.InDelta(t, lat, back.Latitude, 1e-9)
	}
}

func TestUTM(t *testing.T) {
	r := newRegistry(t)

	zone33 := mustProjection(t, r, "EPSG:32633")
	origin := zone33.ProjectPosition(geom.NewPosition(15, 0))
	assert.InDelta(t, 500000, origin.Longitude, 1e-6)
	assert.InDelta(t, 0, origin.Latitude, 1e-6)

	berlin := zone33.ProjectPosition(geom.NewPosition(13.405, 52.52))
	assert.InDelta(t, 391779.2592, berlin.Longitude, 1e-2)
	assert.InDelta(t, 5820072.1592, berlin.Latitude, 1e-2)

	zone56s := mustProjection(t, r, "EPSG:32756")
	sydney := zone56s.ProjectPosition(geom.NewPosition(151.2093, -33.8688))
	assert.InDelta(t, 334368.6337, sydney.Longitude, 1e-2)
	assert.InDelta(t, 6250948.3454, sydney.Latitude, 1e-2)

	for _, pos := range []geom.Position{
		geom.NewPosition(13.405, 52.52),
		geom.NewPosition(17.9, 70),
		geom.NewPosition(12.1, -45),
	} {
		back := zone33.InversePosition(zone33.ProjectPosition(pos))
		assert.InDelta(t, pos.Longitude, back.Longitude, 1e-7)
		assert.InDelta(t, pos.Latitude, back.Latitude, 1e-7)
	}
}

func TestDegreesPassThrough(t *testing.T) {
	r := newRegistry(t)
	pos := geom.NewPositionWithAltitude(190, 95, 12)
	for _, srid := range []string{"EPSG:4326", "CRS:84", "EPSG:4269"} {
		p := mustProjection(t, r, srid)
		if p.Units() != projection.Degrees {
			t.Fatalf("%s: expected degrees", srid)
		}
		if got := p.ProjectPosition(pos); got != pos {
			t.Errorf("%s: expected identity, got %v", srid, got)
		}
		if got := p.InverseProjectPoint(geom.NewPoint(pos)); got.Position() != pos {
			t.Errorf("%s: expected identity, got %v", srid, got.Position())
		}
	}
}

func TestProjectKeepsAltitude(t *testing.T) {
	p := mustProjection(t, newRegistry(t), "EPSG:3857")
	got := p.ProjectPoint(geom.NewPoint(geom.NewPositionWithAltitude(1, 2, 300))).Position()
	if !got.HasAltitude || got.Altitude != 300 {
		t.Fatalf("expected altitude to pass through, got %v", got)
	}
}

func TestProjectBounds(t *testing.T) {
	p := mustProjection(t, newRegistry(t), "EPSG:3857")
	got := p.ProjectBounds(geom.NewBoundingBox(-180, -90, 180, 90))
	limit := p.ProjectPosition(geom.NewPosition(180, projection.MaxBoundsLatitude))

	assert.InDelta(t, -limit.Longitude, got.XMin, 1e-6)
	assert.InDelta(t, -limit.Latitude, got.YMin, 1e-6)
	assert.InDelta(t, limit.Longitude, got.XMax, 1e-6)
	assert.InDelta(t, limit.Latitude, got.YMax, 1e-6)
	if math.IsInf(got.YMax, 0) || math.IsNaN(got.YMax) {
		t.Fatalf("expected finite bounds, got %v", got)
	}

	back := p.InverseProjectBounds(got)
	assert.InDelta(t, projection.MaxBoundsLatitude, back.YMax, 1e-9)

	degrees := mustProjection(t, newRegistry(t), "EPSG:4326")
	if got := degrees.ProjectBounds(geom.NewBoundingBox(0, -89, 10, 89)); got != geom.NewBoundingBox(0, -85.06, 10, 85.06) {
		t.Fatalf("expected clamped degree bounds, got %v", got)
	}
}

func TestProjectGeometry(t *testing.T) {
	p := mustProjection(t, newRegistry(t), "EPSG:3857")
	poly, err := geom.NewPolygon([]geom.Position{
		geom.NewPosition(0, 0), geom.NewPosition(10, 0), geom.NewPosition(10, 10),
		geom.NewPosition(0, 10), geom.NewPosition(0, 0),
	})
	require.NoError(t, err)
	line, err := geom.NewLineString(geom.NewPosition(0, 0), geom.NewPosition(1, 1))
	require.NoError(t, err)
	col, err := geom.NewGeometryCollection(poly, line, geom.NewMultiPolygon(poly))
	require.NoError(t, err)

	projected, err := p.ProjectGeometry(col)
	require.NoError(t, err)
	b := projected.Bounds()
	assert.InDelta(t, 1113194.9079, b.XMax, 1e-3)

	back, err := p.InverseProjectGeometry(projected)
	require.NoError(t, err)
	assert.InDelta(t, 10, back.Bounds().XMax, 1e-9)
	assert.InDelta(t, 10, back.Bounds().YMax, 1e-9)
	if back.Kind() != geom.KindGeometryCollection {
		t.Fatalf("expected a collection, got %s", back.Kind())
	}
}

func TestRegistryContract(t *testing.T) {
	r := newRegistry(t)

	if _, ok := r.ForSRID("EPSG:999999"); ok {
		t.Fatalf("expected unknown SRID")
	}

	a, err := r.WithSRIDAndUnits("EPSG:3857", projection.Meters)
	require.NoError(t, err)
	b, err := r.WithSRIDAndUnits("epsg:3857", projection.Meters)
	require.NoError(t, err)
	if a != b || a != mustProjection(t, r, "EPSG:3857") {
		t.Fatalf("expected a single instance per SRID and units")
	}

	custom, err := r.WithSRIDAndUnits("EPSG:2056", projection.Degrees)
	require.NoError(t, err)
	if found := mustProjection(t, r, "2056"); found != custom {
		t.Fatalf("expected newly registered projection to be found")
	}

	if _, err := r.WithSRIDAndUnits("EPSG:2056", projection.Meters); !errors.Is(err, projection.ErrUnknownTransform) {
		t.Fatalf("expected ErrUnknownTransform, got %v", err)
	}
}

type shift struct{ dx float64 }

func (s shift) Forward(p geom.Position) geom.Position {
	p.Longitude += s.dx
	return p
}

func (s shift) Inverse(p geom.Position) geom.Position {
	p.Longitude -= s.dx
	return p
}

func TestWithProjection(t *testing.T) {
	r := newRegistry(t, projection.WithProjection("EPSG:9999", "shifted", shift{dx: 1000}))
	p := mustProjection(t, r, "EPSG:9999")
	if p.Name() != "shifted" || p.Units() != projection.Meters {
		t.Fatalf("unexpected projection %v", p)
	}
	if got := p.ProjectPosition(geom.NewPosition(1, 2)); got.Longitude != 1001 {
		t.Fatalf("expected custom transform, got %v", got)
	}
}

func TestCanonicalSRID(t *testing.T) {
	cases := map[string]string{
		"3857":                           "EPSG:3857",
		" epsg:4326 ":                    "EPSG:4326",
		"crs:84":                         "CRS:84",
		"urn:ogc:def:crs:OGC:1.3:CRS84":  "CRS:84",
		"urn:ogc:def:crs:EPSG::4326":     "EPSG:4326",
		"urn:ogc:def:crs:EPSG:6.6:32633": "EPSG:32633",
	}
	for in, expect := range cases {
		if got := projection.CanonicalSRID(in); got != expect {
			t.Errorf("CanonicalSRID(%q) = %q, expected %q", in, got, expect)
		}
	}
}
