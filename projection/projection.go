// Package projection maps geographic positions to and from projected
// coordinate reference systems identified by SRID.
package projection

import (
	"errors"
	"fmt"

	"github.com/royalcat/mapcore/geom"
)

var (
	ErrUnknownTransform = errors.New("unknown transform")
	ErrInvalidMGRS      = errors.New("invalid MGRS reference")
	ErrOutOfRange       = errors.New("position out of projection range")
)

// MaxBoundsLatitude is the latitude ProjectBounds clamps to.
const MaxBoundsLatitude = 85.06

type Units int

const (
	Degrees Units = iota
	Meters
)

func (u Units) String() string {
	switch u {
	case Degrees:
		return "degrees"
	case Meters:
		return "meters"
	}
	return fmt.Sprintf("Units(%d)", int(u))
}

// Transform converts between geographic positions and projected metres.
// Altitude passes through untouched.
type Transform interface {
	Forward(geom.Position) geom.Position
	Inverse(geom.Position) geom.Position
}

// Projection is a registered coordinate reference system. Projections in
// degrees pass positions through unchanged.
type Projection struct {
	srid      string
	name      string
	units     Units
	transform Transform
}

func (p *Projection) SRID() string { return p.srid }
func (p *Projection) Name() string { return p.name }
func (p *Projection) Units() Units { return p.units }

func (p *Projection) String() string { return p.srid }

func (p *Projection) projects() bool {
	return p.units == Meters && p.transform != nil
}

func (p *Projection) ProjectPosition(pos geom.Position) geom.Position {
	if !p.projects() {
		return pos
	}
	return p.transform.Forward(pos)
}

func (p *Projection) InversePosition(pos geom.Position) geom.Position {
	if !p.projects() {
		return pos
	}
	return p.transform.Inverse(pos)
}

func (p *Projection) ProjectPoint(pt *geom.Point) *geom.Point {
	return geom.NewPoint(p.ProjectPosition(pt.Position()))
}

func (p *Projection) InverseProjectPoint(pt *geom.Point) *geom.Point {
	return geom.NewPoint(p.InversePosition(pt.Position()))
}

// ProjectBounds clamps the latitudes to MaxBoundsLatitude and projects the
// south west and north east corners.
func (p *Projection) ProjectBounds(b geom.BoundingBox) geom.BoundingBox {
	yMin := geom.ClampLatitude(b.YMin, MaxBoundsLatitude)
	yMax := geom.ClampLatitude(b.YMax, MaxBoundsLatitude)
	sw := p.ProjectPosition(geom.NewPosition(b.XMin, yMin))
	ne := p.ProjectPosition(geom.NewPosition(b.XMax, yMax))
	return geom.NewBoundingBox(sw.Longitude, sw.Latitude, ne.Longitude, ne.Latitude)
}

// InverseProjectBounds maps projected corners back to degrees.
func (p *Projection) InverseProjectBounds(b geom.BoundingBox) geom.BoundingBox {
	sw := p.InversePosition(geom.NewPosition(b.XMin, b.YMin))
	ne := p.InversePosition(geom.NewPosition(b.XMax, b.YMax))
	return geom.NewBoundingBox(sw.Longitude, sw.Latitude, ne.Longitude, ne.Latitude)
}

// ProjectGeometry returns a projected deep copy of g.
func (p *Projection) ProjectGeometry(g geom.Geometry) (geom.Geometry, error) {
	return convert(p.ProjectPosition, g)
}

// InverseProjectGeometry returns a deep copy of g mapped back to degrees.
func (p *Projection) InverseProjectGeometry(g geom.Geometry) (geom.Geometry, error) {
	return convert(p.InversePosition, g)
}

func convertPath(fn func(geom.Position) geom.Position, ps []geom.Position) []geom.Position {
	out := make([]geom.Position, len(ps))
	for i, p := range ps {
		out[i] = fn(p)
	}
	return out
}

func convertRings(fn func(geom.Position) geom.Position, rings [][]geom.Position) [][]geom.Position {
	out := make([][]geom.Position, len(rings))
	for i, r := range rings {
		out[i] = convertPath(fn, r)
	}
	return out
}

func convert(fn func(geom.Position) geom.Position, g geom.Geometry) (geom.Geometry, error) {
	switch g := g.(type) {
	case *geom.Point:
		return geom.NewPoint(fn(g.Position())), nil
	case *geom.MultiPoint:
		return geom.NewMultiPoint(convertPath(fn, g.Coordinates())...), nil
	case *geom.LineString:
		l, err := geom.NewLineString(convertPath(fn, g.Coordinates())...)
		if err != nil {
			return nil, err
		}
		return l, nil
	case *geom.MultiLineString:
		out := geom.NewMultiLineString()
		for _, l := range g.Coordinates() {
			if err := out.AddLineString(convertPath(fn, l)...); err != nil {
				return nil, err
			}
		}
		return out, nil
	case *geom.Polygon:
		poly, err := geom.NewPolygon(convertRings(fn, g.Rings())...)
		if err != nil {
			return nil, err
		}
		return poly, nil
	case *geom.MultiPolygon:
		out := geom.NewMultiPolygon()
		for _, rings := range g.Coordinates() {
			poly, err := geom.NewPolygon(convertRings(fn, rings)...)
			if err != nil {
				return nil, err
			}
			out.AddPolygon(poly)
		}
		return out, nil
	case *geom.GeometryCollection:
		out, err := geom.NewGeometryCollection()
		if err != nil {
			return nil, err
		}
		for i := 0; i < g.Len(); i++ {
			child, err := g.At(i)
			if err != nil {
				return nil, err
			}
			converted, err := convert(fn, child)
			if err != nil {
				return nil, err
			}
			if err := out.Add(converted); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %T", geom.ErrUnsupportedGeometry, g)
}
