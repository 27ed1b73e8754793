package projection

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type projectionKey struct {
	srid  string
	units Units
}

// Registry holds the known projections. It is populated with the built-ins
// on construction and safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	bySRID     map[string]*Projection
	byKey      map[projectionKey]*Projection
	transforms map[string]Transform

	log           *slog.Logger
	metricLookups metric.Int64Counter
}

func NewRegistry(opts ...Option) (*Registry, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}

	lookups, err := o.meter.Int64Counter("projection_lookups_total")
	if err != nil {
		return nil, err
	}

	r := &Registry{
		bySRID:        map[string]*Projection{},
		byKey:         map[projectionKey]*Projection{},
		transforms:    map[string]Transform{},
		log:           o.logger,
		metricLookups: lookups,
	}

	for _, b := range builtins() {
		r.add(b)
	}
	for _, e := range o.extras {
		srid := CanonicalSRID(e.srid)
		r.transforms[srid] = e.transform
		r.add(&Projection{srid: srid, name: e.name, units: Meters, transform: e.transform})
	}

	r.log.Info("projection registry initialized", "projections", len(r.bySRID))
	return r, nil
}

func (r *Registry) add(p *Projection) {
	r.byKey[projectionKey{p.srid, p.units}] = p
	if _, ok := r.bySRID[p.srid]; !ok {
		r.bySRID[p.srid] = p
	}
	if p.transform != nil {
		r.transforms[p.srid] = p.transform
	}
}

// ForSRID looks a projection up by SRID alone.
func (r *Registry) ForSRID(srid string) (*Projection, bool) {
	srid = CanonicalSRID(srid)

	r.mu.RLock()
	p, ok := r.bySRID[srid]
	r.mu.RUnlock()

	r.metricLookups.Add(context.Background(), 1, metric.WithAttributes(attribute.Bool("found", ok)))
	return p, ok
}

// WithSRIDAndUnits returns the projection registered for the pair, creating
// it when needed. Degree systems need no transform; metric ones must have a
// known transform for the SRID.
func (r *Registry) WithSRIDAndUnits(srid string, units Units) (*Projection, error) {
	key := projectionKey{CanonicalSRID(srid), units}

	r.mu.RLock()
	p, ok := r.byKey[key]
	r.mu.RUnlock()
	if ok {
		return p, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.byKey[key]; ok {
		return p, nil
	}

	p = &Projection{srid: key.srid, name: key.srid, units: units}
	if units == Meters {
		t, ok := r.transforms[key.srid]
		if !ok {
			return nil, fmt.Errorf("%w: no metric transform for %s", ErrUnknownTransform, key.srid)
		}
		p.transform = t
	}
	r.add(p)
	r.log.Debug("projection registered", "srid", p.srid, "units", units.String())
	return p, nil
}

// SRIDs lists the registered identifiers.
func (r *Registry) SRIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.bySRID))
	for srid := range r.bySRID {
		out = append(out, srid)
	}
	return out
}

// CanonicalSRID upper cases srid, prefixes bare codes with EPSG and reduces
// OGC URNs to their short form.
func CanonicalSRID(srid string) string {
	s := strings.ToUpper(strings.TrimSpace(srid))
	if _, err := strconv.Atoi(s); err == nil {
		return "EPSG:" + s
	}
	if rest, ok := strings.CutPrefix(s, "URN:OGC:DEF:CRS:"); ok {
		parts := strings.Split(rest, ":")
		authority, code := parts[0], parts[len(parts)-1]
		if authority == "OGC" && code == "CRS84" {
			return "CRS:84"
		}
		return authority + ":" + code
	}
	return s
}

func builtins() []*Projection {
	out := []*Projection{
		{srid: "EPSG:4326", name: "WGS 84", units: Degrees},
		{srid: "CRS:84", name: "WGS 84 (lon/lat)", units: Degrees},
		{srid: "EPSG:4269", name: "NAD83", units: Degrees},
		{srid: "EPSG:3395", name: "WGS 84 / World Mercator", units: Meters, transform: EllipsoidalMercator{}},
	}
	for _, srid := range []string{"EPSG:3857", "EPSG:900913", "EPSG:102100", "EPSG:102113"} {
		out = append(out, &Projection{srid: srid, name: "WGS 84 / Pseudo-Mercator", units: Meters, transform: SphericalMercator{}})
	}
	for zone := 1; zone <= 60; zone++ {
		out = append(out,
			&Projection{
				srid:      fmt.Sprintf("EPSG:%d", 32600+zone),
				name:      fmt.Sprintf("WGS 84 / UTM zone %dN", zone),
				units:     Meters,
				transform: UTM{Zone: zone},
			},
			&Projection{
				srid:      fmt.Sprintf("EPSG:%d", 32700+zone),
				name:      fmt.Sprintf("WGS 84 / UTM zone %dS", zone),
				units:     Meters,
				transform: UTM{Zone: zone, South: true},
			},
		)
	}
	return out
}
