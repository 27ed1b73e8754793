package projection

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type extra struct {
	srid      string
	name      string
	transform Transform
}

type options struct {
	logger *slog.Logger
	meter  metric.Meter
	extras []extra
}

func defaultOptions() options {
	return options{
		logger: slog.Default(),
		meter:  otel.Meter("github.com/royalcat/mapcore/projection"),
	}
}

type Option interface {
	apply(*options)
}

type loggerOption struct{ l *slog.Logger }

func (l loggerOption) apply(o *options) {
	o.logger = l.l
}

func WithLogger(l *slog.Logger) Option {
	return loggerOption{l}
}

type meterOption struct{ m metric.Meter }

func (m meterOption) apply(o *options) {
	o.meter = m.m
}

func WithMeter(m metric.Meter) Option {
	return meterOption{m}
}

// WithProjection registers an additional metric projection alongside the
// built-ins.
func WithProjection(srid, name string, t Transform) Option {
	return extra{srid: srid, name: name, transform: t}
}

func (e extra) apply(o *options) {
	o.extras = append(o.extras, e)
}
