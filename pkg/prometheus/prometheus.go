// Package prometheus provides a fieldz.MetricsProvider backed by Prometheus
// client_golang collectors.
package prometheus

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zoobzio/fieldz"
)

// Provider records field validation activity as Prometheus metrics. All
// series are labeled with the field's name (see fieldz.Field.Name).
type Provider struct {
	validations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	transitions *prometheus.CounterVec
	changes     *prometheus.CounterVec
	faults      *prometheus.CounterVec
	state       *prometheus.GaugeVec
}

// Option configures a Provider.
type Option func(*config)

type config struct {
	namespace string
	subsystem string
}

// WithNamespace sets the metric namespace. Default: "fieldz".
func WithNamespace(ns string) Option {
	return func(c *config) {
		c.namespace = ns
	}
}

// WithSubsystem sets the metric subsystem. Default: "field".
func WithSubsystem(s string) Option {
	return func(c *config) {
		c.subsystem = s
	}
}

// New creates a Provider and registers its collectors with reg.
func New(reg prometheus.Registerer, opts ...Option) (*Provider, error) {
	if reg == nil {
		return nil, errors.New("nil registerer")
	}

	cfg := &config{
		namespace: "fieldz",
		subsystem: "field",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	p := &Provider{
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.namespace,
				Subsystem: cfg.subsystem,
				Name:      "validations_total",
				Help:      "Total number of completed validation passes by result",
			},
			[]string{"field", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.namespace,
				Subsystem: cfg.subsystem,
				Name:      "validation_duration_seconds",
				Help:      "Time spent in the validator function",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"field"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.namespace,
				Subsystem: cfg.subsystem,
				Name:      "state_transitions_total",
				Help:      "Total number of validation state transitions",
			},
			[]string{"field", "from", "to"},
		),
		changes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.namespace,
				Subsystem: cfg.subsystem,
				Name:      "value_changes_total",
				Help:      "Total number of accepted value changes",
			},
			[]string{"field"},
		),
		faults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.namespace,
				Subsystem: cfg.subsystem,
				Name:      "validator_faults_total",
				Help:      "Total number of validator panics",
			},
			[]string{"field"},
		),
		state: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.namespace,
				Subsystem: cfg.subsystem,
				Name:      "state",
				Help:      "Current validation state (0=unchecked, 1=valid, 2=invalid)",
			},
			[]string{"field"},
		),
	}

	for _, c := range []prometheus.Collector{
		p.validations, p.duration, p.transitions, p.changes, p.faults, p.state,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return p, nil
}

// OnStateChange implements fieldz.MetricsProvider.
func (p *Provider) OnStateChange(field string, from, to fieldz.State) {
	p.transitions.WithLabelValues(field, from.String(), to.String()).Inc()
	p.state.WithLabelValues(field).Set(float64(to))
}

// OnValidation implements fieldz.MetricsProvider.
func (p *Provider) OnValidation(field string, valid bool, duration time.Duration) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	p.validations.WithLabelValues(field, result).Inc()
	p.duration.WithLabelValues(field).Observe(duration.Seconds())
}

// OnValueChanged implements fieldz.MetricsProvider.
func (p *Provider) OnValueChanged(field string) {
	p.changes.WithLabelValues(field).Inc()
}

// OnValidatorFault implements fieldz.MetricsProvider.
func (p *Provider) OnValidatorFault(field string) {
	p.faults.WithLabelValues(field).Inc()
}

// Ensure Provider implements fieldz.MetricsProvider.
var _ fieldz.MetricsProvider = (*Provider)(nil)
