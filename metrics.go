package fieldz

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key field events.
// See pkg/prometheus for a client_golang implementation.
type MetricsProvider interface {
	// OnStateChange is called when a field transitions between states.
	OnStateChange(field string, from, to State)

	// OnValidation is called after every completed validation pass.
	// Duration is the time spent inside the validator function.
	OnValidation(field string, valid bool, duration time.Duration)

	// OnValueChanged is called when a field accepts a new value.
	OnValueChanged(field string)

	// OnValidatorFault is called when the validator function panics.
	OnValidatorFault(field string)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnStateChange(_ string, _, _ State)             {}
func (NoOpMetricsProvider) OnValidation(_ string, _ bool, _ time.Duration) {}
func (NoOpMetricsProvider) OnValueChanged(_ string)                        {}
func (NoOpMetricsProvider) OnValidatorFault(_ string)                      {}
