// Package observability bridges the kernel's lifecycle hooks to Prometheus
// metrics. Hosts register the collector's hooks on the kernel and expose the
// registry through promhttp.
package observability

import (
	"context"

	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector turns lifecycle events into Prometheus metrics.
type Collector struct {
	steps           *prometheus.CounterVec
	bindingFailures *prometheus.CounterVec
	launches        *prometheus.CounterVec
	serviceDuration *prometheus.HistogramVec
}

// NewCollector creates a collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kestrel_steps_total",
				Help: "Workflow steps by outcome (ok, invalid, skipped)",
			},
			[]string{"service", "result"},
		),
		bindingFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kestrel_binding_failures_total",
				Help: "Required inputs that could not be bound",
			},
			[]string{"service", "key"},
		),
		launches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kestrel_launches_total",
				Help: "Navigator launches by resolution outcome",
			},
			[]string{"found"},
		),
		serviceDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "kestrel_service_duration_seconds",
				Help: "Duration of service invocations",
			},
			[]string{"service"},
		),
	}
	reg.MustRegister(c.steps, c.bindingFailures, c.launches, c.serviceDuration)
	return c
}

// Hooks returns the lifecycle hooks feeding this collector.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepSkipped: func(_ context.Context, e *domain.StepEvent) {
			c.steps.WithLabelValues(e.Service, "skipped").Inc()
		},
		OnBindingFailure: func(_ context.Context, e *domain.BindingEvent) {
			c.bindingFailures.WithLabelValues(e.Service, e.Key).Inc()
		},
		OnServiceReturn: func(_ context.Context, e *domain.StepEvent) {
			result := "ok"
			if !e.Valid {
				result = "invalid"
			}
			c.steps.WithLabelValues(e.Service, result).Inc()
			c.serviceDuration.WithLabelValues(e.Service).Observe(e.Duration.Seconds())
		},
		OnLaunch: func(_ context.Context, e *domain.LaunchEvent) {
			found := "false"
			if e.Found {
				found = "true"
			}
			c.launches.WithLabelValues(found).Inc()
		},
	}
}
