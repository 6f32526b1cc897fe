// Package metrics exposes Prometheus collectors for the account flows and
// for both transports.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

const namespace = "gophauth"

// Flow names used as the "flow" label.
const (
	FlowSignUp = "signup"
	FlowLogin  = "login"
)

// FlowMetrics counts sign-up and login outcomes.
type FlowMetrics struct {
	Outcomes *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewFlowMetrics registers the flow collectors with reg, falling back to the
// default registerer when reg is nil.
func NewFlowMetrics(reg prometheus.Registerer) (*FlowMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	outcomes, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "flow",
		Name:      "outcomes_total",
		Help:      "Account flow completions partitioned by flow and outcome.",
	}, []string{"flow", "outcome"}))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "flow",
		Name:      "duration_seconds",
		Help:      "Account flow latency in seconds partitioned by flow.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"flow"}))
	if err != nil {
		return nil, err
	}

	return &FlowMetrics{Outcomes: outcomes, Duration: duration}, nil
}

// Observe records one completed flow. A nil receiver is a no-op.
func (m *FlowMetrics) Observe(flow string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(flow, Outcome(err)).Inc()
	m.Duration.WithLabelValues(flow).Observe(elapsed.Seconds())
}

// Outcome maps a flow error to a low-cardinality label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, common.ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, common.ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, common.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, common.ErrAccountNotFound):
		return "not_found"
	case errors.Is(err, common.ErrInactiveAccount):
		return "inactive"
	case errors.Is(err, common.ErrPersistenceFailure):
		return "persistence_failure"
	default:
		return "internal"
	}
}

// register adds c to reg, reusing an identical collector registered earlier.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(T); ok {
			return existing, nil
		}
		return c, fmt.Errorf("existing collector has unexpected type %T", already.ExistingCollector)
	}
	return c, fmt.Errorf("register collector: %w", err)
}
