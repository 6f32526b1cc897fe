package metrics

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// GRPCMetrics instruments unary gRPC calls.
type GRPCMetrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

func NewGRPCMetrics(reg prometheus.Registerer) (*GRPCMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "grpc",
		Name:      "requests_total",
		Help:      "Total number of unary gRPC requests partitioned by method and status code.",
	}, []string{"method", "code"}))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "grpc",
		Name:      "request_duration_seconds",
		Help:      "Unary gRPC request latencies in seconds partitioned by method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"}))
	if err != nil {
		return nil, err
	}

	return &GRPCMetrics{Requests: requests, Duration: duration}, nil
}

// UnaryServerInterceptor records the status code and latency of each call.
func (m *GRPCMetrics) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if m == nil {
			return handler(ctx, req)
		}

		start := time.Now()
		resp, err := handler(ctx, req)

		method := methodName(info.FullMethod)
		m.Requests.WithLabelValues(method, status.Code(err).String()).Inc()
		m.Duration.WithLabelValues(method).Observe(time.Since(start).Seconds())

		return resp, err
	}
}

// methodName strips the service prefix from "/pkg.Service/Method".
func methodName(full string) string {
	if i := strings.LastIndex(full, "/"); i >= 0 && i < len(full)-1 {
		return full[i+1:]
	}
	if full == "" {
		return "unknown"
	}
	return full
}
