package middleware

import (
	"context"
	"time"

	"github.com/askdeskhq/askdesk/pkg/domain"
	"github.com/askdeskhq/askdesk/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

type metricsMiddleware struct {
	next     ports.RecordStore
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

// NewMetricsMiddleware instruments every store call with a duration
// histogram and an outcome counter, both labeled by operation.
func NewMetricsMiddleware(reg prometheus.Registerer) Middleware {
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "askdesk_store_request_duration_seconds",
			Help:    "Latency of record store calls.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
	total := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "askdesk_store_requests_total",
			Help: "Record store calls by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)
	reg.MustRegister(duration, total)

	return func(next ports.RecordStore) ports.RecordStore {
		return &metricsMiddleware{next: next, duration: duration, total: total}
	}
}

func (m *metricsMiddleware) observe(op string, start time.Time, err error) {
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.total.WithLabelValues(op, outcome).Inc()
}

func (m *metricsMiddleware) List(ctx context.Context) ([]domain.Inquiry, error) {
	start := time.Now()
	out, err := m.next.List(ctx)
	m.observe("list", start, err)
	return out, err
}

func (m *metricsMiddleware) Insert(ctx context.Context, draft domain.Draft) (*domain.Inquiry, error) {
	start := time.Now()
	out, err := m.next.Insert(ctx, draft)
	m.observe("insert", start, err)
	return out, err
}

func (m *metricsMiddleware) Update(ctx context.Context, id string, patch domain.ReplyPatch) error {
	start := time.Now()
	err := m.next.Update(ctx, id, patch)
	m.observe("update", start, err)
	return err
}

func (m *metricsMiddleware) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.observe("delete", start, err)
	return err
}
