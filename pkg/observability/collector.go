package observability

import (
	"context"

	"github.com/askdeskhq/askdesk/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector turns lifecycle events into Prometheus counters.
type Collector struct {
	events *prometheus.CounterVec
}

// NewCollector registers the board's counters on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "askdesk_inquiry_events_total",
			Help: "Inquiry lifecycle events by type and acting capability.",
		},
		[]string{"event", "operator"},
	)
	reg.MustRegister(events)
	return &Collector{events: events}
}

func (c *Collector) record(_ context.Context, ev *domain.Event) {
	operator := "false"
	if ev.Operator {
		operator = "true"
	}
	c.events.WithLabelValues(string(ev.Type), operator).Inc()
}

// Hooks returns lifecycle hooks feeding this collector.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCreated:      c.record,
		OnOpened:       c.record,
		OnReplied:      c.record,
		OnReplyCleared: c.record,
		OnDeleted:      c.record,
		OnAccessDenied: c.record,
	}
}
