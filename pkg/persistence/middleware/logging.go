package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/askdeskhq/askdesk/pkg/domain"
	"github.com/askdeskhq/askdesk/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.RecordStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call with its duration. Successes
// log at Debug, failures at Warn.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.RecordStore) ports.RecordStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) observe(op string, start time.Time, err error) {
	elapsed := time.Since(start)
	if err != nil {
		m.logger.Warn("store call failed", "op", op, "duration", elapsed, "err", err)
		return
	}
	m.logger.Debug("store call", "op", op, "duration", elapsed)
}

func (m *loggingMiddleware) List(ctx context.Context) ([]domain.Inquiry, error) {
	start := time.Now()
	out, err := m.next.List(ctx)
	m.observe("list", start, err)
	return out, err
}

func (m *loggingMiddleware) Insert(ctx context.Context, draft domain.Draft) (*domain.Inquiry, error) {
	start := time.Now()
	out, err := m.next.Insert(ctx, draft)
	m.observe("insert", start, err)
	return out, err
}

func (m *loggingMiddleware) Update(ctx context.Context, id string, patch domain.ReplyPatch) error {
	start := time.Now()
	err := m.next.Update(ctx, id, patch)
	m.observe("update", start, err)
	return err
}

func (m *loggingMiddleware) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.observe("delete", start, err)
	return err
}
