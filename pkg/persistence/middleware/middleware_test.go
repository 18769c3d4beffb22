package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/askdeskhq/askdesk/pkg/domain"
	"github.com/askdeskhq/askdesk/pkg/persistence/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware_PassesThroughAndLogs(t *testing.T) {
	ctx := context.Background()
	mock := newMockStore()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store := middleware.NewLoggingMiddleware(logger)(mock)

	_, err := store.Insert(ctx, domain.Draft{Title: "T", Content: "C", Author: "A"})
	require.NoError(t, err)
	assert.Equal(t, 1, mock.calls["insert"])
	assert.Contains(t, buf.String(), "op=insert")

	buf.Reset()
	mock.fail = errBackend
	_, err = store.List(ctx)
	require.ErrorIs(t, err, errBackend)
	assert.Contains(t, buf.String(), "store call failed")
}

func TestMetricsMiddleware_CountsOutcomes(t *testing.T) {
	ctx := context.Background()
	mock := newMockStore()
	reg := prometheus.NewRegistry()

	store := middleware.NewMetricsMiddleware(reg)(mock)

	_, err := store.List(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Update(ctx, "id", domain.ClearPatch()))

	mock.fail = errBackend
	require.ErrorIs(t, store.Delete(ctx, "id"), errBackend)

	families, err := reg.Gather()
	require.NoError(t, err)

	outcomes := map[string]float64{}
	for _, fam := range families {
		if fam.GetName() != "askdesk_store_requests_total" {
			continue
		}
		for _, m := range fam.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "outcome" {
					outcomes[label.GetValue()] += m.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, float64(2), outcomes["ok"])
	assert.Equal(t, float64(1), outcomes["error"])
}

func TestChain_OrdersOutermostFirst(t *testing.T) {
	ctx := context.Background()
	mock := newMockStore()
	reg := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	store := middleware.Chain(mock,
		middleware.NewLoggingMiddleware(logger),
		middleware.NewMetricsMiddleware(reg),
	)

	_, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, mock.calls["list"])
}
