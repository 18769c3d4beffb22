package askdesk

import (
	"log/slog"
	"time"

	"github.com/askdeskhq/askdesk/internal/workflow"
	"github.com/askdeskhq/askdesk/pkg/domain"
	"github.com/askdeskhq/askdesk/pkg/ports"
)

// Version is the library and binary version.
const Version = "0.2.0"

// Board is the high-level entry point for the askdesk library. It wraps the
// internal workflow engine and exposes the inquiry lifecycle against a
// record store and a dialog surface.
type Board struct {
	*workflow.Engine
}

// Option configures a Board.
type Option func(*settings)

type settings struct {
	workflowOpts []workflow.Option
}

// WithLogger sets a structured logger for the board.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.workflowOpts = append(s.workflowOpts, workflow.WithLogger(logger))
	}
}

// WithLifecycleHooks registers observability hooks for inquiry events.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.workflowOpts = append(s.workflowOpts, workflow.WithLifecycleHooks(hooks))
	}
}

// WithVerifier replaces the password comparison strategy.
func WithVerifier(v ports.SecretVerifier) Option {
	return func(s *settings) {
		s.workflowOpts = append(s.workflowOpts, workflow.WithVerifier(v))
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.workflowOpts = append(s.workflowOpts, workflow.WithClock(now))
	}
}

// New creates a Board over the given store and dialog surface.
func New(store ports.RecordStore, dlg ports.Dialog, opts ...Option) *Board {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return &Board{Engine: workflow.New(store, dlg, s.workflowOpts...)}
}
