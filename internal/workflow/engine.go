/*
Package workflow owns the inquiry lifecycle: creation, secret-gated opening,
operator replies and deletion. Every gated operation takes an explicit
domain.Capability; authorization failures are resolved locally and never
reach the record store.

The engine keeps an in-memory projection of the board (the cached list and
the currently open detail) that it reconciles against the store after each
mutation. The projection may briefly trail concurrently-mutated remote state;
there is no locking or versioning against the store, only per-inquiry
serialization inside this process.
*/
package workflow

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/askdeskhq/askdesk/internal/logging"
	"github.com/askdeskhq/askdesk/pkg/domain"
	"github.com/askdeskhq/askdesk/pkg/ports"
)

// Prompt and notice copy shown through the dialog port.
const (
	msgSecretPrompt   = "This inquiry is private. Enter the password."
	msgDeletePrompt   = "Enter the password to delete this inquiry."
	msgPasswordWrong  = "The password does not match."
	msgConfirmClear   = "Really delete this reply?"
	msgConfirmDelete  = "Delete this inquiry with operator privileges?"
	titleSecretAccess = "Private inquiry"
	titleDelete       = "Delete inquiry"
)

// Engine is the inquiry workflow core.
type Engine struct {
	store    ports.RecordStore
	dialog   ports.Dialog
	verifier ports.SecretVerifier
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	now      func() time.Time

	locks *keyedLocks

	mu        sync.RWMutex
	inquiries []domain.Inquiry
	selected  *domain.Inquiry
}

// Option configures the Engine.
type Option func(*Engine)

// WithVerifier replaces the secret comparison strategy.
func WithVerifier(v ports.SecretVerifier) Option {
	return func(e *Engine) {
		e.verifier = v
	}
}

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock overrides the event timestamp source (tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an engine over the given store and dialog surface.
func New(store ports.RecordStore, dlg ports.Dialog, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		dialog:   dlg,
		verifier: ports.PlainVerifier{},
		logger:   logging.NewNop(),
		now:      time.Now,
		locks:    newKeyedLocks(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// List refreshes the cached projection from the store and returns it newest
// first. On store failure the prior projection is retained and a
// domain.StoreError is returned for display.
func (e *Engine) List(ctx context.Context) ([]domain.Inquiry, error) {
	fresh, err := e.store.List(ctx)
	if err != nil {
		e.logger.Warn("list refresh failed, keeping cached view", "err", err)
		cached, _ := e.Inquiries()
		return cached, &domain.StoreError{Op: "list", Err: err}
	}

	e.mu.Lock()
	e.inquiries = fresh
	e.mu.Unlock()

	return e.Inquiries()
}

// Inquiries returns a copy of the cached projection without touching the
// store.
func (e *Engine) Inquiries() ([]domain.Inquiry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]domain.Inquiry, 0, len(e.inquiries))
	for i := range e.inquiries {
		out = append(out, *e.inquiries[i].Clone())
	}
	return out, nil
}

// Selected returns the currently open detail record, or nil.
func (e *Engine) Selected() *domain.Inquiry {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.selected == nil {
		return nil
	}
	return e.selected.Clone()
}

// Deselect closes the open detail view.
func (e *Engine) Deselect() {
	e.mu.Lock()
	e.selected = nil
	e.mu.Unlock()
}

// Create validates the draft and inserts it, then refreshes the projection
// so the server-assigned ID and CreatedAt become visible. Validation fails
// before any store call.
func (e *Engine) Create(ctx context.Context, draft domain.Draft) (*domain.Inquiry, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	inserted, err := e.store.Insert(ctx, draft)
	if err != nil {
		return nil, &domain.StoreError{Op: "insert", Err: err}
	}

	e.emit(ctx, e.hooks.OnCreated, domain.EventCreated, inserted.ID, domain.Visitor)
	e.refresh(ctx)
	return inserted, nil
}

// Open resolves the detail view for an inquiry. Secret records demand a
// password prompt unless the capability is privileged; a cancelled prompt or
// a mismatch fails with domain.ErrAccessDenied and leaves the record closed.
func (e *Engine) Open(ctx context.Context, cap domain.Capability, id string) (*domain.Inquiry, error) {
	inq, err := e.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	if inq.IsSecret && !cap.Operator {
		candidate, err := e.dialog.Prompt(ctx, msgSecretPrompt, domain.DialogOptions{
			Title:       titleSecretAccess,
			SecretInput: true,
		})
		if err != nil {
			return nil, err
		}
		if candidate == nil || !e.verifier.Verify(*candidate, inq) {
			e.notifyMismatch(ctx)
			e.emit(ctx, e.hooks.OnAccessDenied, domain.EventAccessDenied, inq.ID, cap)
			return nil, domain.ErrAccessDenied
		}
	}

	e.mu.Lock()
	e.selected = inq.Clone()
	e.mu.Unlock()

	e.emit(ctx, e.hooks.OnOpened, domain.EventOpened, inq.ID, cap)
	return inq, nil
}

// Reply publishes an operator answer. The capability is checked before any
// store call; the cached projection and the open detail are patched
// optimistically once the store accepts the update.
func (e *Engine) Reply(ctx context.Context, cap domain.Capability, id, text string) (*domain.Inquiry, error) {
	if !cap.Operator {
		return nil, domain.ErrNotAuthorized
	}

	// Resolve the record first so a cold cache still yields a patched copy.
	if _, err := e.lookup(ctx, id); err != nil {
		return nil, err
	}

	var updated *domain.Inquiry
	err := e.locks.withLock(id, func() error {
		patch := domain.AnswerPatch(text)
		if err := e.store.Update(ctx, id, patch); err != nil {
			return e.storeErr("update", err)
		}
		updated = e.patchLocal(id, patch)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.emit(ctx, e.hooks.OnReplied, domain.EventReplied, id, cap)
	e.refresh(ctx)
	return updated, nil
}

// ClearReply removes an operator answer after a confirmation dialog.
// Declining the confirmation aborts with no store call and no error,
// returning the unchanged record.
func (e *Engine) ClearReply(ctx context.Context, cap domain.Capability, id string) (*domain.Inquiry, error) {
	if !cap.Operator {
		return nil, domain.ErrNotAuthorized
	}

	inq, err := e.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := e.dialog.Confirm(ctx, msgConfirmClear, domain.DialogOptions{})
	if err != nil {
		return nil, err
	}
	if !ok {
		return inq, nil
	}

	var updated *domain.Inquiry
	err = e.locks.withLock(id, func() error {
		patch := domain.ClearPatch()
		if err := e.store.Update(ctx, id, patch); err != nil {
			return e.storeErr("update", err)
		}
		updated = e.patchLocal(id, patch)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.emit(ctx, e.hooks.OnReplyCleared, domain.EventReplyCleared, id, cap)
	e.refresh(ctx)
	return updated, nil
}

// Delete removes an inquiry. Operators confirm via dialog; everyone else
// must submit the record's password. Success clears a matching open detail
// view and refreshes the projection.
func (e *Engine) Delete(ctx context.Context, cap domain.Capability, id string) error {
	inq, err := e.lookup(ctx, id)
	if err != nil {
		return err
	}

	if cap.Operator {
		ok, err := e.dialog.Confirm(ctx, msgConfirmDelete, domain.DialogOptions{Title: titleDelete})
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	} else {
		candidate, err := e.dialog.Prompt(ctx, msgDeletePrompt, domain.DialogOptions{
			Title:       titleDelete,
			SecretInput: true,
		})
		if err != nil {
			return err
		}
		if candidate == nil || !e.verifier.Verify(*candidate, inq) {
			e.notifyMismatch(ctx)
			e.emit(ctx, e.hooks.OnAccessDenied, domain.EventAccessDenied, inq.ID, cap)
			return domain.ErrAccessDenied
		}
	}

	err = e.locks.withLock(id, func() error {
		if err := e.store.Delete(ctx, id); err != nil {
			return e.storeErr("delete", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	if e.selected != nil && e.selected.ID == id {
		e.selected = nil
	}
	e.dropLocal(id)
	e.mu.Unlock()

	e.emit(ctx, e.hooks.OnDeleted, domain.EventDeleted, id, cap)
	e.refresh(ctx)
	return nil
}

// lookup finds an inquiry in the cached projection, refreshing once from
// the store on a miss so records created out of band are still reachable.
func (e *Engine) lookup(ctx context.Context, id string) (*domain.Inquiry, error) {
	if inq := e.cached(id); inq != nil {
		return inq, nil
	}
	if _, err := e.List(ctx); err != nil {
		return nil, err
	}
	if inq := e.cached(id); inq != nil {
		return inq, nil
	}
	return nil, domain.ErrNotFound
}

func (e *Engine) cached(id string) *domain.Inquiry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for i := range e.inquiries {
		if e.inquiries[i].ID == id {
			return e.inquiries[i].Clone()
		}
	}
	return nil
}

// patchLocal applies the optimistic projection update: the cached entry and
// the open detail reflect the mutation before the reconciling refresh lands.
func (e *Engine) patchLocal(id string, patch domain.ReplyPatch) *domain.Inquiry {
	e.mu.Lock()
	defer e.mu.Unlock()

	var updated *domain.Inquiry
	for i := range e.inquiries {
		if e.inquiries[i].ID == id {
			e.inquiries[i].Apply(patch)
			updated = e.inquiries[i].Clone()
			break
		}
	}
	if e.selected != nil && e.selected.ID == id {
		e.selected.Apply(patch)
		if updated == nil {
			updated = e.selected.Clone()
		}
	}
	return updated
}

func (e *Engine) dropLocal(id string) {
	for i := range e.inquiries {
		if e.inquiries[i].ID == id {
			e.inquiries = append(e.inquiries[:i], e.inquiries[i+1:]...)
			return
		}
	}
}

// refresh reconciles the projection with the store after a successful
// mutation. Its failure is logged, never propagated: the mutation itself
// already succeeded and the view stays eventually consistent.
func (e *Engine) refresh(ctx context.Context) {
	if _, err := e.List(ctx); err != nil {
		e.logger.Warn("post-mutation refresh failed", "err", err)
	}
}

// notifyMismatch surfaces the password rejection. A failing alert only gets
// logged; the denial result carries the outcome.
func (e *Engine) notifyMismatch(ctx context.Context) {
	if err := e.dialog.Alert(ctx, msgPasswordWrong, domain.DialogOptions{}); err != nil {
		e.logger.Debug("mismatch notice not shown", "err", err)
	}
}

func (e *Engine) storeErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return &domain.StoreError{Op: op, Err: err}
}

func (e *Engine) emit(ctx context.Context, hook func(context.Context, *domain.Event), t domain.EventType, id string, cap domain.Capability) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.Event{
		Timestamp: e.now().UTC(),
		Type:      t,
		InquiryID: id,
		Operator:  cap.Operator,
	})
}
