package workflow_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdeskhq/askdesk/internal/workflow"
	"github.com/askdeskhq/askdesk/pkg/adapters/memory"
	"github.com/askdeskhq/askdesk/pkg/dialog"
	"github.com/askdeskhq/askdesk/pkg/domain"
	"github.com/askdeskhq/askdesk/pkg/ports"
)

var errBackendDown = errors.New("backend down")

// flakyStore wraps a real store and counts calls; any method can be forced
// to fail.
type flakyStore struct {
	inner ports.RecordStore

	mu       sync.Mutex
	calls    map[string]int
	failList bool
	failMut  bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{inner: memory.NewStore(), calls: make(map[string]int)}
}

func (s *flakyStore) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *flakyStore) record(op string) {
	s.mu.Lock()
	s.calls[op]++
	s.mu.Unlock()
}

func (s *flakyStore) List(ctx context.Context) ([]domain.Inquiry, error) {
	s.record("list")
	if s.failList {
		return nil, errBackendDown
	}
	return s.inner.List(ctx)
}

func (s *flakyStore) Insert(ctx context.Context, draft domain.Draft) (*domain.Inquiry, error) {
	s.record("insert")
	if s.failMut {
		return nil, errBackendDown
	}
	return s.inner.Insert(ctx, draft)
}

func (s *flakyStore) Update(ctx context.Context, id string, patch domain.ReplyPatch) error {
	s.record("update")
	if s.failMut {
		return errBackendDown
	}
	return s.inner.Update(ctx, id, patch)
}

func (s *flakyStore) Delete(ctx context.Context, id string) error {
	s.record("delete")
	if s.failMut {
		return errBackendDown
	}
	return s.inner.Delete(ctx, id)
}

func TestReplyWithoutOperatorNeverReachesStore(t *testing.T) {
	store := newFlakyStore()
	eng := workflow.New(store, dialog.NewScripted())
	created, err := eng.Create(context.Background(), domain.Draft{
		Title: "T", Content: "C", Author: "A",
	})
	require.NoError(t, err)
	updatesBefore := store.count("update")

	_, err = eng.Reply(context.Background(), domain.Visitor, created.ID, "nope")
	require.ErrorIs(t, err, domain.ErrNotAuthorized)

	_, err = eng.ClearReply(context.Background(), domain.Visitor, created.ID)
	require.ErrorIs(t, err, domain.ErrNotAuthorized)

	assert.Equal(t, updatesBefore, store.count("update"))
}

func TestListFailureKeepsCachedView(t *testing.T) {
	store := newFlakyStore()
	eng := workflow.New(store, dialog.NewScripted())
	_, err := eng.Create(context.Background(), domain.Draft{
		Title: "Cached", Content: "Still here.", Author: "kim",
	})
	require.NoError(t, err)
	_, err = eng.List(context.Background())
	require.NoError(t, err)

	store.failList = true
	listed, err := eng.List(context.Background())

	var serr *domain.StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "list", serr.Op)
	require.Len(t, listed, 1)
	assert.Equal(t, "Cached", listed[0].Title)
}

func TestMutationFailureWrapsStoreError(t *testing.T) {
	store := newFlakyStore()
	dlg := dialog.NewScripted()
	eng := workflow.New(store, dlg)
	created, err := eng.Create(context.Background(), domain.Draft{
		Title: "T", Content: "C", Author: "A",
	})
	require.NoError(t, err)

	store.failMut = true

	_, err = eng.Reply(context.Background(), domain.AsOperator, created.ID, "x")
	var serr *domain.StoreError
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, errBackendDown)

	dlg.QueueConfirm(true)
	err = eng.Delete(context.Background(), domain.AsOperator, created.ID)
	require.ErrorAs(t, err, &serr)

	// The failed reply must not leak into the projection.
	listed, lerr := eng.Inquiries()
	require.NoError(t, lerr)
	require.Len(t, listed, 1)
	assert.Nil(t, listed[0].Reply)
}

func TestReplyOnColdCacheResolvesRecord(t *testing.T) {
	store := memory.NewStore()
	seeded, err := store.Insert(context.Background(), domain.Draft{
		Title: "Persisted", Content: "Survived a restart.", Author: "kim",
	})
	require.NoError(t, err)

	// A fresh engine over the same store has no cached projection yet.
	eng := workflow.New(store, dialog.NewScripted())

	updated, err := eng.Reply(context.Background(), domain.AsOperator, seeded.ID, "back online")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, domain.StatusAnswered, updated.Status)
	require.NotNil(t, updated.Reply)
	assert.Equal(t, "back online", *updated.Reply)
}

func TestUpdateUnknownIDSurfacesNotFound(t *testing.T) {
	eng := workflow.New(memory.NewStore(), dialog.NewScripted())

	_, err := eng.Reply(context.Background(), domain.AsOperator, "missing", "x")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLifecycleHooksFire(t *testing.T) {
	var (
		mu     sync.Mutex
		events []domain.EventType
	)
	capture := func(_ context.Context, ev *domain.Event) {
		mu.Lock()
		events = append(events, ev.Type)
		mu.Unlock()
	}
	fixed := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	dlg := dialog.NewScripted()
	eng := workflow.New(memory.NewStore(), dlg,
		workflow.WithClock(func() time.Time { return fixed }),
		workflow.WithLifecycleHooks(domain.LifecycleHooks{
			OnCreated:      capture,
			OnOpened:       capture,
			OnReplied:      capture,
			OnDeleted:      capture,
			OnAccessDenied: capture,
		}),
	)

	created, err := eng.Create(context.Background(), domain.Draft{
		Title: "T", Content: "C", Author: "A", Password: "pw", IsSecret: true,
	})
	require.NoError(t, err)

	dlg.QueuePromptCancel()
	_, err = eng.Open(context.Background(), domain.Visitor, created.ID)
	require.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = eng.Open(context.Background(), domain.AsOperator, created.ID)
	require.NoError(t, err)

	_, err = eng.Reply(context.Background(), domain.AsOperator, created.ID, "done")
	require.NoError(t, err)

	dlg.QueueConfirm(true)
	require.NoError(t, eng.Delete(context.Background(), domain.AsOperator, created.ID))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.EventType{
		domain.EventCreated,
		domain.EventAccessDenied,
		domain.EventOpened,
		domain.EventReplied,
		domain.EventDeleted,
	}, events)
}

func TestContextAnswersDriveTheGates(t *testing.T) {
	eng := workflow.New(memory.NewStore(), dialog.Answers{})
	created, err := eng.Create(context.Background(), domain.Draft{
		Title: "T", Content: "C", Author: "A", Password: "pw", IsSecret: true,
	})
	require.NoError(t, err)

	_, err = eng.Open(context.Background(), domain.Visitor, created.ID)
	require.ErrorIs(t, err, domain.ErrAccessDenied, "no carried answer behaves like a dismissed prompt")

	ctx := dialog.WithPromptAnswer(context.Background(), "pw")
	opened, err := eng.Open(ctx, domain.Visitor, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, opened.ID)

	ctx = dialog.WithConfirm(context.Background(), true)
	_, err = eng.Reply(ctx, domain.AsOperator, created.ID, "r")
	require.NoError(t, err)
	_, err = eng.ClearReply(ctx, domain.AsOperator, created.ID)
	require.NoError(t, err)
}
