package middleware_test

import (
	"context"
	"errors"

	"github.com/askdeskhq/askdesk/pkg/domain"
)

// mockStore counts calls and can be forced to fail, so middleware behavior
// can be asserted without a real backend.
type mockStore struct {
	calls map[string]int
	fail  error
}

func newMockStore() *mockStore {
	return &mockStore{calls: make(map[string]int)}
}

var errBackend = errors.New("backend down")

func (m *mockStore) List(ctx context.Context) ([]domain.Inquiry, error) {
	m.calls["list"]++
	if m.fail != nil {
		return nil, m.fail
	}
	return []domain.Inquiry{}, nil
}

func (m *mockStore) Insert(ctx context.Context, draft domain.Draft) (*domain.Inquiry, error) {
	m.calls["insert"]++
	if m.fail != nil {
		return nil, m.fail
	}
	return &domain.Inquiry{ID: "mock", Title: draft.Title, Status: domain.StatusPending}, nil
}

func (m *mockStore) Update(ctx context.Context, id string, patch domain.ReplyPatch) error {
	m.calls["update"]++
	return m.fail
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	m.calls["delete"]++
	return m.fail
}
