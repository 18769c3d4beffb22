// Package memory provides an in-memory RecordStore, used by tests and by
// the interactive board when no backend is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/askdeskhq/askdesk/pkg/domain"
	"github.com/google/uuid"
)

type record struct {
	inquiry domain.Inquiry
	seq     uint64
}

// Store implements ports.RecordStore in memory.
// Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string]*record
	seq  uint64
	now  func() time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithClock overrides the CreatedAt source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data: make(map[string]*record),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all inquiries ordered by CreatedAt descending, ties broken by
// insertion order (newer insert first).
func (s *Store) List(ctx context.Context) ([]domain.Inquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*record, 0, len(s.data))
	for _, r := range s.data {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].inquiry.CreatedAt.Equal(records[j].inquiry.CreatedAt) {
			return records[i].inquiry.CreatedAt.After(records[j].inquiry.CreatedAt)
		}
		return records[i].seq > records[j].seq
	})

	out := make([]domain.Inquiry, 0, len(records))
	for _, r := range records {
		out = append(out, *r.inquiry.Clone())
	}
	return out, nil
}

// Insert assigns an ID and CreatedAt and stores the new inquiry.
func (s *Store) Insert(ctx context.Context, draft domain.Draft) (*domain.Inquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	inq := domain.Inquiry{
		ID:        uuid.NewString(),
		Title:     draft.Title,
		Content:   draft.Content,
		Author:    draft.Author,
		Password:  draft.Password,
		IsSecret:  draft.IsSecret,
		CreatedAt: s.now().UTC(),
		Status:    domain.StatusPending,
	}
	s.data[inq.ID] = &record{inquiry: inq, seq: s.seq}

	return inq.Clone(), nil
}

// Update applies a reply patch to the stored inquiry.
func (s *Store) Update(ctx context.Context, id string, patch domain.ReplyPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.data[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.inquiry.Apply(patch)
	return nil
}

// Delete removes the inquiry.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.data, id)
	return nil
}
