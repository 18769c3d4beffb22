// Package redis provides a RecordStore backed by Redis: one JSON value per
// inquiry plus a ZSET index scored by creation time for ordered listing.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/askdeskhq/askdesk/pkg/domain"
	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.RecordStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	now    func() time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithPrefix sets the key prefix for inquiry records.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithClock overrides the CreatedAt source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "askdesk:inquiry:",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// List returns inquiries newest first by walking the index in reverse score
// order. Records missing their value key (expired or half-deleted) are
// pruned from the index lazily.
func (s *Store) List(ctx context.Context) ([]domain.Inquiry, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Inquiry{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	out := make([]domain.Inquiry, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			s.client.ZRem(ctx, s.indexKey(), ids[i])
			continue
		}
		var inq domain.Inquiry
		if err := json.Unmarshal([]byte(raw), &inq); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record %s: %w", ids[i], err)
		}
		out = append(out, inq)
	}
	return out, nil
}

// Insert assigns an ID and CreatedAt and writes value plus index entry in
// one pipeline.
func (s *Store) Insert(ctx context.Context, draft domain.Draft) (*domain.Inquiry, error) {
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

	data, err := json.Marshal(&inq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(inq.ID), data, 0)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		// Microsecond score keeps float64 precision while preserving
		// creation order.
		Score:  float64(inq.CreatedAt.UnixMicro()),
		Member: inq.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	return inq.Clone(), nil
}

// Update rewrites the record with the patch applied. No optimistic locking:
// concurrent writers last-win, as the board's consistency model allows.
func (s *Store) Update(ctx context.Context, id string, patch domain.ReplyPatch) error {
	raw, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to read record: %w", err)
	}

	var inq domain.Inquiry
	if err := json.Unmarshal([]byte(raw), &inq); err != nil {
		return fmt.Errorf("failed to unmarshal record: %w", err)
	}
	inq.Apply(patch)

	data, err := json.Marshal(&inq)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := s.client.Set(ctx, s.key(id), data, backend.KeepTTL).Err(); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// Delete removes the record and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	deleted, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if deleted == 0 {
		return domain.ErrNotFound
	}
	if err := s.client.ZRem(ctx, s.indexKey(), id).Err(); err != nil {
		return fmt.Errorf("failed to prune index: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
