package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/askdeskhq/askdesk/pkg/adapters/redis"
	"github.com/askdeskhq/askdesk/pkg/domain"
	"github.com/askdeskhq/askdesk/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...redis.Option) *redis.Store {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	ports.RunRecordStoreContract(t, newTestStore(t))
}

func TestRedisStore_Prefix(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, redis.WithPrefix("boards:acme:"))

	inq, err := store.Insert(ctx, domain.Draft{Title: "T", Content: "C", Author: "A"})
	require.NoError(t, err)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, inq.ID, list[0].ID)
}

func TestRedisStore_UpdateSurvivesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	inq, err := store.Insert(ctx, domain.Draft{
		Title: "T", Content: "C", Author: "A", Password: "p", IsSecret: true,
	})
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, inq.ID, domain.AnswerPatch("done")))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	require.NotNil(t, got.Reply)
	assert.Equal(t, "done", *got.Reply)
	assert.Equal(t, domain.StatusAnswered, got.Status)
	// Immutable fields are untouched by the patch.
	assert.Equal(t, "p", got.Password)
	assert.True(t, got.IsSecret)
	assert.Equal(t, inq.CreatedAt, got.CreatedAt)
}
