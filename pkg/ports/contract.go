package ports

import (
	"context"
	"testing"
	"time"

	"github.com/askdeskhq/askdesk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRecordStoreContract runs a suite of tests to verify that a RecordStore
// implementation adheres to the defined interface contract. Every adapter's
// test file calls this against a fresh store.
func RunRecordStoreContract(t *testing.T, store RecordStore) {
	ctx := context.Background()

	t.Run("Insert assigns identity and defaults", func(t *testing.T) {
		inq, err := store.Insert(ctx, domain.Draft{Title: "T", Content: "C", Author: "A"})
		require.NoError(t, err, "Insert should not return error")

		assert.NotEmpty(t, inq.ID)
		assert.False(t, inq.CreatedAt.IsZero(), "store must assign CreatedAt")
		assert.Equal(t, domain.StatusPending, inq.Status)
		assert.Nil(t, inq.Reply)
	})

	t.Run("List newest first", func(t *testing.T) {
		first, err := store.Insert(ctx, domain.Draft{Title: "first", Content: "C", Author: "A"})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
		second, err := store.Insert(ctx, domain.Draft{Title: "second", Content: "C", Author: "A"})
		require.NoError(t, err)

		list, err := store.List(ctx)
		require.NoError(t, err)

		posFirst, posSecond := -1, -1
		for i, item := range list {
			switch item.ID {
			case first.ID:
				posFirst = i
			case second.ID:
				posSecond = i
			}
		}
		require.NotEqual(t, -1, posFirst, "first insert missing from List")
		require.NotEqual(t, -1, posSecond, "second insert missing from List")
		assert.Less(t, posSecond, posFirst, "newer record must come first")
		for i := 1; i < len(list); i++ {
			assert.False(t, list[i-1].CreatedAt.Before(list[i].CreatedAt),
				"List must be ordered by CreatedAt descending")
		}
	})

	t.Run("Update applies reply and status together", func(t *testing.T) {
		inq, err := store.Insert(ctx, domain.Draft{Title: "T", Content: "C", Author: "A"})
		require.NoError(t, err)

		require.NoError(t, store.Update(ctx, inq.ID, domain.AnswerPatch("done")))

		updated := findInquiry(t, store, inq.ID)
		require.NotNil(t, updated.Reply)
		assert.Equal(t, "done", *updated.Reply)
		assert.Equal(t, domain.StatusAnswered, updated.Status)

		require.NoError(t, store.Update(ctx, inq.ID, domain.ClearPatch()))

		cleared := findInquiry(t, store, inq.ID)
		assert.Nil(t, cleared.Reply)
		assert.Equal(t, domain.StatusPending, cleared.Status)
	})

	t.Run("Update non-existent", func(t *testing.T) {
		err := store.Update(ctx, "no-such-id", domain.AnswerPatch("x"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		inq, err := store.Insert(ctx, domain.Draft{Title: "T", Content: "C", Author: "A"})
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, inq.ID))

		list, err := store.List(ctx)
		require.NoError(t, err)
		for _, item := range list {
			assert.NotEqual(t, inq.ID, item.ID, "deleted record must not be listed")
		}

		assert.ErrorIs(t, store.Delete(ctx, inq.ID), domain.ErrNotFound,
			"second Delete should report ErrNotFound")
	})

	t.Run("Secret fields round-trip", func(t *testing.T) {
		inq, err := store.Insert(ctx, domain.Draft{
			Title: "T", Content: "C", Author: "A",
			Password: "p", IsSecret: true,
		})
		require.NoError(t, err)

		stored := findInquiry(t, store, inq.ID)
		assert.True(t, stored.IsSecret)
		assert.Equal(t, "p", stored.Password)
	})
}

func findInquiry(t *testing.T, store RecordStore, id string) *domain.Inquiry {
	t.Helper()
	list, err := store.List(context.Background())
	require.NoError(t, err)
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	t.Fatalf("inquiry %s not found in List", id)
	return nil
}
