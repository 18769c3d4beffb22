package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/askdeskhq/askdesk/pkg/adapters/sqlite"
	"github.com/askdeskhq/askdesk/pkg/domain"
	"github.com/askdeskhq/askdesk/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_Contract(t *testing.T) {
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ports.RunRecordStoreContract(t, store)
}

func TestSQLiteStore_MigrationsApplied(t *testing.T) {
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	versions, err := store.AppliedMigrations()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, versions)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	ctx := context.Background()

	store, err := sqlite.Open(dir)
	require.NoError(t, err)

	inq, err := store.Insert(ctx, domain.Draft{
		Title: "T", Content: "C", Author: "A", Password: "p", IsSecret: true,
	})
	require.NoError(t, err)
	require.NoError(t, store.Update(ctx, inq.ID, domain.AnswerPatch("done")))
	require.NoError(t, store.Close())

	reopened, err := sqlite.Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	list, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, inq.ID, got.ID)
	assert.True(t, got.IsSecret)
	assert.Equal(t, "p", got.Password)
	assert.Equal(t, domain.StatusAnswered, got.Status)
	require.NotNil(t, got.Reply)
	assert.Equal(t, "done", *got.Reply)
	assert.True(t, got.CreatedAt.Equal(inq.CreatedAt))
}
