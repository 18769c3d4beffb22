package askdesk_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdeskhq/askdesk"
	"github.com/askdeskhq/askdesk/pkg/adapters/memory"
	"github.com/askdeskhq/askdesk/pkg/dialog"
	"github.com/askdeskhq/askdesk/pkg/domain"
)

func TestBoardLifecycle(t *testing.T) {
	dlg := dialog.NewScripted()
	board := askdesk.New(memory.NewStore(), dlg)
	ctx := context.Background()

	created, err := board.Create(ctx, domain.Draft{
		Title:   "Opening hours",
		Content: "When are you open?",
		Author:  "kim",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, created.Status)

	opened, err := board.Open(ctx, domain.Visitor, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, opened.ID)

	replied, err := board.Reply(ctx, domain.AsOperator, created.ID, "9 to 5, Mon-Fri.")
	require.NoError(t, err)
	assert.True(t, replied.Answered())

	dlg.QueueConfirm(true)
	require.NoError(t, board.Delete(ctx, domain.AsOperator, created.ID))

	listed, err := board.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestBoardSecretGate(t *testing.T) {
	dlg := dialog.NewScripted()
	board := askdesk.New(memory.NewStore(), dlg)
	ctx := context.Background()

	created, err := board.Create(ctx, domain.Draft{
		Title:    "Private",
		Content:  "Sensitive.",
		Author:   "lee",
		Password: "pw",
		IsSecret: true,
	})
	require.NoError(t, err)

	dlg.QueuePromptCancel()
	_, err = board.Open(ctx, domain.Visitor, created.ID)
	require.ErrorIs(t, err, domain.ErrAccessDenied)

	dlg.QueuePrompt("pw")
	opened, err := board.Open(ctx, domain.Visitor, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sensitive.", opened.Content)
}
