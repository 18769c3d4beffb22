package dialog

import (
	"context"

	"github.com/askdeskhq/askdesk/pkg/domain"
)

type ctxKey int

const (
	promptAnswerKey ctxKey = iota
	confirmAnswerKey
)

// WithPromptAnswer attaches a prompt submission to the context. The HTTP
// adapter uses this to feed a request-body password into the engine's
// password gate without a second round trip.
func WithPromptAnswer(ctx context.Context, value string) context.Context {
	return context.WithValue(ctx, promptAnswerKey, value)
}

// WithConfirm attaches a confirm answer to the context. An HTTP DELETE
// already expresses the caller's consent, so handlers set true.
func WithConfirm(ctx context.Context, ok bool) context.Context {
	return context.WithValue(ctx, confirmAnswerKey, ok)
}

// Answers is a dialog implementation that resolves every request from
// answers carried in the context. Requests with no carried answer resolve as
// cancellations, so a missing password behaves like a dismissed prompt.
type Answers struct{}

func (Answers) Alert(ctx context.Context, message string, opts domain.DialogOptions) error {
	// Nothing to show; the outcome travels back in the HTTP status.
	return nil
}

func (Answers) Confirm(ctx context.Context, message string, opts domain.DialogOptions) (bool, error) {
	ok, _ := ctx.Value(confirmAnswerKey).(bool)
	return ok, nil
}

func (Answers) Prompt(ctx context.Context, message string, opts domain.DialogOptions) (*string, error) {
	value, present := ctx.Value(promptAnswerKey).(string)
	if !present {
		return nil, nil
	}
	return &value, nil
}
