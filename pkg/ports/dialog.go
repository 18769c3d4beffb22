package ports

import (
	"context"

	"github.com/askdeskhq/askdesk/pkg/domain"
)

// Dialog is the single user-prompt surface consumed by the workflow engine.
// Implementations suspend the caller until the user resolves the request;
// cancellation is reported through the return value (false / nil), never as
// an error. An error is returned only for mechanical failures, such as a
// second request while one is pending (domain.ErrDialogBusy) or context
// cancellation.
type Dialog interface {
	// Alert displays a message with a single confirm action and returns
	// once the user acknowledges it.
	Alert(ctx context.Context, message string, opts domain.DialogOptions) error

	// Confirm displays a yes/no question. Dismissal counts as no.
	Confirm(ctx context.Context, message string, opts domain.DialogOptions) (bool, error)

	// Prompt displays a text question. A nil result means the user
	// cancelled; an empty string is a valid submission.
	Prompt(ctx context.Context, message string, opts domain.DialogOptions) (*string, error)
}
