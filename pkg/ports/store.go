package ports

import (
	"context"

	"github.com/askdeskhq/askdesk/pkg/domain"
)

// RecordStore is the persistence collaborator for inquiries. The engine
// treats it as a remote, fallible service: every method may fail, and the
// engine converts failures into domain.StoreError at the call site.
type RecordStore interface {
	// List returns all inquiries ordered by CreatedAt descending
	// (newest first). Ties are broken by store-assigned insertion order.
	List(ctx context.Context) ([]domain.Inquiry, error)

	// Insert persists a new inquiry from a draft. The store assigns ID and
	// CreatedAt; Status starts pending with no reply.
	Insert(ctx context.Context, draft domain.Draft) (*domain.Inquiry, error)

	// Update applies a reply patch to the inquiry with the given ID.
	// Returns domain.ErrNotFound if no such record exists.
	Update(ctx context.Context, id string, patch domain.ReplyPatch) error

	// Delete removes the inquiry with the given ID.
	// Returns domain.ErrNotFound if no such record exists.
	Delete(ctx context.Context, id string) error
}
