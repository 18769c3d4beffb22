package domain

import (
	"context"
	"time"
)

// EventType defines the category of a lifecycle event.
type EventType string

const (
	EventCreated      EventType = "created"
	EventOpened       EventType = "opened"
	EventReplied      EventType = "replied"
	EventReplyCleared EventType = "reply_cleared"
	EventDeleted      EventType = "deleted"
	EventAccessDenied EventType = "access_denied"
)

// Event describes a single observable moment in an inquiry's lifecycle.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	InquiryID string    `json:"inquiry_id,omitempty"`
	// Operator records whether the acting capability was privileged.
	Operator bool `json:"operator"`
}

// LifecycleHooks defines callbacks for engine observability. Nil hooks are
// skipped; hooks run synchronously on the operation's goroutine and must not
// block.
type LifecycleHooks struct {
	OnCreated      func(context.Context, *Event)
	OnOpened       func(context.Context, *Event)
	OnReplied      func(context.Context, *Event)
	OnReplyCleared func(context.Context, *Event)
	OnDeleted      func(context.Context, *Event)
	OnAccessDenied func(context.Context, *Event)
}
