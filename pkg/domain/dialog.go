package domain

// DialogKind selects the interaction shape of a dialog request.
type DialogKind string

const (
	DialogAlert   DialogKind = "alert"
	DialogConfirm DialogKind = "confirm"
	DialogPrompt  DialogKind = "prompt"
)

// DialogOptions carries the display configuration of a dialog request.
// Empty fields fall back to per-kind defaults when the request is posted.
type DialogOptions struct {
	Title        string
	ConfirmLabel string
	CancelLabel  string
	Placeholder  string
	// SecretInput masks the text input of a prompt (password entry).
	SecretInput bool
}
