package domain

import (
	"errors"
	"fmt"
)

// ErrAccessDenied is returned when a password gate rejects the caller:
// opening a secret inquiry, or deleting without operator capability.
var ErrAccessDenied = errors.New("access denied")

// ErrNotAuthorized is returned when a reply mutation is attempted without
// operator capability. It never reaches the store.
var ErrNotAuthorized = errors.New("not authorized")

// ErrNotFound is returned when an inquiry ID cannot be found in the store.
var ErrNotFound = errors.New("inquiry not found")

// ErrDialogBusy is returned when a dialog request is issued while another
// request is still unresolved. The dialog slot holds one request at a time.
var ErrDialogBusy = errors.New("dialog request already pending")

// ValidationError reports a required draft field that is missing.
// It is raised before any store call.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field missing: %s", e.Field)
}

// StoreError wraps any failure from the record store. Callers surface it as
// a generic failure notice; local state is never rolled back beyond not
// applying the failed mutation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
