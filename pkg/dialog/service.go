/*
Package dialog implements the board's user-prompt primitive: a single-slot,
awaitable dialog queue. The workflow engine posts alert/confirm/prompt
requests and suspends until a presenter resolves them; at most one request is
outstanding at a time.

Service is the real implementation consumed by interactive hosts. Scripted
answers requests from a queue (tests, headless runs), and Answers pulls
answers carried in the request context (the HTTP adapter).
*/
package dialog

import (
	"context"
	"sync"

	"github.com/askdeskhq/askdesk/pkg/domain"
)

// Result is the resolution of a dialog request.
type Result struct {
	// Confirmed is true when the user triggered the confirm action
	// (button or accept key). For alerts, acknowledgement counts.
	Confirmed bool
	// Value is the entered text of a prompt; meaningful only when
	// Confirmed is true.
	Value string
}

// Request is a pending dialog surfaced to a presenter. Exactly one caller
// waits on it; resolving it more than once is a no-op.
type Request struct {
	Kind    domain.DialogKind
	Message string
	Options domain.DialogOptions

	once    sync.Once
	done    chan Result
	release func()
}

// Resolve completes the request with the given result and frees the dialog
// slot for the next request.
func (r *Request) Resolve(res Result) {
	r.once.Do(func() {
		r.release()
		r.done <- res
	})
}

// Accept resolves with confirm semantics. For prompts, value is the entered
// text (an empty string is a valid submission).
func (r *Request) Accept(value string) {
	r.Resolve(Result{Confirmed: true, Value: value})
}

// Cancel resolves with cancel semantics: confirm resolves false, prompt
// resolves nil. Alerts treat cancellation as acknowledgement.
func (r *Request) Cancel() {
	r.Resolve(Result{Confirmed: false})
}

// Service is the single-slot dialog queue. A presenter consumes Requests()
// and resolves each request; callers block inside Alert/Confirm/Prompt until
// then. Issuing a request while one is pending fails with
// domain.ErrDialogBusy.
type Service struct {
	mu       sync.Mutex
	pending  *Request
	requests chan *Request
}

// NewService creates an empty dialog service.
func NewService() *Service {
	return &Service{
		// Capacity one: the slot invariant guarantees at most one
		// unconsumed request.
		requests: make(chan *Request, 1),
	}
}

// Requests exposes posted requests to the presenter.
func (s *Service) Requests() <-chan *Request {
	return s.requests
}

// Pending returns the currently unresolved request, or nil.
func (s *Service) Pending() *Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Alert displays a message and suspends until the user acknowledges it.
func (s *Service) Alert(ctx context.Context, message string, opts domain.DialogOptions) error {
	req, err := s.post(domain.DialogAlert, message, alertDefaults(opts))
	if err != nil {
		return err
	}
	_, err = s.wait(ctx, req)
	return err
}

// Confirm displays a yes/no question; dismissal resolves false.
func (s *Service) Confirm(ctx context.Context, message string, opts domain.DialogOptions) (bool, error) {
	req, err := s.post(domain.DialogConfirm, message, confirmDefaults(opts))
	if err != nil {
		return false, err
	}
	res, err := s.wait(ctx, req)
	if err != nil {
		return false, err
	}
	return res.Confirmed, nil
}

// Prompt displays a text question; cancellation resolves nil.
func (s *Service) Prompt(ctx context.Context, message string, opts domain.DialogOptions) (*string, error) {
	req, err := s.post(domain.DialogPrompt, message, promptDefaults(opts))
	if err != nil {
		return nil, err
	}
	res, err := s.wait(ctx, req)
	if err != nil {
		return nil, err
	}
	if !res.Confirmed {
		return nil, nil
	}
	value := res.Value
	return &value, nil
}

func (s *Service) post(kind domain.DialogKind, message string, opts domain.DialogOptions) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return nil, domain.ErrDialogBusy
	}

	req := &Request{
		Kind:    kind,
		Message: message,
		Options: opts,
		done:    make(chan Result, 1),
	}
	req.release = func() { s.clear(req) }

	s.pending = req
	s.requests <- req
	return req, nil
}

// wait blocks until the request resolves. If the caller's context ends
// first, the slot is released so the next request can proceed; the dialog
// has no timeout of its own.
func (s *Service) wait(ctx context.Context, req *Request) (Result, error) {
	select {
	case res := <-req.done:
		return res, nil
	case <-ctx.Done():
		s.abandon(req)
		return Result{}, ctx.Err()
	}
}

func (s *Service) clear(req *Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == req {
		s.pending = nil
	}
}

// abandon drops an unresolved request after its caller gave up. A late
// Resolve from the presenter becomes a no-op delivery into the buffered
// done channel.
func (s *Service) abandon(req *Request) {
	s.clear(req)
	// Drain the request from the feed if no presenter picked it up yet.
	select {
	case stale := <-s.requests:
		if stale != req {
			s.requests <- stale
		}
	default:
	}
}

func alertDefaults(opts domain.DialogOptions) domain.DialogOptions {
	if opts.Title == "" {
		opts.Title = "Notice"
	}
	if opts.ConfirmLabel == "" {
		opts.ConfirmLabel = "OK"
	}
	return opts
}

func confirmDefaults(opts domain.DialogOptions) domain.DialogOptions {
	if opts.Title == "" {
		opts.Title = "Confirm"
	}
	if opts.ConfirmLabel == "" {
		opts.ConfirmLabel = "Yes"
	}
	if opts.CancelLabel == "" {
		opts.CancelLabel = "No"
	}
	return opts
}

func promptDefaults(opts domain.DialogOptions) domain.DialogOptions {
	if opts.Title == "" {
		opts.Title = "Input required"
	}
	if opts.ConfirmLabel == "" {
		opts.ConfirmLabel = "OK"
	}
	if opts.CancelLabel == "" {
		opts.CancelLabel = "Cancel"
	}
	return opts
}
