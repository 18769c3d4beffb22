package dialog

import (
	"context"
	"sync"

	"github.com/askdeskhq/askdesk/pkg/domain"
)

// Scripted is a dialog implementation that answers from pre-queued
// responses. It is used by engine tests and headless automation; it resolves
// immediately without a presenter. When a queue is empty the response is a
// cancellation (confirm false, prompt nil), matching a user who dismisses
// every dialog.
type Scripted struct {
	mu       sync.Mutex
	confirms []bool
	prompts  []*string

	alerts   []string
	confirmQ []string
	promptQ  []string
}

// NewScripted creates a scripted dialog with no queued answers.
func NewScripted() *Scripted {
	return &Scripted{}
}

// QueueConfirm appends an answer for the next Confirm call.
func (s *Scripted) QueueConfirm(ok bool) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirms = append(s.confirms, ok)
	return s
}

// QueuePrompt appends a submitted value for the next Prompt call.
func (s *Scripted) QueuePrompt(value string) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, &value)
	return s
}

// QueuePromptCancel appends a cancellation for the next Prompt call.
func (s *Scripted) QueuePromptCancel() *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, nil)
	return s
}

// Alerts returns the messages shown via Alert, in order.
func (s *Scripted) Alerts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.alerts...)
}

// Confirms returns the messages asked via Confirm, in order.
func (s *Scripted) Confirms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.confirmQ...)
}

// Prompts returns the messages asked via Prompt, in order.
func (s *Scripted) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.promptQ...)
}

func (s *Scripted) Alert(ctx context.Context, message string, opts domain.DialogOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, message)
	return nil
}

func (s *Scripted) Confirm(ctx context.Context, message string, opts domain.DialogOptions) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmQ = append(s.confirmQ, message)
	if len(s.confirms) == 0 {
		return false, nil
	}
	ok := s.confirms[0]
	s.confirms = s.confirms[1:]
	return ok, nil
}

func (s *Scripted) Prompt(ctx context.Context, message string, opts domain.DialogOptions) (*string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promptQ = append(s.promptQ, message)
	if len(s.prompts) == 0 {
		return nil, nil
	}
	value := s.prompts[0]
	s.prompts = s.prompts[1:]
	return value, nil
}
