package cli

import (
	"bufio"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/askdeskhq/askdesk/internal/presentation/tui"
	"github.com/askdeskhq/askdesk/internal/workflow"
	"github.com/askdeskhq/askdesk/pkg/dialog"
	"github.com/askdeskhq/askdesk/pkg/domain"
	"github.com/askdeskhq/askdesk/pkg/ports"
)

// BoardOptions configures an interactive board session.
type BoardOptions struct {
	Store ports.RecordStore
	// OperatorSecret unlocks the admin toggle. Empty disables operator
	// mode for the session.
	OperatorSecret string
	Debug          bool

	// In and Out default to os.Stdin / os.Stdout via RunBoard's caller.
	In  io.Reader
	Out io.Writer
}

type session struct {
	eng       *workflow.Engine
	svc       *dialog.Service
	presenter *Presenter
	render    func(string) (string, error)

	reader *bufio.Reader
	out    io.Writer

	cap            domain.Capability
	operatorSecret string
	listed         []domain.Inquiry
}

// RunBoard runs the interactive inquiry board until quit, EOF or signal.
func RunBoard(ctx context.Context, opts BoardOptions) error {
	logger := createLogger(opts.Debug)

	svc := dialog.NewService()
	s := &session{
		eng:            workflow.New(opts.Store, svc, workflow.WithLogger(logger)),
		svc:            svc,
		render:         tui.NewRenderer(),
		reader:         bufio.NewReader(opts.In),
		out:            opts.Out,
		operatorSecret: opts.OperatorSecret,
	}
	s.presenter = NewPresenter(s.reader, s.out)

	tui.PrintBanner()
	s.printMarkdown(tui.WelcomeGuide)
	s.cmdList(ctx)

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(s.out)
			s.say("Session closed.")
			return nil
		}

		fmt.Fprintf(s.out, "\n%s\naskdesk> ",
			tui.StatusLine(s.cap, len(s.listed), time.Now()))

		line, err := s.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}

		if quit := s.dispatch(ctx, strings.TrimSpace(line)); quit {
			s.say("Bye.")
			return nil
		}
	}
}

// dispatch runs one command line. It returns true when the session should
// end.
func (s *session) dispatch(ctx context.Context, line string) bool {
	if line == "" {
		return false
	}
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch strings.ToLower(cmd) {
	case "q", "quit", "exit":
		return true
	case "help":
		s.printMarkdown(tui.WelcomeGuide)
	case "list":
		s.cmdList(ctx)
	case "open":
		s.withIndex(args, func(id string) { s.cmdOpen(ctx, id) })
	case "new":
		s.cmdNew(ctx)
	case "reply":
		s.withIndex(args, func(id string) { s.cmdReply(ctx, id) })
	case "clearreply":
		s.withIndex(args, func(id string) { s.cmdClearReply(ctx, id) })
	case "delete":
		s.withIndex(args, func(id string) { s.cmdDelete(ctx, id) })
	case "admin":
		s.cmdAdmin(ctx)
	default:
		s.say("Unknown command %q. Type 'help' for the guide.", cmd)
	}
	return false
}

// do runs an engine call in the background while servicing dialog requests
// on this goroutine, so password prompts and confirmations can interleave
// with the blocked call.
func (s *session) do(ctx context.Context, fn func(context.Context) error) error {
	done := make(chan error, 1)
	go func() { done <- fn(ctx) }()

	for {
		select {
		case err := <-done:
			return err
		case req := <-s.svc.Requests():
			s.presenter.Present(req)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *session) cmdList(ctx context.Context) {
	listed, err := s.eng.List(ctx)
	if err != nil {
		// A stale view is still a view.
		s.say("Refresh failed; showing cached inquiries.")
	}
	s.listed = listed

	if len(listed) == 0 {
		s.say("No inquiries yet. Type 'new' to post one.")
		return
	}
	fmt.Fprintln(s.out)
	for i, inq := range listed {
		fmt.Fprintln(s.out, tui.ListLine(i+1, inq.Redacted(s.cap)))
	}
}

func (s *session) cmdOpen(ctx context.Context, id string) {
	var opened *domain.Inquiry
	err := s.do(ctx, func(ctx context.Context) error {
		var err error
		opened, err = s.eng.Open(ctx, s.cap, id)
		return err
	})
	if err != nil {
		s.reportError(err)
		return
	}
	s.printMarkdown(tui.InquiryDetail(opened))
}

func (s *session) cmdNew(ctx context.Context) {
	draft := domain.Draft{}
	draft.Title = s.ask("Title")
	draft.Content = s.ask("Content")
	draft.Author = s.ask("Your name")

	if strings.EqualFold(s.ask("Secret inquiry? [y/N]"), "y") {
		draft.IsSecret = true
	}
	passwordLabel := "Password (protects deletion)"
	if draft.IsSecret {
		passwordLabel = "Password (protects reading and deletion)"
	}
	draft.Password = s.ask(passwordLabel)

	created, err := s.eng.Create(ctx, draft)
	if err != nil {
		s.reportError(err)
		return
	}
	s.say("Posted inquiry %q.", created.Title)
	s.cmdList(ctx)
}

func (s *session) cmdReply(ctx context.Context, id string) {
	if !s.cap.Operator {
		s.say("Replying requires operator mode. Type 'admin' first.")
		return
	}
	text := s.ask("Reply text")

	err := s.do(ctx, func(ctx context.Context) error {
		_, err := s.eng.Reply(ctx, s.cap, id, text)
		return err
	})
	if err != nil {
		s.reportError(err)
		return
	}
	s.say("Reply published.")
	s.cmdList(ctx)
}

func (s *session) cmdClearReply(ctx context.Context, id string) {
	err := s.do(ctx, func(ctx context.Context) error {
		_, err := s.eng.ClearReply(ctx, s.cap, id)
		return err
	})
	if err != nil {
		s.reportError(err)
		return
	}
	s.cmdList(ctx)
}

func (s *session) cmdDelete(ctx context.Context, id string) {
	err := s.do(ctx, func(ctx context.Context) error {
		return s.eng.Delete(ctx, s.cap, id)
	})
	if err != nil {
		s.reportError(err)
		return
	}
	s.cmdList(ctx)
}

func (s *session) cmdAdmin(ctx context.Context) {
	if s.cap.Operator {
		s.cap = domain.Visitor
		s.say("Operator mode off.")
		return
	}
	if s.operatorSecret == "" {
		s.say("Operator mode is not configured for this session.")
		return
	}

	// Reuse the dialog path so the secret is read masked.
	var granted bool
	err := s.do(ctx, func(ctx context.Context) error {
		candidate, err := s.svc.Prompt(ctx, "Enter the operator password.", domain.DialogOptions{
			Title:       "Operator mode",
			SecretInput: true,
		})
		if err != nil {
			return err
		}
		if candidate != nil &&
			subtle.ConstantTimeCompare([]byte(*candidate), []byte(s.operatorSecret)) == 1 {
			granted = true
		}
		return nil
	})
	if err != nil {
		s.reportError(err)
		return
	}

	if !granted {
		s.say("The password does not match.")
		return
	}
	s.cap = domain.AsOperator
	s.say("Operator mode on.")
}

// withIndex resolves a 1-based list index argument to an inquiry ID.
func (s *session) withIndex(args []string, fn func(id string)) {
	if len(args) != 1 {
		s.say("Usage: <command> <number>. Run 'list' to see numbers.")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(s.listed) {
		s.say("No inquiry numbered %q. Run 'list' first.", args[0])
		return
	}
	fn(s.listed[n-1].ID)
}

func (s *session) ask(label string) string {
	fmt.Fprintf(s.out, "%s: ", label)
	line, err := s.reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func (s *session) say(format string, args ...any) {
	fmt.Fprintf(s.out, ">>> %s\n", fmt.Sprintf(format, args...))
}

func (s *session) printMarkdown(md string) {
	rendered, err := s.render(md)
	if err != nil {
		fmt.Fprintln(s.out, md)
		return
	}
	fmt.Fprint(s.out, rendered)
}

func (s *session) reportError(err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		s.say("Missing required field: %s.", verr.Field)
	case errors.Is(err, domain.ErrAccessDenied):
		// The mismatch alert has already been shown.
	case errors.Is(err, domain.ErrNotAuthorized):
		s.say("That action requires operator mode.")
	case errors.Is(err, domain.ErrNotFound):
		s.say("That inquiry no longer exists. Run 'list'.")
	default:
		s.say("Something went wrong: %v", err)
	}
}
