package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/askdeskhq/askdesk/pkg/dialog"
	"github.com/askdeskhq/askdesk/pkg/domain"
)

// Presenter renders dialog requests on the terminal and resolves them from
// keyboard input. Secret prompts are read with local echo disabled when
// stdin is a real terminal.
type Presenter struct {
	in  *bufio.Reader
	out io.Writer

	// readSecret is swapped in tests; the default masks terminal input.
	readSecret func() (string, error)
}

// NewPresenter creates a presenter over the given streams.
func NewPresenter(in io.Reader, out io.Writer) *Presenter {
	p := &Presenter{in: bufio.NewReader(in), out: out}
	p.readSecret = p.defaultReadSecret
	return p
}

// Present renders one dialog request and resolves it. EOF on input counts
// as cancellation.
func (p *Presenter) Present(req *dialog.Request) {
	switch req.Kind {
	case domain.DialogAlert:
		p.alert(req)
	case domain.DialogConfirm:
		p.confirm(req)
	case domain.DialogPrompt:
		p.prompt(req)
	default:
		req.Cancel()
	}
}

func (p *Presenter) alert(req *dialog.Request) {
	fmt.Fprintf(p.out, "\n[%s] %s\n", req.Options.Title, req.Message)
	fmt.Fprintf(p.out, "Press Enter to continue. ")
	_, _ = p.readLine()
	// Acknowledged either way; closing the stream acknowledges too.
	req.Accept("")
}

func (p *Presenter) confirm(req *dialog.Request) {
	fmt.Fprintf(p.out, "\n[%s] %s [%s/%s] ",
		req.Options.Title, req.Message,
		req.Options.ConfirmLabel, req.Options.CancelLabel)

	line, err := p.readLine()
	if err != nil {
		req.Cancel()
		return
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		req.Accept("")
	default:
		req.Cancel()
	}
}

func (p *Presenter) prompt(req *dialog.Request) {
	fmt.Fprintf(p.out, "\n[%s] %s\n", req.Options.Title, req.Message)
	if req.Options.Placeholder != "" {
		fmt.Fprintf(p.out, "(%s) ", req.Options.Placeholder)
	} else {
		fmt.Fprint(p.out, "> ")
	}

	var (
		line string
		err  error
	)
	if req.Options.SecretInput {
		line, err = p.readSecret()
		fmt.Fprintln(p.out)
	} else {
		line, err = p.readLine()
	}
	if err != nil {
		req.Cancel()
		return
	}
	// An empty submission is valid input, not a cancellation.
	req.Accept(strings.TrimRight(line, "\r\n"))
}

func (p *Presenter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

func (p *Presenter) defaultReadSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		return string(b), err
	}
	return p.readLine()
}
