package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/askdeskhq/askdesk/pkg/domain"
)

// NewRenderer returns a markdown rendering function backed by glamour.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Detect light/dark background
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// InquiryDetail builds the markdown document for a fully opened inquiry.
func InquiryDetail(inq *domain.Inquiry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", inq.Title)
	fmt.Fprintf(&b, "*by %s on %s*", inq.Author, inq.CreatedAt.Format("2006-01-02 15:04"))
	if inq.IsSecret {
		b.WriteString("  🔒")
	}
	b.WriteString("\n\n")
	b.WriteString(inq.Content)
	b.WriteString("\n")

	if inq.Answered() {
		b.WriteString("\n---\n\n## Reply\n\n")
		b.WriteString(*inq.Reply)
		b.WriteString("\n")
	} else {
		b.WriteString("\n> No reply yet.\n")
	}
	return b.String()
}

// ListLine formats one inquiry row for the board listing.
func ListLine(index int, inq domain.Inquiry) string {
	p := termenv.ColorProfile()

	status := termenv.String("pending").Foreground(p.Color("#fbbf24"))
	if inq.Status == domain.StatusAnswered {
		status = termenv.String("answered").Foreground(p.Color("#34d399"))
	}

	lock := "  "
	if inq.IsSecret {
		lock = "🔒"
	}

	return fmt.Sprintf(" %2d. %s %-40s %s  %s (%s)",
		index, lock, truncate(inq.Title, 40), status,
		inq.Author, inq.CreatedAt.Format("Jan 2 15:04"))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// StatusLine renders the mode indicator shown above the prompt.
func StatusLine(cap domain.Capability, count int, at time.Time) string {
	p := termenv.ColorProfile()

	mode := termenv.String("visitor").Foreground(p.Color("#94a3b8"))
	if cap.Operator {
		mode = termenv.String("OPERATOR").Foreground(p.Color("#f87171")).Bold()
	}
	return fmt.Sprintf("[%s] %d inquiries · %s", mode, count, at.Format("15:04:05"))
}
