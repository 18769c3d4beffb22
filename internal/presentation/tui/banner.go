package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the askdesk ASCII art banner with a blue gradient.
func PrintBanner() {
	p := termenv.ColorProfile()
	s1 := termenv.String(`             _      _           _    `).Foreground(p.Color("#7dd3fc"))
	s2 := termenv.String("   __ _ ___| | __ __| | ___  ___| | __").Foreground(p.Color("#38bdf8"))
	s3 := termenv.String("  / _` / __| |/ // _` |/ _ \\/ __| |/ /").Foreground(p.Color("#0ea5e9"))
	s4 := termenv.String(" | (_| \\__ \\   <| (_| |  __/\\__ \\   < ").Foreground(p.Color("#0284c7"))
	s5 := termenv.String("  \\__,_|___/_|\\_\\\\__,_|\\___||___/_|\\_\\").Foreground(p.Color("#0369a1"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}

// WelcomeGuide is the markdown shown when the board starts with no open
// inquiry. The categories mirror the commands available at the prompt.
const WelcomeGuide = `# Welcome to askdesk

Ask anything. Operators answer as soon as they can.

## Browsing

- ` + "`list`" + ` shows all inquiries, newest first
- ` + "`open <n>`" + ` opens an inquiry by its list number
- Secret inquiries (🔒) need their password to open

## Posting

- ` + "`new`" + ` posts an inquiry; mark it secret to hide the content
- ` + "`delete <n>`" + ` removes your inquiry (password required)

## For operators

- ` + "`admin`" + ` toggles operator mode
- ` + "`reply <n>`" + ` publishes an answer, ` + "`clearreply <n>`" + ` retracts it
`
