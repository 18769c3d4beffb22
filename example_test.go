package askdesk_test

import (
	"context"
	"fmt"
	"log"

	"github.com/askdeskhq/askdesk"
	"github.com/askdeskhq/askdesk/pkg/adapters/memory"
	"github.com/askdeskhq/askdesk/pkg/dialog"
	"github.com/askdeskhq/askdesk/pkg/domain"
)

// ExampleNew demonstrates the full lifecycle of an inquiry against the
// in-memory store. Headless hosts resolve dialog gates through
// context-carried answers instead of an interactive surface.
func ExampleNew() {
	board := askdesk.New(memory.NewStore(), dialog.Answers{})
	ctx := context.Background()

	// A visitor posts an inquiry.
	inq, err := board.Create(ctx, domain.Draft{
		Title:   "Printer on floor 3 is jammed",
		Content: "It eats every second page.",
		Author:  "dana",
	})
	if err != nil {
		log.Fatal(err)
	}

	// An operator replies to it.
	inq, err = board.Reply(ctx, domain.AsOperator, inq.ID, "Cleared the feed roller, try again.")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(inq.Title)
	fmt.Println(inq.Status)
	fmt.Println(*inq.Reply)
	// Output:
	// Printer on floor 3 is jammed
	// answered
	// Cleared the feed roller, try again.
}

// ExampleNew_secret shows how a secret inquiry stays gated for visitors. The
// password travels through the context when no interactive dialog exists.
func ExampleNew_secret() {
	board := askdesk.New(memory.NewStore(), dialog.Answers{})
	ctx := context.Background()

	inq, err := board.Create(ctx, domain.Draft{
		Title:    "My account is locked",
		Content:  "Username inside, please reset.",
		Author:   "sam",
		Password: "s3cret",
		IsSecret: true,
	})
	if err != nil {
		log.Fatal(err)
	}

	// Without the password the record stays closed.
	if _, err := board.Open(ctx, domain.Visitor, inq.ID); err != nil {
		fmt.Println(err)
	}

	// With the right password it opens.
	opened, err := board.Open(dialog.WithPromptAnswer(ctx, "s3cret"), domain.Visitor, inq.ID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(opened.Title)
	// Output:
	// access denied
	// My account is locked
}
