/*
Package askdesk is a support inquiry board: visitors post questions,
optionally sealed behind a password, and operators answer them.

The core is a workflow engine around three collaborators, all of them
swappable ports:

  - a RecordStore holding the inquiries (in-memory, SQLite and Redis
    adapters ship with the module)
  - a Dialog surface through which the engine asks the user for passwords
    and confirmations
  - a SecretVerifier deciding whether a submitted password grants access

Authorization is explicit. Every gated operation takes a Capability value;
there is no ambient privileged mode. A server derives the capability per
request, an interactive session holds it for its lifetime.

# Usage

	store := memory.NewStore()
	svc := dialog.NewService()
	board := askdesk.New(store, svc)

	inq, err := board.Create(ctx, domain.Draft{
		Title:   "Opening hours",
		Content: "When are you open?",
		Author:  "kim",
	})

Interactive hosts consume svc.Requests() and resolve each dialog request;
headless hosts use dialog.Answers with answers carried in the context. See
the cmd/askdesk binary for a terminal host, an HTTP server and an MCP
server built on the same engine.
*/
package askdesk
