package domain

import "time"

// Status describes where an inquiry sits in its answer lifecycle.
type Status string

const (
	// StatusPending means no operator reply has been published.
	StatusPending Status = "pending"
	// StatusAnswered means an operator reply is attached.
	StatusAnswered Status = "answered"
)

// SecretTitleMask replaces the title of a secret inquiry in list projections
// shown to non-operators.
const SecretTitleMask = "This inquiry is private."

// Inquiry is a persisted support request. All fields except Status and Reply
// are fixed at creation; the store assigns ID and CreatedAt.
type Inquiry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Password  string    `json:"password,omitempty"`
	IsSecret  bool      `json:"is_secret"`
	CreatedAt time.Time `json:"created_at"`
	Status    Status    `json:"status"`
	Reply     *string   `json:"reply"`
}

// Answered reports whether an operator reply is attached.
// The Status field must agree with this at every observable point.
func (i *Inquiry) Answered() bool {
	return i.Reply != nil
}

// Clone returns a deep copy, so cached records can be handed out without
// letting callers mutate engine state through the pointer.
func (i *Inquiry) Clone() *Inquiry {
	cp := *i
	if i.Reply != nil {
		r := *i.Reply
		cp.Reply = &r
	}
	return &cp
}

// Apply sets Reply and Status together from a patch, keeping the
// answered-iff-reply invariant intact.
func (i *Inquiry) Apply(patch ReplyPatch) {
	if patch.Reply != nil {
		r := *patch.Reply
		i.Reply = &r
	} else {
		i.Reply = nil
	}
	i.Status = patch.Status
}

// Redacted returns the projection of the inquiry appropriate for the given
// capability. Non-operators never see the stored password, and secret
// inquiries keep only their metadata with a masked title. Operators see the
// full record, password included (a documented property of the board).
func (i *Inquiry) Redacted(cap Capability) Inquiry {
	out := *i.Clone()
	if cap.Operator {
		return out
	}
	out.Password = ""
	if i.IsSecret {
		out.Title = SecretTitleMask
		out.Content = ""
		out.Reply = nil
	}
	return out
}

// ReplyPatch is the only shape in which reply and status travel together
// through a store update. Build one via AnswerPatch or ClearPatch so the two
// fields can never disagree.
type ReplyPatch struct {
	Reply  *string `json:"reply"`
	Status Status  `json:"status"`
}

// AnswerPatch attaches a reply and marks the inquiry answered.
func AnswerPatch(text string) ReplyPatch {
	return ReplyPatch{Reply: &text, Status: StatusAnswered}
}

// ClearPatch removes the reply and reverts the inquiry to pending.
func ClearPatch() ReplyPatch {
	return ReplyPatch{Reply: nil, Status: StatusPending}
}

// Draft carries the visitor-supplied fields of a new inquiry.
type Draft struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	Password string `json:"password"`
	IsSecret bool   `json:"is_secret"`
}

// Validate checks the required fields before any store call is made.
// A secret draft must carry a non-empty password.
func (d Draft) Validate() error {
	switch {
	case d.Title == "":
		return &ValidationError{Field: "title"}
	case d.Content == "":
		return &ValidationError{Field: "content"}
	case d.Author == "":
		return &ValidationError{Field: "author"}
	case d.IsSecret && d.Password == "":
		return &ValidationError{Field: "password"}
	}
	return nil
}
