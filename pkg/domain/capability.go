package domain

// Capability is the authorization context a caller presents to the workflow
// engine. It is passed explicitly on every gated operation instead of living
// as ambient engine state, so a server-side adapter can re-derive it per
// request rather than trusting a client flag.
type Capability struct {
	// Operator grants bypass of secret-gating and exclusive rights to
	// reply, clear-reply and delete-without-password.
	Operator bool
}

// Visitor is the default, unprivileged capability.
var Visitor = Capability{}

// AsOperator is the privileged capability.
var AsOperator = Capability{Operator: true}
