package ports

import (
	"crypto/subtle"

	"github.com/askdeskhq/askdesk/pkg/domain"
)

// SecretVerifier decides whether a candidate secret grants access to an
// inquiry. The engine never compares passwords itself, so the comparison can
// be upgraded (e.g. to a salted hash) without touching the engine's call
// sites.
type SecretVerifier interface {
	Verify(candidate string, inquiry *domain.Inquiry) bool
}

// PlainVerifier compares the candidate against the stored plaintext password
// byte-for-byte, case-sensitively. This mirrors the board's original policy;
// an empty stored password makes the record openable with an empty
// submission.
type PlainVerifier struct{}

func (PlainVerifier) Verify(candidate string, inquiry *domain.Inquiry) bool {
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(inquiry.Password)) == 1
}
