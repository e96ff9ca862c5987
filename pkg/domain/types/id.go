package types

import "github.com/google/uuid"

// VisitorID is a stable key identifying one ongoing conversation, derived
// from the best-available channel attribute.
type VisitorID string

// AnonymousVisitorID is the fallback identity when the payload carries no
// usable visitor attribute.
const AnonymousVisitorID VisitorID = "anon"

// String returns the string representation of the visitor ID
func (id VisitorID) String() string {
	return string(id)
}

// SubmissionID identifies one archived flow submission
type SubmissionID string

// NewSubmissionID generates a new random submission ID
func NewSubmissionID() SubmissionID {
	return SubmissionID(uuid.New().String())
}

// String returns the string representation of the submission ID
func (id SubmissionID) String() string {
	return string(id)
}
