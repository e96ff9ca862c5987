package types

// ReplyAction tells the chat transport what to do with the reply envelope
type ReplyAction string

const (
	// ActionReply continues the automated flow
	ActionReply ReplyAction = "reply"
	// ActionForward hands the conversation off to a human operator
	ActionForward ReplyAction = "forward"
)

// IsValid checks if the reply action is valid
func (a ReplyAction) IsValid() bool {
	switch a {
	case ActionReply, ActionForward:
		return true
	default:
		return false
	}
}

// String returns the string representation of the reply action
func (a ReplyAction) String() string {
	return string(a)
}
