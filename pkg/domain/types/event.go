package types

// EventKind classifies an inbound chat event. The channel sends the kind
// as a free-form "handler" string; anything unrecognized maps to
// EventUnknown and gets a generic acknowledgement.
type EventKind string

const (
	// EventTrigger is a channel-initiated session start
	EventTrigger EventKind = "trigger"
	// EventMessage is a visitor message
	EventMessage EventKind = "message"
	// EventUnknown is any other handler value, including none
	EventUnknown EventKind = "unknown"
)

// ParseEventKind maps a raw handler tag to an EventKind. Unknown tags are
// not an error.
func ParseEventKind(s string) EventKind {
	switch EventKind(s) {
	case EventTrigger:
		return EventTrigger
	case EventMessage:
		return EventMessage
	default:
		return EventUnknown
	}
}

// String returns the string representation of the event kind
func (k EventKind) String() string {
	return string(k)
}
