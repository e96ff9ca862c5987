package types

import "fmt"

// ConversationState represents the position of a visitor in the
// conversation flow.
type ConversationState string

const (
	// StateIdle is a fresh session that has not interacted yet
	StateIdle ConversationState = "idle"
	// StateMainMenu awaits a top-level choice
	StateMainMenu ConversationState = "main_menu"
	// StateQuoteEntry collects quote request fields
	StateQuoteEntry ConversationState = "quote_entry"
	// StateAfterSalesEntry collects after-sales request fields
	StateAfterSalesEntry ConversationState = "aftersales_entry"
	// StateForwarded is the terminal hand-off to a human operator
	StateForwarded ConversationState = "forwarded"
)

// AllConversationStates returns all valid conversation states
func AllConversationStates() []ConversationState {
	return []ConversationState{
		StateIdle,
		StateMainMenu,
		StateQuoteEntry,
		StateAfterSalesEntry,
		StateForwarded,
	}
}

// IsValid checks if the conversation state is valid
func (s ConversationState) IsValid() bool {
	switch s {
	case StateIdle,
		StateMainMenu,
		StateQuoteEntry,
		StateAfterSalesEntry,
		StateForwarded:
		return true
	default:
		return false
	}
}

// IsEntry reports whether the state is a data-entry state of a flow
func (s ConversationState) IsEntry() bool {
	return s == StateQuoteEntry || s == StateAfterSalesEntry
}

// Normalize returns the state, treating empty as StateIdle so that
// sessions deserialized from older records keep working.
func (s ConversationState) Normalize() ConversationState {
	if s == "" {
		return StateIdle
	}
	return s
}

// String returns the string representation of the conversation state
func (s ConversationState) String() string {
	return string(s)
}

// ParseConversationState parses a string into a ConversationState
func ParseConversationState(s string) (ConversationState, error) {
	state := ConversationState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid conversation state: %s", s)
	}
	return state, nil
}
