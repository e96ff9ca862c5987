package model

import "github.com/selec-labs/selecbot/pkg/domain/types"

// Reply is the outbound envelope understood by the chat transport. Field
// names follow the SalesIQ bot contract.
type Reply struct {
	Action  types.ReplyAction `json:"action"`
	Replies []string          `json:"replies"`
	Input   *SelectInput      `json:"input,omitempty"`
}

// SelectInput is a selectable-choice control, used only at the main menu
type SelectInput struct {
	Type    string   `json:"type"`
	Options []string `json:"options"`
}

// NewReply builds a reply envelope that continues the automated flow
func NewReply(texts ...string) *Reply {
	return &Reply{
		Action:  types.ActionReply,
		Replies: texts,
	}
}

// NewForward builds a reply envelope that hands the conversation off to a
// human operator.
func NewForward(texts ...string) *Reply {
	return &Reply{
		Action:  types.ActionForward,
		Replies: texts,
	}
}

// WithSelect attaches a select card with the given option labels
func (r *Reply) WithSelect(options ...string) *Reply {
	r.Input = &SelectInput{
		Type:    "select",
		Options: options,
	}
	return r
}
