package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/selec-labs/selecbot/pkg/domain/types"
)

// Event is one inbound chat event after tolerant decoding of the raw
// webhook payload. A malformed or empty payload decodes to an unknown
// event, never to an error: the worst the transport can do to the
// conversation is trigger a generic acknowledgement.
type Event struct {
	Kind      types.EventKind
	Operation string
	Message   string

	// attrs holds the visitor identity attributes found in the payload,
	// keyed by the names used in config.Bot.IdentityPriority.
	attrs map[string]string
}

// rawEvent mirrors the SalesIQ webhook payload shape. The message body may
// live at the top level or nested under "request", and may be a plain
// string or an object carrying "text" or "value".
type rawEvent struct {
	Handler   string          `json:"handler"`
	Operation string          `json:"operation"`
	Message   json.RawMessage `json:"message"`
	Request   struct {
		Message json.RawMessage `json:"message"`
	} `json:"request"`
	Conversation struct {
		ID string `json:"id"`
	} `json:"conversation"`
	Visitor map[string]any `json:"visitor"`
}

// ParseEvent decodes a webhook body into an Event. It is total: any body
// that does not decode yields an unknown event with no message.
func ParseEvent(body []byte) *Event {
	var raw rawEvent
	if len(body) == 0 || json.Unmarshal(body, &raw) != nil {
		return &Event{Kind: types.EventUnknown, attrs: map[string]string{}}
	}

	ev := &Event{
		Kind:      types.ParseEventKind(raw.Handler),
		Operation: raw.Operation,
		attrs:     map[string]string{},
	}

	// Top-level message first, then the nested location.
	if text := decodeMessage(raw.Message); text != "" {
		ev.Message = text
	} else {
		ev.Message = decodeMessage(raw.Request.Message)
	}

	if raw.Conversation.ID != "" {
		ev.attrs["conversation_id"] = raw.Conversation.ID
	}
	for _, attr := range []string{"phone", "visitor_id", "id", "email", "ip"} {
		if v := stringAttr(raw.Visitor[attr]); v != "" {
			ev.attrs[attr] = v
		}
	}

	return ev
}

// decodeMessage extracts text from a message node that may be a string or
// an object with a "text" or "value" field.
func decodeMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj struct {
		Text  string `json:"text"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Text != "" {
			return strings.TrimSpace(obj.Text)
		}
		return strings.TrimSpace(obj.Value)
	}

	return ""
}

// stringAttr coerces a payload attribute to a string. SalesIQ delivers
// some IDs as numbers.
func stringAttr(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Identity derives the visitor identity from the first attribute in the
// priority list that has a value, falling back to the anonymous constant.
// The result must be stable for the whole interaction; an unstable
// identity means session loss.
func (e *Event) Identity(priority []string) types.VisitorID {
	for _, attr := range priority {
		if v := e.attrs[attr]; v != "" {
			return types.VisitorID(v)
		}
	}
	return types.AnonymousVisitorID
}
