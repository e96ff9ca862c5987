package usecase

import "context"

// SyncDispatch makes CRM side effects run inline so tests can assert on
// them deterministically.
func (uc *ConversationUseCase) SyncDispatch() {
	uc.dispatch = func(ctx context.Context, handler func(ctx context.Context) error) {
		_ = handler(ctx)
	}
}

var (
	MenuReply     = menuReply
	ForwardReply  = forwardReply
	MostlyNumeric = mostlyNumeric
	ParseQuantity = parseQuantity
	ContainsAny   = containsAny
)
