package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/selec-labs/selecbot/pkg/domain/interfaces"
	"github.com/selec-labs/selecbot/pkg/domain/model"
	"github.com/selec-labs/selecbot/pkg/domain/model/config"
	"github.com/selec-labs/selecbot/pkg/domain/types"
	"github.com/selec-labs/selecbot/pkg/utils/async"
	"github.com/selec-labs/selecbot/pkg/utils/errutil"
	"github.com/selec-labs/selecbot/pkg/utils/logging"
	"github.com/selec-labs/selecbot/pkg/utils/normalize"
)

// ConversationUseCase owns the per-visitor conversation state machine. It
// resolves the visitor identity, fetches or creates the session, and
// dispatches the event to the handler for the current state.
type ConversationUseCase struct {
	repo      interfaces.Repository
	crm       interfaces.CRM
	cfg       *config.Bot
	extractor *Extractor

	// dispatch runs the CRM side effect; swapped for a synchronous
	// version in tests
	dispatch func(ctx context.Context, handler func(ctx context.Context) error)
}

// NewConversationUseCase creates the conversation state machine. crm may
// be nil, in which case completed flows are only archived locally.
func NewConversationUseCase(repo interfaces.Repository, cfg *config.Bot, crm interfaces.CRM) *ConversationUseCase {
	if cfg == nil {
		cfg = config.Default()
	}
	return &ConversationUseCase{
		repo:      repo,
		crm:       crm,
		cfg:       cfg,
		extractor: NewExtractor(cfg),
		dispatch:  async.Dispatch,
	}
}

// HandleEvent processes one inbound chat event and returns the reply
// envelope. Every reachable condition resolves to a valid reply and a
// defined next state; there is no fatal path for the visitor.
func (uc *ConversationUseCase) HandleEvent(ctx context.Context, ev *model.Event) (*model.Reply, error) {
	visitorID := ev.Identity(uc.cfg.IdentityPriority)

	session, err := uc.repo.Session().GetOrCreate(ctx, visitorID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get or create session", goerr.V("visitor_id", visitorID))
	}

	logging.From(ctx).Info("handling chat event",
		"kind", ev.Kind,
		"operation", ev.Operation,
		"visitor_id", visitorID,
		"state", session.State,
	)

	switch ev.Kind {
	case types.EventTrigger:
		return uc.handleTrigger(ctx, session)
	case types.EventMessage:
		return uc.handleMessage(ctx, session, ev.Message)
	default:
		// Other event kinds (context etc.) get an acknowledgement with
		// no state change.
		return ackReply(), nil
	}
}

// handleTrigger always forces the main menu, regardless of prior state
func (uc *ConversationUseCase) handleTrigger(ctx context.Context, session *model.Session) (*model.Reply, error) {
	session.State = types.StateMainMenu
	if err := uc.repo.Session().Update(ctx, session); err != nil {
		return nil, goerr.Wrap(err, "failed to update session")
	}
	return menuReply(), nil
}

func (uc *ConversationUseCase) handleMessage(ctx context.Context, session *model.Session, text string) (*model.Reply, error) {
	switch session.State.Normalize() {
	case types.StateIdle:
		// Some channels never deliver a trigger event, so the first real
		// message still shows the menu.
		session.State = types.StateMainMenu
		if err := uc.repo.Session().Update(ctx, session); err != nil {
			return nil, goerr.Wrap(err, "failed to update session")
		}
		return menuReply(), nil

	case types.StateMainMenu:
		return uc.handleMenuChoice(ctx, session, text)

	case types.StateQuoteEntry, types.StateAfterSalesEntry:
		return uc.handleFlowMessage(ctx, session, text)

	case types.StateForwarded:
		// Terminal state: keep signalling the hand-off, no automated
		// handling.
		return forwardReply(), nil

	default:
		// Unknown stored state, recover by restarting at the menu
		session.ResetToMenu()
		if err := uc.repo.Session().Update(ctx, session); err != nil {
			return nil, goerr.Wrap(err, "failed to update session")
		}
		return menuReply(), nil
	}
}

// handleMenuChoice routes the top-level choice. Quote keywords are tested
// before after-sales keywords; the first match wins. Anything else is
// handed off to a human operator.
func (uc *ConversationUseCase) handleMenuChoice(ctx context.Context, session *model.Session, text string) (*model.Reply, error) {
	norm := normalize.Normalize(text)

	if containsAny(norm, uc.cfg.QuoteKeywords) {
		session.BeginFlow(types.StateQuoteEntry)
		if err := uc.repo.Session().Update(ctx, session); err != nil {
			return nil, goerr.Wrap(err, "failed to update session")
		}
		return flowIntroReply(model.QuoteFlow()), nil
	}

	if containsAny(norm, uc.cfg.AfterSalesKeywords) {
		session.BeginFlow(types.StateAfterSalesEntry)
		if err := uc.repo.Session().Update(ctx, session); err != nil {
			return nil, goerr.Wrap(err, "failed to update session")
		}
		return flowIntroReply(model.AfterSalesFlow()), nil
	}

	session.State = types.StateForwarded
	if err := uc.repo.Session().Update(ctx, session); err != nil {
		return nil, goerr.Wrap(err, "failed to update session")
	}
	return forwardReply(), nil
}

// handleFlowMessage runs extract then validate for the active flow. The
// visitor stays in the entry state until the required set is complete;
// there is no retry limit.
func (uc *ConversationUseCase) handleFlowMessage(ctx context.Context, session *model.Session, text string) (*model.Reply, error) {
	flow := model.FlowForState(session.State)
	if flow == nil {
		session.ResetToMenu()
		if err := uc.repo.Session().Update(ctx, session); err != nil {
			return nil, goerr.Wrap(err, "failed to update session")
		}
		return menuReply(), nil
	}

	session.Data = uc.extractor.Extract(flow, session.Data, text)

	if missing := MissingFields(flow, session.Data); len(missing) > 0 {
		if err := uc.repo.Session().Update(ctx, session); err != nil {
			return nil, goerr.Wrap(err, "failed to update session")
		}
		return correctionReply(missing), nil
	}

	submission := model.NewSubmission(flow, session.ID, session.Data)

	// The archive is best effort: a storage failure must not block the
	// confirmation the visitor already earned.
	if _, err := uc.repo.Submission().Create(ctx, submission); err != nil {
		errutil.Handle(ctx, err, "failed to archive submission")
	}

	uc.dispatchToCRM(ctx, flow.Kind, submission)

	session.ResetToMenu()
	if err := uc.repo.Session().Update(ctx, session); err != nil {
		return nil, goerr.Wrap(err, "failed to update session")
	}

	return confirmationReply(flow, submission.Summary), nil
}

// dispatchToCRM forwards the submission fire-and-forget. CRM latency or
// failure never blocks the reply or the state transition.
func (uc *ConversationUseCase) dispatchToCRM(ctx context.Context, kind types.FlowKind, submission *model.Submission) {
	if uc.crm == nil {
		return
	}

	sub := submission.Clone()
	uc.dispatch(ctx, func(ctx context.Context) error {
		switch kind {
		case types.FlowAfterSales:
			return uc.crm.SubmitAfterSales(ctx, sub)
		default:
			return uc.crm.SubmitQuote(ctx, sub)
		}
	})
}

func containsAny(norm string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && normalize.Contains(norm, kw) {
			return true
		}
	}
	return false
}
