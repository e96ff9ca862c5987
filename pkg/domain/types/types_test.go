package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/selec-labs/selecbot/pkg/domain/types"
)

func TestConversationState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state types.ConversationState
		want  bool
	}{
		{name: "idle", state: types.StateIdle, want: true},
		{name: "main menu", state: types.StateMainMenu, want: true},
		{name: "quote entry", state: types.StateQuoteEntry, want: true},
		{name: "aftersales entry", state: types.StateAfterSalesEntry, want: true},
		{name: "forwarded", state: types.StateForwarded, want: true},
		{name: "invalid", state: types.ConversationState("cotizacion_empresa"), want: false},
		{name: "empty", state: types.ConversationState(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, tt.state.IsValid()).Equal(tt.want)
		})
	}
}

func TestConversationState_Normalize(t *testing.T) {
	gt.V(t, types.ConversationState("").Normalize()).Equal(types.StateIdle)
	gt.V(t, types.StateMainMenu.Normalize()).Equal(types.StateMainMenu)
}

func TestConversationState_IsEntry(t *testing.T) {
	gt.B(t, types.StateQuoteEntry.IsEntry()).True()
	gt.B(t, types.StateAfterSalesEntry.IsEntry()).True()
	gt.B(t, types.StateMainMenu.IsEntry()).False()
	gt.B(t, types.StateForwarded.IsEntry()).False()
}

func TestAllConversationStates(t *testing.T) {
	states := types.AllConversationStates()
	gt.A(t, states).Length(5)
	for _, s := range states {
		gt.B(t, s.IsValid()).Describef("state %s should be valid", s).True()
	}
}

func TestParseConversationState(t *testing.T) {
	got, err := types.ParseConversationState("main_menu")
	gt.NoError(t, err)
	gt.V(t, got).Equal(types.StateMainMenu)

	_, err = types.ParseConversationState("menu_principal")
	gt.Error(t, err)
}

func TestAllFlowKinds(t *testing.T) {
	kinds := types.AllFlowKinds()
	gt.A(t, kinds).Length(2)
	for _, k := range kinds {
		gt.B(t, k.IsValid()).Describef("flow kind %s should be valid", k).True()
	}
}

func TestParseFlowKind(t *testing.T) {
	got, err := types.ParseFlowKind("quote")
	gt.NoError(t, err)
	gt.V(t, got).Equal(types.FlowQuote)

	_, err = types.ParseFlowKind("warranty")
	gt.Error(t, err)
}

func TestParseEventKind(t *testing.T) {
	gt.V(t, types.ParseEventKind("trigger")).Equal(types.EventTrigger)
	gt.V(t, types.ParseEventKind("message")).Equal(types.EventMessage)
	gt.V(t, types.ParseEventKind("context")).Equal(types.EventUnknown)
	gt.V(t, types.ParseEventKind("")).Equal(types.EventUnknown)
}

func TestNewSubmissionID(t *testing.T) {
	a := types.NewSubmissionID()
	b := types.NewSubmissionID()
	gt.S(t, a.String()).NotEqual("")
	gt.S(t, a.String()).NotEqual(b.String())
}

func TestReplyAction(t *testing.T) {
	gt.B(t, types.ActionReply.IsValid()).True()
	gt.B(t, types.ActionForward.IsValid()).True()
	gt.B(t, types.ReplyAction("escalate").IsValid()).False()
}
