package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/selec-labs/selecbot/pkg/domain/model"
	"github.com/selec-labs/selecbot/pkg/domain/types"
)

func TestNewSession(t *testing.T) {
	s := model.NewSession("visitor-1")

	gt.V(t, s.ID).Equal(types.VisitorID("visitor-1"))
	gt.V(t, s.State).Equal(types.StateIdle)
	gt.V(t, s.Data).NotNil()
	gt.N(t, len(s.Data)).Equal(0)
	gt.B(t, s.CreatedAt.IsZero()).False()
}

func TestSession_BeginFlow(t *testing.T) {
	s := model.NewSession("visitor-1")
	s.State = types.StateMainMenu
	s.Data[types.FieldCompany] = "stale"

	s.BeginFlow(types.StateQuoteEntry)

	gt.V(t, s.State).Equal(types.StateQuoteEntry)
	gt.N(t, len(s.Data)).Equal(0)
}

func TestSession_ResetToMenu(t *testing.T) {
	s := model.NewSession("visitor-1")
	s.State = types.StateQuoteEntry
	s.Data[types.FieldCompany] = "Acme"

	s.ResetToMenu()

	gt.V(t, s.State).Equal(types.StateMainMenu)
	gt.N(t, len(s.Data)).Equal(0)
}

func TestSession_Clone(t *testing.T) {
	s := model.NewSession("visitor-1")
	s.Data[types.FieldCompany] = "Acme"

	c := s.Clone()
	c.Data[types.FieldCompany] = "Other"
	c.State = types.StateForwarded

	gt.S(t, s.Data[types.FieldCompany]).Equal("Acme")
	gt.V(t, s.State).Equal(types.StateIdle)
}

func TestNewSubmission(t *testing.T) {
	flow := model.QuoteFlow()
	data := map[types.FieldKey]string{
		types.FieldCompany:  "Acme SpA",
		types.FieldQuantity: "3",
	}

	sub := model.NewSubmission(flow, "visitor-1", data)

	gt.S(t, sub.ID.String()).NotEqual("")
	gt.V(t, sub.Flow).Equal(types.FlowQuote)
	gt.V(t, sub.VisitorID).Equal(types.VisitorID("visitor-1"))
	gt.S(t, sub.Summary).Equal("Empresa: Acme SpA\nCantidad: 3")

	// The snapshot is detached from the live session data
	data[types.FieldCompany] = "mutated"
	gt.S(t, sub.Field(types.FieldCompany)).Equal("Acme SpA")
}
