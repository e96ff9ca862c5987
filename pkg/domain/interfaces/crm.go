package interfaces

import (
	"context"

	"github.com/selec-labs/selecbot/pkg/domain/model"
)

// CRM is the back-office collaborator that receives completed flows.
// Implementations resolve or create the account, create the record, and
// may notify an owner. Failures are the caller's to log; they never reach
// the visitor.
type CRM interface {
	// SubmitQuote forwards a completed quote request
	SubmitQuote(ctx context.Context, submission *model.Submission) error

	// SubmitAfterSales forwards a completed after-sales request
	SubmitAfterSales(ctx context.Context, submission *model.Submission) error
}
