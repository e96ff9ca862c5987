package model

import (
	"time"

	"github.com/selec-labs/selecbot/pkg/domain/types"
)

// Submission is the snapshot of a completed flow: the validated field set
// a visitor finished, archived locally and dispatched to the CRM. The
// archive is the process-local audit trail; CRM delivery is best effort.
type Submission struct {
	ID        types.SubmissionID        `json:"id"`
	Flow      types.FlowKind            `json:"flow"`
	VisitorID types.VisitorID           `json:"visitor_id"`
	Data      map[types.FieldKey]string `json:"data"`
	Summary   string                    `json:"summary"`
	CreatedAt time.Time                 `json:"created_at"`
}

// NewSubmission snapshots a completed flow for the given visitor
func NewSubmission(flow *FlowSpec, visitorID types.VisitorID, data map[types.FieldKey]string) *Submission {
	snapshot := make(map[types.FieldKey]string, len(data))
	for k, v := range data {
		snapshot[k] = v
	}

	return &Submission{
		ID:        types.NewSubmissionID(),
		Flow:      flow.Kind,
		VisitorID: visitorID,
		Data:      snapshot,
		Summary:   flow.Summary(data),
		CreatedAt: time.Now().UTC(),
	}
}

// Field returns a single field value from the snapshot
func (s *Submission) Field(key types.FieldKey) string {
	return s.Data[key]
}

// Clone returns a deep copy of the submission
func (s *Submission) Clone() *Submission {
	copied := *s
	copied.Data = make(map[types.FieldKey]string, len(s.Data))
	for k, v := range s.Data {
		copied.Data[k] = v
	}
	return &copied
}
