// Package memory provides an in-memory repository. Sessions do not survive
// a restart, which matches the deployment model: one process per bot, and
// visitors simply start over at the menu after a redeploy.
package memory

import (
	"github.com/selec-labs/selecbot/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	sessions    *sessionRepository
	submissions *submissionRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		sessions:    newSessionRepository(),
		submissions: newSubmissionRepository(),
	}
}

func (m *Memory) Session() interfaces.SessionRepository {
	return m.sessions
}

func (m *Memory) Submission() interfaces.SubmissionRepository {
	return m.submissions
}

func (m *Memory) Close() error {
	return nil
}
