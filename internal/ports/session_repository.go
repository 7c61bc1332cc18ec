package ports

import (
	"context"

	"github.com/bnema/doctowatch/internal/domain"
)

// SessionRepository persists the session blob between runs. Load must treat
// a missing blob as empty state, not an error. The orchestrator calls Save
// on every exit path; the session itself never saves.
type SessionRepository interface {
	Load(ctx context.Context) (domain.SessionState, error)
	Save(ctx context.Context, state domain.SessionState) error
	Clear(ctx context.Context) error
}
