package ports

import (
	"context"

	"github.com/bnema/doctowatch/internal/domain"
)

// Notifier is invoked repeatedly once a slot exists, until the operator
// kills the process.
type Notifier interface {
	Notify(ctx context.Context, alert domain.SlotAlert) error
}
