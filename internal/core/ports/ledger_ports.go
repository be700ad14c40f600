package ports

import (
	"context"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

// Ledger is the durable, totally ordered log of committed transitions.
// Append must either persist the transition or return an error; a failed
// append means the transition did not happen.
type Ledger interface {
	Append(ctx context.Context, t domain.Transition) error
	Load(ctx context.Context) ([]domain.Transition, error)
}
