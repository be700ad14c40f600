package ports

import (
	"context"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

type Observer interface {
	OnTransition(ctx context.Context, t domain.Transition)
}

// RejectionObserver is optionally implemented by observers that also want to
// see operations the election refused.
type RejectionObserver interface {
	OnRejected(ctx context.Context, op string, caller domain.Address, err error)
}
