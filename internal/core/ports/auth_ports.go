package ports

import (
	"context"
	"time"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

// TokenVerifier resolves a bearer credential to the caller address it was
// issued for.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (domain.Address, error)
}

type TokenIssuer interface {
	Issue(caller domain.Address, ttl time.Duration) (string, error)
}
