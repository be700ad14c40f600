package memory

import (
	"context"
	"sync"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

// Ledger keeps transitions in process memory. It is used when no database is
// configured and in tests.
type Ledger struct {
	mu          sync.RWMutex
	transitions []domain.Transition
}

func NewLedger() *Ledger {
	return &Ledger{}
}

var _ ports.Ledger = (*Ledger)(nil)

func (l *Ledger) Append(_ context.Context, t domain.Transition) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transitions = append(l.transitions, t)
	return nil
}

func (l *Ledger) Load(_ context.Context) ([]domain.Transition, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.Transition{}, l.transitions...), nil
}
