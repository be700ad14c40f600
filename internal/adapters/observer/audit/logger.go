package audit

import (
	"context"
	"log/slog"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

// Logger writes one structured audit line per committed transition and per
// rejected operation.
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger.With("component", "audit")}
}

var (
	_ ports.Observer          = (*Logger)(nil)
	_ ports.RejectionObserver = (*Logger)(nil)
)

func (l *Logger) OnTransition(ctx context.Context, t domain.Transition) {
	attrs := []any{
		"id", t.ID.String(),
		"kind", t.Kind,
		"caller", t.Caller,
		"recorded_at", t.RecordedAt,
	}
	p := t.Payload
	switch t.Kind {
	case domain.TransitionCandidateAdded:
		attrs = append(attrs, "candidate_index", p.CandidateIndex, "name", p.Name, "party_symbol", p.PartySymbol)
	case domain.TransitionVoterRegistered:
		attrs = append(attrs, "voter", p.Voter, "weight", p.Weight)
	case domain.TransitionWindowSet:
		attrs = append(attrs, "start_time", p.StartTime, "end_time", p.EndTime)
	case domain.TransitionVoteCast:
		attrs = append(attrs, "voter", p.Voter, "candidate_index", p.CandidateIndex, "weight", p.Weight)
	}
	l.logger.InfoContext(ctx, "transition committed", attrs...)
}

func (l *Logger) OnRejected(ctx context.Context, op string, caller domain.Address, err error) {
	l.logger.WarnContext(ctx, "operation rejected",
		"op", op,
		"caller", caller,
		"error", err,
	)
}
