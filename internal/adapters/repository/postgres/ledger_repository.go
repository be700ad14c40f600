package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) ports.Ledger {
	return &ledgerRepository{
		db: db,
	}
}

func (r *ledgerRepository) Append(ctx context.Context, t domain.Transition) error {
	payload, err := t.Payload.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	query := `
		INSERT INTO election_ledger (id, kind, caller, payload, recorded_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err = r.db.ExecContext(ctx, query, t.ID, string(t.Kind), string(t.Caller), string(payload), t.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to append transition: %w", err)
	}
	return nil
}

func (r *ledgerRepository) Load(ctx context.Context) ([]domain.Transition, error) {
	query := `
		SELECT id, kind, caller, payload, recorded_at
		FROM election_ledger
		ORDER BY seq ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	defer rows.Close()

	var transitions []domain.Transition
	for rows.Next() {
		var (
			t       domain.Transition
			kind    string
			caller  string
			payload []byte
		)
		if err := rows.Scan(&t.ID, &kind, &caller, &payload, &t.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transition: %w", err)
		}
		t.Kind = domain.TransitionKind(kind)
		t.Caller = domain.Address(caller)
		t.Payload, err = domain.UnmarshalPayload(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode payload of transition %s: %w", t.ID, err)
		}
		transitions = append(transitions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger: %w", err)
	}
	return transitions, nil
}
