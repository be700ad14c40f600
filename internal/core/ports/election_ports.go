package ports

import (
	"context"
	"time"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

type ElectionService interface {
	Admin() domain.Address
	AddCandidate(ctx context.Context, caller domain.Address, name, partySymbol string) (int, error)
	RegisterVoter(ctx context.Context, caller, voter domain.Address) error
	InitializeVotingPeriod(ctx context.Context, caller domain.Address, start, end time.Time) error
	Vote(ctx context.Context, caller domain.Address, candidateIndex int) error

	GetAllCandidates(ctx context.Context) []domain.Candidate
	GetVoterStatus(ctx context.Context, voter domain.Address) domain.VoterStatus
	VotingPeriod(ctx context.Context) (domain.VotingWindow, bool)
	WindowState(ctx context.Context) domain.WindowState

	Replay(ctx context.Context) error
}
