package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

// electionService owns the whole election state. Every state-changing
// operation holds mu for its full check, append and apply sequence, so two
// operations never interleave.
type electionService struct {
	mu         sync.RWMutex
	access     accessControl
	candidates candidateRegistry
	voters     voterRegistry
	window     votingWindow

	ledger    ports.Ledger
	clock     ports.Clock
	observers []ports.Observer
	logger    *slog.Logger
}

var errVoterMismatch = errors.New("vote caller does not match voter")

type Option func(*electionService)

func WithObserver(o ports.Observer) Option {
	return func(s *electionService) {
		s.observers = append(s.observers, o)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *electionService) {
		s.logger = logger
	}
}

func NewElectionService(admin domain.Address, ledger ports.Ledger, clock ports.Clock, opts ...Option) ports.ElectionService {
	s := &electionService{
		access: accessControl{admin: admin},
		voters: newVoterRegistry(),
		ledger: ledger,
		clock:  clock,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *electionService) Admin() domain.Address {
	return s.access.admin
}

func (s *electionService) AddCandidate(ctx context.Context, caller domain.Address, name, partySymbol string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.access.requireAdmin(caller); err != nil {
		s.rejected(ctx, "add_candidate", caller, err)
		return 0, err
	}

	index := s.candidates.nextIndex()
	err := s.commit(ctx, s.clock.Now(), domain.TransitionCandidateAdded, caller, domain.Payload{
		CandidateIndex: index,
		Name:           name,
		PartySymbol:    partySymbol,
	})
	if err != nil {
		return 0, err
	}
	return index, nil
}

func (s *electionService) RegisterVoter(ctx context.Context, caller, voter domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.access.requireAdmin(caller); err != nil {
		s.rejected(ctx, "register_voter", caller, err)
		return err
	}
	if err := s.voters.canRegister(voter); err != nil {
		s.rejected(ctx, "register_voter", caller, err)
		return err
	}

	return s.commit(ctx, s.clock.Now(), domain.TransitionVoterRegistered, caller, domain.Payload{
		Voter:  voter,
		Weight: domain.DefaultVoterWeight,
	})
}

// InitializeVotingPeriod stores the window, replacing any window set before.
func (s *electionService) InitializeVotingPeriod(ctx context.Context, caller domain.Address, start, end time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.access.requireAdmin(caller); err != nil {
		s.rejected(ctx, "initialize_voting_period", caller, err)
		return err
	}
	window, err := domain.NewVotingWindow(start, end)
	if err != nil {
		s.rejected(ctx, "initialize_voting_period", caller, err)
		return err
	}

	return s.commit(ctx, s.clock.Now(), domain.TransitionWindowSet, caller, domain.Payload{
		StartTime: &window.StartTime,
		EndTime:   &window.EndTime,
	})
}

// Vote checks, in order: the window is open, the caller is registered, the
// caller has not voted yet, and the candidate exists. Nothing is mutated
// unless all four pass.
func (s *electionService) Vote(ctx context.Context, caller domain.Address, candidateIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if err := s.checkVote(now, caller, candidateIndex); err != nil {
		s.rejected(ctx, "vote", caller, err)
		return err
	}

	return s.commit(ctx, now, domain.TransitionVoteCast, caller, domain.Payload{
		CandidateIndex: candidateIndex,
		Voter:          caller,
		Weight:         s.voters.status(caller).Weight,
	})
}

func (s *electionService) checkVote(now time.Time, caller domain.Address, candidateIndex int) error {
	if err := s.window.requireOpen(now); err != nil {
		return err
	}
	status := s.voters.status(caller)
	if !status.IsRegistered {
		return domain.ErrNotRegistered
	}
	if status.HasVoted {
		return domain.ErrAlreadyVoted
	}
	if !s.candidates.exists(candidateIndex) {
		return domain.ErrInvalidCandidate
	}
	return nil
}

func (s *electionService) GetAllCandidates(ctx context.Context) []domain.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.candidates.all()
}

func (s *electionService) GetVoterStatus(ctx context.Context, voter domain.Address) domain.VoterStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voters.status(voter)
}

func (s *electionService) VotingPeriod(ctx context.Context) (domain.VotingWindow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window.get()
}

func (s *electionService) WindowState(ctx context.Context) domain.WindowState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window.state(s.clock.Now())
}

// Replay rebuilds the election from the ledger. It must run before any
// other operation and refuses to run on a non-empty election.
func (s *electionService) Replay(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candidates.nextIndex() > 0 || s.voters.len() > 0 {
		return fmt.Errorf("cannot replay ledger into a non-empty election")
	}

	transitions, err := s.ledger.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}

	for _, t := range transitions {
		if t.Kind != domain.TransitionVoteCast {
			if err := s.access.requireAdmin(t.Caller); err != nil {
				return fmt.Errorf("transition %s recorded by %q who is not the administrator: %w", t.ID, t.Caller, err)
			}
		}
		if err := s.apply(t); err != nil {
			return fmt.Errorf("failed to replay transition %s: %w", t.ID, err)
		}
	}

	s.logger.InfoContext(ctx, "election state replayed from ledger",
		"transitions", len(transitions),
		"candidates", s.candidates.nextIndex(),
		"voters", s.voters.len(),
	)
	return nil
}

// commit appends the transition to the ledger and only then applies it in
// memory. A failed append leaves the state untouched. Votes are recorded at
// the instant their window check used.
func (s *electionService) commit(ctx context.Context, recordedAt time.Time, kind domain.TransitionKind, caller domain.Address, payload domain.Payload) error {
	t := domain.Transition{
		ID:         uuid.New(),
		Kind:       kind,
		Caller:     caller,
		Payload:    payload,
		RecordedAt: recordedAt,
	}

	if err := s.ledger.Append(ctx, t); err != nil {
		s.logger.ErrorContext(ctx, "failed to append transition to ledger",
			"kind", kind,
			"caller", caller,
			"error", err,
		)
		return fmt.Errorf("%w: failed to append transition: %v", domain.ErrInternal, err)
	}

	if err := s.apply(t); err != nil {
		return fmt.Errorf("%w: failed to apply transition %s: %v", domain.ErrInternal, t.ID, err)
	}

	for _, o := range s.observers {
		o.OnTransition(ctx, t)
	}
	return nil
}

func (s *electionService) apply(t domain.Transition) error {
	p := t.Payload
	switch t.Kind {
	case domain.TransitionCandidateAdded:
		if p.CandidateIndex != s.candidates.nextIndex() {
			return fmt.Errorf("candidate index %d out of sequence, expected %d", p.CandidateIndex, s.candidates.nextIndex())
		}
		s.candidates.add(p.Name, p.PartySymbol)
	case domain.TransitionVoterRegistered:
		return s.voters.register(p.Voter)
	case domain.TransitionWindowSet:
		if p.StartTime == nil || p.EndTime == nil {
			return fmt.Errorf("window transition without bounds")
		}
		window, err := domain.NewVotingWindow(*p.StartTime, *p.EndTime)
		if err != nil {
			return err
		}
		s.window.set(window)
	case domain.TransitionVoteCast:
		if t.Caller != p.Voter {
			return fmt.Errorf("%w: vote by %q recorded for voter %q", errVoterMismatch, t.Caller, p.Voter)
		}
		if err := s.window.requireOpen(t.RecordedAt); err != nil {
			return err
		}
		status := s.voters.status(p.Voter)
		switch {
		case !status.IsRegistered:
			return domain.ErrNotRegistered
		case status.HasVoted:
			return domain.ErrAlreadyVoted
		case !s.candidates.exists(p.CandidateIndex):
			return domain.ErrInvalidCandidate
		}
		s.candidates.addVotes(p.CandidateIndex, status.Weight)
		s.voters.markVoted(p.Voter)
	default:
		return fmt.Errorf("unknown transition kind %q", t.Kind)
	}
	return nil
}

func (s *electionService) rejected(ctx context.Context, op string, caller domain.Address, err error) {
	s.logger.DebugContext(ctx, "operation rejected", "op", op, "caller", caller, "error", err)
	for _, o := range s.observers {
		if ro, ok := o.(ports.RejectionObserver); ok {
			ro.OnRejected(ctx, op, caller, err)
		}
	}
}
