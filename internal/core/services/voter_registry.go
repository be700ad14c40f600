package services

import "github.com/vncsmyrnk/election/internal/core/domain"

type voterRegistry struct {
	voters map[domain.Address]domain.Voter
}

func newVoterRegistry() voterRegistry {
	return voterRegistry{voters: make(map[domain.Address]domain.Voter)}
}

func (r *voterRegistry) canRegister(addr domain.Address) error {
	if _, ok := r.voters[addr]; ok {
		return domain.ErrAlreadyRegistered
	}
	return nil
}

func (r *voterRegistry) register(addr domain.Address) error {
	if err := r.canRegister(addr); err != nil {
		return err
	}
	r.voters[addr] = domain.Voter{
		Address:      addr,
		IsRegistered: true,
		Weight:       domain.DefaultVoterWeight,
	}
	return nil
}

// status reports (false, false, 0) for addresses that were never registered.
func (r *voterRegistry) status(addr domain.Address) domain.VoterStatus {
	return r.voters[addr].Status()
}

// markVoted does not re-check eligibility; the election does that before
// calling it.
func (r *voterRegistry) markVoted(addr domain.Address) {
	v := r.voters[addr]
	v.HasVoted = true
	r.voters[addr] = v
}

func (r *voterRegistry) len() int {
	return len(r.voters)
}
