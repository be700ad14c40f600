package services

import "github.com/vncsmyrnk/election/internal/core/domain"

// candidateRegistry is append-only. A candidate's index is its position in
// the slice and never changes.
type candidateRegistry struct {
	candidates []domain.Candidate
}

func (r *candidateRegistry) add(name, partySymbol string) int {
	index := len(r.candidates)
	r.candidates = append(r.candidates, domain.Candidate{
		Index:       index,
		Name:        name,
		PartySymbol: partySymbol,
	})
	return index
}

func (r *candidateRegistry) nextIndex() int {
	return len(r.candidates)
}

func (r *candidateRegistry) exists(index int) bool {
	return index >= 0 && index < len(r.candidates)
}

func (r *candidateRegistry) addVotes(index int, weight uint64) {
	r.candidates[index].VoteCount += weight
}

func (r *candidateRegistry) all() []domain.Candidate {
	return append([]domain.Candidate{}, r.candidates...)
}
