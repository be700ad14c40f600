package domain

// Address is the opaque caller identity handed to the election by the
// transport layer.
type Address string

// DefaultVoterWeight is applied to every newly registered voter.
const DefaultVoterWeight uint64 = 1

type Voter struct {
	Address      Address `json:"address"`
	IsRegistered bool    `json:"is_registered"`
	HasVoted     bool    `json:"has_voted"`
	Weight       uint64  `json:"weight"`
}

type VoterStatus struct {
	IsRegistered bool   `json:"is_registered"`
	HasVoted     bool   `json:"has_voted"`
	Weight       uint64 `json:"weight"`
}

func (v Voter) Status() VoterStatus {
	return VoterStatus{
		IsRegistered: v.IsRegistered,
		HasVoted:     v.HasVoted,
		Weight:       v.Weight,
	}
}
