package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type TransitionKind string

const (
	TransitionCandidateAdded  TransitionKind = "candidate_added"
	TransitionVoterRegistered TransitionKind = "voter_registered"
	TransitionWindowSet       TransitionKind = "window_set"
	TransitionVoteCast        TransitionKind = "vote_cast"
)

// Transition is one committed state change of the election. It is what gets
// appended to the ledger and what observers are notified with.
type Transition struct {
	ID         uuid.UUID      `json:"id"`
	Kind       TransitionKind `json:"kind"`
	Caller     Address        `json:"caller"`
	Payload    Payload        `json:"payload"`
	RecordedAt time.Time      `json:"recorded_at"`
}

// Payload carries the fields relevant to a transition kind. Unused fields are
// left zero and omitted when encoded.
type Payload struct {
	CandidateIndex int        `json:"candidate_index"`
	Name           string     `json:"name,omitempty"`
	PartySymbol    string     `json:"party_symbol,omitempty"`
	Voter          Address    `json:"voter,omitempty"`
	Weight         uint64     `json:"weight,omitempty"`
	StartTime      *time.Time `json:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
}

func (p Payload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

func UnmarshalPayload(data []byte) (Payload, error) {
	var p Payload
	err := json.Unmarshal(data, &p)
	return p, err
}
