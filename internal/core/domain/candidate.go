package domain

type Candidate struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	PartySymbol string `json:"party_symbol"`
	VoteCount   uint64 `json:"vote_count"`
}
