package domain

import "errors"

var (
	ErrUnauthorized      = errors.New("Only admin can perform this action")
	ErrAlreadyRegistered = errors.New("Voter is already registered")
	ErrNotRegistered     = errors.New("You are not a registered voter")
	ErrAlreadyVoted      = errors.New("You have already voted")
	ErrVotingClosed      = errors.New("Voting is not active")
	ErrInvalidCandidate  = errors.New("Invalid candidate")
	ErrInvalidWindow     = errors.New("End time must be after start time")
	ErrInternal          = errors.New("internal server error")
)
