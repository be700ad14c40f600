package domain

import "time"

type VotingWindow struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// NewVotingWindow returns ErrInvalidWindow unless end is strictly after start.
func NewVotingWindow(start, end time.Time) (VotingWindow, error) {
	if !end.After(start) {
		return VotingWindow{}, ErrInvalidWindow
	}
	return VotingWindow{StartTime: start, EndTime: end}, nil
}

// Contains reports whether start <= now <= end.
func (w VotingWindow) Contains(now time.Time) bool {
	return !now.Before(w.StartTime) && !now.After(w.EndTime)
}

// State classifies now against the window. Bounds are inclusive.
func (w VotingWindow) State(now time.Time) WindowState {
	switch {
	case now.Before(w.StartTime):
		return WindowScheduled
	case now.After(w.EndTime):
		return WindowClosed
	default:
		return WindowOpen
	}
}

type WindowState string

const (
	WindowUnconfigured WindowState = "unconfigured"
	WindowScheduled    WindowState = "scheduled"
	WindowOpen         WindowState = "open"
	WindowClosed       WindowState = "closed"
)
