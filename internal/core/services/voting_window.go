package services

import (
	"time"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

type votingWindow struct {
	window *domain.VotingWindow
}

func (w *votingWindow) set(window domain.VotingWindow) {
	w.window = &window
}

func (w *votingWindow) get() (domain.VotingWindow, bool) {
	if w.window == nil {
		return domain.VotingWindow{}, false
	}
	return *w.window, true
}

// requireOpen fails closed when no window has been configured.
func (w *votingWindow) requireOpen(now time.Time) error {
	if w.window == nil || !w.window.Contains(now) {
		return domain.ErrVotingClosed
	}
	return nil
}

func (w *votingWindow) state(now time.Time) domain.WindowState {
	if w.window == nil {
		return domain.WindowUnconfigured
	}
	return w.window.State(now)
}
