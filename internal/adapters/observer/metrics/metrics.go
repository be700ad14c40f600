package metrics

import (
	"context"
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

// Metrics provides observability for the election.
type Metrics struct {
	// Vote weight added per candidate index
	VotesCast *prometheus.CounterVec

	// Committed transitions by kind
	Transitions *prometheus.CounterVec

	// Refused operations by operation and reason
	Rejections *prometheus.CounterVec
}

var (
	_ ports.Observer          = (*Metrics)(nil)
	_ ports.RejectionObserver = (*Metrics)(nil)
)

// New registers all election metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		VotesCast: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "election_votes_cast_total",
			Help: "Total vote weight cast per candidate",
		}, []string{"candidate"}),

		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "election_transitions_total",
			Help: "Total committed state transitions by kind",
		}, []string{"kind"}),

		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "election_rejections_total",
			Help: "Total rejected operations by operation and reason",
		}, []string{"op", "reason"}),
	}
}

func (m *Metrics) OnTransition(_ context.Context, t domain.Transition) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(string(t.Kind)).Inc()
	if t.Kind == domain.TransitionVoteCast {
		m.VotesCast.WithLabelValues(strconv.Itoa(t.Payload.CandidateIndex)).Add(float64(t.Payload.Weight))
	}
}

func (m *Metrics) OnRejected(_ context.Context, op string, _ domain.Address, err error) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(op, Reason(err)).Inc()
}

// Reason maps an election error to a low-cardinality label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, domain.ErrNotRegistered):
		return "not_registered"
	case errors.Is(err, domain.ErrAlreadyVoted):
		return "already_voted"
	case errors.Is(err, domain.ErrVotingClosed):
		return "voting_closed"
	case errors.Is(err, domain.ErrInvalidCandidate):
		return "invalid_candidate"
	case errors.Is(err, domain.ErrInvalidWindow):
		return "invalid_window"
	default:
		return "internal"
	}
}
