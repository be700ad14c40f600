package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Candidates    *CandidateHandler
	Voters        *VoterHandler
	VotingPeriod  *VotingPeriodHandler
	Votes         *VoteHandler
	RequireCaller func(http.Handler) http.Handler
	Metrics       http.Handler
}

func NewHandler(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Get("/admin", h.Candidates.GetAdmin)
		r.Get("/candidates", h.Candidates.ListCandidates)
		r.Get("/voters/{address}", h.Voters.GetVoterStatus)
		r.Get("/voting-period", h.VotingPeriod.GetVotingPeriod)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireCaller)

			r.Post("/candidates", h.Candidates.AddCandidate)
			r.Post("/voters", h.Voters.RegisterVoter)
			r.Put("/voting-period", h.VotingPeriod.InitializeVotingPeriod)
			r.Post("/votes", h.Votes.Vote)
		})
	})

	return r
}
