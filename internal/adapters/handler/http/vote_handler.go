package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/election/internal/core/ports"
)

type VoteHandler struct {
	service ports.ElectionService
	logger  *slog.Logger
}

func NewVoteHandler(service ports.ElectionService, logger *slog.Logger) *VoteHandler {
	return &VoteHandler{
		service: service,
		logger:  logger,
	}
}

type voteRequest struct {
	CandidateIndex *int `json:"candidate_index"`
}

func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing caller context", http.StatusUnauthorized)
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.CandidateIndex == nil {
		http.Error(w, "missing candidate_index", http.StatusBadRequest)
		return
	}

	if err := h.service.Vote(r.Context(), caller, *req.CandidateIndex); err != nil {
		writeElectionError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
