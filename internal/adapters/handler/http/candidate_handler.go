package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/election/internal/core/ports"
)

type CandidateHandler struct {
	service ports.ElectionService
	logger  *slog.Logger
}

func NewCandidateHandler(service ports.ElectionService, logger *slog.Logger) *CandidateHandler {
	return &CandidateHandler{
		service: service,
		logger:  logger,
	}
}

type addCandidateRequest struct {
	Name        string `json:"name"`
	PartySymbol string `json:"party_symbol"`
}

type addCandidateResponse struct {
	Index int `json:"index"`
}

func (h *CandidateHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing caller context", http.StatusUnauthorized)
		return
	}

	var req addCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	index, err := h.service.AddCandidate(r.Context(), caller, req.Name, req.PartySymbol)
	if err != nil {
		writeElectionError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, addCandidateResponse{Index: index})
}

func (h *CandidateHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.GetAllCandidates(r.Context()))
}

type adminResponse struct {
	Admin string `json:"admin"`
}

func (h *CandidateHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, adminResponse{Admin: string(h.service.Admin())})
}
