package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type VoterHandler struct {
	service ports.ElectionService
	logger  *slog.Logger
}

func NewVoterHandler(service ports.ElectionService, logger *slog.Logger) *VoterHandler {
	return &VoterHandler{
		service: service,
		logger:  logger,
	}
}

type registerVoterRequest struct {
	Address string `json:"address"`
}

func (h *VoterHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing caller context", http.StatusUnauthorized)
		return
	}

	var req registerVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	address := strings.TrimSpace(req.Address)
	if address == "" {
		http.Error(w, "missing voter address", http.StatusBadRequest)
		return
	}

	if err := h.service.RegisterVoter(r.Context(), caller, domain.Address(address)); err != nil {
		writeElectionError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *VoterHandler) GetVoterStatus(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	if address == "" {
		http.Error(w, "missing voter address", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.service.GetVoterStatus(r.Context(), domain.Address(address)))
}
