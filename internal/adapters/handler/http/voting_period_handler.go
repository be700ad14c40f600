package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type VotingPeriodHandler struct {
	service ports.ElectionService
	logger  *slog.Logger
}

func NewVotingPeriodHandler(service ports.ElectionService, logger *slog.Logger) *VotingPeriodHandler {
	return &VotingPeriodHandler{
		service: service,
		logger:  logger,
	}
}

// Times are unix seconds.
type votingPeriodRequest struct {
	StartTime *int64 `json:"start_time"`
	EndTime   *int64 `json:"end_time"`
}

type votingPeriodResponse struct {
	State     domain.WindowState `json:"state"`
	StartTime *int64             `json:"start_time,omitempty"`
	EndTime   *int64             `json:"end_time,omitempty"`
}

func (h *VotingPeriodHandler) InitializeVotingPeriod(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing caller context", http.StatusUnauthorized)
		return
	}

	var req votingPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.StartTime == nil || req.EndTime == nil {
		http.Error(w, "start_time and end_time are required", http.StatusBadRequest)
		return
	}

	start := time.Unix(*req.StartTime, 0).UTC()
	end := time.Unix(*req.EndTime, 0).UTC()
	if err := h.service.InitializeVotingPeriod(r.Context(), caller, start, end); err != nil {
		writeElectionError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VotingPeriodHandler) GetVotingPeriod(w http.ResponseWriter, r *http.Request) {
	resp := votingPeriodResponse{State: h.service.WindowState(r.Context())}
	if window, ok := h.service.VotingPeriod(r.Context()); ok {
		start, end := window.StartTime.Unix(), window.EndTime.Unix()
		resp.StartTime = &start
		resp.EndTime = &end
	}
	writeJSON(w, http.StatusOK, resp)
}
