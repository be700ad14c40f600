package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/election/internal/adapters/clock"
	handler "github.com/vncsmyrnk/election/internal/adapters/handler/http"
	"github.com/vncsmyrnk/election/internal/adapters/observer/metrics"
	"github.com/vncsmyrnk/election/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/election/internal/adapters/token"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/services"
)

const (
	admin  domain.Address = "0xAdmin"
	voter1 domain.Address = "0xVoter1"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type testApp struct {
	server *httptest.Server
	tokens *token.HMAC
	clock  *clock.Fixed
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := prometheus.NewRegistry()
	c := clock.NewFixed(t0)
	tokens := token.NewHMAC([]byte("test-secret"))

	election := services.NewElectionService(admin, memory.NewLedger(), c,
		services.WithLogger(logger),
		services.WithObserver(metrics.New(registry)),
	)

	router := handler.NewHandler(handler.Handlers{
		Candidates:    handler.NewCandidateHandler(election, logger),
		Voters:        handler.NewVoterHandler(election, logger),
		VotingPeriod:  handler.NewVotingPeriodHandler(election, logger),
		Votes:         handler.NewVoteHandler(election, logger),
		RequireCaller: handler.RequireCaller(tokens, logger),
		Metrics:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testApp{server: server, tokens: tokens, clock: c}
}

func (app *testApp) token(t *testing.T, caller domain.Address) string {
	t.Helper()
	signed, err := app.tokens.Issue(caller, 15*time.Minute)
	require.NoError(t, err)
	return signed
}

func (app *testApp) do(t *testing.T, method, path string, caller domain.Address, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, app.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set("Authorization", "Bearer "+app.token(t, caller))
	}

	resp, err := app.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return strings.TrimSpace(string(data))
}

func TestGetAdmin(t *testing.T) {
	app := setupTestApp(t)

	resp := app.do(t, http.MethodGet, "/api/admin", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(admin), body["admin"])
}

func TestElectionFlow(t *testing.T) {
	app := setupTestApp(t)

	// Step 1: add a candidate
	resp := app.do(t, http.MethodPost, "/api/candidates", admin, map[string]string{"name": "Imran Khan", "party_symbol": "Bat"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, 0, created["index"])

	resp = app.do(t, http.MethodGet, "/api/candidates", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var candidates []domain.Candidate
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&candidates))
	require.Len(t, candidates, 1)
	assert.Equal(t, domain.Candidate{Index: 0, Name: "Imran Khan", PartySymbol: "Bat"}, candidates[0])

	// Step 2: register a voter
	resp = app.do(t, http.MethodPost, "/api/voters", admin, map[string]string{"address": string(voter1)})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = app.do(t, http.MethodGet, "/api/voters/"+string(voter1), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status domain.VoterStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, domain.VoterStatus{IsRegistered: true, HasVoted: false, Weight: 1}, status)

	// Step 3: open the voting period
	resp = app.do(t, http.MethodPut, "/api/voting-period", admin, map[string]int64{
		"start_time": t0.Unix(),
		"end_time":   t0.Unix() + 3600,
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = app.do(t, http.MethodGet, "/api/voting-period", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var period map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&period))
	assert.Equal(t, "open", period["state"])
	assert.EqualValues(t, t0.Unix(), period["start_time"])
	assert.EqualValues(t, t0.Unix()+3600, period["end_time"])

	// Step 4: vote
	resp = app.do(t, http.MethodPost, "/api/votes", voter1, map[string]int{"candidate_index": 0})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = app.do(t, http.MethodGet, "/api/candidates", "", nil)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&candidates))
	assert.Equal(t, uint64(1), candidates[0].VoteCount)

	resp = app.do(t, http.MethodGet, "/api/voters/"+string(voter1), "", nil)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, domain.VoterStatus{IsRegistered: true, HasVoted: true, Weight: 1}, status)

	// Step 5: double vote is rejected with the exact message
	resp = app.do(t, http.MethodPost, "/api/votes", voter1, map[string]int{"candidate_index": 0})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "You have already voted", readBody(t, resp))

	// Step 6: metrics reflect the vote
	resp = app.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	metricsBody := readBody(t, resp)
	assert.Contains(t, metricsBody, `election_votes_cast_total{candidate="0"} 1`)
	assert.Contains(t, metricsBody, `election_rejections_total{op="vote",reason="already_voted"} 1`)
}

func TestAdminOperationsRejectNonAdmin(t *testing.T) {
	app := setupTestApp(t)

	resp := app.do(t, http.MethodPost, "/api/candidates", voter1, map[string]string{"name": "A", "party_symbol": "a"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, domain.ErrUnauthorized.Error(), readBody(t, resp))

	resp = app.do(t, http.MethodPost, "/api/voters", voter1, map[string]string{"address": string(voter1)})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = app.do(t, http.MethodPut, "/api/voting-period", voter1, map[string]int64{"start_time": 1, "end_time": 2})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := setupTestApp(t)

	routes := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/candidates"},
		{http.MethodPost, "/api/voters"},
		{http.MethodPut, "/api/voting-period"},
		{http.MethodPost, "/api/votes"},
	}
	for _, rt := range routes {
		resp := app.do(t, rt.method, rt.path, "", map[string]any{})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", rt.method, rt.path)
	}

	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/api/votes", strings.NewReader(`{"candidate_index":0}`))
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "not-a-jwt"})
	resp, err := app.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAccessTokenCookie(t *testing.T) {
	app := setupTestApp(t)

	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/api/candidates", strings.NewReader(`{"name":"A","party_symbol":"a"}`))
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: app.token(t, admin)})
	resp, err := app.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRegisterVoterErrors(t *testing.T) {
	app := setupTestApp(t)

	resp := app.do(t, http.MethodPost, "/api/voters", admin, map[string]string{"address": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = app.do(t, http.MethodPost, "/api/voters", admin, map[string]string{"address": string(voter1)})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = app.do(t, http.MethodPost, "/api/voters", admin, map[string]string{"address": string(voter1)})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, domain.ErrAlreadyRegistered.Error(), readBody(t, resp))
}

func TestUnregisteredVoterStatus(t *testing.T) {
	app := setupTestApp(t)

	resp := app.do(t, http.MethodGet, "/api/voters/0xNobody", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status domain.VoterStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, domain.VoterStatus{}, status)
}

func TestInvalidVotingPeriod(t *testing.T) {
	app := setupTestApp(t)

	resp := app.do(t, http.MethodPut, "/api/voting-period", admin, map[string]int64{
		"start_time": t0.Unix() + 3600,
		"end_time":   t0.Unix(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, domain.ErrInvalidWindow.Error(), readBody(t, resp))

	resp = app.do(t, http.MethodGet, "/api/voting-period", "", nil)
	var period map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&period))
	assert.Equal(t, "unconfigured", period["state"])
	assert.NotContains(t, period, "start_time")
}

func TestVotingPeriodRequiresBothBounds(t *testing.T) {
	app := setupTestApp(t)

	for _, body := range []map[string]int64{
		{"end_time": t0.Unix() + 3600},
		{"start_time": t0.Unix()},
		{},
	} {
		resp := app.do(t, http.MethodPut, "/api/voting-period", admin, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "start_time and end_time are required", readBody(t, resp))
	}

	resp := app.do(t, http.MethodGet, "/api/voting-period", "", nil)
	var period map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&period))
	assert.Equal(t, "unconfigured", period["state"])
}

func TestVoteErrors(t *testing.T) {
	app := setupTestApp(t)

	resp := app.do(t, http.MethodPost, "/api/votes", voter1, map[string]int{"candidate_index": 0})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, domain.ErrVotingClosed.Error(), readBody(t, resp))

	app.do(t, http.MethodPost, "/api/candidates", admin, map[string]string{"name": "A", "party_symbol": "a"})
	app.do(t, http.MethodPost, "/api/voters", admin, map[string]string{"address": string(voter1)})
	app.do(t, http.MethodPut, "/api/voting-period", admin, map[string]int64{"start_time": t0.Unix(), "end_time": t0.Unix() + 3600})

	resp = app.do(t, http.MethodPost, "/api/votes", "0xStranger", map[string]int{"candidate_index": 0})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, domain.ErrNotRegistered.Error(), readBody(t, resp))

	resp = app.do(t, http.MethodPost, "/api/votes", voter1, map[string]int{"candidate_index": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, domain.ErrInvalidCandidate.Error(), readBody(t, resp))

	resp = app.do(t, http.MethodPost, "/api/votes", voter1, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	app.clock.Advance(2 * time.Hour)
	resp = app.do(t, http.MethodPost, "/api/votes", voter1, map[string]int{"candidate_index": 0})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, domain.ErrVotingClosed.Error(), readBody(t, resp))
}

func TestInvalidRequestBody(t *testing.T) {
	app := setupTestApp(t)

	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/api/candidates", strings.NewReader("{"))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+app.token(t, admin))
	resp, err := app.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
