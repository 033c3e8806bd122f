package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getaltair/altair-sub003/internal/engine"
	"github.com/getaltair/altair-sub003/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc := engine.NewService(db, time.UTC)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(svc, nil, log)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestQuestLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/quests", map[string]any{
		"title":  "Write the report",
		"energy": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	id := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "backlog", created["status"])

	w = doJSON(t, srv, http.MethodPost, "/v1/quests/"+id+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "active", decode(t, w)["status"])

	// A second start while one quest is active conflicts.
	w = doJSON(t, srv, http.MethodPost, "/v1/quests", map[string]any{"title": "Other", "energy": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	otherID := decode(t, w)["id"].(string)

	w = doJSON(t, srv, http.MethodPost, "/v1/quests/"+otherID+"/start", nil)
	require.Equal(t, http.StatusConflict, w.Code)
	errBody := decode(t, w)["error"].(map[string]any)
	assert.Equal(t, "WipLimitExceeded", errBody["kind"])
	assert.Equal(t, float64(1), errBody["current"])
	assert.Equal(t, float64(1), errBody["limit"])

	w = doJSON(t, srv, http.MethodPost, "/v1/quests/"+id+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", decode(t, w)["status"])

	// Completing freed the slot.
	w = doJSON(t, srv, http.MethodPost, "/v1/quests/"+otherID+"/start", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidationAndNotFoundMapping(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/quests", map[string]any{"title": "", "energy": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidationError", decode(t, w)["error"].(map[string]any)["kind"])

	w = doJSON(t, srv, http.MethodGet, "/v1/quests/01ARZ3NDEKTSV4RRFFQ69G5FAV", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NotFound", decode(t, w)["error"].(map[string]any)["kind"])
}

func TestOwnerHeaderScoping(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(map[string]any{"title": "Alice's quest", "energy": 1}))
	req := httptest.NewRequest(http.MethodPost, "/v1/quests", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(OwnerHeader, "alice")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	// The default owner cannot see it.
	w = doJSON(t, srv, http.MethodGet, "/v1/quests/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTriageOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/inbox", map[string]any{"content": "call the dentist"})
	require.Equal(t, http.StatusCreated, w.Code)
	inboxID := decode(t, w)["id"].(string)

	w = doJSON(t, srv, http.MethodPost, "/v1/inbox/"+inboxID+"/triage", map[string]any{
		"kind":  "quest",
		"quest": map[string]any{"title": "Call the dentist", "energy": 1},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	triaged := decode(t, w)
	assert.Equal(t, "quest", triaged["kind"])
	questID := triaged["id"].(string)

	w = doJSON(t, srv, http.MethodGet, "/v1/quests/"+questID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "backlog", decode(t, w)["status"])

	// The capture is gone; a second triage is a 404.
	w = doJSON(t, srv, http.MethodPost, "/v1/inbox/"+inboxID+"/triage", map[string]any{
		"kind": "note",
		"note": map[string]any{"title": "Again"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/v1/inbox", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["items"])
}

func TestTriageWithoutKindAndNoAssist(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/inbox", map[string]any{"content": "something"})
	require.Equal(t, http.StatusCreated, w.Code)
	inboxID := decode(t, w)["id"].(string)

	w = doJSON(t, srv, http.MethodPost, "/v1/inbox/"+inboxID+"/triage", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnergyEndpoints(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/v1/energy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(engine.DefaultDailyBudget), body["budget"])
	assert.Equal(t, float64(0), body["spent"])

	w = doJSON(t, srv, http.MethodPut, "/v1/energy", map[string]any{"budget": 7})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(7), decode(t, w)["budget"])

	w = doJSON(t, srv, http.MethodPut, "/v1/energy", map[string]any{"budget": 12})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTodayEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/quests", map[string]any{"title": "Something", "energy": 2})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/v1/today", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["day"])
	assert.Len(t, body["backlog"], 1)
	assert.Nil(t, body["active"])
}

func TestAssistUnconfigured(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/assist/breakdown", map[string]any{"title": "Clean the garage"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
