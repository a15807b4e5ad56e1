package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/giftcycle/internal/domain"
	"github.com/roach88/giftcycle/internal/engine"
	"github.com/roach88/giftcycle/internal/store"
	"github.com/roach88/giftcycle/internal/testutil"
)

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("db gone") }

// setupRouter serves a fresh store holding group "g1" owned by "user-a" with
// participants a, b, c.
func setupRouter(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "api.db"), store.WithIDGenerator(domain.NewFixedGenerator("x1", "x2", "x3")))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = s.Seed(context.Background(), domain.Seed{
		Group:        domain.Group{ID: "g1", Title: "Office party", OwnerID: "user-a"},
		Participants: testutil.Participants("g1", "a", "b", "c"),
	})
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	e := engine.New(s, engine.WithLogger(logger))
	return NewRouter(NewHandler(e, s, logger)), s
}

func do(t *testing.T, h http.Handler, method, path, requester string, body any) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if requester != "" {
		req.Header.Set(RequesterHeader, requester)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp Response
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestHealthz(t *testing.T) {
	h, _ := setupRouter(t)

	w, resp := do(t, h, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp.Status)
}

func TestHealthz_StorageDown(t *testing.T) {
	h := NewRouter(NewHandler(nil, failingPinger{}, slog.New(slog.DiscardHandler)))

	w, resp := do(t, h, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "error", resp.Status)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := setupRouter(t)
	do(t, h, http.MethodPost, "/v1/groups/g1/draw", "user-a", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "giftcycle_draw_total")
}

func TestMissingRequester(t *testing.T) {
	h, _ := setupRouter(t)

	w, resp := do(t, h, http.MethodPost, "/v1/groups/g1/draw", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}

func TestDrawAndReveal(t *testing.T) {
	h, s := setupRouter(t)

	w, resp := do(t, h, http.MethodPost, "/v1/groups/g1/draw", "user-b", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)

	w, resp = do(t, h, http.MethodGet, "/v1/groups/g1/participants/b/assignment", "user-b", nil)
	assert.Equal(t, http.StatusConflict, w.Code, "nothing to reveal before the draw")

	w, resp = do(t, h, http.MethodPost, "/v1/groups/g1/draw", "user-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "g1", data["group_id"])
	assert.EqualValues(t, 3, data["participants"])
	assert.NotContains(t, w.Body.String(), "receiver")

	w, _ = do(t, h, http.MethodPost, "/v1/groups/g1/draw", "user-a", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, resp = do(t, h, http.MethodGet, "/v1/groups/g1/participants/b/assignment", "user-b", nil)
	require.Equal(t, http.StatusOK, w.Code)
	p, err := s.LoadParticipant(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, p.ReceiverID, resp.Data.(map[string]any)["receiver_name"])

	w, _ = do(t, h, http.MethodGet, "/v1/groups/g1/participants/b/assignment", "user-c", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, h, http.MethodGet, "/v1/groups/nope/participants/b/assignment", "user-b", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDraw_TooFewParticipants(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	_, err = s.Seed(context.Background(), domain.Seed{
		Group:        domain.Group{ID: "g1", Title: "Pair", OwnerID: "user-a"},
		Participants: testutil.Participants("g1", "a", "b"),
	})
	require.NoError(t, err)
	logger := slog.New(slog.DiscardHandler)
	h := NewRouter(NewHandler(engine.New(s, engine.WithLogger(logger)), s, logger))

	w, resp := do(t, h, http.MethodPost, "/v1/groups/g1/draw", "user-a", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "TOO_FEW_PARTICIPANTS", resp.Error.Code)
	assert.Equal(t, "2", resp.Error.Details["have"])
}

func TestExclusionEndpoints(t *testing.T) {
	h, _ := setupRouter(t)

	w, resp := do(t, h, http.MethodPost, "/v1/groups/g1/exclusions", "user-b",
		map[string]any{"who": "b", "whom": "c", "mutual": true})
	require.Equal(t, http.StatusCreated, w.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "x1", data["exclusion"].(map[string]any)["id"])
	assert.Equal(t, "x2", data["reverse"].(map[string]any)["id"])

	w, resp = do(t, h, http.MethodPost, "/v1/groups/g1/exclusions", "user-a",
		map[string]any{"who": "b", "whom": "c"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE", resp.Error.Code)

	w, resp = do(t, h, http.MethodPost, "/v1/groups/g1/exclusions", "user-a",
		map[string]any{"who": "a", "whom": "a"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "SELF_EXCLUSION", resp.Error.Code)

	w, resp = do(t, h, http.MethodGet, "/v1/groups/g1/participants/b/exclusions", "user-b", nil)
	require.Equal(t, http.StatusOK, w.Code)
	views := resp.Data.([]any)
	require.Len(t, views, 1)
	assert.Equal(t, "c", views[0].(map[string]any)["whom_name"])

	w, _ = do(t, h, http.MethodDelete, "/v1/groups/g1/exclusions/x1", "user-c", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, h, http.MethodDelete, "/v1/groups/g1/exclusions/x1", "user-b", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, h, http.MethodDelete, "/v1/groups/g1/exclusions/x1", "user-b", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddExclusion_InvalidBody(t *testing.T) {
	h, _ := setupRouter(t)

	tests := []struct {
		name string
		body any
	}{
		{name: "missing whom", body: map[string]any{"who": "a"}},
		{name: "unknown field", body: map[string]any{"who": "a", "whom": "b", "extra": 1}},
		{name: "not an object", body: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := do(t, h, http.MethodPost, "/v1/groups/g1/exclusions", "user-a", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "INVALID_ARGUMENT", resp.Error.Code)
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code domain.Code
		want int
	}{
		{domain.CodeUnauthorized, http.StatusForbidden},
		{domain.CodeNotFound, http.StatusNotFound},
		{domain.CodeWrongState, http.StatusConflict},
		{domain.CodeDuplicate, http.StatusConflict},
		{domain.CodeTooFewParticipants, http.StatusUnprocessableEntity},
		{domain.CodeSelfExclusion, http.StatusUnprocessableEntity},
		{domain.CodeInfeasible, http.StatusUnprocessableEntity},
		{domain.CodeInvalidArgument, http.StatusBadRequest},
		{domain.CodeCommitFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.code))
		})
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), time.Second, slog.New(slog.DiscardHandler))
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
