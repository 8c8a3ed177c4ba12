package handlers

import (
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minefield/internal/session"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func testHandler() *GameHandler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewGameHandler(log, session.NewRegistry(), testRand())
}

func decodeSnapshot(t *testing.T, body io.Reader) session.Snapshot {
	t.Helper()
	var snap session.Snapshot
	require.NoError(t, json.NewDecoder(body).Decode(&snap))
	return snap
}

func TestStatus(t *testing.T) {
	g := testHandler()

	w := httptest.NewRecorder()
	g.Status(w, httptest.NewRequest("GET", "/v1/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","sessions":0}`, w.Body.String())
}

func TestNewGame(t *testing.T) {
	g := testHandler()

	w := httptest.NewRecorder()
	g.NewGame(w, httptest.NewRequest("POST", "/v1/game?width=4&height=3", nil))

	require.Equal(t, http.StatusOK, w.Code)
	snap := decodeSnapshot(t, w.Body)
	assert.Equal(t, "1", snap.SessionID)
	assert.Equal(t, 4, snap.Width)
	assert.Equal(t, 3, snap.Height)
	assert.Equal(t, "continue", snap.State)
	assert.Equal(t, []string{"....", "....", "...."}, snap.Grid)
}

func TestNewGameRejectsBadParams(t *testing.T) {
	g := testHandler()

	tests := []struct {
		name  string
		query string
	}{
		{"missing width", "height=4"},
		{"missing height", "width=4"},
		{"zero width", "width=0&height=4"},
		{"oversized", "width=4&height=1000"},
		{"not a number", "width=four&height=4"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			g.NewGame(w, httptest.NewRequest("POST", "/v1/game?"+test.query, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func newGameSession(t *testing.T, g *GameHandler) session.Snapshot {
	t.Helper()
	w := httptest.NewRecorder()
	g.NewGame(w, httptest.NewRequest("POST", "/v1/game?width=4&height=4", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return decodeSnapshot(t, w.Body)
}

func withID(r *http.Request, id string) *http.Request {
	r.SetPathValue("id", id)
	return r
}

func TestFetch(t *testing.T) {
	g := testHandler()
	created := newGameSession(t, g)

	w := httptest.NewRecorder()
	g.Fetch(w, withID(httptest.NewRequest("GET", "/v1/game/1", nil), created.SessionID))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decodeSnapshot(t, w.Body))
}

func TestFetchMissing(t *testing.T) {
	g := testHandler()

	w := httptest.NewRecorder()
	g.Fetch(w, withID(httptest.NewRequest("GET", "/v1/game/42", nil), "42"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	g.Fetch(w, withID(httptest.NewRequest("GET", "/v1/game/nope", nil), "nope"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFlagRoundTrip(t *testing.T) {
	g := testHandler()
	created := newGameSession(t, g)

	w := httptest.NewRecorder()
	g.Flag(w, withID(
		httptest.NewRequest("POST", "/v1/game/1/flag?x=0&y=0", nil),
		created.SessionID,
	))
	require.Equal(t, http.StatusOK, w.Code)
	snap := decodeSnapshot(t, w.Body)
	assert.Equal(t, byte('*'), snap.Grid[0][0])
	assert.Equal(t, 1, snap.Flagged)

	w = httptest.NewRecorder()
	g.Flag(w, withID(
		httptest.NewRequest("POST", "/v1/game/1/flag?x=0&y=0", nil),
		created.SessionID,
	))
	require.Equal(t, http.StatusOK, w.Code)
	snap = decodeSnapshot(t, w.Body)
	assert.Equal(t, byte('.'), snap.Grid[0][0])
	assert.Equal(t, 0, snap.Flagged)
}

func TestOpenChangesSnapshot(t *testing.T) {
	g := testHandler()
	created := newGameSession(t, g)

	w := httptest.NewRecorder()
	g.Open(w, withID(
		httptest.NewRequest("POST", "/v1/game/1/open?x=1&y=1", nil),
		created.SessionID,
	))
	require.Equal(t, http.StatusOK, w.Code)
	snap := decodeSnapshot(t, w.Body)
	assert.NotEqual(t, byte('.'), snap.Grid[1][1])

	// Out-of-bounds coordinates are a no-op, not an error
	w = httptest.NewRecorder()
	g.Open(w, withID(
		httptest.NewRequest("POST", "/v1/game/1/open?x=100&y=100", nil),
		created.SessionID,
	))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, snap, decodeSnapshot(t, w.Body))
}

func TestBatch(t *testing.T) {
	g := testHandler()
	created := newGameSession(t, g)

	w := httptest.NewRecorder()
	g.Batch(w, withID(
		httptest.NewRequest("POST", "/v1/game/1/batch",
			strings.NewReader("f 0 0\nf 3 3\ng\n")),
		created.SessionID,
	))
	require.Equal(t, http.StatusOK, w.Code)
	snap := decodeSnapshot(t, w.Body)
	assert.Equal(t, 2, snap.Flagged)
}

func TestBatchRejectsMalformed(t *testing.T) {
	g := testHandler()
	created := newGameSession(t, g)

	w := httptest.NewRecorder()
	g.Batch(w, withID(
		httptest.NewRequest("POST", "/v1/game/1/batch",
			strings.NewReader("f 0 0\nz 1 2\n")),
		created.SessionID,
	))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var payload struct {
		Loc   int    `json:"loc"`
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&payload))
	assert.Equal(t, 1, payload.Loc)
	assert.NotEmpty(t, payload.Error)
}

func TestDiscardDropsSession(t *testing.T) {
	g := testHandler()
	created := newGameSession(t, g)

	w := httptest.NewRecorder()
	g.Discard(w, withID(
		httptest.NewRequest("DELETE", "/v1/game/1", nil),
		created.SessionID,
	))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	g.Fetch(w, withID(httptest.NewRequest("GET", "/v1/game/1", nil), created.SessionID))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
