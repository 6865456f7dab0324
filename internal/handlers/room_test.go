// internal/handlers/room_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeadCoder-N/Shadow-Signal/internal/game"
	"github.com/DeadCoder-N/Shadow-Signal/internal/models"
	"github.com/DeadCoder-N/Shadow-Signal/internal/store"
	"github.com/DeadCoder-N/Shadow-Signal/internal/words"
)

func newTestServer() http.Handler {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := game.NewService(store.NewMemoryStore(), words.DefaultBank(), logger)
	return NewAPIServer(svc, logger).Routes()
}

// do issues a request against the handler and decodes the JSON response.
func do(t *testing.T, h http.Handler, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	} else {
		buf.WriteString("{}")
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if out != nil && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
	}
	return w.Code
}

func TestFullGameOverHTTP(t *testing.T) {
	h := newTestServer()

	// Create a room.
	var created struct {
		Room models.Room `json:"room"`
	}
	code := do(t, h, "POST", "/api/rooms", map[string]string{"mode": "infiltrator"}, &created)
	require.Equal(t, http.StatusCreated, code)
	require.Len(t, created.Room.Code, 4)
	roomCode := created.Room.Code

	// Three players join; the first is host.
	var joined []models.Player
	for i, name := range []string{"Alice", "Bob", "Cleo"} {
		var resp struct {
			Player models.Player `json:"player"`
		}
		code := do(t, h, "POST", "/api/rooms/"+roomCode+"/join", map[string]string{"name": name}, &resp)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, i == 0, resp.Player.IsHost)
		joined = append(joined, resp.Player)
	}

	// Start the game.
	var started struct {
		Room    models.Room     `json:"room"`
		Players []models.Player `json:"players"`
	}
	code = do(t, h, "POST", "/api/rooms/"+roomCode+"/start", nil, &started)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.StatusSelecting, started.Room.Status)
	assert.Len(t, started.Room.Options, 4)

	specials := 0
	for _, p := range started.Players {
		if p.Role.IsSpecial() {
			specials++
		}
	}
	assert.Equal(t, 1, specials)

	// All three submit clues; the room advances to voting on its own.
	for _, p := range joined {
		var resp struct {
			Room models.Room `json:"room"`
		}
		code := do(t, h, "POST", "/api/rooms/"+roomCode+"/clue",
			map[string]interface{}{"playerId": p.ID, "clue": "word"}, &resp)
		require.Equal(t, http.StatusOK, code)
	}
	var polled struct {
		Room models.Room `json:"room"`
	}
	code = do(t, h, "GET", "/api/rooms/"+roomCode, nil, &polled)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.StatusVoting, polled.Room.Status)

	// Two votes land on Bob.
	for _, voter := range []models.Player{joined[0], joined[2]} {
		code := do(t, h, "POST", "/api/rooms/"+roomCode+"/vote",
			map[string]interface{}{"voterId": voter.ID, "targetId": joined[1].ID}, nil)
		require.Equal(t, http.StatusOK, code)
	}

	var elim struct {
		Room       models.Room    `json:"room"`
		Eliminated *models.Player `json:"eliminated"`
		Winner     models.Winner  `json:"winner"`
	}
	code = do(t, h, "POST", "/api/rooms/"+roomCode+"/eliminate", nil, &elim)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, elim.Eliminated)
	assert.Equal(t, joined[1].ID, elim.Eliminated.ID)
	assert.Equal(t, models.StatusEnded, elim.Room.Status)
	assert.NotEmpty(t, elim.Winner)

	// Restart brings everyone back to the lobby.
	var restarted struct {
		Room    models.Room     `json:"room"`
		Players []models.Player `json:"players"`
	}
	code = do(t, h, "POST", "/api/rooms/"+roomCode+"/restart", nil, &restarted)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.StatusLobby, restarted.Room.Status)
	for _, p := range restarted.Players {
		assert.True(t, p.Alive)
		assert.Equal(t, models.RoleNone, p.Role)
	}
}

func TestHTTPErrorMapping(t *testing.T) {
	h := newTestServer()

	// Unknown room.
	code := do(t, h, "GET", "/api/rooms/ZZZZ", nil, nil)
	assert.Equal(t, http.StatusNotFound, code)

	// Malformed code.
	code = do(t, h, "GET", "/api/rooms/TOOLONG", nil, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// Bad mode.
	code = do(t, h, "POST", "/api/rooms", map[string]string{"mode": "werewolf"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	var created struct {
		Room models.Room `json:"room"`
	}
	require.Equal(t, http.StatusCreated,
		do(t, h, "POST", "/api/rooms", map[string]string{"mode": "spy"}, &created))
	roomCode := created.Room.Code

	// Empty name.
	code = do(t, h, "POST", "/api/rooms/"+roomCode+"/join", map[string]string{"name": "  "}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// Too few players to start.
	do(t, h, "POST", "/api/rooms/"+roomCode+"/join", map[string]string{"name": "Solo"}, nil)
	var errResp struct {
		Error string `json:"error"`
	}
	code = do(t, h, "POST", "/api/rooms/"+roomCode+"/start", nil, &errResp)
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, errResp.Error, "at least")

	// Out-of-phase clue.
	code = do(t, h, "POST", "/api/rooms/"+roomCode+"/clue",
		map[string]interface{}{"playerId": created.Room.ID, "clue": "x"}, nil)
	assert.Equal(t, http.StatusConflict, code)

	// Invalid JSON body.
	req := httptest.NewRequest("POST", "/api/rooms/"+roomCode+"/join",
		bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRoomPollingStable(t *testing.T) {
	h := newTestServer()

	var created struct {
		Room models.Room `json:"room"`
	}
	require.Equal(t, http.StatusCreated,
		do(t, h, "POST", "/api/rooms", map[string]string{"mode": "infiltrator"}, &created))

	for _, name := range []string{"A", "B", "C"} {
		do(t, h, "POST", "/api/rooms/"+created.Room.Code+"/join", map[string]string{"name": name}, nil)
	}

	read := func() string {
		req := httptest.NewRequest("GET", "/api/rooms/"+created.Room.Code, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		return w.Body.String()
	}
	first := read()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, read(), fmt.Sprintf("poll %d differed", i))
	}
}
