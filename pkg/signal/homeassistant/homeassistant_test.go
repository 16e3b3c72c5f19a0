//go:build !windows

package homeassistant

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaubaer/guessing-game/pkg/game"
	"github.com/blaubaer/guessing-game/pkg/signal"
)

func TestHomeassistant_Ensure_createsAndUpdatesEntity(t *testing.T) {
	server := newFakeServer(t)
	instance := &Homeassistant{}
	conf := Configuration{
		Server:   server.URL,
		Token:    "secret",
		EntityId: "sensor.test_guessing_game",
	}
	require.NoError(t, instance.Initialize(&conf, func() error { return nil }))

	snapshot := game.Snapshot{Id: "abc", Limits: game.Limits{Min: 1, Max: 100, MaxTries: 5}, Active: true}
	require.NoError(t, instance.Ensure(signal.NewContext(signal.StatePlaying, snapshot, nil)))

	posted := server.lastPosted()
	require.NotNil(t, posted)
	assert.Equal(t, "playing", posted["state"])
	attributes := posted["attributes"].(map[string]any)
	assert.Equal(t, "Guessing game", attributes["friendly_name"])
	assert.Equal(t, float64(5), attributes["max_tries"])
	assert.Equal(t, "abc", attributes["session_id"])

	snapshot.TriesUsed = 1
	outcome := game.Outcome{Kind: game.OutcomeCorrect, Guess: 42, TriesUsed: 1}
	require.NoError(t, instance.Ensure(signal.NewContext(signal.StateWon, snapshot, &outcome)))

	posted = server.lastPosted()
	assert.Equal(t, "won", posted["state"])
	attributes = posted["attributes"].(map[string]any)
	assert.Equal(t, float64(42), attributes["last_guess"])
	assert.Equal(t, "correct", attributes["last_outcome"])
	assert.Equal(t, 2, server.posts)
}

func TestHomeassistant_Ensure_skipsUnchangedState(t *testing.T) {
	server := newFakeServer(t)
	instance := &Homeassistant{}
	conf := Configuration{
		Server:           server.URL,
		Token:            "secret",
		EntityId:         "sensor.test_guessing_game",
		DeadZoneInterval: time.Minute,
	}
	require.NoError(t, instance.Initialize(&conf, func() error { return nil }))

	ctx := signal.NewContext(signal.StateIdle, game.Snapshot{}, nil)
	require.NoError(t, instance.Ensure(ctx))
	require.NoError(t, instance.Ensure(ctx))
	require.NoError(t, instance.Ensure(ctx))

	assert.Equal(t, 1, server.posts)
}

func TestNormalizeEntityIdPrefix(t *testing.T) {
	assert.Equal(t, "my_pc_local", normalizeEntityIdPrefix(" My-PC.local "))
	assert.Equal(t, "a_b", normalizeEntityIdPrefix("a#b"))
}

type fakeServer struct {
	*httptest.Server

	mutex  sync.Mutex
	states map[string]map[string]any
	posts  int
	posted map[string]any
}

func newFakeServer(t *testing.T) *fakeServer {
	result := &fakeServer{states: map[string]map[string]any{}}
	result.Server = httptest.NewServer(http.HandlerFunc(result.handle))
	t.Cleanup(result.Close)
	return result
}

func (this *fakeServer) lastPosted() map[string]any {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return this.posted
}

func (this *fakeServer) handle(w http.ResponseWriter, r *http.Request) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if r.Header.Get("Authorization") != "Bearer secret" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if r.URL.Path == "/api/" {
		_, _ = w.Write([]byte(`{"message":"API running."}`))
		return
	}

	id := r.URL.Path[len("/api/states/"):]
	switch r.Method {
	case http.MethodGet:
		v, ok := this.states[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(v)
	case http.MethodPost:
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		body["entity_id"] = id
		this.states[id] = body
		this.posted = body
		this.posts++
		w.WriteHeader(http.StatusCreated)
	}
}
