package web

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/armsim/internal/testutil"
	"github.com/udisondev/armsim/internal/view"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	srv, err := NewServer(testutil.TestConfig())
	require.NoError(t, err)
	assert.Nil(t, srv.Addr())

	serving := testutil.StartServing(t, srv.Serve, "/healthz")
	assert.Equal(t, serving.Listener.Addr(), srv.Addr())

	resp, err := http.Get(serving.BaseURL + "/api/state")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.NoError(t, serving.Stop(5*time.Second))
}

func TestServer_Healthz(t *testing.T) {
	srv, err := NewServer(testutil.TestConfig())
	require.NoError(t, err)
	serving := testutil.StartServing(t, srv.Serve, "/healthz")

	resp, err := http.Get(serving.BaseURL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 0, body["sessions"])
	assert.Empty(t, resp.Cookies(), "health checks must not create sessions")
	assert.Equal(t, 0, srv.Sessions().Count())
}

func TestServer_ExpiresIdleSessions(t *testing.T) {
	cfg := testutil.TestConfig()
	cfg.Server.SessionTTL = time.Minute

	sm := view.NewSessionManager(cfg)
	srv, err := NewServer(cfg, WithSessionManager(sm))
	require.NoError(t, err)
	assert.Same(t, sm, srv.Sessions())

	fresh := sm.Create()
	stale := &view.SessionInfo{
		ID:        uuid.New(),
		Session:   view.NewSession(cfg),
		CreatedAt: time.Now().Add(-time.Hour),
	}
	stale.Touch(time.Now().Add(-time.Hour))
	sm.StoreInfo(stale)
	require.Equal(t, 2, sm.Count())

	serving := testutil.StartServing(t, srv.Serve, "/healthz")

	testutil.WaitFor(t, func() bool { return sm.Count() == 1 }, 5*time.Second)

	_, ok := sm.Get(fresh.ID)
	assert.True(t, ok)
	_, ok = sm.Get(stale.ID)
	assert.False(t, ok)

	require.NoError(t, serving.Stop(5*time.Second))
}

func TestServer_CloseStopsServe(t *testing.T) {
	srv, err := NewServer(testutil.TestConfig())
	require.NoError(t, err)

	serving := testutil.StartServing(t, srv.Serve, "/healthz")
	require.NoError(t, srv.Close())

	assert.NoError(t, serving.Wait(5*time.Second))
}
