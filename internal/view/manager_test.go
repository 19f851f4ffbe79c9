package view

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/armsim/internal/config"
)

func TestSessionManager_CreateGetRemove(t *testing.T) {
	sm := NewSessionManager(config.DefaultArmsim())

	info := sm.Create()
	require.NotNil(t, info.Session)
	assert.NotEqual(t, uuid.Nil, info.ID)
	assert.Equal(t, 1, sm.Count())

	got, ok := sm.Get(info.ID)
	require.True(t, ok)
	assert.Same(t, info, got)

	_, ok = sm.Get(uuid.New())
	assert.False(t, ok)

	sm.Remove(info.ID)
	assert.Equal(t, 0, sm.Count())
}

func TestSessionManager_SessionsAreIndependent(t *testing.T) {
	sm := NewSessionManager(config.DefaultArmsim())
	a := sm.Create()
	b := sm.Create()

	require.NoError(t, a.Session.Set(Angles, "L1", 0))

	assert.Equal(t, 7.70, a.Session.Snapshot().MaxTorque["M1"])
	assert.Equal(t, 6.27, b.Session.Snapshot().MaxTorque["M1"])
}

func TestSessionManager_CleanExpired(t *testing.T) {
	sm := NewSessionManager(config.DefaultArmsim())

	fresh := sm.Create()

	stale := &SessionInfo{
		ID:        uuid.New(),
		Session:   NewSession(config.DefaultArmsim()),
		CreatedAt: time.Now().Add(-3 * time.Hour),
	}
	stale.Touch(time.Now().Add(-2 * time.Hour))
	sm.StoreInfo(stale)

	// old but recently used
	active := &SessionInfo{
		ID:        uuid.New(),
		Session:   NewSession(config.DefaultArmsim()),
		CreatedAt: time.Now().Add(-3 * time.Hour),
	}
	active.Touch(time.Now())
	sm.StoreInfo(active)

	removed := sm.CleanExpired(time.Hour)

	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, sm.Count())
	_, ok := sm.Get(stale.ID)
	assert.False(t, ok)
	_, ok = sm.Get(fresh.ID)
	assert.True(t, ok)
	_, ok = sm.Get(active.ID)
	assert.True(t, ok)
}

func TestSessionInfo_Touch(t *testing.T) {
	info := &SessionInfo{}
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	info.Touch(at)
	assert.True(t, at.Equal(info.LastSeen()))
}
