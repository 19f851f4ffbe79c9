package view

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/armsim/internal/config"
)

// SessionManager keeps one Session per viewer.
// Backed by sync.Map: every request reads, only create and expiry write.
type SessionManager struct {
	cfg      config.Armsim
	sessions sync.Map // map[uuid.UUID]*SessionInfo
}

// SessionInfo wraps a Session with its bookkeeping.
// Exported for tests (CreatedAt and LastSeen can be manipulated).
type SessionInfo struct {
	ID        uuid.UUID
	Session   *Session
	CreatedAt time.Time

	lastSeen atomic.Int64 // unix nanos
}

// LastSeen returns the time of the last Get or Create.
func (i *SessionInfo) LastSeen() time.Time {
	return time.Unix(0, i.lastSeen.Load())
}

// Touch marks the session as used at t.
func (i *SessionInfo) Touch(t time.Time) {
	i.lastSeen.Store(t.UnixNano())
}

// NewSessionManager creates a manager whose sessions start from cfg.
func NewSessionManager(cfg config.Armsim) *SessionManager {
	return &SessionManager{cfg: cfg}
}

// Create starts a new session with a random ID.
func (sm *SessionManager) Create() *SessionInfo {
	now := time.Now()
	info := &SessionInfo{
		ID:        uuid.New(),
		Session:   NewSession(sm.cfg),
		CreatedAt: now,
	}
	info.Touch(now)
	sm.sessions.Store(info.ID, info)
	return info
}

// Get returns the session for id and refreshes its LastSeen.
func (sm *SessionManager) Get(id uuid.UUID) (*SessionInfo, bool) {
	val, ok := sm.sessions.Load(id)
	if !ok {
		return nil, false
	}
	info := val.(*SessionInfo)
	info.Touch(time.Now())
	return info, true
}

// Remove drops the session with id.
func (sm *SessionManager) Remove(id uuid.UUID) {
	sm.sessions.Delete(id)
}

// CleanExpired removes sessions idle for longer than ttl and returns how many were removed.
func (sm *SessionManager) CleanExpired(ttl time.Duration) int {
	now := time.Now()
	removed := 0
	sm.sessions.Range(func(key, value any) bool {
		info := value.(*SessionInfo)
		if now.Sub(info.LastSeen()) > ttl {
			sm.sessions.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// Count returns the number of live sessions.
func (sm *SessionManager) Count() int {
	count := 0
	sm.sessions.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// StoreInfo stores a prepared SessionInfo, e.g. one with a backdated LastSeen.
func (sm *SessionManager) StoreInfo(info *SessionInfo) {
	sm.sessions.Store(info.ID, info)
}
