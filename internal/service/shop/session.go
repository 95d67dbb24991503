package shop

import (
	"sync"

	"github.com/mamadbah2/farmshop/internal/service/checkout"
	"github.com/mamadbah2/farmshop/internal/service/stocktake"
)

// Session is the unsaved work of one logged-in user.
type Session struct {
	Cart  checkout.Cart
	Draft *stocktake.Draft
}

// SessionManager keeps a Session per username.
type SessionManager struct {
	sessions map[string]Session
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]Session),
	}
}

// GetSession returns a copy of the user's session.
func (sm *SessionManager) GetSession(username string) Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sess := sm.sessions[username]
	return Session{Cart: sess.Cart.Clone(), Draft: sess.Draft.Clone()}
}

// UpdateSession stores the user's session.
func (sm *SessionManager) UpdateSession(username string, sess Session) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[username] = sess
}

// ClearSession drops everything the user had open.
func (sm *SessionManager) ClearSession(username string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, username)
}
