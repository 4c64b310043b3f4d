package services

import "sync"

type SessionEventType string

const (
	SessionSignedIn       SessionEventType = "signed_in"
	SessionSignedOut      SessionEventType = "signed_out"
	SessionTokenRefreshed SessionEventType = "token_refreshed"
)

// SessionEvent notifies subscribers of auth state changes so user-scoped
// state can be reloaded or cleared.
type SessionEvent struct {
	Type   SessionEventType
	UserID string
}

type SessionListener func(SessionEvent)

var sessionMu sync.RWMutex
var sessionListeners []SessionListener

// SubscribeSessionEvents registers a listener for session changes.
// Listeners are invoked synchronously in registration order.
func SubscribeSessionEvents(l SessionListener) {
	sessionMu.Lock()
	sessionListeners = append(sessionListeners, l)
	sessionMu.Unlock()
}

func publishSessionEvent(ev SessionEvent) {
	sessionMu.RLock()
	listeners := make([]SessionListener, len(sessionListeners))
	copy(listeners, sessionListeners)
	sessionMu.RUnlock()
	for _, l := range listeners {
		l(ev)
	}
}

// ResetSessionListeners drops all registered listeners. Test support.
func ResetSessionListeners() {
	sessionMu.Lock()
	sessionListeners = nil
	sessionMu.Unlock()
}
