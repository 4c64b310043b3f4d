package appstate

import (
	"sync"

	"github.com/kiwi13nz/AgentFlow/internal/models"
)

const featuredLimit = 3

// Store owns one AppState snapshot. All mutation goes through Dispatch;
// readers take copies via Snapshot. Subscribers receive each post-dispatch
// snapshot.
type Store struct {
	mu          sync.RWMutex
	state       AppState
	subscribers []chan AppState
}

func NewStore() *Store {
	return &Store{state: initialState()}
}

// Dispatch applies one action and notifies subscribers with the resulting
// snapshot. Notification is non-blocking; a subscriber that is not keeping
// up misses intermediate snapshots.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	s.state = action.apply(s.state)
	next := s.state
	subs := make([]chan AppState, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- next:
		default:
		}
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers an observer channel for post-dispatch snapshots.
func (s *Store) Subscribe() <-chan AppState {
	ch := make(chan AppState, 8)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()
	return ch
}

// FeaturedAgents derives up to three featured agents from the already
// loaded public collection, preserving source order. Computed, never
// fetched separately.
func (s *Store) FeaturedAgents() []models.Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	featured := make([]models.Agent, 0, featuredLimit)
	for _, agent := range s.state.Agents {
		if !agent.IsFeatured {
			continue
		}
		featured = append(featured, agent)
		if len(featured) == featuredLimit {
			break
		}
	}
	return featured
}
