package appstate

import (
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/internal/services"
	"github.com/kiwi13nz/AgentFlow/pkg/logger"
	"go.uber.org/zap"
)

// Loader populates a Store from the data layer. Public loads degrade
// gracefully: a read failure logs and leaves the previous (empty) slice in
// place rather than surfacing an error banner.
type Loader struct {
	store *Store
}

func NewLoader(store *Store) *Loader {
	return &Loader{store: store}
}

// WatchSessionEvents subscribes the loader to auth changes. Meant for a
// process-lifetime loader; subscriptions are never removed.
func (l *Loader) WatchSessionEvents() {
	services.SubscribeSessionEvents(l.onSessionEvent)
}

func (l *Loader) Store() *Store {
	return l.store
}

// Initialize resolves the session (nil user when anonymous), loads
// user-scoped data, then the public collections.
func (l *Loader) Initialize(user *models.Profile) {
	l.store.Dispatch(SetLoading{Loading: true})

	if user != nil {
		l.loadUserScoped(user)
	}
	l.LoadPublicData()

	l.store.Dispatch(SetLoading{Loading: false})
}

// LoadPublicData refreshes the marketplace collection (active agents with
// available models, most used first) and the reference model list.
func (l *Loader) LoadPublicData() {
	agents, err := services.ListMarketplaceAgents(services.AgentFilter{})
	if err != nil {
		logger.Log.Error("failed to load marketplace agents", zap.Error(err))
	} else {
		l.store.Dispatch(SetAgents{Agents: agents})
	}

	aiModels, err := services.ListAvailableModels()
	if err != nil {
		logger.Log.Error("failed to load ai models", zap.Error(err))
	} else {
		l.store.Dispatch(SetAIModels{Models: aiModels})
	}
}

// RefreshMyData reloads the signed-in user's own agents and usage history.
func (l *Loader) RefreshMyData() {
	state := l.store.Snapshot()
	if state.User == nil {
		return
	}
	l.loadUserScoped(state.User)
}

func (l *Loader) loadUserScoped(user *models.Profile) {
	l.store.Dispatch(SetUser{User: user})

	myAgents, err := services.ListAgentsByCreator(user.ID)
	if err != nil {
		logger.Log.Error("failed to load own agents", zap.Error(err))
	} else {
		l.store.Dispatch(SetMyAgents{Agents: myAgents})
	}

	myUsages, err := services.ListUsagesByUser(user.ID)
	if err != nil {
		logger.Log.Error("failed to load usage history", zap.Error(err))
	} else {
		l.store.Dispatch(SetMyUsages{Usages: myUsages})
	}
}

// onSessionEvent reacts to auth changes: sign-in and token refresh re-run
// the profile load; sign-out clears user-scoped collections and returns to
// the landing page.
func (l *Loader) onSessionEvent(ev services.SessionEvent) {
	switch ev.Type {
	case services.SessionSignedIn, services.SessionTokenRefreshed:
		profile, err := services.FindProfileByID(ev.UserID)
		if err != nil {
			logger.Log.Error("failed to load profile after session change",
				zap.String("user_id", ev.UserID),
				zap.Error(err))
			return
		}
		l.loadUserScoped(&profile)
	case services.SessionSignedOut:
		l.store.Dispatch(SetUser{User: nil})
		l.store.Dispatch(SetMyAgents{Agents: []models.Agent{}})
		l.store.Dispatch(SetMyUsages{Usages: []models.Usage{}})
		l.store.Dispatch(Navigate{Page: PageLanding})
	}
}
