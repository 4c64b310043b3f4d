// Package appstate holds the explicit application-state snapshot the SPA
// boots from: one struct owned by a single store, mutated only through a
// closed action set, observed through subscriptions.
package appstate

import "github.com/kiwi13nz/AgentFlow/internal/models"

type PageType string

const (
	PageLanding     PageType = "landing"
	PageMarketplace PageType = "marketplace"
	PageAgentDetail PageType = "agent-detail"
	PageCreateAgent PageType = "create-agent"
	PageDashboard   PageType = "dashboard"
	PageProfile     PageType = "profile"
)

// AppState is a single snapshot of everything the UI reads.
type AppState struct {
	CurrentPage     PageType         `json:"current_page"`
	SelectedAgentID string           `json:"selected_agent_id,omitempty"`
	User            *models.Profile  `json:"user,omitempty"`
	IsAuthenticated bool             `json:"is_authenticated"`
	Loading         bool             `json:"loading"`
	Agents          []models.Agent   `json:"agents"`
	MyAgents        []models.Agent   `json:"my_agents"`
	MyUsages        []models.Usage   `json:"my_usages"`
	AIModels        []models.AIModel `json:"ai_models"`
}

func initialState() AppState {
	return AppState{
		CurrentPage: PageLanding,
		Loading:     true,
		Agents:      []models.Agent{},
		MyAgents:    []models.Agent{},
		MyUsages:    []models.Usage{},
		AIModels:    []models.AIModel{},
	}
}

// Action is one member of the closed transition set. Collection-bearing
// actions replace their slice wholesale; there is no incremental merge.
type Action interface {
	apply(state AppState) AppState
}

type Navigate struct {
	Page    PageType
	AgentID string
}

func (a Navigate) apply(s AppState) AppState {
	s.CurrentPage = a.Page
	s.SelectedAgentID = a.AgentID
	return s
}

type SetUser struct {
	User *models.Profile
}

func (a SetUser) apply(s AppState) AppState {
	s.User = a.User
	s.IsAuthenticated = a.User != nil
	return s
}

type SetLoading struct {
	Loading bool
}

func (a SetLoading) apply(s AppState) AppState {
	s.Loading = a.Loading
	return s
}

type SetAgents struct {
	Agents []models.Agent
}

func (a SetAgents) apply(s AppState) AppState {
	s.Agents = a.Agents
	return s
}

type SetMyAgents struct {
	Agents []models.Agent
}

func (a SetMyAgents) apply(s AppState) AppState {
	s.MyAgents = a.Agents
	return s
}

type SetMyUsages struct {
	Usages []models.Usage
}

func (a SetMyUsages) apply(s AppState) AppState {
	s.MyUsages = a.Usages
	return s
}

type SetAIModels struct {
	Models []models.AIModel
}

func (a SetAIModels) apply(s AppState) AppState {
	s.AIModels = a.Models
	return s
}
