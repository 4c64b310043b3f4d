package dashboard

import "github.com/kiwi13nz/AgentFlow/internal/models"

// ActivityResponse aggregates the creator dashboard: earnings balance, own
// agents, and the latest invocations against them. Sections that fail to
// load come back empty rather than failing the whole page.
type ActivityResponse struct {
	Balance      *models.UserBalance `json:"balance"`
	MyAgents     []models.Agent      `json:"my_agents"`
	RecentUsages []models.Usage      `json:"recent_usages"`
}

// TransactionListResponse is one page of ledger rows.
type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	Page         int                  `json:"page"`
	Limit        int                  `json:"limit"`
}
