package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/stretchr/testify/assert"
)

// fakeOpenAI returns an httptest server speaking the chat completions shape
// and a pointer to its hit counter.
func fakeOpenAI(t *testing.T, content string, totalTokens int) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
			"usage": map[string]int{"total_tokens": totalTokens},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestExecuteAgentFixedPrice(t *testing.T) {
	setupTestDB()
	srv, _ := fakeOpenAI(t, "generated text", 120)
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", srv.URL)

	creator := seedProfile("creator@example.com")
	user := seedProfile("user@example.com")
	model := seedModel(models.ProviderOpenAI, 0.01)
	agent := seedAgent(creator.ID, model.ID, models.ProviderOpenAI, 0.50)

	result, err := ExecuteAgent(context.Background(), agent.ID, user.ID, map[string]interface{}{
		"topic": "cats",
	})
	assert.NoError(t, err)
	assert.Equal(t, "generated text", result.Content)
	assert.Equal(t, 120, result.TokensUsed)
	// Fixed price wins over metered pricing.
	assert.Equal(t, 0.50, result.Cost)

	var usage models.Usage
	assert.NoError(t, database.DB.First(&usage, "id = ?", result.Usage.ID).Error)
	assert.Equal(t, models.UsageStatusCompleted, usage.Status)
	assert.Equal(t, "generated text", usage.OutputData)
	assert.NotNil(t, usage.CompletedAt)

	var reloaded models.Agent
	database.DB.First(&reloaded, "id = ?", agent.ID)
	assert.Equal(t, int64(1), reloaded.TotalUses)
	assert.Equal(t, 0.50, reloaded.TotalRevenue)

	var balance models.UserBalance
	assert.NoError(t, database.DB.First(&balance, "user_id = ?", creator.ID).Error)
	assert.Equal(t, 0.50, balance.AvailableBalance)
	assert.Equal(t, 0.50, balance.TotalEarned)

	var txCount int64
	database.DB.Model(&models.Transaction{}).Count(&txCount)
	assert.Equal(t, int64(2), txCount) // user spend + creator earning
}

func TestExecuteAgentMeteredPrice(t *testing.T) {
	setupTestDB()
	srv, _ := fakeOpenAI(t, "ok", 2000)
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", srv.URL)

	creator := seedProfile("creator@example.com")
	user := seedProfile("user@example.com")
	model := seedModel(models.ProviderOpenAI, 0.01)
	agent := seedAgent(creator.ID, model.ID, models.ProviderOpenAI, 0)

	result, err := ExecuteAgent(context.Background(), agent.ID, user.ID, map[string]interface{}{
		"topic": "dogs",
	})
	assert.NoError(t, err)
	// 2000 tokens at $0.01 per 1k.
	assert.InDelta(t, 0.02, result.Cost, 1e-9)
}

func TestExecuteAgentNotFound(t *testing.T) {
	setupTestDB()
	user := seedProfile("user@example.com")

	_, err := ExecuteAgent(context.Background(), "00000000-0000-0000-0000-000000000000", user.ID, nil)
	assert.ErrorIs(t, err, ErrAgentNotFound)

	var count int64
	database.DB.Model(&models.Usage{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestExecuteAgentInactive(t *testing.T) {
	setupTestDB()
	creator := seedProfile("creator@example.com")
	user := seedProfile("user@example.com")
	model := seedModel(models.ProviderOpenAI, 0.01)
	agent := seedAgent(creator.ID, model.ID, models.ProviderOpenAI, 0)
	database.DB.Model(agent).Update("status", models.AgentStatusDraft)

	_, err := ExecuteAgent(context.Background(), agent.ID, user.ID, nil)
	assert.ErrorIs(t, err, ErrAgentInactive)

	var count int64
	database.DB.Model(&models.Usage{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestExecuteAgentDanglingModel(t *testing.T) {
	setupTestDB()
	srv, hits := fakeOpenAI(t, "never", 1)
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", srv.URL)

	creator := seedProfile("creator@example.com")
	user := seedProfile("user@example.com")
	agent := seedAgent(creator.ID, "00000000-0000-0000-0000-000000000000", models.ProviderOpenAI, 0)

	_, err := ExecuteAgent(context.Background(), agent.ID, user.ID, nil)
	assert.ErrorIs(t, err, ErrModelMisconfigured)
	assert.Equal(t, 0, *hits)

	var count int64
	database.DB.Model(&models.Usage{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestExecuteAgentVendorFailure(t *testing.T) {
	setupTestDB()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", srv.URL)

	creator := seedProfile("creator@example.com")
	user := seedProfile("user@example.com")
	model := seedModel(models.ProviderOpenAI, 0.01)
	agent := seedAgent(creator.ID, model.ID, models.ProviderOpenAI, 0.25)

	_, err := ExecuteAgent(context.Background(), agent.ID, user.ID, map[string]interface{}{"topic": "x"})
	assert.Error(t, err)

	// The pending row terminates as failed with the error recorded.
	var usage models.Usage
	assert.NoError(t, database.DB.First(&usage, "agent_id = ?", agent.ID).Error)
	assert.Equal(t, models.UsageStatusFailed, usage.Status)
	assert.NotEmpty(t, usage.ErrorMessage)
	assert.NotNil(t, usage.CompletedAt)

	// Counters never move on failure.
	var reloaded models.Agent
	database.DB.First(&reloaded, "id = ?", agent.ID)
	assert.Equal(t, int64(0), reloaded.TotalUses)
	assert.Equal(t, float64(0), reloaded.TotalRevenue)
}

func TestFailUsageLeavesTerminalRowsAlone(t *testing.T) {
	setupTestDB()
	user := seedProfile("user@example.com")

	usage := models.Usage{
		UserID:     user.ID,
		AgentID:    "11111111-1111-1111-1111-111111111111",
		Status:     models.UsageStatusCompleted,
		OutputData: "done",
	}
	database.DB.Create(&usage)

	failUsage(&usage, assert.AnError)

	var reloaded models.Usage
	database.DB.First(&reloaded, "id = ?", usage.ID)
	assert.Equal(t, models.UsageStatusCompleted, reloaded.Status)
	assert.Equal(t, "done", reloaded.OutputData)
}

func TestExecuteAgentConsumesCredit(t *testing.T) {
	setupTestDB()
	srv, _ := fakeOpenAI(t, "ok", 10)
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", srv.URL)

	creator := seedProfile("creator@example.com")
	user := seedProfile("user@example.com")
	model := seedModel(models.ProviderOpenAI, 0.01)
	agent := seedAgent(creator.ID, model.ID, models.ProviderOpenAI, 1.00)

	_, err := GrantCredits(user.ID, agent.ID, 3, "sale-1")
	assert.NoError(t, err)

	_, err = ExecuteAgent(context.Background(), agent.ID, user.ID, map[string]interface{}{"topic": "x"})
	assert.NoError(t, err)

	credits, err := GetAgentCredits(user.ID, agent.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, credits.CreditsRemaining)
}
