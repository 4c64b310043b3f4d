package usage_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kiwi13nz/AgentFlow/internal/api/v1/usage"
	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	tables := []interface{}{
		&models.Profile{}, &models.AIModel{}, &models.Agent{}, &models.Usage{},
		&models.UserBalance{}, &models.Transaction{}, &models.AgentCredits{},
	}
	db.Migrator().DropTable(tables...)
	if err := db.AutoMigrate(tables...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	database.DB = db
	database.RedisClient = nil
}

func testRouter(user *models.Profile) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/api/v1")
	grp.Use(func(c *gin.Context) {
		c.Set("user", *user)
		c.Next()
	})
	usage.RegisterRoutes(grp)
	return r
}

func seedExecutableAgent(t *testing.T) (*models.Profile, *models.Agent) {
	t.Helper()
	creator := models.Profile{Email: "creator@example.com", Password: "x"}
	database.DB.Create(&creator)
	caller := models.Profile{Email: "caller@example.com", Password: "x"}
	database.DB.Create(&caller)

	model := models.AIModel{Provider: models.ProviderOpenAI, ModelName: "m", DisplayName: "M", IsAvailable: true, MaxTokens: 4000}
	database.DB.Create(&model)

	agent := models.Agent{
		CreatorID:    creator.ID,
		Name:         "Poet",
		SystemPrompt: "You are a poet.",
		InputSchema: models.InputSchema{
			{Name: "topic", Type: models.FieldTypeText, Label: "Topic", Required: true},
		},
		Provider:    models.ProviderOpenAI,
		AIModelID:   model.ID,
		PricePerUse: 0.10,
		Status:      models.AgentStatusActive,
	}
	database.DB.Create(&agent)
	return &caller, &agent
}

func execRequest(router *gin.Engine, agentID string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/agents/"+agentID+"/execute", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestExecuteRejectsMissingRequiredInputs(t *testing.T) {
	setupTestDB(t)
	caller, agent := seedExecutableAgent(t)
	router := testRouter(caller)

	w := execRequest(router, agent.ID, map[string]interface{}{
		"inputs": map[string]interface{}{"topic": ""},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Message string `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Contains(t, resp.Message, "topic")

	// A rejected submission leaves no usage row.
	var count int64
	database.DB.Model(&models.Usage{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestExecuteUnknownAgent(t *testing.T) {
	setupTestDB(t)
	caller, _ := seedExecutableAgent(t)
	router := testRouter(caller)

	w := execRequest(router, "00000000-0000-0000-0000-000000000000", map[string]interface{}{
		"inputs": map[string]interface{}{"topic": "x"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExecuteSuccess(t *testing.T) {
	setupTestDB(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "a poem"}},
			},
			"usage": map[string]int{"total_tokens": 50},
		})
	}))
	defer srv.Close()
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", srv.URL)

	caller, agent := seedExecutableAgent(t)
	router := testRouter(caller)

	w := execRequest(router, agent.ID, map[string]interface{}{
		"inputs": map[string]interface{}{"topic": "rivers"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data usage.ExecuteResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "a poem", resp.Data.Content)
	assert.Equal(t, 50, resp.Data.TokensUsed)
	assert.Equal(t, 0.10, resp.Data.Cost)
	assert.NotEmpty(t, resp.Data.UsageID)
}

func TestExecuteVendorFailureSurfacesBadGateway(t *testing.T) {
	setupTestDB(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", srv.URL)

	caller, agent := seedExecutableAgent(t)
	router := testRouter(caller)

	w := execRequest(router, agent.ID, map[string]interface{}{
		"inputs": map[string]interface{}{"topic": "rivers"},
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var u models.Usage
	assert.NoError(t, database.DB.First(&u, "agent_id = ?", agent.ID).Error)
	assert.Equal(t, models.UsageStatusFailed, u.Status)
}
