package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kiwi13nz/AgentFlow/config"
	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/llm"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrAgentInactive = errors.New("agent is not active")
	ErrPersistence   = errors.New("failed to persist execution state")
)

// ExecutionResult is the outcome of one completed agent invocation.
type ExecutionResult struct {
	Usage      *models.Usage
	Content    string
	TokensUsed int
	Cost       float64
}

// ExecuteAgent runs one invocation lifecycle: load agent and model, record a
// pending usage, call the vendor, then settle the usage and the aggregate
// counters. The pending row is created before any vendor call so external
// spend always has a durable record; any failure after that point terminates
// the row as failed with the error message stored.
func ExecuteAgent(ctx context.Context, agentID, userID string, inputs map[string]interface{}) (*ExecutionResult, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Step 1: agent must exist and be active. No side effects yet.
	var agent models.Agent
	if err := database.DB.First(&agent, "id = ?", agentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	if agent.Status != models.AgentStatusActive {
		return nil, ErrAgentInactive
	}

	// Step 2: the referenced model must load. A dangling reference is a
	// creator/operator error, distinct from a missing agent, and is never
	// retried.
	model, err := GetAIModelByID(agent.AIModelID)
	if err != nil {
		if errors.Is(err, ErrModelNotFound) {
			return nil, ErrModelMisconfigured
		}
		return nil, err
	}

	// Step 3: durable pending record before any vendor call, carrying the
	// agent's nominal price as the provisional cost.
	inputJSON, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	usage := models.Usage{
		UserID:    userID,
		AgentID:   agentID,
		InputData: datatypes.JSON(inputJSON),
		Cost:      agent.PricePerUse,
		Status:    models.UsageStatusPending,
	}
	if err := database.DB.Create(&usage).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Step 4: render the prompt from the schema-ordered inputs.
	prompt := llm.BuildPrompt(agent.SystemPrompt, agent.InputSchema, inputs)

	// Step 5: vendor dispatch by discriminator.
	client, err := llm.ForProvider(model.Provider, cfg)
	if err != nil {
		failUsage(&usage, err)
		return nil, err
	}

	response, err := client.Generate(ctx, model.ModelName, prompt, model.MaxTokens)
	if err != nil {
		failUsage(&usage, err)
		return nil, err
	}

	// Step 6: fixed pricing overrides metered pricing whenever a nonzero
	// price is set.
	cost := agent.PricePerUse
	if cost == 0 {
		cost = float64(response.TokensUsed) / 1000 * model.CostPer1kTokens
	}

	now := time.Now()
	completed := database.DB.Model(&usage).
		Where("status = ?", models.UsageStatusPending).
		Updates(map[string]interface{}{
			"output_data":  response.Content,
			"tokens_used":  response.TokensUsed,
			"cost":         cost,
			"status":       models.UsageStatusCompleted,
			"completed_at": now,
		})
	if completed.Error != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, completed.Error)
	}
	usage.OutputData = response.Content
	usage.TokensUsed = response.TokensUsed
	usage.Cost = cost
	usage.Status = models.UsageStatusCompleted
	usage.CompletedAt = &now

	// Step 7: aggregate counters are best-effort. The user already holds the
	// generated result; accounting failures are logged, not surfaced.
	settleCompletedUsage(&agent, &usage, cost)

	return &ExecutionResult{
		Usage:      &usage,
		Content:    response.Content,
		TokensUsed: response.TokensUsed,
		Cost:       cost,
	}, nil
}

// failUsage terminates a pending usage as failed with the error message
// recorded. The status guard keeps terminal rows immutable.
func failUsage(usage *models.Usage, cause error) {
	now := time.Now()
	result := database.DB.Model(usage).
		Where("status = ?", models.UsageStatusPending).
		Updates(map[string]interface{}{
			"status":        models.UsageStatusFailed,
			"error_message": cause.Error(),
			"completed_at":  now,
		})
	if result.Error != nil {
		logger.Log.Error("failed to mark usage as failed",
			zap.String("usage_id", usage.ID),
			zap.Error(result.Error))
		return
	}
	usage.Status = models.UsageStatusFailed
	usage.ErrorMessage = cause.Error()
	usage.CompletedAt = &now
}

func settleCompletedUsage(agent *models.Agent, usage *models.Usage, cost float64) {
	if err := database.DB.Model(&models.Agent{}).
		Where("id = ?", agent.ID).
		Updates(map[string]interface{}{
			"total_uses":    gorm.Expr("total_uses + 1"),
			"total_revenue": gorm.Expr("total_revenue + ?", cost),
		}).Error; err != nil {
		logger.Log.Error("failed to update agent counters",
			zap.String("agent_id", agent.ID),
			zap.Error(err))
	}

	if err := creditCreatorEarnings(agent.CreatorID, cost); err != nil {
		logger.Log.Error("failed to credit creator earnings",
			zap.String("creator_id", agent.CreatorID),
			zap.Error(err))
	}

	if err := recordUsageTransactions(agent, usage, cost); err != nil {
		logger.Log.Error("failed to record usage transactions",
			zap.String("usage_id", usage.ID),
			zap.Error(err))
	}

	if err := ConsumeCredit(usage.UserID, agent.ID); err != nil && !errors.Is(err, ErrNoCredits) {
		logger.Log.Error("failed to consume agent credit",
			zap.String("usage_id", usage.ID),
			zap.Error(err))
	}
}

func creditCreatorEarnings(creatorID string, amount float64) error {
	if amount == 0 {
		return nil
	}
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var balance models.UserBalance
		err := tx.First(&balance, "user_id = ?", creatorID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			balance = models.UserBalance{UserID: creatorID}
			if err := tx.Create(&balance).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		return tx.Model(&models.UserBalance{}).
			Where("user_id = ?", creatorID).
			Updates(map[string]interface{}{
				"available_balance": gorm.Expr("available_balance + ?", amount),
				"total_earned":      gorm.Expr("total_earned + ?", amount),
			}).Error
	})
}

func recordUsageTransactions(agent *models.Agent, usage *models.Usage, cost float64) error {
	if cost == 0 {
		return nil
	}
	rows := []models.Transaction{
		{
			UserID:      usage.UserID,
			Type:        models.TransactionTypeUsageSpend,
			Amount:      -cost,
			Description: fmt.Sprintf("Used agent %q", agent.Name),
			AgentID:     agent.ID,
			UsageID:     usage.ID,
		},
		{
			UserID:      agent.CreatorID,
			Type:        models.TransactionTypeCreatorEarning,
			Amount:      cost,
			Description: fmt.Sprintf("Earning from agent %q", agent.Name),
			AgentID:     agent.ID,
			UsageID:     usage.ID,
		},
	}
	return database.DB.Create(&rows).Error
}
