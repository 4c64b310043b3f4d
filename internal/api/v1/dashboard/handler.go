package dashboard

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/internal/services"
	"github.com/kiwi13nz/AgentFlow/internal/utils"
	"github.com/kiwi13nz/AgentFlow/pkg/logger"
	"go.uber.org/zap"
)

// Balance godoc
// @Summary Get creator earnings balance
// @Tags dashboard
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response{data=models.UserBalance}
// @Failure 401 {object} utils.Response
// @Router /dashboard/balance [get]
func Balance(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	p := user.(models.Profile)

	balance, err := services.GetUserBalance(p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load balance"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Balance retrieved successfully", balance))
}

// Activity godoc
// @Summary Get creator dashboard activity
// @Description Balance, own agents and recent invocations in one call. A failed section logs and renders empty.
// @Tags dashboard
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response{data=dashboard.ActivityResponse}
// @Failure 401 {object} utils.Response
// @Router /dashboard/activity [get]
func Activity(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	p := user.(models.Profile)

	resp := ActivityResponse{
		MyAgents:     []models.Agent{},
		RecentUsages: []models.Usage{},
	}

	balance, err := services.GetUserBalance(p.ID)
	if err != nil {
		logger.Log.Error("dashboard: failed to load balance", zap.String("user_id", p.ID), zap.Error(err))
		resp.Balance = &models.UserBalance{UserID: p.ID}
	} else {
		resp.Balance = balance
	}

	if agents, err := services.ListAgentsByCreator(p.ID); err != nil {
		logger.Log.Error("dashboard: failed to load agents", zap.String("user_id", p.ID), zap.Error(err))
	} else {
		resp.MyAgents = agents
	}

	if usages, err := services.ListRecentUsagesForCreator(p.ID); err != nil {
		logger.Log.Error("dashboard: failed to load recent usages", zap.String("user_id", p.ID), zap.Error(err))
	} else {
		resp.RecentUsages = usages
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Activity retrieved successfully", resp))
}

func transactionFilterFromQuery(c *gin.Context, userID string) services.TransactionFilter {
	filter := services.TransactionFilter{
		UserID: userID,
		Page:   1,
		Limit:  50,
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit <= 200 {
		filter.Limit = limit
	}
	if t := c.Query("type"); t != "" {
		txType := models.TransactionType(t)
		filter.Type = &txType
	}
	if start, err := time.Parse(time.RFC3339, c.Query("start_time")); err == nil {
		filter.StartTime = &start
	}
	if end, err := time.Parse(time.RFC3339, c.Query("end_time")); err == nil {
		filter.EndTime = &end
	}

	return filter
}

// Transactions godoc
// @Summary List own ledger rows
// @Description Paginated transaction history with optional type and time filters.
// @Tags dashboard
// @Produce  json
// @Security Bearer
// @Param   page        query  int     false  "Page number"
// @Param   limit       query  int     false  "Page size"
// @Param   type        query  string  false  "Transaction type"
// @Param   start_time  query  string  false  "RFC3339 lower bound"
// @Param   end_time    query  string  false  "RFC3339 upper bound"
// @Success 200 {object} utils.Response{data=dashboard.TransactionListResponse}
// @Failure 401 {object} utils.Response
// @Router /dashboard/transactions [get]
func Transactions(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	p := user.(models.Profile)

	filter := transactionFilterFromQuery(c, p.ID)
	transactions, total, err := services.FindTransactions(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to list transactions"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Transactions retrieved successfully", TransactionListResponse{
		Transactions: transactions,
		Total:        total,
		Page:         filter.Page,
		Limit:        filter.Limit,
	}))
}

// ExportTransactions godoc
// @Summary Export own ledger as CSV
// @Tags dashboard
// @Produce  text/csv
// @Security Bearer
// @Param   type        query  string  false  "Transaction type"
// @Param   start_time  query  string  false  "RFC3339 lower bound"
// @Param   end_time    query  string  false  "RFC3339 upper bound"
// @Success 200 {string} string "CSV file"
// @Failure 401 {object} utils.Response
// @Router /dashboard/transactions/export [get]
func ExportTransactions(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	p := user.(models.Profile)

	filter := transactionFilterFromQuery(c, p.ID)
	// Exports are not paginated.
	filter.Page = 1
	filter.Limit = 10000

	transactions, _, err := services.FindTransactions(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load transactions"))
		return
	}

	csvData, err := services.GenerateTransactionCSV(transactions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to generate CSV"))
		return
	}

	filename := fmt.Sprintf("transactions_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", csvData)
}
