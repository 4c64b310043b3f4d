package payment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiwi13nz/AgentFlow/config"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/internal/payment/gumroad"
	"github.com/kiwi13nz/AgentFlow/internal/services"
	"github.com/kiwi13nz/AgentFlow/internal/utils"
	"github.com/kiwi13nz/AgentFlow/pkg/logger"
	"go.uber.org/zap"
)

// GumroadWebhook godoc
// @Summary Gumroad sale notification
// @Description Verify a Gumroad sale ping and credit the buyer's pack for the agent. Idempotent by sale id.
// @Tags payment
// @Accept  x-www-form-urlencoded
// @Produce  json
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 503 {object} utils.Response
// @Router /payments/gumroad/webhook [post]
func GumroadWebhook(c *gin.Context) {
	cfg, err := config.LoadConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load configuration"))
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Malformed notification"))
		return
	}
	params := make(map[string]string, len(c.Request.PostForm))
	for key := range c.Request.PostForm {
		params[key] = c.Request.PostForm.Get(key)
	}

	driver := gumroad.NewGumroadDriver(cfg.GumroadSellerID, cfg.GumroadVerifyURL)
	sale, err := driver.Verify(params)
	if err != nil {
		if errors.Is(err, gumroad.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, utils.NewErrorResponse(http.StatusServiceUnavailable, err.Error()))
			return
		}
		logger.Log.Warn("rejected gumroad notification", zap.Error(err))
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Sale verification failed"))
		return
	}

	credits, err := services.HandleCreditSale(sale)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateSale) {
			// Gumroad retries pings; a replay is a success, not an error.
			c.JSON(http.StatusOK, utils.NewSuccessResponse("Sale already processed", nil))
			return
		}
		logger.Log.Error("failed to credit gumroad sale",
			zap.String("sale_id", sale.SaleID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to process sale"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Sale processed successfully", credits))
}

// GetAgentCredits godoc
// @Summary Get remaining credits for an agent
// @Description Return the caller's credit pack for the agent, or null when none exists.
// @Tags payment
// @Produce  json
// @Security Bearer
// @Param   id  path  string  true  "Agent ID"
// @Success 200 {object} utils.Response{data=models.AgentCredits}
// @Failure 401 {object} utils.Response
// @Router /agents/{id}/credits [get]
func GetAgentCredits(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	p := user.(models.Profile)

	credits, err := services.GetAgentCredits(p.ID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load credits"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Credits retrieved successfully", credits))
}
