package usage

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kiwi13nz/AgentFlow/internal/llm"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/internal/services"
	"github.com/kiwi13nz/AgentFlow/internal/utils"
)

// Execute godoc
// @Summary Execute an agent
// @Description Run one invocation: validate required inputs against the agent's schema, call the backing model, record the usage.
// @Tags usage
// @Accept  json
// @Produce  json
// @Security Bearer
// @Param   id     path  string        true  "Agent ID"
// @Param   input  body  ExecuteInput  true  "Submitted form values"
// @Success 200 {object} utils.Response{data=usage.ExecuteResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 502 {object} utils.Response
// @Router /agents/{id}/execute [post]
func Execute(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	p := user.(models.Profile)

	var input ExecuteInput
	if !utils.BindAndValidate(c, &input) {
		return
	}
	if input.Inputs == nil {
		input.Inputs = map[string]interface{}{}
	}

	agentID := c.Param("id")

	// Required-field validation happens before any usage row or vendor
	// call; a rejected form submission leaves no trace.
	a, err := services.GetAgentByID(agentID)
	if err != nil {
		if errors.Is(err, services.ErrAgentNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load agent"))
		return
	}
	if missing := models.MissingRequiredInputs(a.InputSchema, input.Inputs); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest,
			fmt.Sprintf("Missing required inputs: %s", strings.Join(missing, ", "))))
		return
	}

	result, err := services.ExecuteAgent(c.Request.Context(), agentID, p.ID, input.Inputs)
	if err != nil {
		var genErr *llm.GenerationError
		switch {
		case errors.Is(err, services.ErrAgentNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		case errors.Is(err, services.ErrAgentInactive):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		case errors.Is(err, services.ErrModelMisconfigured):
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		case errors.Is(err, llm.ErrCredentialMissing):
			c.JSON(http.StatusServiceUnavailable, utils.NewErrorResponse(http.StatusServiceUnavailable, err.Error()))
		case errors.As(err, &genErr):
			c.JSON(http.StatusBadGateway, utils.NewErrorResponse(http.StatusBadGateway, genErr.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to execute agent"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Agent executed successfully", ExecuteResponse{
		UsageID:    result.Usage.ID,
		Content:    result.Content,
		TokensUsed: result.TokensUsed,
		Cost:       result.Cost,
	}))
}

// History godoc
// @Summary List own usage history
// @Description Most recent invocations of the signed-in user, newest first, capped.
// @Tags usage
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]models.Usage}
// @Failure 401 {object} utils.Response
// @Router /usages [get]
func History(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	p := user.(models.Profile)

	usages, err := services.ListUsagesByUser(p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to list usage history"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Usage history retrieved successfully", usages))
}
