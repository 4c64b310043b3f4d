package agent

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/internal/services"
	"github.com/kiwi13nz/AgentFlow/internal/utils"
)

// ListAgents godoc
// @Summary Browse the marketplace
// @Description List active agents whose model is available, most used first. Supports category, search and featured filters.
// @Tags agent
// @Produce  json
// @Param   category  query  string  false  "Category filter"
// @Param   search    query  string  false  "Name/description substring"
// @Param   featured  query  bool    false  "Featured agents only"
// @Success 200 {object} utils.Response{data=[]models.Agent}
// @Failure 500 {object} utils.Response
// @Router /agents [get]
func ListAgents(c *gin.Context) {
	filter := services.AgentFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Featured: c.Query("featured") == "true",
	}

	agents, err := services.ListMarketplaceAgents(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to list agents"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Agents retrieved successfully", agents))
}

// GetAgent godoc
// @Summary Get one agent
// @Tags agent
// @Produce  json
// @Param   id  path  string  true  "Agent ID"
// @Success 200 {object} utils.Response{data=models.Agent}
// @Failure 404 {object} utils.Response
// @Router /agents/{id} [get]
func GetAgent(c *gin.Context) {
	a, err := services.GetAgentByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrAgentNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load agent"))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Agent retrieved successfully", a))
}

// ListMyAgents godoc
// @Summary List own agents
// @Description List every agent the signed-in user created, any status.
// @Tags agent
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]models.Agent}
// @Failure 401 {object} utils.Response
// @Router /my/agents [get]
func ListMyAgents(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	p := user.(models.Profile)

	agents, err := services.ListAgentsByCreator(p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to list agents"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Agents retrieved successfully", agents))
}

// CreateAgent godoc
// @Summary Publish an agent
// @Description Create an agent owned by the signed-in user. The input schema is validated and the provider is derived from the chosen model.
// @Tags agent
// @Accept  json
// @Produce  json
// @Security Bearer
// @Param   input  body  CreateAgentInput  true  "Agent definition"
// @Success 201 {object} utils.Response{data=models.Agent}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /agents [post]
func CreateAgent(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	p := user.(models.Profile)

	var input CreateAgentInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	status := input.Status
	if status == "" {
		status = models.AgentStatusDraft
	}

	a := models.Agent{
		CreatorID:    p.ID,
		Name:         input.Name,
		Description:  input.Description,
		SystemPrompt: input.SystemPrompt,
		InputSchema:  input.InputSchema,
		AIModelID:    input.AIModelID,
		PricePerUse:  input.PricePerUse,
		Category:     input.Category,
		Tags:         input.Tags,
		Status:       status,
	}

	if err := services.CreateAgent(&a); err != nil {
		if errors.Is(err, services.ErrModelMisconfigured) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		// Schema validation failures carry their own message.
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Agent created successfully", a))
}

// UpdateAgent godoc
// @Summary Edit an agent
// @Description Apply a partial edit. Only the creator may edit; usage counters are never writable here.
// @Tags agent
// @Accept  json
// @Produce  json
// @Security Bearer
// @Param   id     path  string            true  "Agent ID"
// @Param   input  body  UpdateAgentInput  true  "Fields to change"
// @Success 200 {object} utils.Response{data=models.Agent}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /agents/{id} [put]
func UpdateAgent(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	p := user.(models.Profile)

	var input UpdateAgentInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	updated, err := services.UpdateAgent(c.Param("id"), p.ID, services.AgentUpdate{
		Name:         input.Name,
		Description:  input.Description,
		SystemPrompt: input.SystemPrompt,
		InputSchema:  input.InputSchema,
		AIModelID:    input.AIModelID,
		PricePerUse:  input.PricePerUse,
		Category:     input.Category,
		Tags:         input.Tags,
		Status:       input.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAgentNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		case errors.Is(err, services.ErrNotAgentCreator):
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, err.Error()))
		case errors.Is(err, services.ErrModelMisconfigured):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		default:
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Agent updated successfully", updated))
}

// UpdateAgentStatus godoc
// @Summary Change an agent's listing status
// @Tags agent
// @Accept  json
// @Produce  json
// @Security Bearer
// @Param   id     path  string             true  "Agent ID"
// @Param   input  body  UpdateStatusInput  true  "New status"
// @Success 200 {object} utils.Response{data=models.Agent}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /agents/{id}/status [patch]
func UpdateAgentStatus(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	p := user.(models.Profile)

	var input UpdateStatusInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	updated, err := services.UpdateAgent(c.Param("id"), p.ID, services.AgentUpdate{Status: &input.Status})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAgentNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		case errors.Is(err, services.ErrNotAgentCreator):
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, err.Error()))
		default:
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Agent status updated successfully", updated))
}
