package ai_model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/internal/services"
	"github.com/kiwi13nz/AgentFlow/internal/utils"
)

// callerIsPro reports whether the request carries a valid token for a
// pro-tier (or admin) account. Anonymous and plain accounts see only the
// non-pro models.
func callerIsPro(c *gin.Context) bool {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		return false
	}
	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		return false
	}
	role, _ := claims["role"].(string)
	return role == "pro" || role == "admin"
}

// ListModels godoc
// @Summary List available AI models
// @Description List available models ordered by provider. Pro-only models are hidden from non-pro callers.
// @Tags ai_model
// @Produce  json
// @Success 200 {object} utils.Response{data=[]models.AIModel}
// @Failure 500 {object} utils.Response
// @Router /models [get]
func ListModels(c *gin.Context) {
	available, err := services.ListAvailableModels()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to list models"))
		return
	}

	visible := services.FilterModelsForUser(available, callerIsPro(c))
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Models retrieved successfully", visible))
}

// GetModel godoc
// @Summary Get one AI model
// @Tags ai_model
// @Produce  json
// @Param   id  path  string  true  "Model ID"
// @Success 200 {object} utils.Response{data=models.AIModel}
// @Failure 404 {object} utils.Response
// @Router /models/{id} [get]
func GetModel(c *gin.Context) {
	model, err := services.GetAIModelByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrModelNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load model"))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Model retrieved successfully", model))
}

// CreateModel godoc
// @Summary Register an AI model
// @Description Admin-only. Add one vendor-hosted model to the catalog.
// @Tags admin
// @Accept  json
// @Produce  json
// @Security Bearer
// @Param   input  body  CreateModelInput  true  "Model definition"
// @Success 201 {object} utils.Response{data=models.AIModel}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/models [post]
func CreateModel(c *gin.Context) {
	var input CreateModelInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	model := models.AIModel{
		Provider:        input.Provider,
		ModelName:       input.ModelName,
		DisplayName:     input.DisplayName,
		Description:     input.Description,
		CostPer1kTokens: input.CostPer1kTokens,
		IsFree:          input.IsFree,
		IsAvailable:     true,
		RequiresPro:     input.RequiresPro,
		MaxTokens:       input.MaxTokens,
	}
	if model.MaxTokens == 0 {
		model.MaxTokens = 4000
	}

	if err := services.CreateAIModel(&model); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create model"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Model created successfully", model))
}

// UpdateAvailability godoc
// @Summary Toggle model availability
// @Description Admin-only. Flip whether a model can back agent executions.
// @Tags admin
// @Accept  json
// @Produce  json
// @Security Bearer
// @Param   id     path  string                   true  "Model ID"
// @Param   input  body  UpdateAvailabilityInput  true  "Availability flag"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/models/{id}/availability [patch]
func UpdateAvailability(c *gin.Context) {
	var input UpdateAvailabilityInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	if err := services.UpdateModelAvailability(c.Param("id"), *input.IsAvailable); err != nil {
		if errors.Is(err, services.ErrModelNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update model availability"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Model availability updated", nil))
}
