package rating

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/internal/services"
	"github.com/kiwi13nz/AgentFlow/internal/utils"
)

// RateAgent godoc
// @Summary Rate an agent
// @Description Store or replace the caller's rating and recompute the agent's aggregates.
// @Tags rating
// @Accept  json
// @Produce  json
// @Security Bearer
// @Param   id     path  string     true  "Agent ID"
// @Param   input  body  RateInput  true  "Rating"
// @Success 200 {object} utils.Response{data=models.AgentRating}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /agents/{id}/rating [post]
func RateAgent(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	p := user.(models.Profile)

	var input RateInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	row, err := services.RateAgent(p.ID, c.Param("id"), input.Rating, input.Review)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		case errors.Is(err, services.ErrAgentNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to save rating"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Rating saved successfully", row))
}
