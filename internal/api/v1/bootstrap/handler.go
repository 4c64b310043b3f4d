package bootstrap

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiwi13nz/AgentFlow/internal/appstate"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/internal/services"
	"github.com/kiwi13nz/AgentFlow/internal/utils"
)

// resolveCaller returns the profile behind a bearer token, or nil for
// anonymous and invalid tokens. Bootstrap never rejects a request over auth;
// a bad token just yields the signed-out snapshot.
func resolveCaller(c *gin.Context) *models.Profile {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		return nil
	}
	if denied, err := services.IsDenylisted(tokenString); err != nil || denied {
		return nil
	}
	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		return nil
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil
	}
	profile, err := services.FindProfileByID(sub)
	if err != nil {
		return nil
	}
	return &profile
}

// Bootstrap godoc
// @Summary Get the initial application state
// @Description One snapshot with marketplace agents, available models, and (when signed in) the caller's profile, agents and usage history.
// @Tags bootstrap
// @Produce  json
// @Success 200 {object} utils.Response{data=appstate.AppState}
// @Router /bootstrap [get]
func Bootstrap(c *gin.Context) {
	store := appstate.NewStore()
	loader := appstate.NewLoader(store)
	loader.Initialize(resolveCaller(c))

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Application state retrieved successfully", store.Snapshot()))
}
