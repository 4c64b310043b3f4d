package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiwi13nz/AgentFlow/config"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/internal/services"
	"github.com/kiwi13nz/AgentFlow/internal/utils"
)

func sessionResponse(p *models.Profile, token string) SessionResponse {
	return SessionResponse{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		AvatarURL: p.AvatarURL,
		Role:      p.Role,
		Token:     token,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create a profile with email and password. The first account becomes the administrator.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input     body   RegisterInput  true  "Register Input"
// @Success 201 {object} utils.Response{data=auth.SessionResponse}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var input RegisterInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	profile, err := services.RegisterUser(services.RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to register user due to an internal error"))
		return
	}

	token, err := utils.GenerateToken(profile.ID, profile.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Could not generate token"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("User registered successfully", sessionResponse(profile, token)))
}

// Login godoc
// @Summary Log in
// @Description Log in with email and password
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input     body   LoginInput  true  "Login Input"
// @Success 200 {object} utils.Response{data=auth.SessionResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var input LoginInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	token, profile, err := services.LoginUser(input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid email or password"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged in successfully", sessionResponse(profile, token)))
}

// Logout godoc
// @Summary Log out
// @Description Revoke the current token and end the session
// @Tags auth
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
		return
	}

	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		// Already invalid, but denylist it anyway with the maximum lifetime
		// since the expiration claim is unreadable.
		if err := services.AddToDenylist(tokenString, utils.TokenLifetime); err != nil {
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to denylist token"))
			return
		}
		c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out successfully", nil))
		return
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Invalid token expiration"))
		return
	}

	remaining := time.Until(time.Unix(int64(exp), 0))
	if err := services.AddToDenylist(tokenString, remaining); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to denylist token"))
		return
	}

	if sub, ok := claims["sub"].(string); ok {
		services.LogoutUser(sub)
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out successfully", nil))
}

// Session godoc
// @Summary Get current session
// @Description Return the signed-in profile with a refreshed token
// @Tags auth
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response{data=auth.SessionResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /auth/session [get]
func Session(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	profile := user.(models.Profile)

	token, err := utils.GenerateToken(profile.ID, profile.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Could not generate token"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Session retrieved successfully", sessionResponse(&profile, token)))
}

// OAuthRedirect godoc
// @Summary Start OAuth sign-in
// @Description Return the provider authorization URL to redirect the browser to
// @Tags auth
// @Produce  json
// @Param   provider  path   string  true  "OAuth provider"
// @Success 200 {object} utils.Response{data=auth.OAuthRedirectResponse}
// @Failure 500 {object} utils.Response
// @Router /auth/oauth/{provider} [get]
func OAuthRedirect(c *gin.Context) {
	cfg, err := config.LoadConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load configuration"))
		return
	}

	redirectURL, err := services.OAuthRedirectURL(c.Param("provider"), cfg.OAuthAuthorizeURL, cfg.OAuthClientID, cfg.OAuthRedirectURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Redirect URL generated", OAuthRedirectResponse{URL: redirectURL}))
}
