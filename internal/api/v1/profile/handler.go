package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiwi13nz/AgentFlow/config"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/internal/services"
	"github.com/kiwi13nz/AgentFlow/internal/utils"
)

func toProfileResponse(p *models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		AvatarURL: p.AvatarURL,
		Bio:       p.Bio,
		Website:   p.Website,
		Role:      p.Role,
		CreatedAt: p.CreatedAt,
	}
}

// GetProfile godoc
// @Summary Get own profile
// @Tags profile
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response{data=profile.ProfileResponse}
// @Failure 401 {object} utils.Response
// @Router /profile [get]
func GetProfile(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	p := user.(models.Profile)
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Profile retrieved successfully", toProfileResponse(&p)))
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Apply a partial update to the signed-in profile
// @Tags profile
// @Accept  json
// @Produce  json
// @Security Bearer
// @Param   input     body   UpdateProfileInput  true  "Profile fields"
// @Success 200 {object} utils.Response{data=profile.ProfileResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /profile [put]
func UpdateProfile(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	p := user.(models.Profile)

	var input UpdateProfileInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	updated, err := services.UpdateProfile(p.ID, services.ProfileUpdate{
		Name:      input.Name,
		AvatarURL: input.AvatarURL,
		Bio:       input.Bio,
		Website:   input.Website,
	})
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update profile"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Profile updated successfully", toProfileResponse(updated)))
}

// UploadAvatar godoc
// @Summary Upload an avatar image
// @Description Store the uploaded file in object storage and set it as the profile avatar
// @Tags profile
// @Accept  multipart/form-data
// @Produce  json
// @Security Bearer
// @Param   file  formData  file  true  "Avatar image"
// @Success 200 {object} utils.Response{data=profile.AvatarResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /profile/avatar [post]
func UploadAvatar(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	p := user.(models.Profile)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Avatar file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to read uploaded file"))
		return
	}
	defer file.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load configuration"))
		return
	}

	uploader := services.NewOSSAvatarUploader(cfg)
	avatarURL, err := uploader.UploadAvatar(p.ID, fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, services.ErrStorageNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, utils.NewErrorResponse(http.StatusServiceUnavailable, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to upload avatar"))
		return
	}

	if _, err := services.UpdateProfile(p.ID, services.ProfileUpdate{AvatarURL: &avatarURL}); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to save avatar URL"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Avatar uploaded successfully", AvatarResponse{AvatarURL: avatarURL}))
}
