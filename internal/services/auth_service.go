package services

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUserAlreadyExists = errors.New("user with this email already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// RegisterInput carries sign-up credentials plus optional profile metadata.
type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	AvatarURL string
}

// RegisterUser creates a profile with a password. The first account becomes
// the reference-data administrator.
func RegisterUser(input RegisterInput) (*models.Profile, error) {
	var existing models.Profile
	result := database.DB.Where("email = ?", input.Email).First(&existing)
	if result.Error == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var userCount int64
	database.DB.Model(&models.Profile{}).Count(&userCount)

	role := "user"
	if userCount == 0 {
		role = "admin"
	}

	profile := &models.Profile{
		Email:     input.Email,
		Password:  string(hashedPassword),
		Name:      input.Name,
		AvatarURL: input.AvatarURL,
		Role:      role,
	}

	if err := database.DB.Create(profile).Error; err != nil {
		return nil, err
	}

	publishSessionEvent(SessionEvent{Type: SessionSignedIn, UserID: profile.ID})

	return profile, nil
}

// LoginUser verifies the password and issues a session token.
func LoginUser(email, password string) (string, *models.Profile, error) {
	var profile models.Profile
	if err := database.DB.Where("email = ?", email).First(&profile).Error; err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(profile.ID, profile.Role)
	if err != nil {
		return "", nil, err
	}

	publishSessionEvent(SessionEvent{Type: SessionSignedIn, UserID: profile.ID})

	return token, &profile, nil
}

// LogoutUser ends the session and notifies subscribers so user-scoped
// collections get cleared.
func LogoutUser(userID string) {
	publishSessionEvent(SessionEvent{Type: SessionSignedOut, UserID: userID})
}

// EnsureProfile loads the profile for a session subject, creating it on
// first sight when absent (lazy profile creation keyed by subject id).
func EnsureProfile(subjectID, email, name, avatarURL string) (*models.Profile, error) {
	var profile models.Profile
	err := database.DB.First(&profile, "id = ?", subjectID).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = models.Profile{
		ID:        subjectID,
		Email:     email,
		Name:      name,
		AvatarURL: avatarURL,
	}
	if err := database.DB.Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// OAuthRedirectURL builds the authorization redirect for third-party
// sign-in. Only the redirect leg lives here; the provider calls back into
// the SPA which exchanges on its side.
func OAuthRedirectURL(provider, authorizeURL, clientID, redirectTo string) (string, error) {
	if provider == "" || authorizeURL == "" || clientID == "" {
		return "", fmt.Errorf("oauth provider %q is not configured", provider)
	}

	q := url.Values{}
	q.Set("client_id", clientID)
	q.Set("redirect_uri", redirectTo)
	q.Set("response_type", "code")

	return authorizeURL + "?" + q.Encode(), nil
}
