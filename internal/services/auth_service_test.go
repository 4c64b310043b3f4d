package services

import (
	"testing"

	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRegisterUserFirstAccountIsAdmin(t *testing.T) {
	setupTestDB()
	t.Setenv("JWT_SECRET", "test_secret")

	first, err := RegisterUser(RegisterInput{Email: "first@example.com", Password: "password123", Name: "First"})
	assert.NoError(t, err)
	assert.Equal(t, "admin", first.Role)

	second, err := RegisterUser(RegisterInput{Email: "second@example.com", Password: "password123"})
	assert.NoError(t, err)
	assert.Equal(t, "user", second.Role)

	_, err = RegisterUser(RegisterInput{Email: "first@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginUser(t *testing.T) {
	setupTestDB()
	t.Setenv("JWT_SECRET", "test_secret")

	_, err := RegisterUser(RegisterInput{Email: "user@example.com", Password: "password123"})
	assert.NoError(t, err)

	token, profile, err := LoginUser("user@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user@example.com", profile.Email)

	_, _, err = LoginUser("user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = LoginUser("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterAndLoginPublishSessionEvents(t *testing.T) {
	setupTestDB()
	t.Setenv("JWT_SECRET", "test_secret")
	ResetSessionListeners()
	t.Cleanup(ResetSessionListeners)

	var events []SessionEvent
	SubscribeSessionEvents(func(ev SessionEvent) {
		events = append(events, ev)
	})

	profile, err := RegisterUser(RegisterInput{Email: "user@example.com", Password: "password123"})
	assert.NoError(t, err)

	_, _, err = LoginUser("user@example.com", "password123")
	assert.NoError(t, err)

	LogoutUser(profile.ID)

	assert.Len(t, events, 3)
	assert.Equal(t, SessionSignedIn, events[0].Type)
	assert.Equal(t, SessionSignedIn, events[1].Type)
	assert.Equal(t, SessionSignedOut, events[2].Type)
	assert.Equal(t, profile.ID, events[2].UserID)
}

func TestEnsureProfileCreatesOnFirstSight(t *testing.T) {
	setupTestDB()

	created, err := EnsureProfile("33333333-3333-3333-3333-333333333333", "oauth@example.com", "OAuth User", "")
	assert.NoError(t, err)
	assert.Equal(t, "33333333-3333-3333-3333-333333333333", created.ID)

	var count int64
	database.DB.Model(&models.Profile{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// A second resolve returns the same row without creating another.
	again, err := EnsureProfile("33333333-3333-3333-3333-333333333333", "other@example.com", "", "")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "oauth@example.com", again.Email)

	database.DB.Model(&models.Profile{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestOAuthRedirectURL(t *testing.T) {
	url, err := OAuthRedirectURL("google", "https://accounts.example.com/authorize", "client-1", "https://app.example.com/callback")
	assert.NoError(t, err)
	assert.Contains(t, url, "https://accounts.example.com/authorize?")
	assert.Contains(t, url, "client_id=client-1")
	assert.Contains(t, url, "response_type=code")

	_, err = OAuthRedirectURL("google", "", "", "")
	assert.Error(t, err)
}
