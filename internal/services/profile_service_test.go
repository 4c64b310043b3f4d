package services

import (
	"testing"

	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/stretchr/testify/assert"
)

func TestFindProfileByIDCaches(t *testing.T) {
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	p := seedProfile("user@example.com")

	found, err := FindProfileByID(p.ID)
	assert.NoError(t, err)
	assert.Equal(t, p.Email, found.Email)

	// A direct DB write is masked by the cache.
	database.DB.Model(p).Update("name", "Changed Behind Cache")
	cached, err := FindProfileByID(p.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Test User", cached.Name)
}

func TestFindProfileByIDNotFound(t *testing.T) {
	setupTestDB()

	_, err := FindProfileByID("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUpdateProfileInvalidatesCache(t *testing.T) {
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	p := seedProfile("user@example.com")

	// Warm the cache.
	_, err := FindProfileByID(p.ID)
	assert.NoError(t, err)

	name := "New Name"
	bio := "writes agents"
	updated, err := UpdateProfile(p.ID, ProfileUpdate{Name: &name, Bio: &bio})
	assert.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "writes agents", updated.Bio)
	// Untouched fields survive a partial update.
	assert.Equal(t, p.Email, updated.Email)

	fresh, err := FindProfileByID(p.ID)
	assert.NoError(t, err)
	assert.Equal(t, "New Name", fresh.Name)
}

func TestUpdateProfileNotFound(t *testing.T) {
	setupTestDB()

	name := "x"
	_, err := UpdateProfile("00000000-0000-0000-0000-000000000000", ProfileUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
