package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

const profileCacheDuration = time.Hour

func profileCacheKey(userID string) string {
	return "profile:" + userID
}

// FindProfileByID retrieves a profile, using the redis cache when available.
func FindProfileByID(userID string) (models.Profile, error) {
	cacheKey := profileCacheKey(userID)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var profile models.Profile
			if err := json.Unmarshal([]byte(val), &profile); err == nil {
				return profile, nil
			}
		}
	}

	var profile models.Profile
	if err := database.DB.First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return profile, ErrProfileNotFound
		}
		return profile, err
	}

	if database.RedisClient != nil {
		if data, err := json.Marshal(profile); err == nil {
			database.RedisClient.Set(database.Ctx, cacheKey, data, profileCacheDuration)
		}
	}

	return profile, nil
}

// ProfileUpdate carries the editable profile fields. Nil pointers are left
// untouched.
type ProfileUpdate struct {
	Name      *string
	AvatarURL *string
	Bio       *string
	Website   *string
}

// UpdateProfile applies a partial update and invalidates the cache.
func UpdateProfile(userID string, update ProfileUpdate) (*models.Profile, error) {
	var profile models.Profile
	if err := database.DB.First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.AvatarURL != nil {
		updates["avatar_url"] = *update.AvatarURL
	}
	if update.Bio != nil {
		updates["bio"] = *update.Bio
	}
	if update.Website != nil {
		updates["website"] = *update.Website
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&profile).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if database.RedisClient != nil {
		database.RedisClient.Del(database.Ctx, profileCacheKey(userID))
	}

	if err := database.DB.First(&profile, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("reload updated profile: %w", err)
	}

	return &profile, nil
}
