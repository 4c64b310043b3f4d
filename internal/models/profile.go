package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is one row per authenticated principal. Created lazily on the
// first sign-in when the session subject has no row yet.
type Profile struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `json:"name"`
	AvatarURL string    `gorm:"column:avatar_url" json:"avatar_url"`
	Bio       string    `json:"bio"`
	Website   string    `json:"website"`
	Role      string    `gorm:"not null;default:'user'" json:"role"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
