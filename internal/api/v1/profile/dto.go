package profile

import "time"

// ProfileResponse is the public view of a profile row.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	Bio       string    `json:"bio"`
	Website   string    `json:"website"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateProfileInput carries the editable fields. Absent fields are left
// untouched.
type UpdateProfileInput struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
	Website   *string `json:"website"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}
