package domain

import (
	"time"

	"github.com/google/uuid"
)

// SocialLinks holds a user's optional contact channels shown on their
// seller page.
type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Line      string `json:"line,omitempty"`
}

// User represents a registered account
type User struct {
	ID          uuid.UUID    `json:"id"`
	Email       string       `json:"email"`
	Nickname    string       `json:"nickname"`
	AvatarURL   string       `json:"avatar_url,omitempty"`
	SocialLinks *SocialLinks `json:"social_links,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
