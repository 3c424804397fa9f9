package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a message attached to a listing. Comments are
// append-only; there is no edit or delete operation. UserNickname and
// UserAvatar are snapshots of the author's profile at posting time.
type Comment struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	UserID       uuid.UUID `json:"user_id"`
	UserNickname string    `json:"user_nickname"`
	UserAvatar   string    `json:"user_avatar,omitempty"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}
