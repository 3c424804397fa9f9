package domain

import (
	"time"

	"github.com/google/uuid"
)

// Condition is the wear tier of a second-hand item.
type Condition string

const (
	ConditionNew     Condition = "NEW"
	ConditionLikeNew Condition = "LIKE_NEW"
	ConditionGood    Condition = "GOOD"
	ConditionFair    Condition = "FAIR"
)

// Valid reports whether c is one of the four known tiers.
func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair:
		return true
	}
	return false
}

// Status is the lifecycle state of a listing. Only ACTIVE listings are
// publicly visible.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusSold    Status = "SOLD"
	StatusDeleted Status = "DELETED"
)

// Product represents a listing in the marketplace. SellerNickname and
// SellerAvatar are a point-in-time snapshot of the seller's profile taken
// at creation; later profile edits do not update them.
type Product struct {
	ID             uuid.UUID `json:"id"`
	SellerID       uuid.UUID `json:"seller_id"`
	SellerNickname string    `json:"seller_nickname"`
	SellerAvatar   string    `json:"seller_avatar,omitempty"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Price          int       `json:"price"`
	Category       string    `json:"category"`
	Images         []string  `json:"images"`
	Condition      Condition `json:"condition"`
	PriceNote      string    `json:"price_note,omitempty"`
	Tags           []string  `json:"tags"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
