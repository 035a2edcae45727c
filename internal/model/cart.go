package model

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line in an anonymous, session-scoped shopping cart. Carts
// are keyed by a client-generated session ID so guests can build an enquiry
// before registering.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SessionID string    `gorm:"type:varchar(64);not null;index:idx_cart_session" json:"session_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"type:int;not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
