package model

import (
	"time"

	"github.com/google/uuid"
)

// Policy is one terms-and-conditions line printed on quotations. Each admin
// keeps an own list: the built-in defaults are seeded on first read and
// custom lines are appended after them.
type Policy struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Code      string    `gorm:"type:varchar(50);not null" json:"code"` // stable slug, "custom_*" for user lines
	Label     string    `gorm:"type:varchar(100);not null" json:"label"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Enabled   bool      `gorm:"default:true" json:"enabled"`
	Position  int       `gorm:"type:int;not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
