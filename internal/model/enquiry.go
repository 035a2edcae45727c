package model

import (
	"time"

	"github.com/google/uuid"
)

// EnquiryStatus enum constants
const (
	EnquiryPending   = "Pending"
	EnquiryProcessed = "Processed"
	EnquiryRejected  = "Rejected"
)

// Enquiry is an incoming customer request for products, captured from the
// public cart flow. Party details are stored denormalized so a quotation can
// be issued even for guests.
type Enquiry struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string        `gorm:"type:varchar(255);not null" json:"name"`
	Email     string        `gorm:"type:varchar(255)" json:"email"`
	Phone     string        `gorm:"type:varchar(50)" json:"phone"`
	Message   string        `gorm:"type:text" json:"message"`
	Type      string        `gorm:"type:varchar(30);default:'enquiry'" json:"type"`
	Status    string        `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	IsSeen    bool          `gorm:"default:false" json:"is_seen"`
	Products  []EnquiryItem `gorm:"foreignKey:EnquiryID;constraint:OnDelete:CASCADE" json:"products"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// EnquiryItem is one requested product line on an enquiry.
type EnquiryItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EnquiryID uuid.UUID `gorm:"type:uuid;not null;index" json:"enquiry_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"type:int;not null" json:"quantity"`
}
