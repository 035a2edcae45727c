package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationStatus enum constants. Sent is the only non-terminal state.
const (
	QuotationSent   = "Sent"
	QuotationDone   = "Done"
	QuotationReject = "Reject"
)

// ValidQuotationTransition reports whether a quotation may move from one
// status to another. Done and Reject are terminal.
func ValidQuotationTransition(from, to string) error {
	if from != QuotationSent {
		return fmt.Errorf("quotation is already %s", from)
	}
	if to != QuotationDone && to != QuotationReject {
		return fmt.Errorf("invalid target status %q", to)
	}
	return nil
}

// Quotation is a priced offer responding to an enquiry. Monetary columns are
// a snapshot of the worksheet at creation time; the grand total is always a
// derived value, recomputed by the pricing engine before being written.
type Quotation struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RefNo        string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"ref_no"`
	EnquiryID    *uuid.UUID      `gorm:"type:uuid;index" json:"enquiry_id"`
	Enquiry      *Enquiry        `gorm:"foreignKey:EnquiryID" json:"enquiry,omitempty"`
	Status       string          `gorm:"type:varchar(20);not null;default:'Sent';index" json:"status"`
	PartyName    string          `gorm:"type:varchar(255)" json:"party_name"`
	PartyAddress string          `gorm:"type:text" json:"party_address"`
	PartyMobile  string          `gorm:"type:varchar(50)" json:"party_mobile"`
	PartyEmail   string          `gorm:"type:varchar(255)" json:"party_email"`
	Items        []QuotationItem `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"subtotal"`
	ProductTax   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"product_tax"`
	Packaging    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"packaging"`
	PackagingTax decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"packaging_tax"`
	Discount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"discount"`
	GrandTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"grand_total"`
	HTMLContent  string          `gorm:"type:text" json:"html_content"`
	Notes        string          `gorm:"type:text" json:"notes"`
	CreatedBy    *uuid.UUID      `gorm:"type:uuid" json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// QuotationItem is one priced line on a quotation.
type QuotationItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuotationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"quotation_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product     Product         `gorm:"foreignKey:ProductID" json:"product"`
	Position    int             `gorm:"type:int;not null;default:0" json:"position"` // worksheet row order
	Quantity    int             `gorm:"type:int;not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	GSTPercent  decimal.Decimal `gorm:"type:decimal(10,4);not null;default:18" json:"gst_percent"`
	PriceTier   string          `gorm:"type:varchar(20);not null;default:'selling'" json:"price_tier"` // selling, dealer
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`                     // unit_price * quantity
}
