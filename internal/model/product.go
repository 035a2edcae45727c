package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog item carrying three price tiers. The selling range is
// public; dealer and purchase prices are trade prices, redacted from API
// responses unless the session holds CapTradePrices.
type Product struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name              string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Description       string          `gorm:"type:text" json:"description"`
	PDF               string          `gorm:"type:text" json:"pdf"` // datasheet link
	Vendor            string          `gorm:"type:varchar(255)" json:"vendor"`
	Images            StringList      `gorm:"type:jsonb" json:"images"`
	AlternativeNames  StringList      `gorm:"type:jsonb" json:"alternative_names"`
	Details           SpecList        `gorm:"type:jsonb" json:"details"`
	SellingPriceStart decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"selling_price_start"`
	SellingPriceEnd   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"selling_price_end"`
	DealerPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"dealer_price"`
	PurchasePrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"purchase_price"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}

// MainImage returns the first image URL, or empty when none is set.
func (p Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
