package quotation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceTier identifies which of a product's price tiers a line is quoted at.
type PriceTier string

const (
	TierSelling PriceTier = "selling"
	TierDealer  PriceTier = "dealer"
)

// DefaultGSTPercent is attached to every fresh worksheet line.
var DefaultGSTPercent = decimal.NewFromInt(18)

// PackagingGSTRate is the fixed rate applied to the packaging surcharge,
// independent of the per-item GST rates.
var PackagingGSTRate = decimal.RequireFromString("0.18")

var hundred = decimal.NewFromInt(100)

// LineItem is one product line on a pricing worksheet.
type LineItem struct {
	ProductID    string
	Name         string
	Quantity     int
	UnitPrice    decimal.Decimal
	GSTPercent   decimal.Decimal
	Tier         PriceTier
	DealerPrice  decimal.Decimal
	DefaultPrice decimal.Decimal // computed selling default, restored when the dealer toggle is cleared
}

// DefaultUnitPrice picks the initial unit price for a line: the upper selling
// bound when positive, else the lower bound, else zero.
func DefaultUnitPrice(start, end decimal.Decimal) decimal.Decimal {
	if end.IsPositive() {
		return end
	}
	if start.IsPositive() {
		return start
	}
	return decimal.Zero
}

// UseDealerPrice switches the line between the dealer tier and the computed
// selling default. Turning the toggle off always restores DefaultPrice, not
// whatever price was active before.
func (li *LineItem) UseDealerPrice(on bool) {
	if on {
		li.Tier = TierDealer
		li.UnitPrice = li.DealerPrice
		return
	}
	li.Tier = TierSelling
	li.UnitPrice = li.DefaultPrice
}

// Subtotal is unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Tax is the line subtotal times the line's GST rate.
func (li LineItem) Tax() decimal.Decimal {
	return li.Subtotal().Mul(li.GSTPercent).Div(hundred)
}

// Worksheet is the mutable pricing sheet an admin composes before submitting
// a quotation. It is ephemeral: only the derived snapshot is persisted.
type Worksheet struct {
	Items     []LineItem
	Packaging decimal.Decimal
	Discount  decimal.Decimal
}

// Totals is the derived totals record. It is recomputed from the worksheet
// inputs on every read, never stored independently of them.
type Totals struct {
	Subtotal     decimal.Decimal
	ProductTax   decimal.Decimal
	PackagingTax decimal.Decimal
	TotalTax     decimal.Decimal
	GrandTotal   decimal.Decimal
}

// Totals computes the full totals record:
//
//	subtotal     = Σ price×qty
//	productTax   = Σ price×qty×gst/100
//	packagingTax = packaging × 0.18
//	grandTotal   = subtotal + packaging + productTax + packagingTax − discount
func (w Worksheet) Totals() Totals {
	subtotal := decimal.Zero
	productTax := decimal.Zero
	for _, li := range w.Items {
		subtotal = subtotal.Add(li.Subtotal())
		productTax = productTax.Add(li.Tax())
	}

	packagingTax := w.Packaging.Mul(PackagingGSTRate)
	totalTax := productTax.Add(packagingTax)

	return Totals{
		Subtotal:     subtotal,
		ProductTax:   productTax,
		PackagingTax: packagingTax,
		TotalTax:     totalTax,
		GrandTotal:   subtotal.Add(w.Packaging).Add(totalTax).Sub(w.Discount),
	}
}

// FieldError pins a validation failure to a specific line and field so the
// client can highlight the offending input.
type FieldError struct {
	Index   int
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("item %d: %s: %s", e.Index+1, e.Field, e.Message)
}

// Validate is the pre-flight check before submission: every line must carry a
// positive unit price. Quantities and GST rates are only guarded against
// negatives at entry time and are not re-checked here.
func (w Worksheet) Validate() error {
	for i, li := range w.Items {
		if !li.UnitPrice.IsPositive() {
			return FieldError{Index: i, Field: "unit_price", Message: "a valid unit price is required"}
		}
	}
	return nil
}
