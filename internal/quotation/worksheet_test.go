package quotation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(price string, qty int, gst string) LineItem {
	return LineItem{
		Quantity:   qty,
		UnitPrice:  dec(price),
		GSTPercent: dec(gst),
	}
}

func TestWorksheetTotals(t *testing.T) {
	tests := []struct {
		name             string
		ws               Worksheet
		wantSubtotal     string
		wantProductTax   string
		wantPackagingTax string
		wantTotalTax     string
		wantGrandTotal   string
	}{
		{
			name: "single item with packaging and discount",
			ws: Worksheet{
				Items:     []LineItem{line("1500", 2, "18")},
				Packaging: dec("100"),
				Discount:  dec("50"),
			},
			wantSubtotal:     "3000",
			wantProductTax:   "540",
			wantPackagingTax: "18",
			wantTotalTax:     "558",
			wantGrandTotal:   "3608",
		},
		{
			name: "mixed GST rates without packaging or discount",
			ws: Worksheet{
				Items: []LineItem{line("500", 3, "12"), line("200", 1, "5")},
			},
			wantSubtotal:     "1700",
			wantProductTax:   "190",
			wantPackagingTax: "0",
			wantTotalTax:     "190",
			wantGrandTotal:   "1890",
		},
		{
			name:             "empty worksheet",
			ws:               Worksheet{},
			wantSubtotal:     "0",
			wantProductTax:   "0",
			wantPackagingTax: "0",
			wantTotalTax:     "0",
			wantGrandTotal:   "0",
		},
		{
			name: "zero-rated GST item",
			ws: Worksheet{
				Items: []LineItem{line("1000", 1, "0")},
			},
			wantSubtotal:     "1000",
			wantProductTax:   "0",
			wantPackagingTax: "0",
			wantTotalTax:     "0",
			wantGrandTotal:   "1000",
		},
		{
			name: "discount larger than total goes negative",
			ws: Worksheet{
				Items:    []LineItem{line("100", 1, "0")},
				Discount: dec("150"),
			},
			wantSubtotal:   "100",
			wantProductTax: "0",
			wantTotalTax:   "0",
			wantGrandTotal: "-50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ws.Totals()

			checks := []struct {
				field string
				got   decimal.Decimal
				want  string
			}{
				{"subtotal", got.Subtotal, tt.wantSubtotal},
				{"product tax", got.ProductTax, tt.wantProductTax},
				{"total tax", got.TotalTax, tt.wantTotalTax},
				{"grand total", got.GrandTotal, tt.wantGrandTotal},
			}
			if tt.wantPackagingTax != "" {
				checks = append(checks, struct {
					field string
					got   decimal.Decimal
					want  string
				}{"packaging tax", got.PackagingTax, tt.wantPackagingTax})
			}
			for _, c := range checks {
				if !c.got.Equal(dec(c.want)) {
					t.Errorf("%s = %s, want %s", c.field, c.got, c.want)
				}
			}
		})
	}
}

// Totals must not depend on the order fields were filled in: building the
// same worksheet by different edit sequences yields identical results.
func TestWorksheetTotalsEditOrderIndependent(t *testing.T) {
	itemsFirst := Worksheet{}
	itemsFirst.Items = []LineItem{line("1500", 2, "18")}
	itemsFirst.Packaging = dec("100")
	itemsFirst.Discount = dec("50")

	chargesFirst := Worksheet{}
	chargesFirst.Discount = dec("50")
	chargesFirst.Packaging = dec("100")
	chargesFirst.Items = []LineItem{line("1500", 2, "18")}

	a, b := itemsFirst.Totals(), chargesFirst.Totals()
	if !a.GrandTotal.Equal(b.GrandTotal) || !a.TotalTax.Equal(b.TotalTax) {
		t.Errorf("totals diverge across edit orders: %+v vs %+v", a, b)
	}
}

// The packaging surcharge is always taxed at the fixed 18% rate, regardless
// of what GST rates the item lines carry.
func TestPackagingTaxIndependentOfItemRates(t *testing.T) {
	for _, gst := range []string{"0", "5", "12", "28"} {
		ws := Worksheet{
			Items:     []LineItem{line("1000", 1, gst)},
			Packaging: dec("200"),
		}
		if got := ws.Totals().PackagingTax; !got.Equal(dec("36")) {
			t.Errorf("gst %s%%: packaging tax = %s, want 36", gst, got)
		}
	}
}

func TestDefaultUnitPrice(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"end wins when positive", "400", "600", "600"},
		{"start used when end is zero", "400", "0", "400"},
		{"zero when both unset", "0", "0", "0"},
		{"end only", "0", "250", "250"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultUnitPrice(dec(tt.start), dec(tt.end))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("DefaultUnitPrice(%s, %s) = %s, want %s", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestUseDealerPriceToggle(t *testing.T) {
	li := LineItem{
		Quantity:     1,
		UnitPrice:    dec("600"),
		DealerPrice:  dec("450"),
		DefaultPrice: dec("600"),
		Tier:         TierSelling,
	}

	li.UseDealerPrice(true)
	if li.Tier != TierDealer || !li.UnitPrice.Equal(dec("450")) {
		t.Fatalf("after toggle on: tier=%s price=%s, want dealer/450", li.Tier, li.UnitPrice)
	}

	// An edit made while the dealer tier is active must not leak into the
	// restored price.
	li.UnitPrice = dec("425")

	li.UseDealerPrice(false)
	if li.Tier != TierSelling || !li.UnitPrice.Equal(dec("600")) {
		t.Fatalf("after toggle off: tier=%s price=%s, want selling/600", li.Tier, li.UnitPrice)
	}
}

func TestWorksheetValidate(t *testing.T) {
	tests := []struct {
		name      string
		ws        Worksheet
		wantIndex int
		wantOK    bool
	}{
		{
			name:   "all lines priced",
			ws:     Worksheet{Items: []LineItem{line("100", 1, "18"), line("55.50", 2, "12")}},
			wantOK: true,
		},
		{
			name:      "zero price rejected",
			ws:        Worksheet{Items: []LineItem{line("100", 1, "18"), line("0", 1, "18")}},
			wantIndex: 1,
		},
		{
			name:      "negative price rejected",
			ws:        Worksheet{Items: []LineItem{line("-5", 1, "18")}},
			wantIndex: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ws.Validate()
			if tt.wantOK {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var fieldErr FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("Validate() = %v, want FieldError", err)
			}
			if fieldErr.Index != tt.wantIndex || fieldErr.Field != "unit_price" {
				t.Errorf("FieldError = %+v, want index %d on unit_price", fieldErr, tt.wantIndex)
			}
		})
	}
}
