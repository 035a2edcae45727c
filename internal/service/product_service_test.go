package service

import (
	"testing"

	"labquote/internal/model"

	"github.com/shopspring/decimal"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"empty means zero", "", "0", false},
		{"plain integer", "4500", "4500", false},
		{"decimal string", "4500.50", "4500.50", false},
		{"negative rejected", "-10", "", true},
		{"garbage rejected", "abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePrice(tt.in, "price")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parsePrice(%q) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePrice(%q) failed: %v", tt.in, err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("parsePrice(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestProductResponseTradePriceRedaction(t *testing.T) {
	product := model.Product{
		Name:              "Digital pH Meter",
		SellingPriceStart: decimal.RequireFromString("4500"),
		SellingPriceEnd:   decimal.RequireFromString("6500"),
		DealerPrice:       decimal.RequireFromString("4000"),
		PurchasePrice:     decimal.RequireFromString("3200"),
	}

	public := toProductResponse(product, false)
	if public.DealerPrice != "" || public.PurchasePrice != "" {
		t.Errorf("trade prices leaked to public view: dealer=%q purchase=%q",
			public.DealerPrice, public.PurchasePrice)
	}
	if public.SellingPriceEnd != "6500.00" {
		t.Errorf("selling price missing from public view: %q", public.SellingPriceEnd)
	}

	trade := toProductResponse(product, true)
	if trade.DealerPrice != "4000.00" || trade.PurchasePrice != "3200.00" {
		t.Errorf("trade view prices = dealer %q purchase %q, want 4000.00/3200.00",
			trade.DealerPrice, trade.PurchasePrice)
	}
}
