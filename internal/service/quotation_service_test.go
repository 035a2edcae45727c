package service

import (
	"strings"
	"testing"
	"time"

	"labquote/internal/model"
	"labquote/internal/quotation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func quotationWithShuffledItems() model.Quotation {
	item := func(pos int, name, price string, qty int) model.QuotationItem {
		rate := decimal.RequireFromString(price)
		return model.QuotationItem{
			ID:         uuid.New(),
			ProductID:  uuid.New(),
			Product:    model.Product{Name: name},
			Position:   pos,
			Quantity:   qty,
			UnitPrice:  rate,
			GSTPercent: decimal.NewFromInt(18),
			PriceTier:  "selling",
			Amount:     rate.Mul(decimal.NewFromInt(int64(qty))),
		}
	}
	// Slice order deliberately disagrees with the worksheet positions, the
	// way an unordered relation fetch can come back.
	return model.Quotation{
		ID:        uuid.New(),
		RefNo:     "QTN-20250110-00042",
		Status:    model.QuotationDone,
		PartyName: "Mehta & Sons",
		Items: []model.QuotationItem{
			item(2, "Laminar Air Flow", "52000", 1),
			item(0, "Digital pH Meter", "4500", 2),
			item(1, "Magnetic Stirrer", "7800", 1),
		},
		Subtotal:   decimal.RequireFromString("68800"),
		GrandTotal: decimal.RequireFromString("81184"),
		CreatedAt:  time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildTallyVoucherItemOrder(t *testing.T) {
	q := quotationWithShuffledItems()
	voucher := buildTallyVoucher(q)

	want := []string{"Digital pH Meter", "Magnetic Stirrer", "Laminar Air Flow"}
	if len(voucher.Items) != len(want) {
		t.Fatalf("voucher has %d items, want %d", len(voucher.Items), len(want))
	}
	for i, name := range want {
		if voucher.Items[i].ProductName != name {
			t.Errorf("voucher item %d = %q, want %q", i, voucher.Items[i].ProductName, name)
		}
	}

	// The inventory entries in the rendered XML must follow the same order.
	xml := quotation.RenderTallyXML(voucher)
	last := -1
	for _, name := range want {
		idx := strings.Index(xml, name)
		if idx < 0 {
			t.Fatalf("rendered voucher missing item %q", name)
		}
		if idx < last {
			t.Errorf("item %q appears out of worksheet order in voucher XML", name)
		}
		last = idx
	}
}

func TestQuotationResponseItemOrder(t *testing.T) {
	q := quotationWithShuffledItems()
	resp := toQuotationResponse(q)

	want := []string{"Digital pH Meter", "Magnetic Stirrer", "Laminar Air Flow"}
	if len(resp.Items) != len(want) {
		t.Fatalf("response has %d items, want %d", len(resp.Items), len(want))
	}
	for i, name := range want {
		if resp.Items[i].ProductName != name {
			t.Errorf("response item %d = %q, want %q", i, resp.Items[i].ProductName, name)
		}
	}
}

func TestOrderedQuotationItemsStableForLegacyRows(t *testing.T) {
	// Rows written before positions were recorded all carry zero; the sort
	// must keep their stored order rather than reshuffling them.
	items := []model.QuotationItem{
		{Product: model.Product{Name: "Hot Air Oven"}},
		{Product: model.Product{Name: "Autoclave"}},
		{Product: model.Product{Name: "Centrifuge"}},
	}
	ordered := orderedQuotationItems(items)
	for i, item := range items {
		if ordered[i].Product.Name != item.Product.Name {
			t.Errorf("legacy item %d reordered to %q, want %q", i, ordered[i].Product.Name, item.Product.Name)
		}
	}
}
