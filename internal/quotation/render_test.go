package quotation

import (
	"strings"
	"testing"
	"time"

	"labquote/internal/model"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"100", "100"},
		{"1000", "1,000"},
		{"38000", "38,000"},
		{"1234567", "1,234,567"},
		{"1234567.89", "1,234,567.89"},
		{"999.999", "1,000"}, // rounds to two decimals first
		{"1500.5", "1,500.5"},
		{"-1234", "-1,234"},
	}

	for _, tt := range tests {
		if got := FormatAmount(dec(tt.in)); got != tt.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlaceholderRef(t *testing.T) {
	at := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if got := PlaceholderRef(at); got != "XXXXXX-2024" {
		t.Errorf("PlaceholderRef = %q, want XXXXXX-2024", got)
	}
}

func testDocument() Document {
	items := []LineItem{line("1500", 2, "18")}
	ws := Worksheet{Items: items, Packaging: dec("100"), Discount: dec("50")}
	return Document{
		RefNo:        "QTN-20240315-00007",
		Date:         time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		PartyName:    "Mehta & Sons",
		PartyAddress: "Ahmedabad",
		PartyMobile:  "+91 9000000000",
		Items: []DocumentItem{{
			Name:       "Digital pH Meter",
			Specs:      model.SpecList{{Key: "Range", Value: "0 to 14 pH"}},
			Quantity:   2,
			GSTPercent: dec("18"),
			UnitPrice:  dec("1500"),
		}},
		Totals:    ws.Totals(),
		Packaging: dec("100"),
		Discount:  dec("50"),
		Notes:     DefaultNotes,
		Policies:  DefaultPolicies(),
	}
}

func TestRenderHTMLStructure(t *testing.T) {
	out := RenderHTML(testDocument())

	for _, marker := range []string{
		"II Shree Ganesh II",
		"UNIQUE LAB INSTRUMENT",
		"PAN NO. AAGFU8457M",
		"GST NO. 24AAGFU8457M1ZI",
		"Ref No:- QTN-20240315-00007",
		"Date :- 15/03/2024",
		"M/s. Mehta &amp; Sons", // party name is escaped
		"Digital pH Meter",
		"Range :- 0 to 14 pH",
		"SUB TOTAL",
		">3,000.00<",
		"Packaging &amp; Forwarding (18% GST Extra)",
		">100.00<",
		"Total GST",
		">558.00<",
		"Discount",
		">- 50.00<",
		">3,608.00<",
		"(1) Payment After Performer Invoice",
		"TERMS &amp; CONDITIONS",
		"Induslnd Bank",
		"Scan &amp; Pay",
		"For. UNIQUE LAB INSTRUMENT",
	} {
		if !strings.Contains(out, marker) {
			t.Errorf("rendered document missing %q", marker)
		}
	}
}

func TestRenderHTMLConditionalRows(t *testing.T) {
	doc := testDocument()
	doc.Packaging = dec("0")
	doc.Discount = dec("0")
	ws := Worksheet{Items: []LineItem{line("1500", 2, "18")}}
	doc.Totals = ws.Totals()

	out := RenderHTML(doc)
	if strings.Contains(out, "Packaging &amp; Forwarding") {
		t.Error("packaging row rendered with zero packaging")
	}
	if strings.Contains(out, ">Discount<") {
		t.Error("discount row rendered with zero discount")
	}
}

func TestRenderHTMLPlaceholderWhenRefMissing(t *testing.T) {
	doc := testDocument()
	doc.RefNo = ""

	out := RenderHTML(doc)
	if !strings.Contains(out, "Ref No:- XXXXXX-2024") {
		t.Error("expected placeholder reference for empty RefNo")
	}
}

func TestRenderHTMLNotesWrapping(t *testing.T) {
	doc := testDocument()
	doc.Notes = "First line\nSecond line"

	out := RenderHTML(doc)
	if !strings.Contains(out, "(First line) (Second line)") {
		t.Error("note lines not individually parenthesized")
	}
}

func TestRenderHTMLSkipsDisabledPolicies(t *testing.T) {
	doc := testDocument()
	doc.Policies = []Policy{
		{Code: "delivery", Label: "Delivery", Text: "Ready Stock", Enabled: true},
		{Code: "validity", Label: "Validity", Text: "10 Days", Enabled: false},
	}

	out := RenderHTML(doc)
	if !strings.Contains(out, "Ready Stock") {
		t.Error("enabled policy missing from document")
	}
	if strings.Contains(out, "10 Days") {
		t.Error("disabled policy rendered")
	}
}
