package quotation

import (
	"strings"
	"testing"
	"time"
)

func TestVoucherNumber(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"a1b2c3d4-e5f6-7890-abcd-ef1234567890", "567890"},
		{"abc123", "ABC123"},
		{"xyz", "XYZ"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := VoucherNumber(tt.id); got != tt.want {
			t.Errorf("VoucherNumber(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func testVoucher() TallyVoucher {
	return TallyVoucher{
		QuotationID: "a1b2c3d4-e5f6-7890-abcd-ef1234567890",
		PartyName:   "Mehta & Sons",
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Items: []TallyItem{
			{ProductName: "Digital pH Meter", Quantity: 2, Rate: dec("1500")},
		},
		Packaging:  dec("100"),
		TotalTax:   dec("558"),
		GrandTotal: dec("3608"),
	}
}

func TestRenderTallyXML(t *testing.T) {
	out := RenderTallyXML(testVoucher())

	for _, marker := range []string{
		"<ENVELOPE>",
		"<TALLYREQUEST>Import Data</TALLYREQUEST>",
		"<SVCURRENTCOMPANY>Unique Lab Instrument</SVCURRENTCOMPANY>",
		`<VOUCHER VCHTYPE="Sales" ACTION="Create" OBJVIEW="Invoice Voucher View">`,
		"<DATE>20240315</DATE>",
		"<PARTYLEDGERNAME>Mehta &amp; Sons</PARTYLEDGERNAME>",
		"<VOUCHERNUMBER>567890</VOUCHERNUMBER>",
		"<STOCKITEMNAME>Digital pH Meter</STOCKITEMNAME>",
		"<RATE>1500/No</RATE>",
		"<AMOUNT>-3000</AMOUNT>",
		"<ACTUALQTY> 2 No</ACTUALQTY>",
		"<LEDGERNAME>Sales</LEDGERNAME>",
		"<LEDGERNAME>Packaging &amp; Forwarding</LEDGERNAME>",
		"<AMOUNT>-100</AMOUNT>",
		"<LEDGERNAME>Output GST</LEDGERNAME>",
		"<AMOUNT>-558</AMOUNT>",
		"<AMOUNT>-3608</AMOUNT>",
		"</ENVELOPE>",
	} {
		if !strings.Contains(out, marker) {
			t.Errorf("voucher XML missing %q", marker)
		}
	}
}

func TestRenderTallyXMLPartyFallsBackToCash(t *testing.T) {
	v := testVoucher()
	v.PartyName = ""

	out := RenderTallyXML(v)
	if !strings.Contains(out, "<PARTYLEDGERNAME>Cash</PARTYLEDGERNAME>") {
		t.Error("empty party did not fall back to Cash ledger")
	}
}

func TestRenderTallyXMLConditionalLedgers(t *testing.T) {
	v := testVoucher()
	v.Packaging = dec("0")
	v.TotalTax = dec("0")

	out := RenderTallyXML(v)
	if strings.Contains(out, "Packaging &amp; Forwarding") {
		t.Error("packaging ledger emitted with zero packaging")
	}
	if strings.Contains(out, "Output GST") {
		t.Error("GST ledger emitted with zero tax")
	}
}

func TestRenderTallyXMLEscapesProductName(t *testing.T) {
	v := testVoucher()
	v.Items[0].ProductName = "Flask <500ml> & Stand"

	out := RenderTallyXML(v)
	if !strings.Contains(out, "<STOCKITEMNAME>Flask &lt;500ml&gt; &amp; Stand</STOCKITEMNAME>") {
		t.Error("product name not escaped for XML")
	}
}
