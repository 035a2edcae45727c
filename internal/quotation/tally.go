package quotation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const tallyCompany = "Unique Lab Instrument"

// TallyItem is one inventory allocation on the exported voucher.
type TallyItem struct {
	ProductName string
	Quantity    int
	Rate        decimal.Decimal
}

// TallyVoucher carries the finalized quotation fields the export needs.
type TallyVoucher struct {
	QuotationID string
	PartyName   string
	Date        time.Time
	Items       []TallyItem
	Packaging   decimal.Decimal
	TotalTax    decimal.Decimal
	GrandTotal  decimal.Decimal
}

// VoucherNumber derives the Tally voucher number from the quotation
// identifier: its last six characters, upper-cased.
func VoucherNumber(id string) string {
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}

// xmlEscape covers the characters Tally's importer chokes on.
func xmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// RenderTallyXML produces a sales voucher in Tally's import envelope. The
// tag structure is fixed by the target system; no schema validation is
// attempted beyond template fidelity.
func RenderTallyXML(v TallyVoucher) string {
	date := v.Date.Format("20060102")
	partyName := v.PartyName
	if partyName == "" {
		partyName = "Cash"
	}
	partyName = xmlEscape(partyName)
	voucherNumber := VoucherNumber(v.QuotationID)

	var inventoryEntries strings.Builder
	for _, item := range v.Items {
		amount := item.Rate.Mul(decimal.NewFromInt(int64(item.Quantity)))
		name := item.ProductName
		if name == "" {
			name = "Unknown Product"
		}
		fmt.Fprintf(&inventoryEntries, `
                        <ALLINVENTORYENTRIES.LIST>
                            <STOCKITEMNAME>%s</STOCKITEMNAME>
                            <ISDEEMEDPOSITIVE>No</ISDEEMEDPOSITIVE>
                            <RATE>%s/No</RATE>
                            <AMOUNT>-%s</AMOUNT>
                            <ACTUALQTY> %d No</ACTUALQTY>
                            <BILLEDQTY> %d No</BILLEDQTY>
                            <ACCOUNTINGALLOCATIONS.LIST>
                                <LEDGERNAME>Sales</LEDGERNAME>
                                <ISDEEMEDPOSITIVE>No</ISDEEMEDPOSITIVE>
                                <AMOUNT>-%s</AMOUNT>
                            </ACCOUNTINGALLOCATIONS.LIST>
                        </ALLINVENTORYENTRIES.LIST>`,
			xmlEscape(name), item.Rate.String(), amount.String(),
			item.Quantity, item.Quantity, amount.String())
	}

	var ledgerEntries strings.Builder
	if v.Packaging.IsPositive() {
		fmt.Fprintf(&ledgerEntries, `
                        <LEDGERENTRIES.LIST>
                            <LEDGERNAME>Packaging &amp; Forwarding</LEDGERNAME>
                            <ISDEEMEDPOSITIVE>No</ISDEEMEDPOSITIVE>
                            <AMOUNT>-%s</AMOUNT>
                        </LEDGERENTRIES.LIST>`, v.Packaging.String())
	}
	if v.TotalTax.IsPositive() {
		fmt.Fprintf(&ledgerEntries, `
                        <LEDGERENTRIES.LIST>
                            <LEDGERNAME>Output GST</LEDGERNAME>
                            <ISDEEMEDPOSITIVE>No</ISDEEMEDPOSITIVE>
                            <AMOUNT>-%s</AMOUNT>
                        </LEDGERENTRIES.LIST>`, v.TotalTax.String())
	}

	return fmt.Sprintf(`<ENVELOPE>
    <HEADER>
        <TALLYREQUEST>Import Data</TALLYREQUEST>
    </HEADER>
    <BODY>
        <IMPORTDATA>
            <REQUESTDESC>
                <REPORTNAME>Vouchers</REPORTNAME>
                <STATICVARIABLES>
                    <SVCURRENTCOMPANY>%s</SVCURRENTCOMPANY>
                </STATICVARIABLES>
            </REQUESTDESC>
            <REQUESTDATA>
                <TALLYMESSAGE xmlns:UDF="TallyUDF">
                    <VOUCHER VCHTYPE="Sales" ACTION="Create" OBJVIEW="Invoice Voucher View">
                        <DATE>%s</DATE>
                        <VOUCHERTYPENAME>Sales</VOUCHERTYPENAME>
                        <PARTYLEDGERNAME>%s</PARTYLEDGERNAME>
                        <VOUCHERNUMBER>%s</VOUCHERNUMBER>
                        <PERSISTEDVIEW>Invoice Voucher View</PERSISTEDVIEW>
                        <FBTPAYMENTTYPE>Default</FBTPAYMENTTYPE>%s%s
                        <LEDGERENTRIES.LIST>
                            <LEDGERNAME>%s</LEDGERNAME>
                            <ISDEEMEDPOSITIVE>Yes</ISDEEMEDPOSITIVE>
                            <AMOUNT>-%s</AMOUNT>
                        </LEDGERENTRIES.LIST>
                    </VOUCHER>
                </TALLYMESSAGE>
            </REQUESTDATA>
        </IMPORTDATA>
    </BODY>
</ENVELOPE>`,
		tallyCompany, date, partyName, voucherNumber,
		inventoryEntries.String(), ledgerEntries.String(),
		partyName, v.GrandTotal.String())
}
