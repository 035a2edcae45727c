package quotation

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"labquote/internal/model"
)

// Fixed letterhead values printed on every quotation.
const (
	companyBlessing = "II Shree Ganesh II"
	companyName     = "UNIQUE LAB INSTRUMENT"
	companyOffice   = "Office : No:-SHOP NO -03 SIMANDHAR TENAMENT, MAKARBA RAILWAY CROSSING AHMEDABAD - 380051."
	companyContact  = "Email : uniqueengineeringcs@gmail.com , Mo : +91 9099160391, +91 9898835374"
	companyPAN      = "PAN NO. AAGFU8457M"
	companyGST      = "GST NO. 24AAGFU8457M1ZI"
	bankDetails     = "Bank Name :- Induslnd Bank<br/>Branch Name :- PRAHLADNAGAR<br/>Name :- UNIQUE LAB INSTRUMENT<br/>A/C No.:- 259898835374<br/>IFSC CODE :- INDB0000330"
	paymentQRURL    = "https://api.qrserver.com/v1/create-qr-code/?size=100x100&data=upi://pay?pa=pos.5345756@indus&pn=UNIQUE%20LAB%20INSTRUMENT"
	fallbackImage   = "https://via.placeholder.com/150"
)

// DocumentItem is one printable row of the quotation table.
type DocumentItem struct {
	Name       string
	ImageURL   string
	Specs      model.SpecList
	Quantity   int
	GSTPercent decimal.Decimal
	UnitPrice  decimal.Decimal
}

// Document carries everything the renderer needs; it is assembled by the
// service from a validated worksheet and party details.
type Document struct {
	RefNo        string // empty renders the placeholder
	Date         time.Time
	PartyName    string
	PartyAddress string
	PartyMobile  string
	PartyEmail   string
	Items        []DocumentItem
	Totals       Totals
	Packaging    decimal.Decimal
	Discount     decimal.Decimal
	Notes        string
	Policies     []Policy
}

// PlaceholderRef is the reference shown before the authoritative number is
// assigned.
func PlaceholderRef(t time.Time) string {
	return fmt.Sprintf("XXXXXX-%d", t.Year())
}

// FormatAmount renders a monetary value with comma thousands-grouping by
// plain string assembly. No locale library is involved; the paper layout
// relies on this exact shape.
func FormatAmount(d decimal.Decimal) string {
	d = d.Round(2)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}
	s := d.String()
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	out := b.String()
	if hasFrac {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// RenderHTML produces the self-contained printable quotation. The layout is
// a fixed paper template: structural stability matters more than prettiness,
// so the markup is assembled verbatim rather than through html/template.
func RenderHTML(doc Document) string {
	refNo := doc.RefNo
	if refNo == "" {
		refNo = PlaceholderRef(doc.Date)
	}
	date := doc.Date.Format("02/01/2006")

	var rows strings.Builder
	for i, item := range doc.Items {
		specs := make([]string, 0, len(item.Specs))
		for _, sp := range item.Specs {
			specs = append(specs, fmt.Sprintf("%s :- %s", html.EscapeString(sp.Key), html.EscapeString(sp.Value)))
		}
		imgURL := item.ImageURL
		if imgURL == "" {
			imgURL = fallbackImage
		}
		total := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))

		fmt.Fprintf(&rows, `
                <tr>
                    <td style="border: 1px solid black; text-align: center; vertical-align: middle;">%d</td>
                    <td style="border: 1px solid black; padding: 5px;">
                        <div style="display: flex; gap: 15px;">
                            <div style="width: 150px;">
                                <img src="%s" style="width: 100%%; border-radius: 4px;" />
                            </div>
                            <div style="flex: 1;">
                                <strong style="text-decoration: underline;">%s</strong><br/>
                                <div style="font-size: 13px; margin-top: 5px; color: #333;">
                                    %s
                                </div>
                            </div>
                        </div>
                    </td>
                    <td style="border: 1px solid black; text-align: center; vertical-align: middle;">%d</td>
                    <td style="border: 1px solid black; text-align: center; vertical-align: middle;">%s%%</td>
                    <td style="border: 1px solid black; text-align: center; vertical-align: middle;">%s</td>
                    <td style="border: 1px solid black; text-align: center; vertical-align: middle;">%s</td>
                </tr>`,
			i+1, imgURL, html.EscapeString(item.Name), strings.Join(specs, "<br/>"),
			item.Quantity, item.GSTPercent.String(), FormatAmount(item.UnitPrice), FormatAmount(total))
	}

	var policyRows strings.Builder
	for _, p := range doc.Policies {
		if !p.Enabled {
			continue
		}
		fmt.Fprintf(&policyRows, `
            <tr>
                <td style="font-weight: bold; width: 120px; padding: 2px 0;">%s</td>
                <td style="padding: 2px 0;">: %s</td>
            </tr>`, html.EscapeString(p.Label), html.EscapeString(p.Text))
	}

	// Each note line is wrapped in parentheses on the banner.
	noteParts := make([]string, 0, 4)
	for _, line := range strings.Split(doc.Notes, "\n") {
		noteParts = append(noteParts, "("+html.EscapeString(line)+")")
	}

	packagingRow := ""
	if doc.Packaging.IsPositive() {
		packagingRow = fmt.Sprintf(`
                    <tr>
                        <td colspan="5" style="border: 1px solid black; text-align: right; padding: 5px; font-weight: bold;">Packaging &amp; Forwarding (18%% GST Extra)</td>
                        <td style="border: 1px solid black; text-align: center; padding: 5px; font-weight: bold;">%s.00</td>
                    </tr>`, FormatAmount(doc.Packaging))
	}

	discountRow := ""
	if doc.Discount.IsPositive() {
		discountRow = fmt.Sprintf(`
                    <tr>
                        <td colspan="5" style="border: 1px solid black; text-align: right; padding: 5px; color: green; font-weight: bold;">Discount</td>
                        <td style="border: 1px solid black; text-align: center; padding: 5px; font-weight: bold; color: green;">- %s.00</td>
                    </tr>`, FormatAmount(doc.Discount))
	}

	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 800px; margin: auto; border: 2px solid black; padding: 10px;">
            <!-- Header -->
            <div style="border-bottom: 2px solid black; padding-bottom: 10px; margin-bottom: 10px;">
                <div style="text-align: center; font-size: 15px; font-weight: bold; letter-spacing: 1px; margin-bottom: 6px;">%s</div>
                <div style="text-align: center; color: #0076a3;">
                    <h1 style="margin: 0; font-size: 32px; font-weight: bold; white-space: nowrap; letter-spacing: 1px;">%s</h1>
                </div>
            </div>

            <div style="font-size: 12px; text-align: center; margin-bottom: 10px;">
                %s<br/>
                %s
            </div>

            <!-- Party Info Section -->
            <div style="display: flex; border: 1px solid black; font-size: 13px;">
                <div style="flex: 1; border-right: 1px solid black; padding: 5px;">
                    <strong>PARTY NAME:-</strong><br/>
                    <strong>M/s. %s</strong><br/><br/>
                    Address : - %s<br/>
                    Mobile No : - %s<br/>
                    Email : - %s
                </div>
                <div style="flex: 1; padding: 5px;">
                    Ref No:- %s<br/>
                    Date :- %s<br/>
                    <strong>%s</strong><br/><br/>
                    <strong>%s</strong>
                </div>
            </div>

            <!-- Subject -->
            <div style="border: 1px solid black; border-top: none; padding: 5px; font-weight: bold; font-size: 14px;">
                Subject : Quotation of Lab Instrument
            </div>

            <!-- Quotation Title -->
            <div style="text-align: center; font-weight: bold; font-size: 18px; margin-top: 5px;">Quotation</div>
            <div style="text-align: center; font-size: 13px; margin-bottom: 5px;">Respected sir We are send quotation as per your requirement</div>

            <!-- Main Table -->
            <table style="width: 100%%; border-collapse: collapse; font-size: 13px;">
                <thead>
                    <tr style="background: #f2f2f2;">
                        <th style="border: 1px solid black; padding: 5px; width: 40px;">Sr. No.</th>
                        <th style="border: 1px solid black; padding: 5px;">Description</th>
                        <th style="border: 1px solid black; padding: 5px; width: 50px;">Qty.</th>
                        <th style="border: 1px solid black; padding: 5px; width: 60px;">GST</th>
                        <th style="border: 1px solid black; padding: 5px; width: 80px;">Rate</th>
                        <th style="border: 1px solid black; padding: 5px; width: 100px;">Total Rs.</th>
                    </tr>
                </thead>
                <tbody>
                    %s
                    <tr>
                        <td colspan="5" style="border: 1px solid black; text-align: right; padding: 5px; font-weight: bold;">SUB TOTAL</td>
                        <td style="border: 1px solid black; text-align: center; padding: 5px; font-weight: bold;">%s.00</td>
                    </tr>%s
                    <tr>
                        <td colspan="5" style="border: 1px solid black; text-align: right; padding: 5px; color: blue; text-decoration: underline;">Total GST</td>
                        <td style="border: 1px solid black; text-align: center; padding: 5px; font-weight: bold;">%s.00</td>
                    </tr>%s
                    <tr>
                        <td colspan="5" style="border: 1px solid black; text-align: right; padding: 5px; font-weight: bold;">TOTAL</td>
                        <td style="border: 1px solid black; text-align: center; padding: 5px; font-weight: bold;">%s.00</td>
                    </tr>
                </tbody>
            </table>

            <!-- Notes -->
            <div style="background: yellow; border: 1px solid black; border-top: none; padding: 5px; font-size: 12px; font-weight: bold; text-align: center;">
                Note :- %s
            </div>

            <!-- Terms & Conditions -->
            <div style="margin-top: 15px; font-size: 12px;">
                <div style="text-align: center; font-weight: bold; text-decoration: underline; margin-bottom: 5px;">TERMS &amp; CONDITIONS</div>
                <table style="width: 100%%;">%s
                </table>

                <!-- Footer Section: Bank Details, QR, Signature -->
                <div style="display: flex; justify-content: space-between; align-items: center; margin-top: 15px;">
                    <div style="line-height: 1.4;">
                        %s
                    </div>
                    <div style="text-align: center;">
                        <img src="%s" alt="Scan to Pay" style="width: 100px; height: 100px; border: 1px solid #ccc; padding: 5px;" />
                        <div style="font-size: 10px; font-weight: bold; margin-top: 4px;">Scan &amp; Pay</div>
                    </div>
                    <div style="text-align: right; font-weight: bold; align-self: flex-end;">
                        For. %s
                    </div>
                </div>
            </div>
        </div>`,
		companyBlessing, companyName,
		companyOffice, companyContact,
		html.EscapeString(doc.PartyName), html.EscapeString(doc.PartyAddress),
		html.EscapeString(doc.PartyMobile), html.EscapeString(doc.PartyEmail),
		html.EscapeString(refNo), date, companyPAN, companyGST,
		rows.String(),
		FormatAmount(doc.Totals.Subtotal), packagingRow,
		FormatAmount(doc.Totals.TotalTax), discountRow,
		FormatAmount(doc.Totals.GrandTotal),
		strings.Join(noteParts, " "),
		policyRows.String(),
		bankDetails, paymentQRURL, companyName)
}
