package quotation

// Policy is one terms-and-conditions line as the renderer consumes it.
type Policy struct {
	Code    string
	Label   string
	Text    string
	Enabled bool
}

// DefaultNotes is the yellow-banner text preloaded into every new worksheet.
const DefaultNotes = "(1) Payment After Performer Invoice\n(2) Transportation And Packing Charge Will be Extra As Per Actual"

// DefaultPolicies returns the built-in terms printed on quotations unless the
// admin disables or replaces them.
func DefaultPolicies() []Policy {
	return []Policy{
		{Code: "price", Label: "Price", Text: "The above quoted prices Ahmedabad Office.", Enabled: true},
		{Code: "payment", Label: "Payment", Text: "AFTER PRAFOMA INVOISE", Enabled: true},
		{Code: "validity", Label: "Validity", Text: "10 Days From The Date Of This Offer.", Enabled: true},
		{Code: "delivery", Label: "Delivery", Text: "Ready Stock", Enabled: true},
		{Code: "tax", Label: "Tax", Text: "Tax will be Charged Extra if so applicable as per Govt. Rules", Enabled: true},
		{Code: "taxDetails", Label: "Tax Details", Text: "GST NO. 24AAGFU8457M1ZI    PAN NO. AAGFU8457M", Enabled: true},
	}
}
