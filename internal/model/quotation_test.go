package model

import "testing"

func TestValidQuotationTransition(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		to     string
		wantOK bool
	}{
		{"sent to done", QuotationSent, QuotationDone, true},
		{"sent to reject", QuotationSent, QuotationReject, true},
		{"done is terminal", QuotationDone, QuotationReject, false},
		{"reject is terminal", QuotationReject, QuotationDone, false},
		{"no reopening", QuotationDone, QuotationSent, false},
		{"sent to sent is not a transition", QuotationSent, QuotationSent, false},
		{"unknown target", QuotationSent, "Archived", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidQuotationTransition(tt.from, tt.to)
			if tt.wantOK && err != nil {
				t.Errorf("transition %s -> %s rejected: %v", tt.from, tt.to, err)
			}
			if !tt.wantOK && err == nil {
				t.Errorf("transition %s -> %s allowed, want error", tt.from, tt.to)
			}
		})
	}
}
