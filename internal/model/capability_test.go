package model

import "testing"

func TestResolveCapabilities(t *testing.T) {
	allowList := "owner@example.com, second@example.com"

	tests := []struct {
		name  string
		role  string
		email string
		want  []Capability
		deny  []Capability
	}{
		{
			name:  "customer gets nothing",
			role:  RoleCustomer,
			email: "owner@example.com",
			deny:  []Capability{CapManageCatalog, CapManageQuotations, CapViewAudit, CapTradePrices},
		},
		{
			name:  "plain admin",
			role:  RoleAdmin,
			email: "staff@example.com",
			want:  []Capability{CapManageCatalog, CapManageQuotations, CapViewAudit},
			deny:  []Capability{CapTradePrices},
		},
		{
			name:  "allow-listed admin unlocks trade prices",
			role:  RoleAdmin,
			email: "owner@example.com",
			want:  []Capability{CapManageCatalog, CapManageQuotations, CapViewAudit, CapTradePrices},
		},
		{
			name:  "allow-list entry with surrounding whitespace",
			role:  RoleAdmin,
			email: "second@example.com",
			want:  []Capability{CapTradePrices},
		},
		{
			name:  "exact match only, no substring",
			role:  RoleAdmin,
			email: "owner@example.com.evil.com",
			deny:  []Capability{CapTradePrices},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := ResolveCapabilities(tt.role, tt.email, allowList)
			for _, c := range tt.want {
				if !set.Has(c) {
					t.Errorf("missing capability %s", c)
				}
			}
			for _, c := range tt.deny {
				if set.Has(c) {
					t.Errorf("unexpected capability %s", c)
				}
			}
		})
	}
}

func TestCapabilitySetStringsStableOrder(t *testing.T) {
	set := CapabilitySet{
		CapTradePrices:   true,
		CapManageCatalog: true,
		CapViewAudit:     true,
	}

	got := set.Strings()
	want := []string{string(CapManageCatalog), string(CapViewAudit), string(CapTradePrices)}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParseCapabilitiesRoundTrip(t *testing.T) {
	original := CapabilitySet{CapManageQuotations: true, CapTradePrices: true}
	rebuilt := ParseCapabilities(original.Strings())

	for _, c := range []Capability{CapManageCatalog, CapManageQuotations, CapViewAudit, CapTradePrices} {
		if original.Has(c) != rebuilt.Has(c) {
			t.Errorf("capability %s lost in round trip", c)
		}
	}
}
