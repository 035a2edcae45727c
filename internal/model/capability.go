package model

import "strings"

// Capability is a coarse permission resolved once at login and carried in the
// session token. Handlers never compare emails or roles directly; they check
// capabilities.
type Capability string

const (
	// CapManageCatalog allows product create/update/delete.
	CapManageCatalog Capability = "catalog.manage"
	// CapManageQuotations allows building, sending and closing quotations.
	CapManageQuotations Capability = "quotations.manage"
	// CapViewAudit allows reading the audit trail.
	CapViewAudit Capability = "audit.read"
	// CapTradePrices unlocks purchase price and dealer price, both in product
	// responses and in the quotation worksheet (dealer-price toggle).
	CapTradePrices Capability = "prices.trade"
)

// CapabilitySet is the resolved permission set for a session.
type CapabilitySet map[Capability]bool

// Has reports whether the capability is present.
func (s CapabilitySet) Has(c Capability) bool { return s[c] }

// Strings returns the set as a sorted-stable slice for token claims.
func (s CapabilitySet) Strings() []string {
	ordered := []Capability{CapManageCatalog, CapManageQuotations, CapViewAudit, CapTradePrices}
	out := make([]string, 0, len(s))
	for _, c := range ordered {
		if s[c] {
			out = append(out, string(c))
		}
	}
	return out
}

// ParseCapabilities rebuilds a set from token claims.
func ParseCapabilities(raw []string) CapabilitySet {
	set := make(CapabilitySet, len(raw))
	for _, r := range raw {
		set[Capability(r)] = true
	}
	return set
}

// ResolveCapabilities maps a role, plus membership in the super-admin
// allow-list, to the session's capability set. superAdminEmails is a
// comma-separated allow-list; matching is by exact email.
func ResolveCapabilities(role, email, superAdminEmails string) CapabilitySet {
	set := make(CapabilitySet)
	if role != RoleAdmin {
		return set
	}
	set[CapManageCatalog] = true
	set[CapManageQuotations] = true
	set[CapViewAudit] = true
	for _, allowed := range strings.Split(superAdminEmails, ",") {
		if allowed != "" && strings.TrimSpace(allowed) == email {
			set[CapTradePrices] = true
			break
		}
	}
	return set
}
