package swagger

import (
	"encoding/json"
	"testing"
)

func TestServedSpecCoversRoutes(t *testing.T) {
	var doc struct {
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	if err := json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("served document is not valid JSON: %v", err)
	}

	routes := []struct {
		path   string
		method string
	}{
		{"/register", "post"},
		{"/login", "post"},
		{"/refresh", "post"},
		{"/me", "get"},
		{"/products", "get"},
		{"/products", "post"},
		{"/products/{id}", "get"},
		{"/products/{id}", "put"},
		{"/products/{id}", "delete"},
		{"/enquiries", "post"},
		{"/enquiries", "get"},
		{"/enquiries/{id}", "get"},
		{"/enquiries/{id}/seen", "patch"},
		{"/enquiries/{id}/status", "patch"},
		{"/quotations", "get"},
		{"/quotations", "post"},
		{"/quotations/worksheet/{enquiryId}", "get"},
		{"/quotations/{id}", "get"},
		{"/quotations/{id}/html", "get"},
		{"/quotations/{id}/html", "put"},
		{"/quotations/{id}/status", "patch"},
		{"/quotations/{id}/tally", "get"},
		{"/cart", "get"},
		{"/cart", "delete"},
		{"/cart/items", "post"},
		{"/cart/items/{itemId}", "put"},
		{"/cart/items/{itemId}", "delete"},
		{"/policies", "get"},
		{"/policies", "post"},
		{"/policies/{id}", "put"},
		{"/policies/{id}", "delete"},
		{"/dashboard", "get"},
		{"/audit-logs", "get"},
		{"/health", "get"},
	}
	for _, r := range routes {
		ops, ok := doc.Paths[r.path]
		if !ok {
			t.Errorf("served document missing path %s", r.path)
			continue
		}
		if _, ok := ops[r.method]; !ok {
			t.Errorf("served document missing %s %s", r.method, r.path)
		}
	}

	for _, def := range []string{"response.Response", "response.Paginated"} {
		if _, ok := doc.Definitions[def]; !ok {
			t.Errorf("served document missing definition %s", def)
		}
	}
}
