package model

import (
	"encoding/json"
	"testing"
)

func pairsEqual(t *testing.T, got SpecList, want []SpecPair) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d pairs, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSpecListUnmarshalShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []SpecPair
	}{
		{
			name: "plain object",
			in:   `{"Capacity":"5L","Material":"SS 304"}`,
			want: []SpecPair{{"Capacity", "5L"}, {"Material", "SS 304"}},
		},
		{
			name: "object with numeric and boolean values",
			in:   `{"Channels":4,"Portable":true,"Weight":2.5}`,
			want: []SpecPair{{"Channels", "4"}, {"Portable", "true"}, {"Weight", "2.5"}},
		},
		{
			name: "array of pairs",
			in:   `[{"key":"Range","value":"0 to 14 pH"},{"key":"Display","value":"LED"}]`,
			want: []SpecPair{{"Range", "0 to 14 pH"}, {"Display", "LED"}},
		},
		{
			name: "doubly encoded object",
			in:   `"{\"Capacity\":\"5L\",\"Material\":\"SS 304\"}"`,
			want: []SpecPair{{"Capacity", "5L"}, {"Material", "SS 304"}},
		},
		{
			name: "null",
			in:   `null`,
			want: nil,
		},
		{
			name: "empty string form",
			in:   `""`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got SpecList
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", tt.in, err)
			}
			pairsEqual(t, got, tt.want)
		})
	}
}

// Object key order must survive normalization; a map round-trip would sort or
// shuffle it.
func TestSpecListPreservesKeyOrder(t *testing.T) {
	in := `{"Zeta":"1","Alpha":"2","Mid":"3","Beta":"4"}`
	var got SpecList
	if err := json.Unmarshal([]byte(in), &got); err != nil {
		t.Fatal(err)
	}
	pairsEqual(t, got, []SpecPair{{"Zeta", "1"}, {"Alpha", "2"}, {"Mid", "3"}, {"Beta", "4"}})
}

func TestSpecListUnmarshalRejectsScalars(t *testing.T) {
	var got SpecList
	if err := json.Unmarshal([]byte(`42`), &got); err == nil {
		t.Error("expected error for bare number shape")
	}
}

func TestSpecListScanStoredForm(t *testing.T) {
	var got SpecList
	if err := got.Scan([]byte(`[{"key":"Capacity","value":"5L"}]`)); err != nil {
		t.Fatal(err)
	}
	pairsEqual(t, got, []SpecPair{{"Capacity", "5L"}})

	// Rows written before normalization may still hold the object shape.
	var legacy SpecList
	if err := legacy.Scan(`{"Material":"SS 304"}`); err != nil {
		t.Fatal(err)
	}
	pairsEqual(t, legacy, []SpecPair{{"Material", "SS 304"}})
}
