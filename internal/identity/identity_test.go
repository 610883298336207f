package identity

import (
	"encoding/json"
	"testing"
)

func TestCanonical_RepresentationInvariant(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "6651f0", "6651f0"},
		{"id type", ID("6651f0"), "6651f0"},
		{"int", 42, "42"},
		{"int64", int64(42), "42"},
		{"uint", uint(42), "42"},
		{"float from json", float64(42), "42"},
		{"json number", json.Number("42"), "42"},
		{"map with _id", map[string]any{"_id": "6651f0", "username": "ana"}, "6651f0"},
		{"map with id", map[string]any{"id": float64(42)}, "42"},
		{"nested map", map[string]any{"_id": map[string]any{"id": "6651f0"}}, "6651f0"},
		{"nil", nil, ""},
		{"empty map", map[string]any{"username": "ana"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Canonical(tt.in)
			if got != tt.want {
				t.Errorf("Canonical(%#v) = %q, want %q", tt.in, got, tt.want)
			}
			// Idempotence: canonicalizing the output changes nothing.
			if again := Canonical(got); again != got {
				t.Errorf("Canonical not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ID
	}{
		{"string", `"6651f0"`, "6651f0"},
		{"number", `42`, "42"},
		{"object with _id", `{"_id":"6651f0","username":"ana"}`, "6651f0"},
		{"object with id", `{"id":42}`, "42"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
				t.Fatalf("Unmarshal(%s) returned error: %v", tt.in, err)
			}
			if id != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.in, id, tt.want)
			}
		})
	}
}

func TestID_UnmarshalJSONRejectsGarbage(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`[1,2]`), &id); err == nil {
		t.Fatalf("Unmarshal of array returned nil error, want error")
	}
}

func TestDedupe_PreservesFirstOccurrenceOrder(t *testing.T) {
	in := []ID{"1", "1", "2", "3", "2", ""}
	got := Dedupe(in)

	want := []ID{"1", "2", "3"}
	if len(got) != len(want) {
		t.Fatalf("Dedupe(%v) = %v, want %v", in, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Dedupe(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestDedupe_Empty(t *testing.T) {
	if got := Dedupe(nil); got != nil {
		t.Fatalf("Dedupe(nil) = %v, want nil", got)
	}
}

func TestContains_CrossRepresentation(t *testing.T) {
	ids := []ID{"1", "42"}

	if !Contains(ids, "42") {
		t.Errorf("Contains(ids, \"42\") = false, want true")
	}
	if !Contains(ids, 42) {
		t.Errorf("Contains(ids, 42) = false, want true")
	}
	if !Contains(ids, map[string]any{"_id": "1"}) {
		t.Errorf("Contains(ids, object) = false, want true")
	}
	if Contains(ids, "7") {
		t.Errorf("Contains(ids, \"7\") = true, want false")
	}
	if Contains(ids, nil) {
		t.Errorf("Contains(ids, nil) = true, want false")
	}
}
