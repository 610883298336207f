// Package identity normalizes entity identifiers from the Vibe API.
//
// The backend is loose about how it references users and posts: the same
// field may hold a raw string ID, a numeric ID, or a populated object
// carrying its own "_id". Every membership test and equality check in this
// client goes through the canonical string form produced here, so two
// representations of the same logical identity always compare equal.
package identity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// ID is a canonical entity identifier. It unmarshals from a JSON string,
// number, or embedded object exposing an "_id" or "id" field.
type ID string

// UnmarshalJSON accepts the three shapes the backend emits for ID fields.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*id = ""
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id string: %w", err)
		}
		*id = ID(s)
	case '{':
		var obj struct {
			MongoID ID `json:"_id"`
			PlainID ID `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("decode id object: %w", err)
		}
		if obj.MongoID != "" {
			*id = obj.MongoID
		} else {
			*id = obj.PlainID
		}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("decode id number: %w", err)
		}
		*id = ID(n.String())
	}
	return nil
}

// String returns the canonical string form.
func (id ID) String() string { return string(id) }

// Canonical converts any ID-like value to its canonical string form.
// Strings pass through, numbers take their decimal form, and maps or
// structs carrying an id field resolve to that field's canonical form.
// The function is idempotent: Canonical(Canonical(v)) == Canonical(v).
func Canonical(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case ID:
		return string(val)
	case fmt.Stringer:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		// JSON numbers decode as float64. Integral values must not grow
		// an exponent or fraction when stringified.
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case map[string]any:
		if inner, ok := val["_id"]; ok {
			return Canonical(inner)
		}
		if inner, ok := val["id"]; ok {
			return Canonical(inner)
		}
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Dedupe removes duplicate canonical IDs, preserving the relative order of
// first occurrence. Empty entries are dropped.
func Dedupe(ids []ID) []ID {
	if len(ids) == 0 {
		return nil
	}
	kept := lo.Filter(ids, func(id ID, _ int) bool { return id != "" })
	return lo.Uniq(kept)
}

// Contains reports whether the canonical form of want is present in ids.
func Contains(ids []ID, want any) bool {
	target := Canonical(want)
	if target == "" {
		return false
	}
	return lo.ContainsBy(ids, func(id ID) bool { return string(id) == target })
}
