package cacheproxy

import (
	"errors"
	"testing"
)

// ==============================
// Boolean parse rule
// ==============================

func TestParseBoolTable(t *testing.T) {
	truthy := []any{true, "true", "1", 1, "t", "T", "TRUE", int64(1), uint8(1), 1.0}
	for _, in := range truthy {
		if !ParseBool(in) {
			t.Errorf("ParseBool(%#v) = false, want true", in)
		}
	}
	falsy := []any{nil, 0, false, "hello", 11, "0", "", -1, 0.5, "truthy"}
	for _, in := range falsy {
		if ParseBool(in) {
			t.Errorf("ParseBool(%#v) = true, want false", in)
		}
	}
}

// ==============================
// Construction and access
// ==============================

// TestRecordAttributeAccess covers the basic get/get_bool contract over a
// flat mapping.
func TestRecordAttributeAccess(t *testing.T) {
	r := NewRecord(map[string]any{"name": "London", "id": 100, "active": 1})

	if got := r.Get("name"); got != "London" {
		t.Fatalf("Get(name) = %v, want London", got)
	}
	if got := r.Get("id"); got != 100 {
		t.Fatalf("Get(id) = %v, want 100", got)
	}
	if !r.GetBool("active") {
		t.Fatalf("GetBool(active) = false, want true")
	}
	// attribute-style boolean query on a key with no literal "?" entry
	if got := r.Get("active?"); got != true {
		t.Fatalf("Get(active?) = %v, want true", got)
	}
	// unknown keys yield nil, never a panic
	if got := r.Get("missing"); got != nil {
		t.Fatalf("Get(missing) = %v, want nil", got)
	}
	if r.GetBool("missing") {
		t.Fatalf("GetBool(missing) = true, want false")
	}
}

// TestRecordConstructionRecursive verifies deep conversion of nested
// mappings, both held directly and inside sequences at any depth.
func TestRecordConstructionRecursive(t *testing.T) {
	r := NewRecord(map[string]any{
		"city": map[string]any{"name": "London"},
		"tags": []any{"a", map[string]any{"k": "v"}},
		"deep": []any{[]any{map[string]any{"n": 1}}},
	})

	city, ok := r.Get("city").(*Record)
	if !ok {
		t.Fatalf("city is %T, want *Record", r.Get("city"))
	}
	if city.Get("name") != "London" {
		t.Fatalf("city.name = %v", city.Get("name"))
	}

	tags, ok := r.Get("tags").([]any)
	if !ok || len(tags) != 2 {
		t.Fatalf("tags = %#v", r.Get("tags"))
	}
	if _, ok := tags[1].(*Record); !ok {
		t.Fatalf("tags[1] is %T, want *Record", tags[1])
	}

	deep := r.Get("deep").([]any)[0].([]any)
	if inner, ok := deep[0].(*Record); !ok || inner.Get("n") != 1 {
		t.Fatalf("deep[0][0] = %#v", deep[0])
	}
}

// ==============================
// Symbol/string dual lookup
// ==============================

func TestRecordDualKeyLookup(t *testing.T) {
	// symbol-form entry, read back via string key
	r := NewRecordFrom(map[any]any{Sym("name"): "London"})
	if got := r.Get("name"); got != "London" {
		t.Fatalf("string lookup of symbol entry = %v", got)
	}

	// string-form entry, read back via symbol key
	r2 := NewRecord(map[string]any{"id": 7})
	if got := r2.Get(Sym("id")); got != 7 {
		t.Fatalf("symbol lookup of string entry = %v", got)
	}

	// Set favors the existing symbol-form entry
	if err := r.Set("name", "Paris"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := r.Get(Sym("name")); got != "Paris" {
		t.Fatalf("after Set, symbol form = %v", got)
	}
	if r.Len() != 1 {
		t.Fatalf("Set created a second entry: keys=%v", r.Keys())
	}

	// no symbol entry -> Set creates the string-form entry
	if err := r.Set("country", "FR"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := r.Get(Sym("country")); got != "FR" {
		t.Fatalf("fallback read of new string entry = %v", got)
	}
}

func TestRecordQueryKeyReadOnly(t *testing.T) {
	r := NewRecord(map[string]any{"active": 1})
	err := r.Set("active?", false)
	if err == nil {
		t.Fatalf("Set on query key should fail")
	}
	var roe *ReadOnlyKeyError
	if !errors.As(err, &roe) || roe.Key != "active?" {
		t.Fatalf("expected ReadOnlyKeyError{active?}, got %T: %v", err, err)
	}
	// the underlying value is untouched
	if !r.GetBool("active") {
		t.Fatalf("failed Set mutated the record")
	}
}

// ==============================
// Logical type tag
// ==============================

func TestRecordLogicalType(t *testing.T) {
	tagged := NewRecord(map[string]any{ClassKey: "City", "name": "London"})
	if got := tagged.LogicalType(); got != "City" {
		t.Fatalf("LogicalType = %q, want City", got)
	}

	plain := NewRecord(map[string]any{"name": "London"})
	if got := plain.LogicalType(); got != "Record" {
		t.Fatalf("LogicalType = %q, want Record", got)
	}

	// non-string tags fall back to the placeholder
	odd := NewRecord(map[string]any{ClassKey: 42})
	if got := odd.LogicalType(); got != "Record" {
		t.Fatalf("LogicalType = %q, want Record", got)
	}

	// the tag is display-only: access behaves identically either way
	if tagged.Get("name") != plain.Get("name") {
		t.Fatalf("tag affected lookup behavior")
	}
}

// ==============================
// Equality and iteration
// ==============================

func TestRecordEqual(t *testing.T) {
	a := NewRecord(map[string]any{"x": 1, "y": []any{map[string]any{"z": 2}}})
	b := NewRecord(map[string]any{"y": []any{map[string]any{"z": int64(2)}}, "x": 1.0})
	if !a.Equal(b) {
		t.Fatalf("structurally equal records compare unequal")
	}

	// key form is not significant
	c := NewRecordFrom(map[any]any{Sym("x"): 1})
	d := NewRecord(map[string]any{"x": 1})
	if !c.Equal(d) || !d.Equal(c) {
		t.Fatalf("symbol/string key form should not affect equality")
	}

	e := NewRecord(map[string]any{"x": 2})
	if d.Equal(e) {
		t.Fatalf("different values compare equal")
	}
	if d.Equal(nil) {
		t.Fatalf("Equal(nil) should be false")
	}
}

func TestRecordKeysInsertionOrder(t *testing.T) {
	r := NewRecord(map[string]any{"b": 1, "a": 2}) // sorted at construction
	_ = r.Set("z", 3)
	_ = r.Set("a", 9) // overwrite keeps position
	want := []string{"a", "b", "z"}
	got := r.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys = %v, want %v", got, want)
		}
	}
	if r.Get("a") != 9 {
		t.Fatalf("overwrite lost value")
	}
}

func TestRecordString(t *testing.T) {
	r := NewRecord(map[string]any{ClassKey: "City", "name": "London", "pop": 9000000})
	got := r.String()
	want := `#<City name="London" pop=9000000>`
	if got != want {
		t.Fatalf("String = %s, want %s", got, want)
	}
}
