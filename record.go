package cacheproxy

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// ClassKey is the reserved tag key a mapping may carry to name its intended
// logical type. Display/diagnostics only; it never gates behavior.
const ClassKey = "_class"

// Sym marks a key as symbol-form. Mappings produced by systems that
// distinguish symbol and string keys round-trip through Record with the
// original form remembered, and lookups fall back between the two forms.
type Sym string

// querySuffix marks attribute-style boolean accessors. Keys ending in it are
// read-only.
const querySuffix = "?"

type recordKey struct {
	name string
	sym  bool
}

// Record is an ordered, schema-free mapping from string-or-symbol keys to
// values (scalars, sequences, nested Records). It substitutes for row-like
// objects in cached contexts: the stored form carries only structure, so a
// rehydrated Record stays valid even if the producing type has changed.
//
// Iteration follows insertion order; equality ignores both order and key
// form. Not safe for concurrent mutation.
type Record struct {
	order []recordKey
	vals  map[recordKey]any
}

// NewRecord builds a Record from a string-keyed mapping, recursively
// converting nested mappings (directly held or inside sequences, at any
// depth) into Records. Go maps have no insertion order, so construction
// iterates keys in sorted order for deterministic output.
func NewRecord(m map[string]any) *Record {
	r := emptyRecord(len(m))
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		r.put(recordKey{name: k}, convertValue(m[k]))
	}
	return r
}

// NewRecordFrom builds a Record from a mapping whose keys may be string or
// Sym. Non-string keys are stringified. Conversion depth matches NewRecord.
func NewRecordFrom(m map[any]any) *Record {
	r := emptyRecord(len(m))
	ks := make([]recordKey, 0, len(m))
	byKey := make(map[recordKey]any, len(m))
	for k, v := range m {
		rk := splitKey(k)
		ks = append(ks, rk)
		byKey[rk] = v
	}
	sort.Slice(ks, func(i, j int) bool {
		if ks[i].name != ks[j].name {
			return ks[i].name < ks[j].name
		}
		return !ks[i].sym && ks[j].sym
	})
	for _, rk := range ks {
		r.put(rk, convertValue(byKey[rk]))
	}
	return r
}

func emptyRecord(capHint int) *Record {
	return &Record{vals: make(map[recordKey]any, capHint)}
}

// convertValue applies the recursive construction rule: mappings become
// Records, sequence elements are converted in place, anything else passes
// through.
func convertValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return NewRecord(t)
	case map[any]any:
		return NewRecordFrom(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = convertValue(e)
		}
		return out
	default:
		return v
	}
}

// splitKey normalizes a caller-supplied key into its canonical name and form.
func splitKey(key any) recordKey {
	switch k := key.(type) {
	case string:
		return recordKey{name: k}
	case Sym:
		return recordKey{name: string(k), sym: true}
	default:
		return recordKey{name: fmt.Sprint(k)}
	}
}

func (r *Record) put(k recordKey, v any) {
	if _, ok := r.vals[k]; !ok {
		r.order = append(r.order, k)
	}
	r.vals[k] = v
}

// Get looks the key up as given, then under the alternate string/symbol
// form. Absent keys yield nil, never a panic. A key ending in "?" with no
// literal entry answers the boolean parse of the base key, so
// Get("active?") mirrors an attribute-style boolean query.
func (r *Record) Get(key any) any {
	k := splitKey(key)
	if v, ok := r.vals[k]; ok {
		return v
	}
	if v, ok := r.vals[recordKey{name: k.name, sym: !k.sym}]; ok {
		return v
	}
	if base, ok := strings.CutSuffix(k.name, querySuffix); ok && base != "" {
		if k.sym {
			return r.GetBool(Sym(base))
		}
		return r.GetBool(base)
	}
	return nil
}

// GetBool is Get passed through the canonical boolean parse rule.
func (r *Record) GetBool(key any) bool {
	return ParseBool(r.Get(key))
}

// Set writes a value under key. When a symbol-form entry already exists for
// the name it is overwritten in place, favoring whichever form was already
// used; otherwise the string-form entry is written. Keys ending in "?" are
// read-only by convention and return *ReadOnlyKeyError.
func (r *Record) Set(key any, v any) error {
	k := splitKey(key)
	if strings.HasSuffix(k.name, querySuffix) {
		return &ReadOnlyKeyError{Key: k.name}
	}
	if sk := (recordKey{name: k.name, sym: true}); hasKey(r.vals, sk) {
		r.put(sk, v)
		return nil
	}
	r.put(recordKey{name: k.name}, v)
	return nil
}

func hasKey(m map[recordKey]any, k recordKey) bool {
	_, ok := m[k]
	return ok
}

// Has reports whether either form of the key is present.
func (r *Record) Has(key any) bool {
	k := splitKey(key)
	return hasKey(r.vals, k) || hasKey(r.vals, recordKey{name: k.name, sym: !k.sym})
}

// Len returns the number of entries.
func (r *Record) Len() int { return len(r.order) }

// Keys returns entry names in insertion order. Both key forms share the
// name space, so a record holding both "a" and Sym("a") reports "a" twice.
func (r *Record) Keys() []string {
	out := make([]string, len(r.order))
	for i, k := range r.order {
		out[i] = k.name
	}
	return out
}

// LogicalType returns the string stored under the reserved ClassKey tag, or
// "Record" when the tag is absent or not a string. Diagnostics only.
func (r *Record) LogicalType() string {
	if s, ok := r.Get(ClassKey).(string); ok && s != "" {
		return s
	}
	return "Record"
}

// Map flattens the record to a plain string-keyed mapping, discarding key
// form. Values are returned as stored. When both forms of a name exist, the
// later insertion wins.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.order))
	for _, k := range r.order {
		out[k.name] = r.vals[k]
	}
	return out
}

// Attributes makes Record itself satisfy the record-like capability, so a
// Record nested in producer output serializes through the same flat-mapping
// rule as any row object.
func (r *Record) Attributes() map[string]any { return r.Map() }

// Equal compares two records by key name and value, recursively. Key form
// and iteration order are not significant. Numeric values compare by value,
// so integers widened by a codec still compare equal.
func (r *Record) Equal(other *Record) bool {
	if other == nil || len(r.order) != len(other.order) {
		return false
	}
	for _, k := range r.order {
		ov, ok := other.vals[k]
		if !ok {
			ov, ok = other.vals[recordKey{name: k.name, sym: !k.sym}]
		}
		if !ok || !equalValue(r.vals[k], ov) {
			return false
		}
	}
	return true
}

func equalValue(a, b any) bool {
	switch at := a.(type) {
	case *Record:
		bt, ok := b.(*Record)
		return ok && at.Equal(bt)
	case []any:
		bt, ok := b.([]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !equalValue(at[i], bt[i]) {
				return false
			}
		}
		return true
	}
	if af, ok := asNumber(a); ok {
		bf, ok := asNumber(b)
		return ok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

// String renders the record for diagnostics: logical type followed by
// entries in insertion order. The reserved tag is folded into the type name.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString("#<")
	b.WriteString(r.LogicalType())
	for _, k := range r.order {
		if k.name == ClassKey {
			continue
		}
		b.WriteString(" ")
		b.WriteString(k.name)
		b.WriteString("=")
		b.WriteString(describeValue(r.vals[k]))
	}
	b.WriteString(">")
	return b.String()
}

// describeValue renders a resolved value for diagnostics: Records via
// String, strings quoted, sequences bracketed, scalars via fmt.
func describeValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case *Record:
		return t.String()
	case string:
		return strconv.Quote(t)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = describeValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(t)
	}
}

// ParseBool applies the canonical boolean rule: true, any numeric equal to
// 1, and the strings "true", "t", "1" (case-insensitive) parse to true;
// nil, false, other numerics and non-matching strings parse to false.
func ParseBool(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		switch strings.ToLower(t) {
		case "true", "t", "1":
			return true
		}
		return false
	}
	if f, ok := asNumber(v); ok {
		return f == 1
	}
	return false
}

// asNumber widens any numeric type to float64 for value comparison.
func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}
