package cacheproxy

// Attributer is the record-like capability: a value that can present itself
// as a flat mapping of attribute name to value (e.g. an ORM row object).
// It is the only thing the proxy requires of row-like producer output.
type Attributer interface {
	Attributes() map[string]any
}

// Serialize normalizes a producer result into a pure structural tree of
// scalars, []any sequences and map[string]any mappings, fit for any codec.
// Sequences serialize element-wise; record-like values serialize to their
// flat attribute mapping; mappings serialize key-wise and value-wise, with
// symbol keys flattened to plain strings. The output never references the
// input's Go types, which is what keeps stored entries readable after the
// producing type changes.
//
// Anything outside those shapes passes through unchanged. A codec may then
// reject it; producers must compose output from scalars, sequences,
// mappings and record-like values.
func Serialize(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Serialize(e)
		}
		return out
	}
	if a, ok := v.(Attributer); ok {
		return serializeStringMap(a.Attributes())
	}
	switch t := v.(type) {
	case map[string]any:
		return serializeStringMap(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[splitKey(k).name] = Serialize(val)
		}
		return out
	}
	return v
}

func serializeStringMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Serialize(v)
	}
	return out
}

// Deserialize rehydrates a decoded structural tree: sequences element-wise,
// mappings into Records (recursively, via Record construction), anything
// else unchanged. Together with Serialize it satisfies the round-trip
// invariant Deserialize(Serialize(m)).Equal(NewRecord(m)).
func Deserialize(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Deserialize(e)
		}
		return out
	case map[string]any:
		return NewRecord(t)
	case map[any]any:
		return NewRecordFrom(t)
	}
	return v
}
