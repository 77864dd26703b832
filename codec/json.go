package codec

import "encoding/json"

// JSON serializes trees with encoding/json. Human-readable in the store;
// note that every number decodes as float64.
type JSON struct{}

var _ Codec = JSON{}

func (JSON) Encode(v any) ([]byte, error) { return json.Marshal(v) }
func (JSON) Decode(b []byte) (any, error) {
	var v any
	err := json.Unmarshal(b, &v)
	return v, err
}
