// Package codec encodes structural trees (mappings, sequences, scalars) to
// bytes for storage. The proxy serializes producer output into such a tree
// before encoding, so codecs never see caller-defined types; any codec that
// preserves mapping/sequence/scalar structure round-trips losslessly.
package codec

// Codec encodes/decodes structural trees to []byte for storage.
//
// Codecs differ in how they widen numbers on decode: Msgpack and CBOR keep
// integers integral, JSON and Protostruct decode all numbers as float64.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(b []byte) (any, error)
}
