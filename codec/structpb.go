package codec

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Protostruct serializes trees as a protobuf google.protobuf.Value. The
// zero value is ready to use. Schema-free like JSON but on the protobuf
// wire format; numbers decode as float64.
type Protostruct struct{}

var _ Codec = Protostruct{}

func (Protostruct) Encode(v any) ([]byte, error) {
	pv, err := structpb.NewValue(v)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(pv)
}

func (Protostruct) Decode(b []byte) (any, error) {
	pv := &structpb.Value{}
	if err := proto.Unmarshal(b, pv); err != nil {
		return nil, err
	}
	return pv.AsInterface(), nil
}
