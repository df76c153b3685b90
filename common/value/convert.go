package value

import (
	"errors"
	"fmt"

	pb "github.com/sealedbid/sealedbid/protobuf/controller"
)

// ErrMalformed is returned when a wire value cannot be turned into a Value.
var ErrMalformed = errors.New("malformed wire value")

// ToProto returns the wire representation of v.
func (v *Value) ToProto() *pb.Value {
	return &pb.Value{
		Name:   v.name,
		Domain: v.domain,
		Type:   string(v.typ),
		Size:   uint64(len(v.raw)),
		Data:   v.Bytes(),
	}
}

// ProtoToValue validates a wire value. The declared size must match the
// payload, and the payload must match the type width.
func ProtoToValue(p *pb.Value) (*Value, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil value", ErrMalformed)
	}
	if p.GetSize() != uint64(len(p.GetData())) {
		return nil, fmt.Errorf("%w: %q declares %d bytes but carries %d",
			ErrMalformed, p.GetName(), p.GetSize(), len(p.GetData()))
	}
	return New(p.GetName(), p.GetDomain(), Type(p.GetType()), p.GetData())
}

// ToProto returns the values of the map sorted by name, ready to be sent.
func (m *Map) ToProto() []*pb.Value {
	values := m.Values()
	out := make([]*pb.Value, len(values))
	for i, v := range values {
		out[i] = v.ToProto()
	}
	return out
}

// ProtoToMap builds a Map out of wire values. Repeated names are rejected.
func ProtoToMap(values []*pb.Value) (*Map, error) {
	m := NewMap()
	for _, p := range values {
		v, err := ProtoToValue(p)
		if err != nil {
			return nil, err
		}
		if err := m.Insert(v); err != nil {
			return nil, err
		}
	}
	return m, nil
}
