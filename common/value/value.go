// Package value holds the typed data crossing the boundary between the
// client and the computation servers: a Value is one named, typed datum and
// a Map is the set of named values exchanged with a program, both as the
// arguments that are secret shared on submission and as the results handed
// back once the servers reconstruct them.
package value

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyName is returned when a Value is built without a name.
	ErrEmptyName = errors.New("value name is empty")
	// ErrUnsupportedType is returned for a type tag without a known width.
	ErrUnsupportedType = errors.New("unsupported value type")
	// ErrSizeMismatch is returned when a payload does not match its type width.
	ErrSizeMismatch = errors.New("payload size does not match value type")
	// ErrTypeMismatch is returned when a value is decoded as a type other than
	// the one it holds.
	ErrTypeMismatch = errors.New("value type mismatch")
)

// Domains in which the servers know how to handle values.
const (
	// SharedDomain is the additively secret-shared three party domain.
	SharedDomain = "pd_shared3p"
	// PublicDomain holds values that are not secret.
	PublicDomain = "public"
)

// Type is the type tag of a Value. It determines the width of the payload
// and how the payload is decoded.
type Type string

// Supported type tags.
const (
	Bool      Type = "bool"
	Int8      Type = "int8"
	Int16     Type = "int16"
	Int32     Type = "int32"
	Int64     Type = "int64"
	Uint8     Type = "uint8"
	Uint16    Type = "uint16"
	Uint32    Type = "uint32"
	Uint64    Type = "uint64"
	XorUint8  Type = "xor_uint8"
	XorUint16 Type = "xor_uint16"
	XorUint32 Type = "xor_uint32"
	XorUint64 Type = "xor_uint64"
	Float32   Type = "float32"
	Float64   Type = "float64"
)

var widths = map[Type]int{
	Bool:      1,
	Int8:      1,
	Int16:     2,
	Int32:     4,
	Int64:     8,
	Uint8:     1,
	Uint16:    2,
	Uint32:    4,
	Uint64:    8,
	XorUint8:  1,
	XorUint16: 2,
	XorUint32: 4,
	XorUint64: 8,
	Float32:   4,
	Float64:   8,
}

// Types returns every supported type tag.
func Types() []Type {
	return []Type{
		Bool, Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64,
		XorUint8, XorUint16, XorUint32, XorUint64, Float32, Float64,
	}
}

// Width returns the payload size in bytes of a value of type t.
func (t Type) Width() (int, error) {
	w, ok := widths[t]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedType, string(t))
	}
	return w, nil
}

// Value is a single named and typed datum. Values are immutable once built.
type Value struct {
	name   string
	domain string
	typ    Type
	raw    []byte
}

// New builds a Value from its raw little endian payload. The payload is
// copied and must be exactly as wide as typ.
func New(name, domain string, typ Type, raw []byte) (*Value, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	w, err := typ.Width()
	if err != nil {
		return nil, err
	}
	if len(raw) != w {
		return nil, fmt.Errorf("%w: %q of type %s needs %d bytes, got %d", ErrSizeMismatch, name, typ, w, len(raw))
	}
	return &Value{
		name:   name,
		domain: domain,
		typ:    typ,
		raw:    append([]byte(nil), raw...),
	}, nil
}

func fixed(name, domain string, typ Type, x uint64) *Value {
	w := widths[typ]
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], x)
	v, err := New(name, domain, typ, buf[:w])
	if err != nil {
		// only reachable through an empty name
		panic(err)
	}
	return v
}

// NewBool builds a boolean value. It panics when name is empty, as do all the
// typed constructors below; use New to get an error instead.
func NewBool(name, domain string, b bool) *Value {
	var x uint64
	if b {
		x = 1
	}
	return fixed(name, domain, Bool, x)
}

// NewInt8 builds an int8 value.
func NewInt8(name, domain string, x int8) *Value {
	return fixed(name, domain, Int8, uint64(x))
}

// NewInt16 builds an int16 value.
func NewInt16(name, domain string, x int16) *Value {
	return fixed(name, domain, Int16, uint64(x))
}

// NewInt32 builds an int32 value.
func NewInt32(name, domain string, x int32) *Value {
	return fixed(name, domain, Int32, uint64(x))
}

// NewInt64 builds an int64 value.
func NewInt64(name, domain string, x int64) *Value {
	return fixed(name, domain, Int64, uint64(x))
}

// NewUint8 builds a uint8 value.
func NewUint8(name, domain string, x uint8) *Value {
	return fixed(name, domain, Uint8, uint64(x))
}

// NewUint16 builds a uint16 value.
func NewUint16(name, domain string, x uint16) *Value {
	return fixed(name, domain, Uint16, uint64(x))
}

// NewUint32 builds a uint32 value.
func NewUint32(name, domain string, x uint32) *Value {
	return fixed(name, domain, Uint32, uint64(x))
}

// NewUint64 builds a uint64 value.
func NewUint64(name, domain string, x uint64) *Value {
	return fixed(name, domain, Uint64, x)
}

// NewXorUint8 builds an xor_uint8 value.
func NewXorUint8(name, domain string, x uint8) *Value {
	return fixed(name, domain, XorUint8, uint64(x))
}

// NewXorUint16 builds an xor_uint16 value.
func NewXorUint16(name, domain string, x uint16) *Value {
	return fixed(name, domain, XorUint16, uint64(x))
}

// NewXorUint32 builds an xor_uint32 value.
func NewXorUint32(name, domain string, x uint32) *Value {
	return fixed(name, domain, XorUint32, uint64(x))
}

// NewXorUint64 builds an xor_uint64 value.
func NewXorUint64(name, domain string, x uint64) *Value {
	return fixed(name, domain, XorUint64, x)
}

// NewFloat32 builds a float32 value.
func NewFloat32(name, domain string, f float32) *Value {
	return fixed(name, domain, Float32, uint64(math.Float32bits(f)))
}

// NewFloat64 builds a float64 value.
func NewFloat64(name, domain string, f float64) *Value {
	return fixed(name, domain, Float64, math.Float64bits(f))
}

// Name returns the name of the value, unique within its Map.
func (v *Value) Name() string { return v.name }

// Domain returns the protection domain of the value.
func (v *Value) Domain() string { return v.domain }

// Type returns the type tag of the value.
func (v *Value) Type() Type { return v.typ }

// Size returns the payload size in bytes.
func (v *Value) Size() int { return len(v.raw) }

// Bytes returns a copy of the raw payload.
func (v *Value) Bytes() []byte { return append([]byte(nil), v.raw...) }

// Equal reports whether both values carry the same name, domain, type and
// payload.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	return v.name == o.name && v.domain == o.domain && v.typ == o.typ && bytes.Equal(v.raw, o.raw)
}

// String describes v without its payload.
func (v *Value) String() string {
	return fmt.Sprintf("%s(%s:%s, %d bytes)", v.name, v.domain, v.typ, len(v.raw))
}

// decode checks the stored type against the requested one and returns the
// payload widened to 64 bits.
func (v *Value) decode(t Type) (uint64, error) {
	if v.typ != t || len(v.raw) != widths[t] {
		return 0, fmt.Errorf("%w: %q holds %s (%d bytes), requested %s",
			ErrTypeMismatch, v.name, v.typ, len(v.raw), t)
	}
	var buf [8]byte
	copy(buf[:], v.raw)
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// Bool decodes a bool value. Any non zero payload is true.
func (v *Value) Bool() (bool, error) {
	x, err := v.decode(Bool)
	return x != 0, err
}

// Int8 decodes an int8 value.
func (v *Value) Int8() (int8, error) {
	x, err := v.decode(Int8)
	return int8(x), err
}

// Int16 decodes an int16 value.
func (v *Value) Int16() (int16, error) {
	x, err := v.decode(Int16)
	return int16(x), err
}

// Int32 decodes an int32 value.
func (v *Value) Int32() (int32, error) {
	x, err := v.decode(Int32)
	return int32(x), err
}

// Int64 decodes an int64 value.
func (v *Value) Int64() (int64, error) {
	x, err := v.decode(Int64)
	return int64(x), err
}

// Uint8 decodes a uint8 value.
func (v *Value) Uint8() (uint8, error) {
	x, err := v.decode(Uint8)
	return uint8(x), err
}

// Uint16 decodes a uint16 value.
func (v *Value) Uint16() (uint16, error) {
	x, err := v.decode(Uint16)
	return uint16(x), err
}

// Uint32 decodes a uint32 value.
func (v *Value) Uint32() (uint32, error) {
	x, err := v.decode(Uint32)
	return uint32(x), err
}

// Uint64 decodes a uint64 value.
func (v *Value) Uint64() (uint64, error) {
	return v.decode(Uint64)
}

// XorUint8 decodes an xor_uint8 value.
func (v *Value) XorUint8() (uint8, error) {
	x, err := v.decode(XorUint8)
	return uint8(x), err
}

// XorUint16 decodes an xor_uint16 value.
func (v *Value) XorUint16() (uint16, error) {
	x, err := v.decode(XorUint16)
	return uint16(x), err
}

// XorUint32 decodes an xor_uint32 value.
func (v *Value) XorUint32() (uint32, error) {
	x, err := v.decode(XorUint32)
	return uint32(x), err
}

// XorUint64 decodes an xor_uint64 value.
func (v *Value) XorUint64() (uint64, error) {
	return v.decode(XorUint64)
}

// Float32 decodes a float32 value.
func (v *Value) Float32() (float32, error) {
	x, err := v.decode(Float32)
	return math.Float32frombits(uint32(x)), err
}

// Float64 decodes a float64 value.
func (v *Value) Float64() (float64, error) {
	x, err := v.decode(Float64)
	return math.Float64frombits(x), err
}
