package value

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/crypto/blake2b"
	"google.golang.org/protobuf/encoding/protowire"
)

var (
	// ErrDuplicateName is returned when inserting a name already in the Map.
	ErrDuplicateName = errors.New("value name already present")
	// ErrNameNotFound is returned when looking up a name absent from the Map.
	ErrNameNotFound = errors.New("value name not found")
)

// Map is a set of values indexed by their unique name. It is the unit of
// exchange with a program: one Map carries its arguments, another its
// results. A Map is not safe for concurrent mutation. A nil *Map reads as
// an empty map.
type Map struct {
	values map[string]*Value
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]*Value)}
}

// Insert adds v to the map, failing if a value with the same name exists.
func (m *Map) Insert(v *Value) error {
	if m == nil {
		return errors.New("insert into nil map")
	}
	if v == nil {
		return errors.New("nil value")
	}
	if _, ok := m.values[v.name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, v.name)
	}
	m.values[v.name] = v
	return nil
}

// Get returns the value registered under name.
func (m *Map) Get(name string) (*Value, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrNameNotFound, name)
	}
	v, ok := m.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNameNotFound, name)
	}
	return v, nil
}

// Bool looks up name and decodes it as a bool.
func (m *Map) Bool(name string) (bool, error) {
	v, err := m.Get(name)
	if err != nil {
		return false, err
	}
	return v.Bool()
}

// Uint64 looks up name and decodes it as an uint64.
func (m *Map) Uint64(name string) (uint64, error) {
	v, err := m.Get(name)
	if err != nil {
		return 0, err
	}
	return v.Uint64()
}

// Len returns the number of values in the map.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.values)
}

// Names returns the names of all values, sorted.
func (m *Map) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.values))
	for n := range m.values {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Values returns all values sorted by name.
func (m *Map) Values() []*Value {
	names := m.Names()
	out := make([]*Value, len(names))
	for i, n := range names {
		out[i] = m.values[n]
	}
	return out
}

// Equal reports whether both maps hold equal values under the same names.
func (m *Map) Equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}
	for _, v := range m.Values() {
		ov, err := o.Get(v.name)
		if err != nil || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Digest returns a blake2b-256 hash of the canonical encoding of the map. Two
// maps are Equal if and only if their digests match, which lets callers
// compare or log results without exposing the values themselves.
func (m *Map) Digest() []byte {
	var b []byte
	for _, v := range m.Values() {
		b = protowire.AppendString(b, v.name)
		b = protowire.AppendString(b, v.domain)
		b = protowire.AppendString(b, string(v.typ))
		b = protowire.AppendBytes(b, v.raw)
	}
	sum := blake2b.Sum256(b)
	return sum[:]
}
