package msjson

import (
	"github.com/pkg/errors"
)

// Type is an enum for the JSON value types. The zero value is Null, so a
// zero Value is a valid null node.
type Type uint8

const (
	Null Type = iota
	Bool
	Number
	String
	Array
	Object
)

func (t Type) String() string {
	switch t {
	case Null:
		return "Null"
	case Bool:
		return "Bool"
	case Number:
		return "Number"
	case String:
		return "String"
	case Array:
		return "Array"
	case Object:
		return "Object"
	default:
		return "Unknown"
	}
}

// Value is one node of a JSON tree. Exactly one payload is active, selected
// by the type tag; the tag is fixed at construction. Arrays and objects own
// their children exclusively.
type Value struct {
	typ     Type
	boolean bool
	number  float64
	str     string
	items   []*Value
	entries []objectEntry
}

// objectEntry is one insertion-ordered object member. The FNV-1a hash of the
// key is cached so lookups can reject mismatches without byte comparison.
type objectEntry struct {
	key   string
	hash  uint32
	value *Value
}

// Type returns the type tag. A nil Value reports Null.
func (v *Value) Type() Type {
	if v == nil {
		return Null
	}
	return v.typ
}

// Bool returns the boolean payload.
func (v *Value) Bool() (bool, error) {
	if v == nil || v.typ != Bool {
		return false, errors.Wrapf(ErrInvalidArgument, "bool accessor on %s", v.Type())
	}
	return v.boolean, nil
}

// Number returns the numeric payload.
func (v *Value) Number() (float64, error) {
	if v == nil || v.typ != Number {
		return 0, errors.Wrapf(ErrInvalidArgument, "number accessor on %s", v.Type())
	}
	return v.number, nil
}

// Str returns the string payload. (String is taken by the fmt.Stringer
// implementation, which renders compact JSON.)
func (v *Value) Str() (string, error) {
	if v == nil || v.typ != String {
		return "", errors.Wrapf(ErrInvalidArgument, "string accessor on %s", v.Type())
	}
	return v.str, nil
}

// Len returns the element count of an array.
func (v *Value) Len() (int, error) {
	if v == nil || v.typ != Array {
		return 0, errors.Wrapf(ErrInvalidArgument, "length accessor on %s", v.Type())
	}
	return len(v.items), nil
}

// Index returns the i-th array element.
func (v *Value) Index(i int) (*Value, error) {
	if v == nil || v.typ != Array {
		return nil, errors.Wrapf(ErrInvalidArgument, "index accessor on %s", v.Type())
	}
	if i < 0 || i >= len(v.items) {
		return nil, errors.Wrapf(ErrInvalidArgument, "index %d out of range [0,%d)", i, len(v.items))
	}
	return v.items[i], nil
}

// Size returns the entry count of an object.
func (v *Value) Size() (int, error) {
	if v == nil || v.typ != Object {
		return 0, errors.Wrapf(ErrInvalidArgument, "size accessor on %s", v.Type())
	}
	return len(v.entries), nil
}

// Get returns the value stored under key. Lookup is a linear scan in
// insertion order, comparing the cached hash before the key bytes; the first
// match wins. A missing key is ErrInvalidArgument.
func (v *Value) Get(key string) (*Value, error) {
	if v == nil || v.typ != Object {
		return nil, errors.Wrapf(ErrInvalidArgument, "key accessor on %s", v.Type())
	}
	h := hashKey(key)
	for i := range v.entries {
		if v.entries[i].hash == h && v.entries[i].key == key {
			return v.entries[i].value, nil
		}
	}
	return nil, errors.Wrapf(ErrInvalidArgument, "key %q not present", key)
}

// Has reports whether key is present in the object.
func (v *Value) Has(key string) (bool, error) {
	if v == nil || v.typ != Object {
		return false, errors.Wrapf(ErrInvalidArgument, "key accessor on %s", v.Type())
	}
	h := hashKey(key)
	for i := range v.entries {
		if v.entries[i].hash == h && v.entries[i].key == key {
			return true, nil
		}
	}
	return false, nil
}

// Keys returns the object's keys in insertion order. It is nil for
// non-objects and non-nil with length 0 for an empty object.
func (v *Value) Keys() []string {
	if v == nil || v.typ != Object {
		return nil
	}
	keys := make([]string, len(v.entries))
	for i := range v.entries {
		keys[i] = v.entries[i].key
	}
	return keys
}

// Equal compares two trees observationally: same types, same scalar values,
// same array elements in order, same object entries in insertion order.
func Equal(a, b *Value) bool {
	if a == b {
		return true
	}
	if a.Type() != b.Type() {
		return false
	}
	if a == nil || b == nil {
		// Both report Null; a nil node and an explicit null are equal.
		return true
	}
	switch a.typ {
	case Null:
		return true
	case Bool:
		return a.boolean == b.boolean
	case Number:
		return a.number == b.number
	case String:
		return a.str == b.str
	case Array:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.entries) != len(b.entries) {
			return false
		}
		for i := range a.entries {
			if a.entries[i].key != b.entries[i].key ||
				!Equal(a.entries[i].value, b.entries[i].value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
