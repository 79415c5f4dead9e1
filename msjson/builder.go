package msjson

import (
	"github.com/pkg/errors"
)

// NewNull returns a null node.
func NewNull() *Value { return &Value{typ: Null} }

// NewBool returns a boolean node.
func NewBool(b bool) *Value { return &Value{typ: Bool, boolean: b} }

// NewNumber returns a numeric node.
func NewNumber(n float64) *Value { return &Value{typ: Number, number: n} }

// NewString returns a string node holding s.
func NewString(s string) *Value { return &Value{typ: String, str: s} }

// NewStringOrNull returns a string node, or a null node if s is nil.
// Absence of a string is deliberately not an error.
func NewStringOrNull(s *string) *Value {
	if s == nil {
		return NewNull()
	}
	return NewString(*s)
}

// NewArray returns an empty array node.
func NewArray() *Value { return &Value{typ: Array} }

// NewObject returns an empty object node.
func NewObject() *Value { return &Value{typ: Object} }

// Append adds elem to the end of the array v. The array takes ownership of
// elem. Appending to a non-array or appending nil is ErrInvalidArgument.
func (v *Value) Append(elem *Value) error {
	if v == nil || v.typ != Array || elem == nil {
		return errors.Wrapf(ErrInvalidArgument, "append to %s", v.Type())
	}
	if len(v.items) == cap(v.items) {
		grown := make([]*Value, len(v.items), growCapacity(cap(v.items)))
		copy(grown, v.items)
		v.items = grown
	}
	v.items = append(v.items, elem)
	return nil
}

// Set stores val under key in the object v, taking ownership of val. If key
// is already present the old value is replaced in place, keeping the entry's
// position from its first insertion; otherwise the entry is appended.
func (v *Value) Set(key string, val *Value) error {
	if v == nil || v.typ != Object || val == nil {
		return errors.Wrapf(ErrInvalidArgument, "set key on %s", v.Type())
	}
	h := hashKey(key)
	for i := range v.entries {
		if v.entries[i].hash == h && v.entries[i].key == key {
			v.entries[i].value = val
			return nil
		}
	}
	if len(v.entries) == cap(v.entries) {
		grown := make([]objectEntry, len(v.entries), growCapacity(cap(v.entries)))
		copy(grown, v.entries)
		v.entries = grown
	}
	v.entries = append(v.entries, objectEntry{key: key, hash: h, value: val})
	return nil
}

// growCapacity doubles, with a floor of 4 for the first growth.
func growCapacity(current int) int {
	if current == 0 {
		return 4
	}
	return current * 2
}

// hashKey is 32-bit FNV-1a over the key bytes.
func hashKey(key string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(key); i++ {
		h ^= uint32(key[i])
		h *= 16777619
	}
	return h
}
