package msjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		have Type
		want string
	}{
		{Null, "Null"},
		{Bool, "Bool"},
		{Number, "Number"},
		{String, "String"},
		{Array, "Array"},
		{Object, "Object"},
		{Type(99), "Unknown"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, test.have.String())
	}
}

func TestAccessors(t *testing.T) {
	b := NewBool(true)
	got, err := b.Bool()
	require.NoError(t, err)
	assert.True(t, got)

	n := NewNumber(2.5)
	f, err := n.Number()
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	s := NewString("hi")
	str, err := s.Str()
	require.NoError(t, err)
	assert.Equal(t, "hi", str)

	arr := mustArray(t, NewNumber(1), NewNumber(2))
	l, err := arr.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, l)
	second, err := arr.Index(1)
	require.NoError(t, err)
	f, err = second.Number()
	require.NoError(t, err)
	assert.Equal(t, 2.0, f)

	obj := mustObject(t, "k", NewString("v"))
	size, err := obj.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
	has, err := obj.Has("k")
	require.NoError(t, err)
	assert.True(t, has)
	has, err = obj.Has("missing")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestAccessorMismatch(t *testing.T) {
	v := NewString("not a number")

	_, err := v.Bool()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = v.Number()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = v.Len()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = v.Index(0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = v.Size()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = v.Get("k")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = v.Has("k")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewNull().Str()
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var nilVal *Value
	assert.Equal(t, Null, nilVal.Type())
	_, err = nilVal.Bool()
	assert.ErrorIs(t, err, ErrInvalidArgument)

	arr := mustArray(t, NewNumber(1))
	_, err = arr.Index(-1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = arr.Index(1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	obj := NewObject()
	_, err = obj.Get("absent")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAppend(t *testing.T) {
	arr := NewArray()

	assert.ErrorIs(t, arr.Append(nil), ErrInvalidArgument)
	assert.ErrorIs(t, NewNumber(1).Append(NewNull()), ErrInvalidArgument)

	for i := 0; i < 9; i++ {
		require.NoError(t, arr.Append(NewNumber(float64(i))))
	}
	l, err := arr.Len()
	require.NoError(t, err)
	assert.Equal(t, 9, l)
	// Doubling growth with a floor of 4: 4, 8, 16.
	assert.Equal(t, 16, cap(arr.items))
	for i := 0; i < 9; i++ {
		elem, err := arr.Index(i)
		require.NoError(t, err)
		f, err := elem.Number()
		require.NoError(t, err)
		assert.Equal(t, float64(i), f)
	}
}

func TestSet(t *testing.T) {
	obj := NewObject()

	assert.ErrorIs(t, obj.Set("k", nil), ErrInvalidArgument)
	assert.ErrorIs(t, NewArray().Set("k", NewNull()), ErrInvalidArgument)

	require.NoError(t, obj.Set("a", NewNumber(1)))
	require.NoError(t, obj.Set("b", NewNumber(2)))
	require.NoError(t, obj.Set("a", NewNumber(3)))

	size, err := obj.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)
	assert.Equal(t, []string{"a", "b"}, obj.Keys())

	a, err := obj.Get("a")
	require.NoError(t, err)
	f, err := a.Number()
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)
}

func TestNewStringOrNull(t *testing.T) {
	s := "present"
	v := NewStringOrNull(&s)
	assert.Equal(t, String, v.Type())

	// Absence of a string is a null node, not an error.
	v = NewStringOrNull(nil)
	assert.Equal(t, Null, v.Type())
}

func TestKeys(t *testing.T) {
	assert.Nil(t, NewArray().Keys())
	assert.Nil(t, NewNumber(1).Keys())

	obj := NewObject()
	keys := obj.Keys()
	assert.NotNil(t, keys)
	assert.Len(t, keys, 0)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b func(t *testing.T) *Value
		want bool
	}{
		{func(t *testing.T) *Value { return NewNull() },
			func(t *testing.T) *Value { return NewNull() }, true},
		{func(t *testing.T) *Value { return nil },
			func(t *testing.T) *Value { return NewNull() }, true},
		{func(t *testing.T) *Value { return NewBool(true) },
			func(t *testing.T) *Value { return NewBool(false) }, false},
		{func(t *testing.T) *Value { return NewNumber(1) },
			func(t *testing.T) *Value { return NewString("1") }, false},
		{func(t *testing.T) *Value { return mustArray(t, NewNumber(1)) },
			func(t *testing.T) *Value { return mustArray(t, NewNumber(1)) }, true},
		{func(t *testing.T) *Value { return mustArray(t, NewNumber(1)) },
			func(t *testing.T) *Value { return mustArray(t, NewNumber(1), NewNumber(2)) }, false},
		{func(t *testing.T) *Value { return mustObject(t, "a", NewNumber(1), "b", NewNumber(2)) },
			func(t *testing.T) *Value { return mustObject(t, "a", NewNumber(1), "b", NewNumber(2)) }, true},
		// Insertion order is part of observational equality.
		{func(t *testing.T) *Value { return mustObject(t, "a", NewNumber(1), "b", NewNumber(2)) },
			func(t *testing.T) *Value { return mustObject(t, "b", NewNumber(2), "a", NewNumber(1)) }, false},
	}
	for i, test := range tests {
		assert.Equal(t, test.want, Equal(test.a(t), test.b(t)), "case %d", i)
	}
}

func TestHashKey(t *testing.T) {
	// FNV-1a reference values.
	assert.Equal(t, uint32(2166136261), hashKey(""))
	assert.Equal(t, uint32(0xe40c292c), hashKey("a"))
	assert.NotEqual(t, hashKey("a"), hashKey("b"))
}
