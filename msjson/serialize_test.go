package msjson

import (
	"math"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	tests := []struct {
		have func(t *testing.T) *Value
		want string
	}{
		{func(t *testing.T) *Value { return NewNull() }, `null`},
		{func(t *testing.T) *Value { return NewBool(true) }, `true`},
		{func(t *testing.T) *Value { return NewBool(false) }, `false`},
		{func(t *testing.T) *Value { return NewNumber(0) }, `0`},
		{func(t *testing.T) *Value { return NewNumber(-31.2) }, `-31.2`},
		{func(t *testing.T) *Value { return NewNumber(1e21) }, `1e+21`},
		{func(t *testing.T) *Value { return NewString("") }, `""`},
		{func(t *testing.T) *Value { return NewString(`say "hi"`) }, `"say \"hi\""`},
		{func(t *testing.T) *Value { return NewString("tab\there") }, `"tab\there"`},
		{func(t *testing.T) *Value { return NewString("\x01") }, `"\u0001"`},
		{func(t *testing.T) *Value { return NewString("héllo") }, `"héllo"`},
		{func(t *testing.T) *Value { return NewArray() }, `[]`},
		{func(t *testing.T) *Value { return NewObject() }, `{}`},
		{func(t *testing.T) *Value {
			return mustArray(t, NewNumber(1), NewString("x"), NewNull())
		}, `[1,"x",null]`},
		{func(t *testing.T) *Value {
			return mustObject(t, "a", NewNumber(20), "b", mustArray(t, NewBool(true), NewNull()))
		}, `{"a":20,"b":[true,null]}`},
		// Sibling containers each keep their own separator state.
		{func(t *testing.T) *Value {
			return mustArray(t,
				mustArray(t, NewNumber(1), NewNumber(2)),
				mustArray(t, NewNumber(3), NewNumber(4)))
		}, `[[1,2],[3,4]]`},
		{func(t *testing.T) *Value {
			return mustObject(t,
				"a", mustObject(t, "x", NewNumber(1)),
				"b", mustObject(t, "y", NewNumber(2)))
		}, `{"a":{"x":1},"b":{"y":2}}`},
	}
	for _, test := range tests {
		data, err := Serialize(test.have(t), nil)
		require.NoError(t, err)
		if string(data) != test.want {
			t.Errorf("serialize mismatch:\n%s", diff.LineDiff(string(data), test.want))
		}
	}
}

func TestSerializeNilValue(t *testing.T) {
	_, err := Serialize(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// Non-finite numbers serialize to substitutes that this parser itself does
// not accept back. That asymmetry is intentional; this test pins it down
// rather than hiding it.
func TestSerializeNonFinite(t *testing.T) {
	tests := []struct {
		have float64
		want string
	}{
		{math.NaN(), `null`},
		{math.Inf(1), `1e999`},
		{math.Inf(-1), `-1e999`},
	}
	for _, test := range tests {
		data, err := Serialize(NewNumber(test.have), nil)
		require.NoError(t, err)
		assert.Equal(t, test.want, string(data))
	}

	// 1e999 does not round-trip: the parser rejects it as out of range.
	_, err := Parse([]byte(`1e999`), nil)
	assert.ErrorIs(t, err, ErrSyntax)
	// NaN's substitute round-trips, but as Null, not Number.
	v, err := Parse([]byte(`null`), nil)
	require.NoError(t, err)
	assert.Equal(t, Null, v.Type())
}

func TestSerializeInsertionOrder(t *testing.T) {
	obj := mustObject(t,
		"zebra", NewNumber(1),
		"apple", NewNumber(2),
		"mango", NewNumber(3))
	data, err := Serialize(obj, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":1,"apple":2,"mango":3}`, string(data))

	// Replacing a key keeps its original position.
	require.NoError(t, obj.Set("apple", NewNumber(9)))
	data, err = Serialize(obj, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":1,"apple":9,"mango":3}`, string(data))
}

func TestSerializeBufferGrowth(t *testing.T) {
	// An output well past the initial capacity forces repeated growth.
	arr := NewArray()
	for i := 0; i < 1000; i++ {
		require.NoError(t, arr.Append(NewString("0123456789")))
	}
	data, err := Serialize(arr, nil)
	require.NoError(t, err)
	assert.Greater(t, len(data), serializeInitialCap*4)

	v, err := Parse(data, nil)
	require.NoError(t, err)
	n, err := v.Len()
	require.NoError(t, err)
	assert.Equal(t, 1000, n)
}

func TestRoundTrip(t *testing.T) {
	trees := []func(t *testing.T) *Value{
		func(t *testing.T) *Value { return NewNull() },
		func(t *testing.T) *Value { return NewNumber(3.125) },
		func(t *testing.T) *Value { return NewString("line\nbreak \"quoted\" \t") },
		func(t *testing.T) *Value {
			return mustObject(t,
				"name", NewString("motive"),
				"tags", mustArray(t, NewString("a"), NewString("b")),
				"count", NewNumber(42),
				"nested", mustObject(t, "ok", NewBool(true), "none", NewNull()))
		},
	}
	for _, build := range trees {
		want := build(t)
		data, err := Serialize(want, nil)
		require.NoError(t, err)
		got, err := Parse(data, nil)
		require.NoError(t, err)
		assert.True(t, Equal(got, want), "round trip of %s", want)
	}
}

func TestSerializeIdempotent(t *testing.T) {
	inputs := []string{
		`{"a":20,"b":[true,null],"c":{"d":"e"}}`,
		`[[1,2],[3,[4,{"x":"y"}]]]`,
		`"pass\qthrough"`,
	}
	for _, input := range inputs {
		v1, err := Parse([]byte(input), nil)
		require.NoError(t, err)
		first, err := Serialize(v1, nil)
		require.NoError(t, err)

		v2, err := Parse(first, nil)
		require.NoError(t, err)
		second, err := Serialize(v2, nil)
		require.NoError(t, err)

		if string(first) != string(second) {
			t.Errorf("not idempotent for %q:\n%s", input, diff.LineDiff(string(first), string(second)))
		}
	}
}
