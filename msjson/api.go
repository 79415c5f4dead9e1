package msjson

// Valid reports whether data is a valid JSON encoding under default options.
func Valid(data []byte) bool {
	_, err := Parse(data, nil)
	return err == nil
}

// MarshalJSON implements the json.Marshaler interface for Value.
func (v *Value) MarshalJSON() ([]byte, error) {
	return Serialize(v, nil)
}

// UnmarshalJSON implements the json.Unmarshaler interface for Value.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data, nil)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

// String renders v as compact JSON with no whitespace. It returns the empty
// string if v cannot be serialized.
func (v *Value) String() string {
	data, err := Serialize(v, nil)
	if err != nil {
		return ""
	}
	return string(data)
}
