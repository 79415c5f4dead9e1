package msjson

import (
	"sort"
	"strings"

	reflect "github.com/goccy/go-reflect"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Interface creates the plain Go representation of a tree. Like
// encoding/json the possible underlying types are:
//
//	Object    map[string]interface{}
//	Array     []interface{}
//	String    string
//	Number    float64
//	Bool      bool
//	Null      nil
//
// Object insertion order is lost in the map representation.
func (v *Value) Interface() (interface{}, error) {
	switch v.Type() {
	case Null:
		return nil, nil
	case Bool:
		return v.boolean, nil
	case Number:
		return v.number, nil
	case String:
		return v.str, nil
	case Array:
		out := make([]interface{}, len(v.items))
		for i, item := range v.items {
			itf, err := item.Interface()
			if err != nil {
				return nil, err
			}
			out[i] = itf
		}
		return out, nil
	case Object:
		out := make(map[string]interface{}, len(v.entries))
		for i := range v.entries {
			itf, err := v.entries[i].value.Interface()
			if err != nil {
				return nil, err
			}
			out[v.entries[i].key] = itf
		}
		return out, nil
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "interface of %s", v.Type())
	}
}

// Decode reads contents from v into out, which must be a pointer. Struct
// fields are matched through `json` tags.
func Decode(v *Value, out interface{}) error {
	if v == nil || out == nil {
		return errors.Wrap(ErrInvalidArgument, "decode")
	}
	itf, err := v.Interface()
	if err != nil {
		return err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return errors.Wrap(err, "decode")
	}
	return dec.Decode(itf)
}

// FromGo reads in a Go value and generates a tree that can be manipulated
// and serialized. Struct fields honor the `json` tag name and the "-"
// exclusion; unexported fields are skipped. Map keys are emitted sorted so
// the resulting tree serializes deterministically. A []byte becomes String.
func FromGo(val interface{}) (*Value, error) {
	if val == nil {
		return NewNull(), nil
	}
	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		return NewBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewNumber(float64(v.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NewNumber(float64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return NewNumber(v.Float()), nil
	case reflect.String:
		return NewString(v.String()), nil
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return NewString(string(v.Bytes())), nil
		}
		fallthrough
	case reflect.Array:
		arr := NewArray()
		for i := 0; i < v.Len(); i++ {
			elem, err := FromGo(v.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			if err := arr.Append(elem); err != nil {
				return nil, err
			}
		}
		return arr, nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, errors.Wrapf(ErrInvalidArgument, "map key type %s", v.Type().Key())
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		obj := NewObject()
		for _, key := range keys {
			elem, err := FromGo(v.MapIndex(key).Interface())
			if err != nil {
				return nil, err
			}
			if err := obj.Set(key.String(), elem); err != nil {
				return nil, err
			}
		}
		return obj, nil
	case reflect.Struct:
		obj := NewObject()
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.PkgPath != "" {
				continue // unexported
			}
			tags := strings.Split(field.Tag.Get("json"), ",")
			if tags[0] == "-" {
				continue
			}
			key := tags[0]
			if key == "" {
				key = field.Name
			}
			elem, err := FromGo(v.Field(i).Interface())
			if err != nil {
				return nil, err
			}
			if err := obj.Set(key, elem); err != nil {
				return nil, err
			}
		}
		return obj, nil
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return NewNull(), nil
		}
		return FromGo(v.Elem().Interface())
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "unsupported type %s", v.Kind())
	}
}
