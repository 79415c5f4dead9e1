package msjson

import (
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/elrt/MotiveSyz/msmem"
)

const serializeInitialCap = 1024

// serializer writes compact JSON into a single growable buffer. needsComma
// is the per-container separator state; it is saved and restored around
// nested containers so sibling containers each start at "no comma yet".
type serializer struct {
	alloc      msmem.Allocator
	buf        []byte
	pos        int
	needsComma bool
}

// Serialize renders v as compact JSON. The returned slice is backed by a
// buffer from alloc (msmem.Default() if nil) and belongs to the caller.
//
// Non-finite numbers are coerced rather than rejected: NaN serializes as
// null, infinities as 1e999/-1e999. Neither form re-parses as written, which
// is a documented compatibility choice. Finite numbers are formatted with 15
// significant digits, a known precision bound.
func Serialize(v *Value, alloc msmem.Allocator) ([]byte, error) {
	if v == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "serialize nil value")
	}
	if alloc == nil {
		alloc = msmem.Default()
	}
	buf, err := alloc.Alloc(serializeInitialCap)
	if err != nil {
		return nil, errors.Wrap(ErrMemory, "serialize buffer")
	}
	s := &serializer{alloc: alloc, buf: buf}
	if err := s.value(v); err != nil {
		_ = s.alloc.Free(s.buf)
		return nil, err
	}
	return s.buf[:s.pos], nil
}

func (s *serializer) value(v *Value) error {
	switch v.Type() {
	case Null:
		return s.append("null")
	case Bool:
		if v.boolean {
			return s.append("true")
		}
		return s.append("false")
	case Number:
		return s.number(v.number)
	case String:
		return s.str(v.str)
	case Array:
		return s.array(v)
	case Object:
		return s.object(v)
	default:
		return errors.Wrapf(ErrInvalidArgument, "serialize %s", v.Type())
	}
}

func (s *serializer) number(f float64) error {
	if math.IsNaN(f) {
		return s.append("null")
	}
	if math.IsInf(f, 1) {
		return s.append("1e999")
	}
	if math.IsInf(f, -1) {
		return s.append("-1e999")
	}
	var scratch [32]byte
	return s.appendBytes(strconv.AppendFloat(scratch[:0], f, 'g', 15, 64))
}

// str writes the string in quotes, re-escaping every byte independently of
// how it was written in the source: the seven two-character escapes, \u00XX
// for remaining control bytes, everything else verbatim. Bytes >= 0x80 pass
// through unexamined.
func (s *serializer) str(str string) error {
	if err := s.append(`"`); err != nil {
		return err
	}
	const hexDigits = "0123456789abcdef"
	for i := 0; i < len(str); i++ {
		var err error
		switch c := str[i]; c {
		case '"':
			err = s.append(`\"`)
		case '\\':
			err = s.append(`\\`)
		case '\b':
			err = s.append(`\b`)
		case '\f':
			err = s.append(`\f`)
		case '\n':
			err = s.append(`\n`)
		case '\r':
			err = s.append(`\r`)
		case '\t':
			err = s.append(`\t`)
		default:
			if c < 0x20 {
				esc := [6]byte{'\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf]}
				err = s.appendBytes(esc[:])
			} else {
				err = s.append(str[i : i+1])
			}
		}
		if err != nil {
			return err
		}
	}
	return s.append(`"`)
}

func (s *serializer) array(v *Value) error {
	if err := s.append("["); err != nil {
		return err
	}
	saved := s.needsComma
	s.needsComma = false
	for _, item := range v.items {
		if s.needsComma {
			if err := s.append(","); err != nil {
				return err
			}
		}
		if err := s.value(item); err != nil {
			return err
		}
		s.needsComma = true
	}
	s.needsComma = saved
	return s.append("]")
}

func (s *serializer) object(v *Value) error {
	if err := s.append("{"); err != nil {
		return err
	}
	saved := s.needsComma
	s.needsComma = false
	for i := range v.entries {
		if s.needsComma {
			if err := s.append(","); err != nil {
				return err
			}
		}
		if err := s.str(v.entries[i].key); err != nil {
			return err
		}
		if err := s.append(":"); err != nil {
			return err
		}
		if err := s.value(v.entries[i].value); err != nil {
			return err
		}
		s.needsComma = true
	}
	s.needsComma = saved
	return s.append("}")
}

// ensure grows the buffer to hold n more bytes, doubling or growing to
// exact fit when doubling is not enough.
func (s *serializer) ensure(n int) error {
	if s.pos+n <= len(s.buf) {
		return nil
	}
	newCap := len(s.buf) * 2
	if newCap < s.pos+n {
		newCap = s.pos + n
	}
	grown, err := s.alloc.Realloc(s.buf, newCap)
	if err != nil {
		return errors.Wrap(ErrMemory, "grow serialize buffer")
	}
	s.buf = grown
	return nil
}

func (s *serializer) append(data string) error {
	if err := s.ensure(len(data)); err != nil {
		return err
	}
	copy(s.buf[s.pos:], data)
	s.pos += len(data)
	return nil
}

func (s *serializer) appendBytes(data []byte) error {
	if err := s.ensure(len(data)); err != nil {
		return err
	}
	copy(s.buf[s.pos:], data)
	s.pos += len(data)
	return nil
}
