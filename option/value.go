package option

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/bits"
	"unicode/utf8"
)

// Value is an option value classified by its format. Only the field
// selected by Format is meaningful.
type Value struct {
	Format ValueFormat
	Opaque []byte
	String string
	Uint   uint64
}

func EmptyVal() Value {
	return Value{Format: EmptyValue}
}

func OpaqueVal(b []byte) Value {
	return Value{Format: OpaqueValue, Opaque: b}
}

func StringVal(s string) Value {
	return Value{Format: StringValue, String: s}
}

func UintVal(u uint64) Value {
	return Value{Format: UintValue, Uint: u}
}

// Bytes returns the wire encoding of the value. Opaque values are
// returned without copying.
func (v Value) Bytes() []byte {
	switch v.Format {
	case OpaqueValue:
		return v.Opaque
	case StringValue:
		return []byte(v.String)
	case UintValue:
		return EncodeUint(v.Uint)
	}
	return nil
}

// Len returns the length of the wire encoding of the value.
func (v Value) Len() int {
	switch v.Format {
	case OpaqueValue:
		return len(v.Opaque)
	case StringValue:
		return len(v.String)
	case UintValue:
		return uintLen(v.Uint)
	}
	return 0
}

// Equal reports whether v and w have the same format and content.
func (v Value) Equal(w Value) bool {
	if v.Format != w.Format {
		return false
	}
	switch v.Format {
	case OpaqueValue:
		return bytes.Equal(v.Opaque, w.Opaque)
	case StringValue:
		return v.String == w.String
	case UintValue:
		return v.Uint == w.Uint
	}
	return true
}

func (v Value) text() string {
	switch v.Format {
	case EmptyValue:
		return "-Empty-"
	case OpaqueValue:
		return fmt.Sprintf("0x%X", v.Opaque)
	case UintValue:
		return fmt.Sprintf("%d", v.Uint)
	case StringValue:
		return fmt.Sprintf("'%s'", v.String)
	}
	return fmt.Sprintf("%#v", v.Bytes())
}

// Classify checks b against the format f. Values that do not fit the
// format degrade to opaque; Classify never fails. Opaque results share
// b with the caller.
func Classify(b []byte, f Format) Value {
	switch f.Value {
	case EmptyValue:
		if len(b) == 0 {
			return EmptyVal()
		}
	case StringValue:
		if f.inBounds(len(b)) && utf8.Valid(b) {
			return StringVal(string(b))
		}
	case UintValue:
		if f.inBounds(len(b)) {
			return UintVal(DecodeUint(b))
		}
	}
	// opaque bounds are advisory here; Parse enforces them.
	return OpaqueVal(b)
}

// EncodeUint returns the big-endian encoding of v without leading zero
// bytes. Zero encodes to no bytes at all.
func EncodeUint(v uint64) []byte {
	n := uintLen(v)
	if n == 0 {
		return nil
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	out := make([]byte, n)
	copy(out, buf[8-n:])
	return out
}

// DecodeUint decodes a big-endian unsigned integer. An empty slice
// decodes to zero.
func DecodeUint(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

func uintLen(v uint64) int {
	return (bits.Len64(v) + 7) / 8
}
