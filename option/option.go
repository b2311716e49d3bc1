package option

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Option is a single option instance. An option whose number is not
// registered, or whose value does not have the registered format, is
// an unknown option and carries its value as opaque bytes.
type Option struct {
	Number Number
	Value  Value
}

// Unknown returns an option carrying a copy of b uninterpreted.
func Unknown(n Number, b []byte) Option {
	return Option{Number: n, Value: OpaqueVal(bytes.Clone(b))}
}

func NewIfMatch(etag []byte) Option { return FromRaw(IfMatch, etag) }
func NewURIHost(host string) Option { return FromRaw(URIHost, []byte(host)) }
func NewETag(etag []byte) Option    { return FromRaw(ETag, etag) }
func NewIfNoneMatch() Option        { return Option{Number: IfNoneMatch, Value: EmptyVal()} }
func NewObserve(seq uint32) Option  { return Option{Number: Observe, Value: UintVal(uint64(seq))} }
func NewURIPort(port uint16) Option { return Option{Number: URIPort, Value: UintVal(uint64(port))} }
func NewLocationPath(segment string) Option {
	return FromRaw(LocationPath, []byte(segment))
}
func NewURIPath(segment string) Option { return FromRaw(URIPath, []byte(segment)) }
func NewContentFormat(mt MediaType) Option {
	return Option{Number: ContentFormat, Value: UintVal(uint64(mt))}
}
func NewMaxAge(seconds uint32) Option { return Option{Number: MaxAge, Value: UintVal(uint64(seconds))} }
func NewURIQuery(query string) Option { return FromRaw(URIQuery, []byte(query)) }
func NewAccept(mt MediaType) Option   { return Option{Number: Accept, Value: UintVal(uint64(mt))} }
func NewLocationQuery(query string) Option {
	return FromRaw(LocationQuery, []byte(query))
}
func NewProxyURI(uri string) Option       { return FromRaw(ProxyURI, []byte(uri)) }
func NewProxyScheme(scheme string) Option { return FromRaw(ProxyScheme, []byte(scheme)) }
func NewSize1(size uint32) Option         { return Option{Number: Size1, Value: UintVal(uint64(size))} }
func NewNoResponse(mask uint8) Option     { return Option{Number: NoResponse, Value: UintVal(uint64(mask))} }

// FromRaw builds an option from its wire number and value. Values that
// do not match the registered format of n produce an unknown option;
// FromRaw never fails. The option does not retain b.
func FromRaw(n Number, b []byte) Option {
	b = bytes.Clone(b)
	v := Classify(b, Lookup(n))
	if def, ok := LookupDef(n); ok && def.Format.Value == v.Format {
		return Option{Number: n, Value: v}
	}
	return Option{Number: n, Value: OpaqueVal(b)}
}

// Parse builds an option from its wire number and value, rejecting
// values outside the registered length bounds, strings that are not
// valid UTF-8 and non-empty values of empty options. Unregistered
// numbers always parse as unknown options. The option does not retain b.
func Parse(n Number, b []byte) (Option, error) {
	b = bytes.Clone(b)
	def, ok := LookupDef(n)
	if !ok {
		return Option{Number: n, Value: OpaqueVal(b)}, nil
	}
	f := def.Format
	if !f.inBounds(len(b)) {
		return Option{}, Error{
			Op:      "parse",
			Number:  n,
			Cause:   ErrMessageFormat,
			Details: fmt.Sprintf("length %d not in [%d,%d]", len(b), f.MinLen, f.MaxLen),
		}
	}
	switch f.Value {
	case EmptyValue:
		return Option{Number: n, Value: EmptyVal()}, nil
	case UintValue:
		return Option{Number: n, Value: UintVal(DecodeUint(b))}, nil
	case StringValue:
		if !utf8.Valid(b) {
			return Option{}, Error{Op: "parse", Number: n, Cause: ErrMessageFormat, Details: "invalid utf-8"}
		}
		return Option{Number: n, Value: StringVal(string(b))}, nil
	}
	return Option{Number: n, Value: OpaqueVal(b)}, nil
}

// Def returns the registered definition the option conforms to. It
// reports false for unknown options.
func (o Option) Def() (Def, bool) {
	def, ok := LookupDef(o.Number)
	if !ok || def.Format.Value != o.Value.Format {
		return Def{}, false
	}
	return def, true
}

func (o Option) IsUnknown() bool {
	_, ok := o.Def()
	return !ok
}

// Len returns the length of the encoded option value.
func (o Option) Len() int {
	return o.Value.Len()
}

// Bytes returns the encoded option value.
func (o Option) Bytes() []byte {
	return o.Value.Bytes()
}

// AsString returns the value of a string option.
func (o Option) AsString() (string, bool) {
	if o.Value.Format != StringValue {
		return "", false
	}
	return o.Value.String, true
}

// AsUint returns the value of a uint option.
func (o Option) AsUint() (uint64, bool) {
	if o.Value.Format != UintValue {
		return 0, false
	}
	return o.Value.Uint, true
}

// AsBytes returns the value of an opaque option, unknown options included.
func (o Option) AsBytes() ([]byte, bool) {
	if o.Value.Format != OpaqueValue {
		return nil, false
	}
	return o.Value.Opaque, true
}

func (o Option) Equal(p Option) bool {
	return o.Number == p.Number && o.Value.Equal(p.Value)
}

func (o Option) IsCritical() bool        { return o.Number.IsCritical() }
func (o Option) IsElective() bool        { return o.Number.IsElective() }
func (o Option) IsUnsafeToForward() bool { return o.Number.IsUnsafeToForward() }
func (o Option) IsSafeToForward() bool   { return o.Number.IsSafeToForward() }
func (o Option) IsNoCacheKey() bool      { return o.Number.IsNoCacheKey() }
func (o Option) IsCacheKey() bool        { return o.Number.IsCacheKey() }

func (o Option) String() string {
	if o.IsUnknown() {
		return fmt.Sprintf("%s: ?0x%X", o.Number, o.Bytes())
	}
	if o.Number == ContentFormat || o.Number == Accept {
		return fmt.Sprintf("%s: %s", o.Number, MediaType(o.Value.Uint))
	}
	return fmt.Sprintf("%s: %s", o.Number, o.Value.text())
}
