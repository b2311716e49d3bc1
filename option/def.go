package option

import (
	"fmt"
	"strings"
)

// ValueFormat is the wire format class of an option value (RFC7252 section 3.2).
type ValueFormat int

const (
	EmptyValue ValueFormat = iota // A zero-length sequence of bytes.
	UintValue                     // A non-negative integer in network byte order.
	StringValue                   // A UTF-8 string.
	OpaqueValue                   // An opaque sequence of bytes.
)

var valueFormatNames = [...]string{
	EmptyValue:  "empty",
	UintValue:   "uint",
	StringValue: "string",
	OpaqueValue: "opaque",
}

func (f ValueFormat) String() string {
	if f >= 0 && int(f) < len(valueFormatNames) {
		return valueFormatNames[f]
	}
	return fmt.Sprintf("ValueFormat(%d)", int(f))
}

// Format is a value format class with inclusive byte-length bounds.
type Format struct {
	Value  ValueFormat
	MinLen int
	MaxLen int
}

// DefaultFormat is the format of every unregistered option number.
var DefaultFormat = Format{Value: OpaqueValue, MinLen: 0, MaxLen: 65535}

func (f Format) String() string {
	if f.Value == EmptyValue {
		return f.Value.String()
	}
	return fmt.Sprintf("%s(%d,%d)", f.Value, f.MinLen, f.MaxLen)
}

func (f Format) inBounds(n int) bool {
	return n >= f.MinLen && n <= f.MaxLen
}

// Def describes a registered option.
type Def struct {
	Number     Number
	Name       string
	Format     Format
	Repeatable bool
}

var defs = []Def{
	{IfMatch, "If-Match", Format{OpaqueValue, 0, 8}, true},
	{URIHost, "Uri-Host", Format{StringValue, 1, 255}, false},
	{ETag, "ETag", Format{OpaqueValue, 0, 8}, true},
	{IfNoneMatch, "If-None-Match", Format{EmptyValue, 0, 0}, false},
	{Observe, "Observe", Format{UintValue, 0, 4}, false},
	{URIPort, "Uri-Port", Format{UintValue, 0, 2}, false},
	{LocationPath, "Location-Path", Format{StringValue, 0, 255}, true},
	{URIPath, "Uri-Path", Format{StringValue, 0, 255}, true},
	{ContentFormat, "Content-Format", Format{UintValue, 0, 2}, false},
	{MaxAge, "Max-Age", Format{UintValue, 0, 4}, false},
	{URIQuery, "Uri-Query", Format{StringValue, 0, 255}, true},
	{Accept, "Accept", Format{UintValue, 0, 2}, false},
	{LocationQuery, "Location-Query", Format{StringValue, 0, 255}, true},
	{ProxyURI, "Proxy-Uri", Format{StringValue, 1, 1034}, false},
	{ProxyScheme, "Proxy-Scheme", Format{StringValue, 1, 255}, false},
	{Size1, "Size1", Format{UintValue, 0, 4}, false},
	{NoResponse, "No-Response", Format{UintValue, 0, 1}, false},
}

var (
	defsByNumber = make(map[Number]Def, len(defs))
	defsByName   = make(map[string]Def, len(defs))
)

func init() {
	for _, def := range defs {
		if _, ok := defsByNumber[def.Number]; ok {
			panic(fmt.Sprintf("option %d defined twice", def.Number))
		}
		defsByNumber[def.Number] = def
		defsByName[normalizeName(def.Name)] = def
	}
}

// "Uri-Path", "uri-path" and "UriPath" all name the same option.
func normalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", ""))
}

// Lookup returns the value format of the option number. Unregistered
// numbers get DefaultFormat.
func Lookup(n Number) Format {
	if def, ok := defsByNumber[n]; ok {
		return def.Format
	}
	return DefaultFormat
}

// LookupDef returns the registered definition of the option number.
func LookupDef(n Number) (Def, bool) {
	def, ok := defsByNumber[n]
	return def, ok
}

// LookupDefByName returns the registered definition with the given name.
func LookupDefByName(name string) (Def, bool) {
	def, ok := defsByName[normalizeName(name)]
	return def, ok
}

// Defs returns all registered definitions in ascending number order.
func Defs() []Def {
	out := make([]Def, len(defs))
	copy(out, defs)
	return out
}
