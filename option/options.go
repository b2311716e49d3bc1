package option

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
)

// Options holds the options of a message. Options sharing a number keep
// their insertion order; iteration is in ascending number order, which
// is the order the wire encoding requires. The zero value is an empty
// set ready to use. The read-only methods treat a nil *Options as empty.
type Options struct {
	numbers []Number
	values  map[Number][]Option
}

func NewOptions() *Options {
	return &Options{}
}

// Push appends o after any options with the same number.
func (opts *Options) Push(o Option) {
	if opts.values == nil {
		opts.values = make(map[Number][]Option)
	}
	if _, ok := opts.values[o.Number]; !ok {
		i, _ := slices.BinarySearch(opts.numbers, o.Number)
		opts.numbers = slices.Insert(opts.numbers, i, o.Number)
	}
	opts.values[o.Number] = append(opts.values[o.Number], o)
}

// PushRaw decodes b with FromRaw and appends the result.
func (opts *Options) PushRaw(n Number, b []byte) {
	opts.Push(FromRaw(n, b))
}

// ParseRaw decodes b with Parse and appends the result.
func (opts *Options) ParseRaw(n Number, b []byte) error {
	o, err := Parse(n, b)
	if err != nil {
		return err
	}
	opts.Push(o)
	return nil
}

// Set replaces all options with the number of o by o.
func (opts *Options) Set(o Option) {
	opts.Del(o.Number)
	opts.Push(o)
}

// Del removes all options with number n.
func (opts *Options) Del(n Number) {
	if _, ok := opts.values[n]; !ok {
		return
	}
	delete(opts.values, n)
	if i, ok := slices.BinarySearch(opts.numbers, n); ok {
		opts.numbers = slices.Delete(opts.numbers, i, i+1)
	}
}

// GetAll returns the options with number n in insertion order, or nil.
// Unknown options carrying n, such as a Uri-Path that is not valid
// UTF-8, are included in arrival order; GetKnown leaves them out.
func (opts *Options) GetAll(n Number) []Option {
	if opts == nil {
		return nil
	}
	return slices.Clone(opts.values[n])
}

// GetKnown is like GetAll but returns only the options whose value
// matches the registered format of n.
func (opts *Options) GetKnown(n Number) []Option {
	var known []Option
	for _, o := range opts.GetAll(n) {
		if !o.IsUnknown() {
			known = append(known, o)
		}
	}
	return known
}

// Get returns the first option with number n.
func (opts *Options) Get(n Number) (Option, bool) {
	if opts == nil {
		return Option{}, false
	}
	vs := opts.values[n]
	if len(vs) == 0 {
		return Option{}, false
	}
	return vs[0], true
}

func (opts *Options) Has(n Number) bool {
	return opts != nil && len(opts.values[n]) > 0
}

// Len returns the number of options.
func (opts *Options) Len() int {
	if opts == nil {
		return 0
	}
	count := 0
	for _, vs := range opts.values {
		count += len(vs)
	}
	return count
}

// Numbers returns the distinct option numbers in ascending order.
func (opts *Options) Numbers() []Number {
	if opts == nil {
		return nil
	}
	return slices.Clone(opts.numbers)
}

// All iterates the options in ascending number order, then insertion
// order. The set must not be modified during iteration.
func (opts *Options) All() iter.Seq[Option] {
	return func(yield func(Option) bool) {
		if opts == nil {
			return
		}
		for _, n := range opts.numbers {
			for _, o := range opts.values[n] {
				if !yield(o) {
					return
				}
			}
		}
	}
}

// Drain iterates like All, removing every option as it is yielded.
// Options not reached when iteration stops early stay in the set.
func (opts *Options) Drain() iter.Seq[Option] {
	return func(yield func(Option) bool) {
		for len(opts.numbers) > 0 {
			n := opts.numbers[0]
			vs := opts.values[n]
			o := vs[0]
			if len(vs) == 1 {
				delete(opts.values, n)
				opts.numbers = opts.numbers[1:]
			} else {
				opts.values[n] = vs[1:]
			}
			if !yield(o) {
				return
			}
		}
	}
}

func (opts *Options) Clone() *Options {
	c := NewOptions()
	for o := range opts.All() {
		c.Push(o)
	}
	return c
}

// Equal reports whether both sets hold equal options in the same order.
// A nil set equals an empty one.
func (opts *Options) Equal(other *Options) bool {
	if !slices.Equal(opts.Numbers(), other.Numbers()) {
		return false
	}
	for _, n := range opts.Numbers() {
		if !slices.EqualFunc(opts.GetAll(n), other.GetAll(n), Option.Equal) {
			return false
		}
	}
	return true
}

// AppendTo appends the encoded options to dst.
func (opts *Options) AppendTo(dst []byte) ([]byte, error) {
	var last Number
	var err error
	for o := range opts.All() {
		if dst, last, err = AppendOption(dst, last, o); err != nil {
			return dst, err
		}
	}
	return dst, nil
}

func (opts *Options) Marshal() ([]byte, error) {
	return opts.AppendTo(nil)
}

// Encode writes the options through enc.
func (opts *Options) Encode(enc *Encoder) error {
	for o := range opts.All() {
		if err := enc.Encode(o); err != nil {
			return err
		}
	}
	return nil
}

// Unmarshal decodes options from data with FromRaw until the end of data
// or the payload marker. It returns the offset of the first byte not
// consumed: the payload marker, or len(data).
func (opts *Options) Unmarshal(data []byte) (int, error) {
	return opts.unmarshal(data, func(n Number, b []byte) (Option, error) {
		return FromRaw(n, b), nil
	})
}

// UnmarshalStrict is like Unmarshal but decodes option values with Parse.
func (opts *Options) UnmarshalStrict(data []byte) (int, error) {
	return opts.unmarshal(data, Parse)
}

func (opts *Options) unmarshal(data []byte, parse func(Number, []byte) (Option, error)) (int, error) {
	r := bytes.NewReader(data)
	dec := NewDecoder(r)
	for {
		n, value, err := dec.Decode()
		if err == io.EOF {
			return len(data), nil
		}
		if errors.Is(err, ErrPayloadMarker) {
			return len(data) - r.Len() - 1, nil
		}
		if err != nil {
			return len(data) - r.Len(), err
		}
		o, err := parse(n, value)
		if err != nil {
			return len(data) - r.Len(), err
		}
		opts.Push(o)
	}
}

// Path returns the Uri-Path segments joined as an absolute path.
func (opts *Options) Path() string {
	return "/" + strings.Join(opts.strings(URIPath), "/")
}

// SetPath replaces the Uri-Path options by the segments of path.
func (opts *Options) SetPath(path string) {
	opts.Del(URIPath)
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return
	}
	for _, seg := range strings.Split(path, "/") {
		opts.Push(NewURIPath(seg))
	}
}

// Queries returns the values of the Uri-Query options.
func (opts *Options) Queries() []string {
	return opts.strings(URIQuery)
}

func (opts *Options) strings(n Number) []string {
	var ss []string
	for _, o := range opts.GetAll(n) {
		if s, ok := o.AsString(); ok {
			ss = append(ss, s)
		} else {
			ss = append(ss, string(o.Bytes()))
		}
	}
	return ss
}

var headerNewlineToSpace = strings.NewReplacer("\n", " ", "\r", " ")

// Write writes the options in text form, one per line.
func (opts *Options) Write(w io.Writer) error {
	for o := range opts.All() {
		if _, err := fmt.Fprintf(w, "%s\r\n", headerNewlineToSpace.Replace(o.String())); err != nil {
			return err
		}
	}
	return nil
}
