package option

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// option header
/*
	 7   6   5   4   3   2   1   0
	+---------------+---------------+
	|               |               |
	|  Option Delta | Option Length |   1 byte
	|               |               |
	+---------------+---------------+
	\                               \
	/         Option Delta          /   0-2 bytes
	\          (extended)           \
	+-------------------------------+
	\                               \
	/         Option Length         /   0-2 bytes
	\          (extended)           \
	+-------------------------------+
	\                               \
	/         Option Value          /   0 or more bytes
	\                               \
	+-------------------------------+

	nibble 0-12: the value itself
	nibble 13:   one extension byte, value = ext + 13
	nibble 14:   two extension bytes, value = ext + 269
	nibble 15:   reserved, 0xFF is the payload marker
*/
const (
	ext8Nibble  = 13
	ext16Nibble = 14
	reserved    = 15

	ext8Base  = 13
	ext16Base = 269

	// MaxExtended is the first delta or length the header cannot carry.
	MaxExtended = 65000

	// PayloadMarker separates the options from the payload.
	PayloadMarker = 0xff
)

// extension bytes of one header field
type extension struct {
	b [2]byte
	n int
}

func (x extension) bytes() []byte {
	return x.b[:x.n]
}

func extend(v int) (uint8, extension, bool) {
	var x extension
	switch {
	case v < ext8Base:
		return uint8(v), x, true
	case v < ext16Base:
		x.b[0] = uint8(v - ext8Base)
		x.n = 1
		return ext8Nibble, x, true
	case v < MaxExtended:
		binary.BigEndian.PutUint16(x.b[:], uint16(v-ext16Base))
		x.n = 2
		return ext16Nibble, x, true
	}
	return 0, x, false
}

// AppendHeader appends the header of o to dst. last is the number of
// the previously encoded option of the message (0 for the first one);
// the returned number must be passed as last for the next option.
// Options must be encoded in ascending number order.
func AppendHeader(dst []byte, last Number, o Option) ([]byte, Number, error) {
	if o.Number < last {
		return dst, last, Error{
			Op:      "encode",
			Number:  o.Number,
			Cause:   ErrOutOfOrder,
			Details: fmt.Sprintf("previous %d", last),
		}
	}
	dn, dx, ok := extend(int(o.Number - last))
	if !ok {
		return dst, last, Error{
			Op:      "encode",
			Number:  o.Number,
			Cause:   ErrDeltaTooLarge,
			Details: fmt.Sprintf("delta %d", o.Number-last),
		}
	}
	ln, lx, ok := extend(o.Len())
	if !ok {
		return dst, last, Error{
			Op:      "encode",
			Number:  o.Number,
			Cause:   ErrValueTooLarge,
			Details: fmt.Sprintf("length %d", o.Len()),
		}
	}
	dst = append(dst, dn<<4|ln)
	dst = append(dst, dx.bytes()...)
	dst = append(dst, lx.bytes()...)
	return dst, o.Number, nil
}

// AppendOption appends the header and the value of o to dst.
func AppendOption(dst []byte, last Number, o Option) ([]byte, Number, error) {
	dst, last, err := AppendHeader(dst, last, o)
	if err != nil {
		return dst, last, err
	}
	return append(dst, o.Bytes()...), last, nil
}

// ParseHeader decodes the option header at the start of b and returns
// the delta, the value length and the number of header bytes consumed.
func ParseHeader(b []byte) (delta, length, n int, err error) {
	if len(b) == 0 {
		return 0, 0, 0, ErrTruncated
	}
	if b[0] == PayloadMarker {
		return 0, 0, 1, ErrPayloadMarker
	}
	n = 1
	delta, n, err = parseField(b, n, int(b[0]>>4))
	if err != nil {
		return 0, 0, n, err
	}
	length, n, err = parseField(b, n, int(b[0]&0x0f))
	if err != nil {
		return 0, 0, n, err
	}
	return delta, length, n, nil
}

func parseField(b []byte, n, nibble int) (int, int, error) {
	switch nibble {
	case ext8Nibble:
		if len(b) < n+1 {
			return 0, n, ErrTruncated
		}
		return int(b[n]) + ext8Base, n + 1, nil
	case ext16Nibble:
		if len(b) < n+2 {
			return 0, n, ErrTruncated
		}
		return int(binary.BigEndian.Uint16(b[n:])) + ext16Base, n + 2, nil
	case reserved:
		return 0, n, ErrReservedNibble
	}
	return nibble, n, nil
}

type encodeWriter interface {
	io.Writer
	io.ByteWriter
}

type decodeReader interface {
	io.Reader
	io.ByteReader
}

// Encoder writes the options of one message. It tracks the number of
// the last written option, so options must be passed in ascending
// number order. Each option goes to the writer in a single Write; after
// a write error the output no longer matches Last and the encoder should
// be discarded.
type Encoder struct {
	w    encodeWriter
	last Number
	buf  []byte
}

func NewEncoder(w encodeWriter) *Encoder {
	return &Encoder{w: w, buf: make([]byte, 0, 64)}
}

// Last returns the number of the last encoded option.
func (e *Encoder) Last() Number {
	return e.last
}

// Encode writes the header and the value of o.
func (e *Encoder) Encode(o Option) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()

	buf, last, err := AppendOption(e.buf[:0], e.last, o)
	if err != nil {
		return err
	}
	e.buf = buf[:0]
	e.write(buf)
	e.last = last
	return nil
}

func (e *Encoder) write(p []byte) {
	if len(p) <= 0 {
		return
	}
	if _, err := e.w.Write(p); err != nil {
		panic(err)
	}
}

// Decoder reads the options of one message and recovers absolute
// option numbers from the deltas.
type Decoder struct {
	r    decodeReader
	last Number
}

func NewDecoder(r decodeReader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads the next option. It returns io.EOF at the end of the
// input and ErrPayloadMarker once the payload marker has been consumed.
func (d *Decoder) Decode() (n Number, value []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()

	flag, err := d.r.ReadByte()
	if err != nil {
		return 0, nil, err
	}
	if flag == PayloadMarker {
		return 0, nil, ErrPayloadMarker
	}
	delta := d.decodeField(int(flag >> 4))
	length := d.decodeField(int(flag & 0x0f))
	abs := int(d.last) + delta
	if abs > 0xffff {
		return 0, nil, Error{
			Op:      "decode",
			Number:  d.last,
			Cause:   ErrMessageFormat,
			Details: fmt.Sprintf("delta %d overflows option number", delta),
		}
	}
	value = d.readValue(length)
	d.last = Number(abs)
	return d.last, value, nil
}

func (d *Decoder) decodeField(nibble int) int {
	switch nibble {
	case ext8Nibble:
		return int(d.readByte()) + ext8Base
	case ext16Nibble:
		var b [2]byte
		d.readFull(b[:])
		return int(binary.BigEndian.Uint16(b[:])) + ext16Base
	case reserved:
		panic(Error{Op: "decode", Number: d.last, Cause: ErrReservedNibble})
	}
	return nibble
}

func (d *Decoder) readValue(n int) []byte {
	if n <= 0 {
		return nil
	}
	value := make([]byte, n)
	d.readFull(value)
	return value
}

func (d *Decoder) readByte() byte {
	c, err := d.r.ReadByte()
	if err != nil {
		panic(truncated(d.last, err))
	}
	return c
}

func (d *Decoder) readFull(b []byte) {
	if _, err := io.ReadFull(d.r, b); err != nil {
		panic(truncated(d.last, err))
	}
}

func truncated(last Number, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return Error{Op: "decode", Number: last, Cause: ErrTruncated}
	}
	return err
}
