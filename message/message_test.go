package message

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ironzhang/coapopt/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOptions(opts ...option.Option) *option.Options {
	o := option.NewOptions()
	for _, opt := range opts {
		o.Push(opt)
	}
	return o
}

func TestMessageMarshal(t *testing.T) {
	tests := []struct {
		msg  Message
		data []byte
	}{
		{
			msg:  Message{Type: CON, Code: GET, MessageID: 1},
			data: []byte{0x40, 0x01, 0x00, 0x01},
		},
		{
			msg:  Message{Type: ACK, Code: Content, MessageID: 0x1234, Token: []byte{0xa, 0xb}},
			data: []byte{0x62, 0x45, 0x12, 0x34, 0x0a, 0x0b},
		},
		{
			msg: Message{
				Type:      NON,
				Code:      POST,
				MessageID: 2,
				Options:   newOptions(option.NewContentFormat(option.AppJSON), option.NewURIPath("a")),
				Payload:   []byte("{}"),
			},
			data: []byte{0x50, 0x02, 0x00, 0x02, 0xb1, 'a', 0x11, 50, 0xff, '{', '}'},
		},
	}
	for i, tt := range tests {
		data, err := tt.msg.Marshal()
		if err != nil {
			t.Errorf("case%d: marshal: %v", i, err)
			continue
		}
		if got, want := data, tt.data; !reflect.DeepEqual(got, want) {
			t.Errorf("case%d: got(%x) != want(%x)", i, got, want)
		}
	}
}

func TestMessageMarshalErrors(t *testing.T) {
	tests := []Message{
		{Token: make([]byte, 9)},
		{Type: 4},
		{Options: newOptions(option.Unknown(2, make([]byte, option.MaxExtended)))},
	}
	for i, m := range tests {
		if _, err := m.Marshal(); err == nil {
			t.Errorf("case%d: marshal succeeded", i)
		}
	}
}

func TestMessageRoundTrip(t *testing.T) {
	m := Message{
		Type:      CON,
		Code:      PUT,
		MessageID: 0xbeef,
		Token:     []byte{1, 2, 3, 4, 5, 6, 7, 8},
		Payload:   []byte("hello"),
	}
	m.Opts().Push(option.NewURIHost("example.com"))
	m.Opts().SetPath("/sensors/temp")
	m.Opts().Push(option.NewURIQuery("unit=c"))
	m.Opts().Push(option.NewObserve(0))
	m.Opts().Push(option.Unknown(2048, []byte{0xca, 0xfe}))

	data, err := m.Marshal()
	require.NoError(t, err)

	var got Message
	require.NoError(t, got.Unmarshal(data))
	assert.Equal(t, m.Type, got.Type)
	assert.Equal(t, m.Code, got.Code)
	assert.Equal(t, m.MessageID, got.MessageID)
	assert.Equal(t, m.Token, got.Token)
	assert.Equal(t, m.Payload, got.Payload)
	assert.True(t, m.Options.Equal(got.Options))
	assert.Equal(t, "/sensors/temp", got.Options.Path())
	assert.Equal(t, "Confirmable,PUT,48879,0102030405060708", got.String())
}

func TestMessageUnmarshal(t *testing.T) {
	var m Message
	data := []byte{0x41, 0x01, 0x00, 0x07, 0x99, 0xb1, 0xff, 0x51, 'x', 0xff, 'p'}
	require.NoError(t, m.Unmarshal(data))
	assert.Equal(t, CON, m.Type)
	assert.Equal(t, GET, m.Code)
	assert.EqualValues(t, 7, m.MessageID)
	assert.Equal(t, []byte{0x99}, m.Token)
	assert.Equal(t, []byte("p"), m.Payload)

	var opts []option.Option
	for o := range m.Options.All() {
		opts = append(opts, o)
	}
	require.Len(t, opts, 2)
	assert.True(t, opts[0].IsUnknown())
	assert.Equal(t, option.URIPath, opts[0].Number)
	assert.Equal(t, option.Number(16), opts[1].Number)
}

func TestMessageUnmarshalErrors(t *testing.T) {
	tests := []struct {
		data []byte
		cfg  Config
		err  error
	}{
		{data: []byte{0x40, 0x01, 0x00}, err: ErrShortPacket},
		{data: []byte{0x80, 0x01, 0x00, 0x01}, err: option.ErrMessageFormat},
		{data: []byte{0x49, 0x01, 0x00, 0x01}, err: option.ErrMessageFormat},
		{data: []byte{0x42, 0x01, 0x00, 0x01, 0x01}, err: option.ErrTruncated},
		{data: []byte{0x40, 0x01, 0x00, 0x01, 0xff}, err: option.ErrMessageFormat},
		{data: []byte{0x40, 0x01, 0x00, 0x01, 0xf0}, err: option.ErrReservedNibble},
		{data: []byte{0x40, 0x01, 0x00, 0x01, 0xb3, 'a'}, err: option.ErrTruncated},
		{data: []byte{0x40, 0x01, 0x00, 0x01, 0xb1, 0xff}, cfg: Config{Strict: true}, err: option.ErrMessageFormat},
		{data: []byte{0x40, 0x01, 0x00, 0x01, 0xb1, 'a', 0x01, 'b'}, cfg: Config{MaxOptions: 1}, err: ErrTooManyOptions},
	}
	for i, tt := range tests {
		opts := option.NewOptions()
		opts.Push(option.NewMaxAge(30))
		m := Message{Type: ACK, Code: Content, MessageID: 9, Token: []byte{1}, Options: opts, Payload: []byte("old")}
		err := m.UnmarshalWithConfig(tt.data, tt.cfg)
		if !errors.Is(err, tt.err) {
			t.Errorf("case%d: %v != %v", i, err, tt.err)
		}
		if m.Type != ACK || m.Code != Content || m.MessageID != 9 {
			t.Errorf("case%d: header modified: %v %v %d", i, m.Type, m.Code, m.MessageID)
		}
		if !reflect.DeepEqual(m.Token, []byte{1}) || !reflect.DeepEqual(m.Payload, []byte("old")) {
			t.Errorf("case%d: token or payload modified: %x %q", i, m.Token, m.Payload)
		}
		if m.Options != opts || opts.Len() != 1 {
			t.Errorf("case%d: options modified", i)
		}
	}
}

func TestMessageUnmarshalLenient(t *testing.T) {
	var m Message
	err := m.UnmarshalWithConfig([]byte{0x40, 0x01, 0x00, 0x01, 0xb1, 'a', 0x01, 'b'}, Config{MaxOptions: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, optionStrings(m.Options, option.URIPath))
}

func optionStrings(opts *option.Options, n option.Number) []string {
	var ss []string
	for _, o := range opts.GetAll(n) {
		s, _ := o.AsString()
		ss = append(ss, s)
	}
	return ss
}

func TestCodeString(t *testing.T) {
	tests := []struct {
		code  Code
		str   string
		class uint8
	}{
		{GET, "GET", 0},
		{Content, "Content", 2},
		{NotFound, "NotFound", 4},
		{Code(7<<5 | 1), "Unknown (7.01)", 7},
	}
	for i, tt := range tests {
		if got, want := tt.code.String(), tt.str; got != want {
			t.Errorf("case%d: %q != %q", i, got, want)
		}
		if got, want := tt.code.Class(), tt.class; got != want {
			t.Errorf("case%d: class %d != %d", i, got, want)
		}
	}
}

func TestParseCode(t *testing.T) {
	tests := []struct {
		s    string
		code Code
		ok   bool
	}{
		{"GET", GET, true},
		{"Content", Content, true},
		{"2.05", Content, true},
		{"4.04", NotFound, true},
		{"8.00", 0, false},
		{"bogus", 0, false},
	}
	for i, tt := range tests {
		code, ok := ParseCode(tt.s)
		if ok != tt.ok || code != tt.code {
			t.Errorf("case%d: %q: (%s,%v) != (%s,%v)", i, tt.s, code, ok, tt.code, tt.ok)
		}
	}
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "Acknowledgement", ACK.String())
	assert.Equal(t, "Unknown (0x9)", Type(9).String())
}
