package message

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ironzhang/coapopt/option"
	"github.com/pkg/errors"
)

// message format
/*
	|       0       |       1       |       2       |       3       |
	|7 6 5 4 3 2 1 0|7 6 5 4 3 2 1 0|7 6 5 4 3 2 1 0|7 6 5 4 3 2 1 0|
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|Ver| T |  TKL  |      Code     |          Message ID           |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|   Token (if any, TKL bytes) ...
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|   Options (if any) ...
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|1 1 1 1 1 1 1 1|    Payload (if any) ...
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/

const (
	version     = 1
	headerLen   = 4
	maxTokenLen = 8
)

var (
	ErrShortPacket    = errors.New("short packet")
	ErrTooManyOptions = errors.New("too many options")
)

type fixHeader struct {
	Flags     uint8
	Code      uint8
	MessageID uint16
}

// Message is a CoAP message.
type Message struct {
	Type      Type
	Code      Code
	MessageID uint16
	Token     []byte
	Options   *option.Options
	Payload   []byte
}

func (m Message) String() string {
	if len(m.Token) <= 0 {
		return fmt.Sprintf("%s,%s,%d", m.Type, m.Code, m.MessageID)
	}
	return fmt.Sprintf("%s,%s,%d,%x", m.Type, m.Code, m.MessageID, m.Token)
}

// Opts returns the options of m, allocating them on first use.
func (m *Message) Opts() *option.Options {
	if m.Options == nil {
		m.Options = option.NewOptions()
	}
	return m.Options
}

func (m *Message) Marshal() ([]byte, error) {
	var err error
	var buf bytes.Buffer

	if len(m.Token) > maxTokenLen {
		return nil, errors.Errorf("token too long(%d)", len(m.Token))
	}
	if m.Type > RST {
		return nil, errors.Errorf("invalid message type(%d)", m.Type)
	}

	// header
	h := fixHeader{
		Flags:     version<<6 | uint8(m.Type)<<4 | uint8(len(m.Token)),
		Code:      uint8(m.Code),
		MessageID: m.MessageID,
	}
	if err = binary.Write(&buf, binary.BigEndian, h); err != nil {
		return nil, err
	}

	// token
	buf.Write(m.Token)

	// options
	if m.Options != nil {
		if err = m.Options.Encode(option.NewEncoder(&buf)); err != nil {
			return nil, errors.Wrap(err, "marshal options")
		}
	}

	// payload
	if len(m.Payload) > 0 {
		buf.WriteByte(option.PayloadMarker)
		buf.Write(m.Payload)
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes data with the default Config: option values that do
// not match their registered format are kept as unknown options.
func (m *Message) Unmarshal(data []byte) error {
	return m.UnmarshalWithConfig(data, Config{})
}

// UnmarshalWithConfig decodes data into m. On error m is left unchanged.
func (m *Message) UnmarshalWithConfig(data []byte, cfg Config) (err error) {
	if len(data) < headerLen {
		return ErrShortPacket
	}

	// header
	var h fixHeader
	if err = binary.Read(bytes.NewReader(data[:headerLen]), binary.BigEndian, &h); err != nil {
		return err
	}
	if v := h.Flags >> 6; v != version {
		return errors.Wrapf(option.ErrMessageFormat, "version %d", v)
	}
	data = data[headerLen:]

	// token
	tokenLen := int(h.Flags & 0x0f)
	if tokenLen > maxTokenLen {
		return errors.Wrapf(option.ErrMessageFormat, "token length %d", tokenLen)
	}
	if len(data) < tokenLen {
		return errors.Wrap(option.ErrTruncated, "token")
	}
	var token []byte
	if tokenLen > 0 {
		token = append([]byte(nil), data[:tokenLen]...)
	}
	data = data[tokenLen:]

	// options
	opts := option.NewOptions()
	var n int
	if cfg.Strict {
		n, err = opts.UnmarshalStrict(data)
	} else {
		n, err = opts.Unmarshal(data)
	}
	if err != nil {
		return errors.Wrap(err, "unmarshal options")
	}
	if cfg.MaxOptions > 0 && opts.Len() > cfg.MaxOptions {
		return errors.Wrapf(ErrTooManyOptions, "%d > %d", opts.Len(), cfg.MaxOptions)
	}
	data = data[n:]

	// payload
	var payload []byte
	if len(data) > 0 {
		if len(data) == 1 {
			return errors.Wrap(option.ErrMessageFormat, "payload marker followed by empty payload")
		}
		payload = append([]byte(nil), data[1:]...)
	}

	m.Type = Type(h.Flags>>4) & 0x3
	m.Code = Code(h.Code)
	m.MessageID = h.MessageID
	m.Token = token
	m.Options = opts
	m.Payload = payload
	return nil
}
