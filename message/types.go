package message

import "fmt"

// Type is the message type carried in bits 4-5 of the first header byte.
type Type uint8

// message types
const (
	CON Type = 0
	NON Type = 1
	ACK Type = 2
	RST Type = 3
)

var typeNames = [4]string{
	CON: "Confirmable",
	NON: "NonConfirmable",
	ACK: "Acknowledgement",
	RST: "Reset",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Unknown (0x%x)", uint8(t))
}

// Code is the class.detail code of a message.
type Code uint8

// Request Codes
const (
	GET    Code = 0<<5 | 1
	POST   Code = 0<<5 | 2
	PUT    Code = 0<<5 | 3
	DELETE Code = 0<<5 | 4
)

// Responses Codes
const (
	Created  Code = 2<<5 | 1
	Deleted  Code = 2<<5 | 2
	Valid    Code = 2<<5 | 3
	Changed  Code = 2<<5 | 4
	Content  Code = 2<<5 | 5
	Continue Code = 2<<5 | 31

	BadRequest               Code = 4<<5 | 0
	Unauthorized             Code = 4<<5 | 1
	BadOption                Code = 4<<5 | 2
	Forbidden                Code = 4<<5 | 3
	NotFound                 Code = 4<<5 | 4
	MethodNotAllowed         Code = 4<<5 | 5
	NotAcceptable            Code = 4<<5 | 6
	RequestEntityIncomplete  Code = 4<<5 | 8
	PreconditionFailed       Code = 4<<5 | 12
	RequestEntityTooLarge    Code = 4<<5 | 13
	UnsupportedContentFormat Code = 4<<5 | 15

	InternalServerError  Code = 5<<5 | 0
	NotImplemented       Code = 5<<5 | 1
	BadGateway           Code = 5<<5 | 2
	ServiceUnavailable   Code = 5<<5 | 3
	GatewayTimeout       Code = 5<<5 | 4
	ProxyingNotSupported Code = 5<<5 | 5
)

var codeNames = [256]string{
	GET:                      "GET",
	POST:                     "POST",
	PUT:                      "PUT",
	DELETE:                   "DELETE",
	Created:                  "Created",
	Deleted:                  "Deleted",
	Valid:                    "Valid",
	Changed:                  "Changed",
	Content:                  "Content",
	Continue:                 "Continue",
	BadRequest:               "BadRequest",
	Unauthorized:             "Unauthorized",
	BadOption:                "BadOption",
	Forbidden:                "Forbidden",
	NotFound:                 "NotFound",
	MethodNotAllowed:         "MethodNotAllowed",
	NotAcceptable:            "NotAcceptable",
	RequestEntityIncomplete:  "RequestEntityIncomplete",
	PreconditionFailed:       "PreconditionFailed",
	RequestEntityTooLarge:    "RequestEntityTooLarge",
	UnsupportedContentFormat: "UnsupportedContentFormat",
	InternalServerError:      "InternalServerError",
	NotImplemented:           "NotImplemented",
	BadGateway:               "BadGateway",
	ServiceUnavailable:       "ServiceUnavailable",
	GatewayTimeout:           "GatewayTimeout",
	ProxyingNotSupported:     "ProxyingNotSupported",
}

func init() {
	for i := range codeNames {
		if codeNames[i] == "" {
			codeNames[i] = fmt.Sprintf("Unknown (%d.%02d)", i>>5, i&0x1f)
		}
	}
}

func (c Code) String() string {
	return codeNames[c]
}

// Class returns the class part of the code, 0 for requests.
func (c Code) Class() uint8 {
	return uint8(c) >> 5
}

// Detail returns the detail part of the code.
func (c Code) Detail() uint8 {
	return uint8(c) & 0x1f
}

// ParseCode parses a code given either by name ("GET", "Content") or in
// dotted form ("2.05").
func ParseCode(s string) (Code, bool) {
	for i, name := range codeNames {
		if name == s {
			return Code(i), true
		}
	}
	var class, detail uint8
	if n, err := fmt.Sscanf(s, "%d.%d", &class, &detail); err != nil || n != 2 || class > 7 || detail > 31 {
		return 0, false
	}
	return Code(class<<5 | detail), true
}
