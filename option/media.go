package option

import "fmt"

// MediaType is the value of the Content-Format and Accept options.
type MediaType uint16

// Content types.
const (
	TextPlain     MediaType = 0  // text/plain;charset=utf-8
	AppLinkFormat MediaType = 40 // application/link-format
	AppXML        MediaType = 41 // application/xml
	AppOctets     MediaType = 42 // application/octet-stream
	AppExi        MediaType = 47 // application/exi
	AppJSON       MediaType = 50 // application/json
	AppCBOR       MediaType = 60 // application/cbor
)

var mediaTypeNames = map[MediaType]string{
	TextPlain:     "text/plain;charset=utf-8",
	AppLinkFormat: "application/link-format",
	AppXML:        "application/xml",
	AppOctets:     "application/octet-stream",
	AppExi:        "application/exi",
	AppJSON:       "application/json",
	AppCBOR:       "application/cbor",
}

func (t MediaType) String() string {
	if name, ok := mediaTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MediaType(%d)", uint16(t))
}
