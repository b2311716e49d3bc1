// Package option implements the options of a CoAP message (RFC 7252
// section 3.1 and 5.10): the delta/length header codec, the registry of
// option formats, typed option values and the ordered option set.
//
// Decoding comes in two flavours. FromRaw never fails and keeps values
// that do not match their registered format as unknown options. Parse
// rejects them with an error wrapping ErrMessageFormat.
package option
