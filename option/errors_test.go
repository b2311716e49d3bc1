package option

import (
	"errors"
	"io"
	"testing"
)

func TestError(t *testing.T) {
	tests := []struct {
		err Error
		str string
	}{
		{
			err: Error{Op: "decode", Number: URIPath, Cause: io.EOF},
			str: "decode option 11(Uri-Path): EOF",
		},
		{
			err: Error{Op: "parse", Number: 2, Cause: ErrMessageFormat, Details: "length 9 not in [0,8]"},
			str: "parse option 2: message format error(length 9 not in [0,8])",
		},
	}
	for i, tt := range tests {
		if got, want := tt.err.Error(), tt.str; got != want {
			t.Errorf("case%d: %q != %q", i, got, want)
		}
		if !errors.Is(tt.err, tt.err.Cause) {
			t.Errorf("case%d: cause not unwrapped", i)
		}
	}
}

func TestIsInvariantViolation(t *testing.T) {
	tests := []struct {
		err error
		ok  bool
	}{
		{err: nil, ok: false},
		{err: ErrOutOfOrder, ok: true},
		{err: Error{Op: "encode", Cause: ErrDeltaTooLarge}, ok: true},
		{err: Error{Op: "encode", Cause: ErrValueTooLarge}, ok: true},
		{err: Error{Op: "parse", Cause: ErrMessageFormat}, ok: false},
		{err: ErrTruncated, ok: false},
	}
	for i, tt := range tests {
		if got, want := IsInvariantViolation(tt.err), tt.ok; got != want {
			t.Errorf("case%d: %v: %v != %v", i, tt.err, got, want)
		}
	}
}
