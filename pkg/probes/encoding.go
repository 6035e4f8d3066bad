//go:build !noprobes
// +build !noprobes

package probes

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// EncodingError is the pending error the capture path sets on the calling
// thread when a string cannot be re-encoded. It is always discarded by the
// dispatcher's error-state guard before the interpreted program can see it.
type EncodingError struct {
	Encoding string // "fsdefault" or "utf-8"
	Reason   string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode string as %s: %s", e.Encoding, e.Reason)
}

// encodeFSDefault converts a source-file name to the platform's default
// filesystem encoding as a NUL-terminated byte sequence. On failure it sets
// a pending error on t and returns nil.
func encodeFSDefault(t Thread, s string) []byte {
	return encode(t, "fsdefault", s)
}

// encodeUTF8 converts a function name to NUL-terminated UTF-8 bytes under
// the same failure policy as encodeFSDefault.
func encodeUTF8(t Thread, s string) []byte {
	return encode(t, "utf-8", s)
}

// The filesystem default encoding on every platform reef targets is UTF-8,
// so both conversions share one implementation. A string fails to encode
// when it is not valid UTF-8 or when it contains an interior NUL, which the
// NUL-terminated delivery format cannot represent.
func encode(t Thread, encoding, s string) []byte {
	if !utf8.ValidString(s) {
		t.SetPendingError(&EncodingError{Encoding: encoding, Reason: "invalid code points"})
		return nil
	}
	if strings.IndexByte(s, 0) >= 0 {
		t.SetPendingError(&EncodingError{Encoding: encoding, Reason: "interior NUL byte"})
		return nil
	}

	b := make([]byte, len(s)+1)
	copy(b, s)
	b[len(s)] = 0
	return b
}
