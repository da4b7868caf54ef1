// Package sentinel implements the empty-string workaround shared by the
// encode and decode engines.
//
// The store rejects zero-length strings outright, and its only "empty"
// representation (a typed null) carries no payload-type information, so a
// null cannot record that the missing value used to be a string. Both
// engines instead agree on a fixed one-byte payload: an empty string is
// written as a string value holding a single NUL byte, and a string value
// holding exactly that byte reads back as the empty string.
//
// This is a deliberate, documented lossy workaround rather than a
// bijection: a genuine one-NUL string is indistinguishable on read from
// an encoded empty string. Strings that merely contain the NUL byte as
// part of longer content pass through untouched.
package sentinel

// Empty is the payload written in place of a logically empty string: the
// single control byte conventionally meaning "absence" in text.
const Empty = "\x00"

// Encode maps the empty string to the sentinel payload and leaves every
// other string alone.
func Encode(s string) string {
	if s == "" {
		return Empty
	}
	return s
}

// Decode maps the exact sentinel payload back to the empty string and
// leaves every other string alone.
func Decode(s string) string {
	if s == Empty {
		return ""
	}
	return s
}

// IsEncoded reports whether s is the canonical encoding of an empty
// string.
func IsEncoded(s string) bool {
	return s == Empty
}
