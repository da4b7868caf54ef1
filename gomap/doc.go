// Package gomap converts between arbitrary Go values and the generic
// value trees of package ir.
//
// It is the serialization boundary of the bridge: application types enter
// and leave the encode/decode engines through this package. Conversion is
// reflection-based with zero setup, in the spirit of encoding/json:
//
//   - Only exported struct fields are processed; unexported fields are
//     ignored. Field matching is case-sensitive.
//   - Struct tags under the "dynamap" key rename fields ("name"), skip
//     them ("-"), or drop zero values ("name,omitempty").
//   - Types implementing Marshaler/Unmarshaler convert themselves.
//   - encoding.TextMarshaler/TextUnmarshaler are honored for leaf values
//     (time.Time, net.IP, uuid types and the like become strings).
//   - []byte converts to a string node: the generic model surfaces binary
//     as a string-like leaf, and Go strings hold arbitrary bytes.
//   - Map keys must be strings; any other key type fails with
//     UnsupportedKeyError before a tree is formed.
//
// Example usage:
//
//	person := Person{Name: "Alice", Age: 30}
//	node, err := gomap.ToIR(person)
//
//	var person2 Person
//	err = gomap.FromIR(node, &person2)
package gomap
