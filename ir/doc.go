// Package ir defines the generic value tree that the encode and decode
// engines operate on.
//
// # Overview
//
// A Node is a closed recursive tagged union over the six generic kinds an
// application value can take: null, boolean, number, string, array and
// object. Whatever Go value an application holds is first mapped onto this
// tree (see package gomap), and the tree is what gets encoded to, or
// decoded from, the store's tagged attribute representation.
//
// Keeping the union closed (rather than working on interface{} directly)
// keeps both engines exhaustive and statically checkable: a switch over
// Node.Type covers every case the bridge can ever see.
//
// # Node Structure
//
// The Type field selects which of the payload fields is meaningful:
//
//   - NullType: no payload
//   - BoolType: Bool
//   - NumberType: exactly one of Int64, Float64, or Number
//   - StringType: String
//   - ArrayType: Values, in order
//   - ObjectType: Keys[i] names Values[i]
//
// # Numbers
//
// Numbers carry their value in exactly one of three places:
//
//   - Int64: integers representable in 64 bits
//   - Float64: floating point values
//   - Number: canonical decimal text, for values neither of the above can
//     hold exactly (the store accepts numbers far wider than int64)
//
// The decimal-text fallback is what lets an integral wire number wider
// than int64 survive a decode/encode round trip without loss.
//
// # Objects
//
// Object keys are always strings and always unique. FromMap produces keys
// in sorted order so that trees built from Go maps are deterministic;
// Equal and Compare treat key order as significant, so producers should
// build objects through FromMap (or otherwise in sorted order) when trees
// will be compared.
//
// # Creating Nodes
//
// Use the constructor functions:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	obj := ir.FromMap(map[string]*ir.Node{
//	    "key": ir.FromString("value"),
//	})
//	arr := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
//
// Nodes are freshly constructed per call and owned by whoever holds them;
// nothing in this package shares mutable state across calls.
package ir
