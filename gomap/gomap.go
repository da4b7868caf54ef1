package gomap

import "github.com/dynamap/dynamap/ir"

// Marshaler is implemented by types that convert themselves to a value
// tree, overriding the reflection-based conversion.
type Marshaler interface {
	MarshalIR() (*ir.Node, error)
}

// Unmarshaler is implemented by types that populate themselves from a
// value tree, overriding the reflection-based conversion.
type Unmarshaler interface {
	UnmarshalIR(node *ir.Node) error
}
