package gomap

import "fmt"

// MarshalError represents an error during conversion to a value tree.
type MarshalError struct {
	FieldPath string // Field path (e.g., "person.address.street")
	Message   string
	Err       error
}

func (e *MarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// UnmarshalError represents an error during conversion from a value tree.
type UnmarshalError struct {
	FieldPath string
	Message   string
	Err       error
}

func (e *UnmarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("unmarshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

// UnsupportedKeyError reports a map whose key type the wire format cannot
// carry; only string keys are representable.
type UnsupportedKeyError struct {
	FieldPath string
	KeyType   string
}

func (e *UnsupportedKeyError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("unsupported map key type %s at %s: keys must be strings", e.KeyType, e.FieldPath)
	}
	return fmt.Sprintf("unsupported map key type %s: keys must be strings", e.KeyType)
}
