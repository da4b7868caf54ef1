package encode

import (
	"fmt"

	"github.com/dynamap/dynamap/ir"
)

// NumberOutOfRangeError reports a numeric value that cannot be
// represented in the store's supported precision and range.
type NumberOutOfRangeError struct {
	Value string
}

func (e *NumberOutOfRangeError) Error() string {
	return fmt.Sprintf("number out of range: %q", e.Value)
}

// ItemTypeError reports an attempt to encode a non-object node as a
// top-level record.
type ItemTypeError struct {
	Actual ir.Type
}

func (e *ItemTypeError) Error() string {
	return fmt.Sprintf("item must be an object, got %s", e.Actual)
}
