package decode

import "fmt"

// NumberParseError reports malformed decimal text in a number attribute.
type NumberParseError struct {
	Text string
	Err  error
}

func (e *NumberParseError) Error() string {
	return fmt.Sprintf("malformed number %q", e.Text)
}

func (e *NumberParseError) Unwrap() error {
	return e.Err
}

// UnexpectedTagError reports a structural mismatch between the tagged
// attribute received and any shape the decoder recognizes.
type UnexpectedTagError struct {
	Message string
}

func (e *UnexpectedTagError) Error() string {
	return fmt.Sprintf("unexpected attribute tag: %s", e.Message)
}
