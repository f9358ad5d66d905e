package enrichment

import (
	"errors"
	"fmt"
)

// Contract violations. Both signal a caller or data bug and are distinct
// from an unknown code, which is passed through without error.
var (
	// ErrPrecondition indicates the configured key is absent from a document.
	ErrPrecondition = errors.New("missing required field")

	// ErrMalformedInput indicates the key's value does not start with a <...> token.
	ErrMalformedInput = errors.New("malformed department code")
)

// DocumentError locates a contract violation within a batch.
type DocumentError struct {
	Index int
	Key   string
	Value any
	Err   error
}

func (e *DocumentError) Error() string {
	if errors.Is(e.Err, ErrPrecondition) {
		return fmt.Sprintf("document %d: %v: key %q not found", e.Index, e.Err, e.Key)
	}
	return fmt.Sprintf("document %d: %v: key %q has value %v", e.Index, e.Err, e.Key, e.Value)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
