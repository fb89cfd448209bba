package imagepkg

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors returned by Sample and Render. Match them with errors.Is; the
// returned values carry extra context.
var (
	ErrEmptyImage    = errors.New("empty image")
	ErrInvalidRatio  = errors.New("invalid ratio")
	ErrInvalidInput  = errors.New("invalid input")
	ErrEncodeFailure = errors.New("encode failure")
)

// encodeError keeps the encoder's own error reachable while still matching
// ErrEncodeFailure.
type encodeError struct {
	format Format
	err    error
}

func (e *encodeError) Error() string {
	return fmt.Sprintf("encode failure: %s: %v", e.format, e.err)
}

func (e *encodeError) Is(target error) bool { return target == ErrEncodeFailure }

func (e *encodeError) Unwrap() error { return e.err }
