package modes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/vomar3/blockcipher/padding"
)

var (
	ErrNilContext           = errors.New("context is nil")
	ErrKeyEmpty             = errors.New("key is empty")
	ErrKeySize              = errors.New("key length does not match the algorithm")
	ErrCiphertextEmpty      = errors.New("ciphertext is empty")
	ErrCiphertextNotAligned = errors.New("ciphertext should be a multiple of the block size")
	ErrIVEmpty              = errors.New("IV is empty")
	ErrIVSize               = errors.New("IV should be equal to the block size")
	ErrNonceEmpty           = errors.New("nonce is empty")
	ErrNonceSize            = errors.New("nonce should be equal to the block size")
	ErrUnknownAlgorithm     = errors.New("unknown algorithm")
	ErrUnknownMode          = errors.New("unknown mode")
	ErrInvalidBlockSize     = padding.ErrInvalidBlockSize
	ErrInvalidPadding       = padding.ErrInvalidPadding
)

// ValidationError lists every problem found in a context before any work
// was done. errors.Is matches each of the collected sentinels.
type ValidationError struct {
	Op     string
	Cipher string
	errs   *multierror.Error
}

func newValidationError(op direction, id Identifier, errs *multierror.Error) *ValidationError {
	return &ValidationError{Op: op.String(), Cipher: id.String(), errs: errs}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.errs.Errors))
	for _, err := range e.errs.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%s %s: invalid context: %s", e.Cipher, e.Op, strings.Join(msgs, "; "))
}

// Errors returns the individual validation failures in the order found.
func (e *ValidationError) Errors() []error {
	return e.errs.WrappedErrors()
}

func (e *ValidationError) Unwrap() []error {
	return e.errs.WrappedErrors()
}
