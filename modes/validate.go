package modes

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// validate checks the context for op and collects every failure. It neither
// allocates output nor touches the context.
func validate(ctx *CipherContext, op direction) *multierror.Error {
	var result *multierror.Error
	id := ctx.Identifier

	if !id.Algorithm.Valid() {
		result = multierror.Append(result, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, id.Algorithm))
	}
	if !id.Mode.Valid() {
		result = multierror.Append(result, fmt.Errorf("%w: %s", ErrUnknownMode, id.Mode))
	}

	if id.Algorithm.Valid() {
		switch want := id.Algorithm.KeySize(); {
		case len(ctx.Key) == 0:
			result = multierror.Append(result, ErrKeyEmpty)
		case len(ctx.Key) != want:
			result = multierror.Append(result, fmt.Errorf("%w: got %d bytes, want %d", ErrKeySize, len(ctx.Key), want))
		}
	}

	if !id.Valid() {
		return result
	}

	bs := id.Algorithm.BlockSize()

	if op == decrypt && !id.Mode.Stream() {
		switch {
		case len(ctx.Ciphertext) == 0:
			result = multierror.Append(result, ErrCiphertextEmpty)
		case len(ctx.Ciphertext)%bs != 0:
			result = multierror.Append(result, fmt.Errorf("%w: got %d bytes, block size %d", ErrCiphertextNotAligned, len(ctx.Ciphertext), bs))
		}
	}

	switch id.Mode {
	case CBC, CFB, CFB1, CFB8, OFB:
		switch {
		case len(ctx.IV) == 0:
			result = multierror.Append(result, ErrIVEmpty)
		case len(ctx.IV) != bs:
			result = multierror.Append(result, fmt.Errorf("%w: got %d bytes, want %d", ErrIVSize, len(ctx.IV), bs))
		}
	case CTR:
		switch {
		case len(ctx.Nonce) == 0:
			result = multierror.Append(result, ErrNonceEmpty)
		case len(ctx.Nonce) != bs:
			result = multierror.Append(result, fmt.Errorf("%w: got %d bytes, want %d", ErrNonceSize, len(ctx.Nonce), bs))
		}
	}

	return result
}
