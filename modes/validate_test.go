package modes

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilContext(t *testing.T) {
	_, err := Encrypt(nil)
	assert.ErrorIs(t, err, ErrNilContext)

	_, err = NewEngine().Decrypt(nil)
	assert.ErrorIs(t, err, ErrNilContext)
}

func TestValidation(t *testing.T) {
	key8 := bytes.Repeat([]byte{1}, 8)
	key16 := bytes.Repeat([]byte{2}, 16)
	iv8 := bytes.Repeat([]byte{3}, 8)
	iv16 := bytes.Repeat([]byte{4}, 16)

	tests := []struct {
		name    string
		decrypt bool
		ctx     CipherContext
		want    []error
	}{
		{
			name: "unknown algorithm and mode",
			ctx:  CipherContext{Identifier: Identifier{Algorithm: 77, Mode: 99}},
			want: []error{ErrUnknownAlgorithm, ErrUnknownMode},
		},
		{
			name: "unknown mode still checks key",
			ctx:  CipherContext{Identifier: Identifier{Algorithm: DES}},
			want: []error{ErrUnknownMode, ErrKeyEmpty},
		},
		{
			name: "empty key and IV",
			ctx:  CipherContext{Identifier: Identifier{Algorithm: AES128, Mode: CBC}},
			want: []error{ErrKeyEmpty, ErrIVEmpty},
		},
		{
			name: "key of another algorithm",
			ctx:  CipherContext{Identifier: Identifier{Algorithm: AES256, Mode: ECB}, Key: key16},
			want: []error{ErrKeySize},
		},
		{
			name: "short IV",
			ctx:  CipherContext{Identifier: Identifier{Algorithm: AES128, Mode: CFB8}, Key: key16, IV: iv8},
			want: []error{ErrIVSize},
		},
		{
			name: "long IV",
			ctx:  CipherContext{Identifier: Identifier{Algorithm: DES, Mode: OFB}, Key: key8, IV: iv16},
			want: []error{ErrIVSize},
		},
		{
			name: "CTR needs a nonce",
			ctx:  CipherContext{Identifier: Identifier{Algorithm: DES, Mode: CTR}, Key: key8, IV: iv8},
			want: []error{ErrNonceEmpty},
		},
		{
			name: "wrong nonce size",
			ctx:  CipherContext{Identifier: Identifier{Algorithm: TDESEDE2, Mode: CTR}, Key: key16, Nonce: iv16},
			want: []error{ErrNonceSize},
		},
		{
			name:    "empty ciphertext",
			decrypt: true,
			ctx:     CipherContext{Identifier: Identifier{Algorithm: DES, Mode: ECB}, Key: key8},
			want:    []error{ErrCiphertextEmpty},
		},
		{
			name:    "unaligned ciphertext",
			decrypt: true,
			ctx:     CipherContext{Identifier: Identifier{Algorithm: AES128, Mode: CBC}, Key: key16, IV: iv16, Ciphertext: make([]byte, 17)},
			want:    []error{ErrCiphertextNotAligned},
		},
		{
			name:    "everything wrong at once",
			decrypt: true,
			ctx:     CipherContext{Identifier: Identifier{Algorithm: TDESEDE3, Mode: CBC}, Key: key8, IV: iv16, Ciphertext: make([]byte, 9)},
			want:    []error{ErrKeySize, ErrCiphertextNotAligned, ErrIVSize},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.ctx
			before := tt.ctx

			run := Encrypt
			if tt.decrypt {
				run = Decrypt
			}

			out, err := run(&ctx)
			require.Error(t, err)
			assert.Nil(t, out)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Errors(), len(tt.want))
			for i, want := range tt.want {
				assert.ErrorIs(t, err, want)
				assert.ErrorIs(t, verr.Errors()[i], want)
			}

			// Nothing in the context moves, and a second attempt fails the
			// same way.
			if diff := cmp.Diff(before, ctx); diff != "" {
				t.Errorf("context changed (-before +after):\n%s", diff)
			}
			_, again := run(&ctx)
			assert.Equal(t, err.Error(), again.Error())
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	ctx := &CipherContext{Identifier: Identifier{Algorithm: AES128, Mode: CBC}}
	_, err := Encrypt(ctx)
	require.Error(t, err)
	assert.Equal(t, "aes-128-cbc encrypt: invalid context: key is empty; IV is empty", err.Error())
}

func TestStreamDecryptAcceptsAnyLength(t *testing.T) {
	ctx := &CipherContext{
		Identifier: mustParse(t, "des-cfb8"),
		Key:        bytes.Repeat([]byte{1}, 8),
		IV:         bytes.Repeat([]byte{2}, 8),
		Ciphertext: []byte{1, 2, 3},
	}
	out, err := Decrypt(ctx)
	require.NoError(t, err)
	assert.Len(t, out, 3)
}
