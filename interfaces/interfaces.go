package interfaces

import "strconv"

// BlockCipher is a keyed permutation over fixed-size blocks. The key
// schedule is computed once when the cipher is constructed.
type BlockCipher interface {
	// BlockSize returns the cipher's block size in bytes.
	BlockSize() int

	// Encrypt encrypts the first block in src into dst.
	// Dst and src must overlap entirely or not at all.
	Encrypt(dst, src []byte)

	// Decrypt decrypts the first block in src into dst.
	// Dst and src must overlap entirely or not at all.
	Decrypt(dst, src []byte)
}

// KeySizeError is returned by cipher constructors given a key of the wrong length.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "invalid key size " + strconv.Itoa(int(k))
}
