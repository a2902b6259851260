// Package tripledes composes three DES passes in the encrypt-decrypt-encrypt
// arrangement of NIST SP 800-67.
package tripledes

import (
	"encoding/binary"
	"fmt"

	"github.com/vomar3/blockcipher/des"
	"github.com/vomar3/blockcipher/interfaces"
)

const BlockSize = des.BlockSize

type Variant int

const (
	// EDE2 keys the third pass with k1 (16-byte key).
	EDE2 Variant = iota + 1
	// EDE3 uses three independent keys (24-byte key).
	EDE3
)

func (v Variant) String() string {
	switch v {
	case EDE2:
		return "EDE2"
	case EDE3:
		return "EDE3"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// KeySize returns the key length the variant expects.
func (v Variant) KeySize() int {
	switch v {
	case EDE2:
		return 2 * des.KeySize
	case EDE3:
		return 3 * des.KeySize
	default:
		return 0
	}
}

type Cipher struct {
	variant    Variant
	k1, k2, k3 *des.Cipher
}

var _ interfaces.BlockCipher = (*Cipher)(nil)

// NewCipher picks the variant from the key length: 16 bytes for EDE2, 24
// for EDE3.
func NewCipher(key []byte) (*Cipher, error) {
	switch len(key) {
	case EDE2.KeySize():
		return NewCipherVariant(EDE2, key)
	case EDE3.KeySize():
		return NewCipherVariant(EDE3, key)
	default:
		return nil, interfaces.KeySizeError(len(key))
	}
}

func NewCipherVariant(v Variant, key []byte) (*Cipher, error) {
	if v != EDE2 && v != EDE3 {
		return nil, fmt.Errorf("tripledes: unsupported variant %s", v)
	}
	if len(key) != v.KeySize() {
		return nil, interfaces.KeySizeError(len(key))
	}

	k1, err := des.NewCipher(key[:8])
	if err != nil {
		return nil, fmt.Errorf("tripledes: key 1: %w", err)
	}
	k2, err := des.NewCipher(key[8:16])
	if err != nil {
		return nil, fmt.Errorf("tripledes: key 2: %w", err)
	}

	k3 := k1
	if v == EDE3 {
		if k3, err = des.NewCipher(key[16:24]); err != nil {
			return nil, fmt.Errorf("tripledes: key 3: %w", err)
		}
	}

	return &Cipher{variant: v, k1: k1, k2: k2, k3: k3}, nil
}

func (c *Cipher) Variant() Variant { return c.variant }

func (c *Cipher) BlockSize() int { return BlockSize }

func (c *Cipher) EncryptBlock(block uint64) uint64 {
	block = c.k1.EncryptBlock(block)
	block = c.k2.DecryptBlock(block)
	return c.k3.EncryptBlock(block)
}

func (c *Cipher) DecryptBlock(block uint64) uint64 {
	block = c.k3.DecryptBlock(block)
	block = c.k2.EncryptBlock(block)
	return c.k1.DecryptBlock(block)
}

func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("tripledes: input not full block")
	}
	binary.BigEndian.PutUint64(dst, c.EncryptBlock(binary.BigEndian.Uint64(src)))
}

func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("tripledes: input not full block")
	}
	binary.BigEndian.PutUint64(dst, c.DecryptBlock(binary.BigEndian.Uint64(src)))
}
