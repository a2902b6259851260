// Package des implements the Data Encryption Standard (FIPS 46-3) on top of
// the generic Feistel network.
package des

import (
	"encoding/binary"
	"fmt"

	"github.com/vomar3/blockcipher/feistel"
	"github.com/vomar3/blockcipher/interfaces"
	"github.com/vomar3/blockcipher/permutations"
)

const (
	BlockSize = 8
	KeySize   = 8
	Rounds    = 16
)

// KeySchedule holds the sixteen 48-bit round keys in encryption order.
type KeySchedule [Rounds]uint64

var network = newNetwork()

func newNetwork() *feistel.Network {
	n, err := feistel.NewNetwork(feistel.RoundFunc(roundFunction), Rounds)
	if err != nil {
		panic(err)
	}
	return n
}

// roundFunction is F(R, K): expand to 48 bits, mix in the round key, run the
// eight S-boxes and apply P.
func roundFunction(right uint32, roundKey uint64) uint32 {
	expanded := permutations.Uint64(uint64(right), 32, expansion) ^ roundKey

	var substituted uint32
	for i := 0; i < 8; i++ {
		six := byte(expanded>>(42-6*i)) & 0x3f
		row := (six&0x20)>>4 | six&0x01
		col := (six >> 1) & 0x0f
		substituted = substituted<<4 | uint32(sBoxes[i][row][col])
	}

	return uint32(permutations.Uint64(uint64(substituted), 32, roundPermutation))
}

func rotate28(x uint32, n uint) uint32 {
	return (x<<n | x>>(28-n)) & 0x0fffffff
}

// ExpandKey derives the round keys from an 8-byte key. Parity bits are
// ignored.
func ExpandKey(key []byte) (KeySchedule, error) {
	var ks KeySchedule
	if len(key) != KeySize {
		return ks, interfaces.KeySizeError(len(key))
	}

	permuted, err := permutations.Bytes(key, permutedChoice1, permutations.HighToLow, permutations.FirstBit)
	if err != nil {
		return ks, fmt.Errorf("des: PC-1 failed: %w", err)
	}

	var cd uint64
	for _, b := range permuted {
		cd = cd<<8 | uint64(b)
	}

	c, d := uint32(cd>>28), uint32(cd&0x0fffffff)
	for i := 0; i < Rounds; i++ {
		c = rotate28(c, rotationSchedule[i])
		d = rotate28(d, rotationSchedule[i])
		ks[i] = permutations.Uint64(uint64(c)<<28|uint64(d), 56, permutedChoice2)
	}

	return ks, nil
}

func (ks *KeySchedule) crypt(block uint64, decrypt bool) uint64 {
	block = permutations.Uint64(block, 64, initialPermutation)
	left, right := uint32(block>>32), uint32(block)

	if decrypt {
		left, right = network.Decrypt(left, right, ks[:])
	} else {
		left, right = network.Encrypt(left, right, ks[:])
	}

	return permutations.Uint64(uint64(left)<<32|uint64(right), 64, finalPermutation)
}

// Cipher is a DES instance with an expanded key.
type Cipher struct {
	subkeys KeySchedule
}

var _ interfaces.BlockCipher = (*Cipher)(nil)

func NewCipher(key []byte) (*Cipher, error) {
	ks, err := ExpandKey(key)
	if err != nil {
		return nil, err
	}
	return &Cipher{subkeys: ks}, nil
}

func (c *Cipher) BlockSize() int { return BlockSize }

// EncryptBlock encrypts one block held as a big-endian integer.
func (c *Cipher) EncryptBlock(block uint64) uint64 {
	return c.subkeys.crypt(block, false)
}

// DecryptBlock decrypts one block held as a big-endian integer.
func (c *Cipher) DecryptBlock(block uint64) uint64 {
	return c.subkeys.crypt(block, true)
}

func (c *Cipher) Encrypt(dst, src []byte) {
	checkBlock(dst, src)
	binary.BigEndian.PutUint64(dst, c.EncryptBlock(binary.BigEndian.Uint64(src)))
}

func (c *Cipher) Decrypt(dst, src []byte) {
	checkBlock(dst, src)
	binary.BigEndian.PutUint64(dst, c.DecryptBlock(binary.BigEndian.Uint64(src)))
}

func checkBlock(dst, src []byte) {
	if len(src) < BlockSize {
		panic("des: input not full block")
	}
	if len(dst) < BlockSize {
		panic("des: output not full block")
	}
}
