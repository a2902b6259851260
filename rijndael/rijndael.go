// Package rijndael implements AES (FIPS-197) with 128-bit blocks and 128,
// 192 or 256-bit keys. The S-boxes and MixColumns multiplication tables are
// derived from GF(2^8) arithmetic when the package is initialised.
package rijndael

import (
	"encoding/binary"

	"github.com/vomar3/blockcipher/gf28"
	"github.com/vomar3/blockcipher/interfaces"
)

const BlockSize = 16

var (
	sbox, invSbox                         [256]byte
	mul2, mul3, mul9, mul11, mul13, mul14 [256]byte
	rcon                                  [10]uint32
)

func init() {
	field, err := gf28.New(gf28.AESModulus)
	if err != nil {
		panic(err)
	}

	for i := 0; i < 256; i++ {
		b := byte(i)

		var inv byte
		if b != 0 {
			if inv, err = field.Inverse(b); err != nil {
				panic(err)
			}
		}
		s := affineTransform(inv)
		sbox[b] = s
		invSbox[s] = b

		mul2[b] = field.Multiply(b, 0x02)
		mul3[b] = field.Multiply(b, 0x03)
		mul9[b] = field.Multiply(b, 0x09)
		mul11[b] = field.Multiply(b, 0x0b)
		mul13[b] = field.Multiply(b, 0x0d)
		mul14[b] = field.Multiply(b, 0x0e)
	}

	r := byte(0x01)
	for i := range rcon {
		rcon[i] = uint32(r) << 24
		r = mul2[r]
	}
}

// affineTransform is the S-box affine map over GF(2) applied after inversion.
func affineTransform(b byte) byte {
	result := byte(0x63)
	for i := 0; i < 8; i++ {
		bit := (b>>i)&1 ^ (b>>((i+4)%8))&1 ^ (b>>((i+5)%8))&1 ^
			(b>>((i+6)%8))&1 ^ (b>>((i+7)%8))&1
		result ^= bit << i
	}
	return result
}

func subWord(w uint32) uint32 {
	return uint32(sbox[w>>24])<<24 | uint32(sbox[w>>16&0xff])<<16 |
		uint32(sbox[w>>8&0xff])<<8 | uint32(sbox[w&0xff])
}

func rotWord(w uint32) uint32 {
	return w<<8 | w>>24
}

// Cipher is an AES instance with its expanded key.
type Cipher struct {
	rounds int
	words  []uint32
}

var _ interfaces.BlockCipher = (*Cipher)(nil)

func NewCipher(key []byte) (*Cipher, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, interfaces.KeySizeError(len(key))
	}

	nk := len(key) / 4
	c := &Cipher{rounds: nk + 6}
	c.words = expandKey(key, nk, c.rounds)
	return c, nil
}

// expandKey returns the 4*(rounds+1) round-key words.
func expandKey(key []byte, nk, rounds int) []uint32 {
	w := make([]uint32, 4*(rounds+1))
	for i := 0; i < nk; i++ {
		w[i] = binary.BigEndian.Uint32(key[4*i:])
	}

	for i := nk; i < len(w); i++ {
		t := w[i-1]
		switch {
		case i%nk == 0:
			t = subWord(rotWord(t)) ^ rcon[i/nk-1]
		case nk > 6 && i%nk == 4:
			t = subWord(t)
		}
		w[i] = w[i-nk] ^ t
	}
	return w
}

func (c *Cipher) BlockSize() int { return BlockSize }

// Rounds returns Nr: 10, 12 or 14.
func (c *Cipher) Rounds() int { return c.rounds }

func (c *Cipher) Encrypt(dst, src []byte) {
	checkBlock(dst, src)

	var s state
	s.load(src)
	s.addRoundKey(c.words[0:4])

	for round := 1; round < c.rounds; round++ {
		s.subBytes(&sbox)
		s.shiftRows()
		s.mixColumns()
		s.addRoundKey(c.words[4*round : 4*round+4])
	}

	s.subBytes(&sbox)
	s.shiftRows()
	s.addRoundKey(c.words[4*c.rounds:])
	s.store(dst)
}

func (c *Cipher) Decrypt(dst, src []byte) {
	checkBlock(dst, src)

	var s state
	s.load(src)
	s.addRoundKey(c.words[4*c.rounds:])

	for round := c.rounds - 1; round >= 1; round-- {
		s.invShiftRows()
		s.subBytes(&invSbox)
		s.addRoundKey(c.words[4*round : 4*round+4])
		s.invMixColumns()
	}

	s.invShiftRows()
	s.subBytes(&invSbox)
	s.addRoundKey(c.words[0:4])
	s.store(dst)
}

func checkBlock(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}
}
