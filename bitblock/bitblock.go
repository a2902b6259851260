// Package bitblock treats a byte slice as a big-endian bit string.
//
// Bit 0 is the most significant bit of the first byte. Every operation
// works in place on the receiver and never touches bits outside the range
// it names, which is what the feedback modes rely on when they splice
// 1-bit and 8-bit segments in and out of a shift register.
package bitblock

// Block is a byte buffer addressed bit by bit. Its logical length in bits is
// always 8*len(b).
type Block []byte

// New returns a zeroed block of size bytes.
func New(size int) Block {
	return make(Block, size)
}

// Clone returns a copy of b.
func (b Block) Clone() Block {
	c := make(Block, len(b))
	copy(c, b)
	return c
}

// BitLen returns the number of addressable bits in b.
func (b Block) BitLen() int {
	return len(b) * 8
}

// Bit reports whether bit i is set.
func (b Block) Bit(i int) bool {
	return (b[i/8]>>(7-uint(i%8)))&1 == 1
}

// SetBit sets bit i to v.
func (b Block) SetBit(i int, v bool) {
	mask := byte(1) << (7 - uint(i%8))
	if v {
		b[i/8] |= mask
	} else {
		b[i/8] &^= mask
	}
}

// Xor stores a XOR b into dst over the shortest of the three lengths and
// returns the number of bytes written.
func Xor(dst, a, b Block) int {
	n := min(len(dst), len(a), len(b))
	for i := 0; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}
	return n
}

// LeftShift shifts the whole block left by n bits. Bits shifted out of the
// first byte are lost and vacated low bits are zero.
func (b Block) LeftShift(n int) {
	if n <= 0 {
		return
	}

	q, r := n/8, uint(n%8)
	if q >= len(b) {
		clear(b)
		return
	}

	if q > 0 {
		copy(b, b[q:])
		clear(b[len(b)-q:])
	}

	if r == 0 {
		return
	}

	for i := 0; i < len(b); i++ {
		var next byte
		if i+1 < len(b) {
			next = b[i+1]
		}
		b[i] = b[i]<<r | next>>(8-r)
	}
}

// RightShift shifts the whole block right by n bits. Bits shifted out of the
// last byte are lost and vacated high bits are zero.
func (b Block) RightShift(n int) {
	if n <= 0 {
		return
	}

	q, r := n/8, uint(n%8)
	if q >= len(b) {
		clear(b)
		return
	}

	if q > 0 {
		copy(b[q:], b[:len(b)-q])
		clear(b[:q])
	}

	if r == 0 {
		return
	}

	for i := len(b) - 1; i >= 0; i-- {
		var prev byte
		if i > 0 {
			prev = b[i-1]
		}
		b[i] = b[i]>>r | prev<<(8-r)
	}
}

// Extract returns a new block of the same size whose leading s bits equal
// those of b and whose remaining bits are zero.
func (b Block) Extract(s int) Block {
	dst := make(Block, len(b))
	b.ExtractInto(dst, s)
	return dst
}

// ExtractInto writes the leading s bits of b into dst and zeroes the rest of
// dst. Dst may be b itself.
func (b Block) ExtractInto(dst Block, s int) {
	if s < 0 {
		s = 0
	}

	full := min(s/8, len(b), len(dst))
	copy(dst[:full], b[:full])

	i := full
	if r := s % 8; r != 0 && full == s/8 && i < len(b) && i < len(dst) {
		dst[i] = b[i] & leftMask(r)
		i++
	}
	clear(dst[i:])
}

// Assign overwrites nb bits of b starting at bit start with the bits of src
// at the same positions. Bits outside [start, start+nb) are preserved, and
// the range is clipped to the shorter of the two blocks.
func (b Block) Assign(src Block, start, nb int) {
	if start < 0 || nb <= 0 {
		return
	}

	end := min(start+nb, min(len(b), len(src))*8)
	for start < end {
		i, off := start/8, start%8

		if off == 0 && end-start >= 8 {
			n := (end - start) / 8
			copy(b[i:i+n], src[i:i+n])
			start += n * 8
			continue
		}

		cnt := min(8-off, end-start)
		m := leftMask(off+cnt) &^ leftMask(off)
		b[i] = b[i]&^m | src[i]&m
		start += cnt
	}
}

// Increment adds one to the big-endian counter held in the last bitLimit
// bits of b. Overflow wraps to zero inside the counter; bits in front of it
// never change.
func (b Block) Increment(bitLimit int) {
	bitLimit = min(bitLimit, b.BitLen())

	for i := len(b) - 1; i >= 0 && bitLimit > 0; i-- {
		if bitLimit < 8 {
			m := rightMask(bitLimit)
			b[i] = b[i]&^m | (b[i]+1)&m
			return
		}

		b[i]++
		if b[i] != 0 {
			return
		}
		bitLimit -= 8
	}
}

// leftMask returns a byte with its r most significant bits set.
func leftMask(r int) byte {
	return ^(byte(0xff) >> uint(min(max(r, 0), 8)))
}

// rightMask returns a byte with its r least significant bits set.
func rightMask(r int) byte {
	return ^(byte(0xff) << uint(min(max(r, 0), 8)))
}
