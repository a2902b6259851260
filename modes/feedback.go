package modes

import (
	"github.com/vomar3/blockcipher/bitblock"
	"github.com/vomar3/blockcipher/interfaces"
)

// streamer runs the CFB, OFB and CTR keystream loop over s-bit segments of
// the input. All three share the same shape: encrypt the register, XOR the
// leading s bits of the result into the next s data bits, then advance the
// register. Only the advance step differs.
type streamer struct {
	block interfaces.BlockCipher
	mode  Mode
	op    direction

	// s is the segment width in bits and limit the width of the CTR counter.
	s     int
	limit int

	reg bitblock.Block

	// Scratch space reused across segments. seg and chunk carry one spare
	// byte so a segment can be realigned to an arbitrary bit offset.
	ks, seg, chunk, fb bitblock.Block
}

func newStreamer(b interfaces.BlockCipher, mode Mode, op direction, s, counterBits int, reg bitblock.Block) *streamer {
	bs := b.BlockSize()

	limit := bs * 8
	if counterBits > 0 && counterBits < limit {
		limit = counterBits
	}

	return &streamer{
		block: b,
		mode:  mode,
		op:    op,
		s:     s,
		limit: limit,
		reg:   reg,
		ks:    bitblock.New(bs),
		seg:   bitblock.New(bs + 1),
		chunk: bitblock.New(bs + 1),
		fb:    bitblock.New(bs),
	}
}

// run transforms in and returns a new slice of the same length. The
// register is advanced in place.
func (st *streamer) run(in []byte) []byte {
	out := make([]byte, len(in))
	total := len(in) * 8

	for idx := 0; idx < total; idx += st.s {
		n := min(st.s, total-idx)
		off := idx % 8

		// chunk = next n input bits, left aligned.
		clear(st.chunk)
		copy(st.chunk, in[idx/8:])
		st.chunk.LeftShift(off)
		st.chunk.ExtractInto(st.chunk, n)

		st.block.Encrypt(st.ks, st.reg)
		st.ks.ExtractInto(st.seg, n)
		bitblock.Xor(st.seg, st.seg, st.chunk)

		st.advance(n)

		st.seg.RightShift(off)
		bitblock.Block(out[idx/8:]).Assign(st.seg, off, n)
	}

	return out
}

// advance moves the register past a segment of n bits. It must run before
// seg is realigned for output.
func (st *streamer) advance(n int) {
	switch st.mode {
	case CFB, CFB1, CFB8:
		// The register is fed ciphertext: our output when encrypting, the
		// input when decrypting.
		ct := st.seg
		if st.op == decrypt {
			ct = st.chunk
		}
		ct.ExtractInto(st.fb, n)
		st.shiftIn()
	case OFB:
		st.ks.ExtractInto(st.fb, st.s)
		st.shiftIn()
	case CTR:
		st.reg.Increment(st.limit)
	}
}

// shiftIn drops the leading s bits of the register and appends the leading
// s bits of fb.
func (st *streamer) shiftIn() {
	bits := st.reg.BitLen()
	st.reg.LeftShift(st.s)
	st.fb.RightShift(bits - st.s)
	st.reg.Assign(st.fb, bits-st.s, st.s)
}
