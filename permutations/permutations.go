// Package permutations applies bit permutation tables (P-blocks) of the kind
// used by DES: entry i of a table names the source bit that lands in output
// position i.
package permutations

import (
	"errors"
	"fmt"

	"github.com/vomar3/blockcipher/bitblock"
)

type IndexMode int

const (
	// HighToLow numbers bits from the most significant bit of the first byte.
	HighToLow IndexMode = iota
	// LowToHigh numbers bits from the least significant bit of the last byte.
	LowToHigh
)

type InitialBit int

const (
	ZeroBit InitialBit = iota
	FirstBit
)

var (
	ErrEmptyInput = errors.New("permutations: input is empty")
	ErrEmptyTable = errors.New("permutations: table is empty")
)

// Bytes permutes the bits of src according to table. The result holds
// len(table) bits rounded up to whole bytes, numbered with the same index
// mode as the source.
func Bytes(src []byte, table []int, indexMode IndexMode, initialBit InitialBit) ([]byte, error) {
	if len(src) == 0 {
		return nil, ErrEmptyInput
	}
	if len(table) == 0 {
		return nil, ErrEmptyTable
	}
	if indexMode != HighToLow && indexMode != LowToHigh {
		return nil, fmt.Errorf("permutations: unknown index mode %d", indexMode)
	}
	if initialBit != ZeroBit && initialBit != FirstBit {
		return nil, fmt.Errorf("permutations: initial bit must be 0 or 1, got %d", initialBit)
	}

	in := bitblock.Block(src)
	out := bitblock.New((len(table) + 7) / 8)
	srcBits, dstBits := in.BitLen(), out.BitLen()

	for i, pos := range table {
		if initialBit == FirstBit {
			pos--
		}
		if pos < 0 || pos >= srcBits {
			return nil, fmt.Errorf("permutations: table[%d] = %d out of range", i, table[i])
		}

		from, to := pos, i
		if indexMode == LowToHigh {
			from, to = srcBits-pos-1, dstBits-i-1
		}
		out.SetBit(to, in.Bit(from))
	}

	return out, nil
}

// Uint64 is the fixed-width fast path used inside cipher rounds. The source
// occupies the low srcBits bits of src, table entries are 1-based and count
// from the most significant of those bits, and the result occupies the low
// len(table) bits.
func Uint64(src uint64, srcBits int, table []int) uint64 {
	var out uint64
	for _, pos := range table {
		out = out<<1 | (src>>(srcBits-pos))&1
	}
	return out
}
