package bitblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMasks(t *testing.T) {
	assert.Equal(t, byte(0x00), leftMask(0))
	assert.Equal(t, byte(0x80), leftMask(1))
	assert.Equal(t, byte(0xe0), leftMask(3))
	assert.Equal(t, byte(0xff), leftMask(8))

	assert.Equal(t, byte(0x00), rightMask(0))
	assert.Equal(t, byte(0x01), rightMask(1))
	assert.Equal(t, byte(0x07), rightMask(3))
	assert.Equal(t, byte(0xff), rightMask(8))
}

func TestBitAccess(t *testing.T) {
	b := New(2)
	b.SetBit(0, true)
	b.SetBit(9, true)
	b.SetBit(15, true)
	assert.Equal(t, Block{0x80, 0x41}, b)
	assert.True(t, b.Bit(9))
	assert.False(t, b.Bit(8))

	b.SetBit(0, false)
	assert.Equal(t, Block{0x00, 0x41}, b)
	assert.Equal(t, 16, b.BitLen())
}

func TestXor(t *testing.T) {
	dst := New(4)
	n := Xor(dst, Block{0xff, 0x0f, 0xaa}, Block{0x0f, 0x0f, 0x55, 0x99})
	assert.Equal(t, 3, n)
	assert.Equal(t, Block{0xf0, 0x00, 0xff, 0x00}, dst)
}

func TestLeftShift(t *testing.T) {
	tests := []struct {
		name string
		in   Block
		n    int
		want Block
	}{
		{"zero", Block{0x12, 0x34}, 0, Block{0x12, 0x34}},
		{"one bit", Block{0x81, 0x80}, 1, Block{0x03, 0x00}},
		{"cross byte", Block{0x0f, 0xf0, 0x0f}, 4, Block{0xff, 0x00, 0xf0}},
		{"whole byte", Block{0x12, 0x34, 0x56}, 8, Block{0x34, 0x56, 0x00}},
		{"byte and bits", Block{0x12, 0x34, 0x56}, 12, Block{0x45, 0x60, 0x00}},
		{"single byte", Block{0x81}, 3, Block{0x08}},
		{"exact length", Block{0xff, 0xff}, 16, Block{0x00, 0x00}},
		{"past length", Block{0xff, 0xff}, 100, Block{0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.in.Clone()
			b.LeftShift(tt.n)
			assert.Equal(t, tt.want, b)
		})
	}
}

func TestRightShift(t *testing.T) {
	tests := []struct {
		name string
		in   Block
		n    int
		want Block
	}{
		{"zero", Block{0x12, 0x34}, 0, Block{0x12, 0x34}},
		{"one bit", Block{0x01, 0x01}, 1, Block{0x00, 0x80}},
		{"cross byte", Block{0x0f, 0xf0, 0x0f}, 4, Block{0x00, 0xff, 0x00}},
		{"whole byte", Block{0x12, 0x34, 0x56}, 8, Block{0x00, 0x12, 0x34}},
		{"byte and bits", Block{0x12, 0x34, 0x56}, 12, Block{0x00, 0x01, 0x23}},
		{"exact length", Block{0xff, 0xff}, 16, Block{0x00, 0x00}},
		{"past length", Block{0xff}, 9, Block{0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.in.Clone()
			b.RightShift(tt.n)
			assert.Equal(t, tt.want, b)
		})
	}
}

func TestShiftLosesBits(t *testing.T) {
	b := Block{0xf0, 0x0f}
	b.LeftShift(4)
	b.RightShift(4)
	assert.Equal(t, Block{0x00, 0xf0}, b)
}

func TestExtract(t *testing.T) {
	src := Block{0xff, 0xff, 0xff}

	assert.Equal(t, Block{0x00, 0x00, 0x00}, src.Extract(0))
	assert.Equal(t, Block{0x80, 0x00, 0x00}, src.Extract(1))
	assert.Equal(t, Block{0xff, 0x00, 0x00}, src.Extract(8))
	assert.Equal(t, Block{0xff, 0xfe, 0x00}, src.Extract(15))
	assert.Equal(t, Block{0xff, 0xff, 0xff}, src.Extract(24))
	assert.Equal(t, Block{0xff, 0xff, 0xff}, src.Extract(64))

	// Source untouched.
	assert.Equal(t, Block{0xff, 0xff, 0xff}, src)
}

func TestExtractIntoAliased(t *testing.T) {
	b := Block{0xab, 0xcd, 0xef}
	b.ExtractInto(b, 12)
	assert.Equal(t, Block{0xab, 0xc0, 0x00}, b)

	dst := Block{0x11, 0x22, 0x33, 0x44}
	Block{0xff, 0xff}.ExtractInto(dst, 20)
	assert.Equal(t, Block{0xff, 0xff, 0x00, 0x00}, dst)
}

func TestAssign(t *testing.T) {
	tests := []struct {
		name  string
		start int
		nb    int
		want  Block
	}{
		{"single bit", 3, 1, Block{0x10, 0x00, 0x00}},
		{"inside one byte", 2, 4, Block{0x3c, 0x00, 0x00}},
		{"cross byte", 6, 4, Block{0x03, 0xc0, 0x00}},
		{"whole bytes", 8, 16, Block{0x00, 0xff, 0xff}},
		{"partial both ends", 4, 16, Block{0x0f, 0xff, 0xf0}},
		{"clipped", 20, 50, Block{0x00, 0x00, 0x0f}},
		{"nothing", 5, 0, Block{0x00, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := New(3)
			dst.Assign(Block{0xff, 0xff, 0xff}, tt.start, tt.nb)
			assert.Equal(t, tt.want, dst)

			// The complement must be preserved as well.
			inv := Block{0xff, 0xff, 0xff}
			inv.Assign(New(3), tt.start, tt.nb)
			for i := range inv {
				assert.Equal(t, ^tt.want[i], inv[i], "byte %d", i)
			}
		})
	}
}

func TestIncrement(t *testing.T) {
	tests := []struct {
		name  string
		in    Block
		limit int
		want  Block
	}{
		{"simple", Block{0x00, 0x00}, 16, Block{0x00, 0x01}},
		{"carry", Block{0x00, 0xff}, 16, Block{0x01, 0x00}},
		{"full wrap", Block{0xff, 0xff}, 16, Block{0x00, 0x00}},
		{"bounded wrap", Block{0xab, 0xff}, 8, Block{0xab, 0x00}},
		{"partial byte", Block{0xab, 0xf7}, 4, Block{0xab, 0xf8}},
		{"partial byte wrap", Block{0xab, 0xff}, 4, Block{0xab, 0xf0}},
		{"carry into partial", Block{0xa7, 0xff}, 12, Block{0xa8, 0x00}},
		{"carry wraps partial", Block{0xaf, 0xff}, 12, Block{0xa0, 0x00}},
		{"limit past length", Block{0xff}, 64, Block{0x00}},
		{"zero limit", Block{0x01}, 0, Block{0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.in.Clone()
			b.Increment(tt.limit)
			assert.Equal(t, tt.want, b)
		})
	}
}

func TestIncrementWrapPreservesPrefix(t *testing.T) {
	b := New(16)
	for i := 0; i < 8; i++ {
		b[i] = byte(0xa0 + i)
	}
	for i := 8; i < 16; i++ {
		b[i] = 0xff
	}

	b.Increment(64)

	require.Equal(t, Block{0xa0, 0xa1, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7}, b[:8])
	require.Equal(t, New(8), b[8:])
}
