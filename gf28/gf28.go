// Package gf28 implements arithmetic in GF(2^8) with polynomials packed into
// integers, bit i holding the coefficient of x^i.
package gf28

import (
	"errors"
	"fmt"
)

// AESModulus is the low byte of x^8 + x^4 + x^3 + x + 1 (0x11B).
const AESModulus byte = 0x1b

var (
	ErrZeroInverse  = errors.New("gf28: zero has no inverse")
	ErrDivideByZero = errors.New("gf28: division by zero")
	ErrZeroPoly     = errors.New("gf28: polynomial must not be zero")
)

// Field is GF(2^8) modulo x^8 + m(x), where m is the modulus byte.
type Field struct {
	modulus byte
}

// New returns the field for the given modulus byte. The implied degree-8
// polynomial must be irreducible.
func New(modulus byte) (*Field, error) {
	poly := uint16(modulus) | 0x100
	ok, err := IsIrreducible(poly)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("gf28: modulus 0x%03X is not irreducible", poly)
	}
	return &Field{modulus: modulus}, nil
}

func (f *Field) Modulus() uint16 {
	return uint16(f.modulus) | 0x100
}

func (f *Field) Add(a, b byte) byte {
	return a ^ b
}

// Multiply is shift-and-add multiplication with reduction on every carry out
// of bit 7.
func (f *Field) Multiply(a, b byte) byte {
	var p byte
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		carry := a&0x80 != 0
		a <<= 1
		if carry {
			a ^= f.modulus
		}
		b >>= 1
	}
	return p
}

// Inverse returns a^-1 using the extended Euclidean algorithm over GF(2)[x].
func (f *Field) Inverse(a byte) (byte, error) {
	if a == 0 {
		return 0, ErrZeroInverse
	}

	r0, r1 := f.Modulus(), uint16(a)
	t0, t1 := uint16(0), uint16(1)

	for r1 != 0 {
		q, r2, err := divMod(r0, r1)
		if err != nil {
			return 0, err
		}
		r0, r1 = r1, r2
		t0, t1 = t1, t0^mulPoly(q, t1)
	}

	if r0 != 1 {
		return 0, fmt.Errorf("gf28: 0x%02X is not invertible modulo 0x%03X", a, f.Modulus())
	}
	return byte(t0), nil
}

// IsIrreducible reports whether poly has no factor of degree 1 through
// deg(poly)/2 over GF(2).
func IsIrreducible(poly uint16) (bool, error) {
	if poly == 0 {
		return false, ErrZeroPoly
	}

	d := degree(poly)
	switch {
	case d <= 0:
		return false, nil
	case d == 1:
		return true, nil
	case poly&1 == 0:
		return false, nil
	}

	for divisor := uint16(2); degree(divisor) <= d/2; divisor++ {
		_, r, err := divMod(poly, divisor)
		if err != nil {
			return false, err
		}
		if r == 0 {
			return false, nil
		}
	}
	return true, nil
}

// Irreducibles lists every irreducible polynomial of degree 8.
func Irreducibles() []uint16 {
	var out []uint16
	for poly := uint16(0x101); poly < 0x200; poly += 2 {
		if ok, _ := IsIrreducible(poly); ok {
			out = append(out, poly)
		}
	}
	return out
}

// Factorize splits poly into irreducible factors over GF(2), smallest first.
// One yields no factors.
func Factorize(poly uint16) ([]uint16, error) {
	if poly == 0 {
		return nil, ErrZeroPoly
	}

	var factors []uint16
	for divisor := uint16(2); poly > 1 && 2*degree(divisor) <= degree(poly); {
		q, r, err := divMod(poly, divisor)
		if err != nil {
			return nil, err
		}
		if r == 0 {
			factors = append(factors, divisor)
			poly = q
			continue
		}
		divisor++
	}
	if poly > 1 {
		factors = append(factors, poly)
	}
	return factors, nil
}

func degree(poly uint16) int {
	d := -1
	for ; poly != 0; poly >>= 1 {
		d++
	}
	return d
}

func divMod(a, b uint16) (q, r uint16, err error) {
	if b == 0 {
		return 0, 0, ErrDivideByZero
	}

	db := degree(b)
	r = a
	for {
		dr := degree(r)
		if dr < db {
			return q, r, nil
		}
		shift := dr - db
		q |= 1 << shift
		r ^= b << shift
	}
}

func mulPoly(a, b uint16) uint16 {
	var p uint16
	for i := 0; i < 16; i++ {
		if b&(1<<i) != 0 {
			p ^= a << i
		}
	}
	return p
}
