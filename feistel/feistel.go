package feistel

import (
	"errors"
	"fmt"
)

// RoundFunction is the keyed F function mixed into the left half each round.
type RoundFunction interface {
	Apply(right uint32, roundKey uint64) uint32
}

// RoundFunc adapts a plain function to RoundFunction.
type RoundFunc func(right uint32, roundKey uint64) uint32

func (f RoundFunc) Apply(right uint32, roundKey uint64) uint32 {
	return f(right, roundKey)
}

// Network is a balanced Feistel network over two 32-bit halves. It holds no
// key material; round keys are supplied per call.
type Network struct {
	f      RoundFunction
	rounds int
}

func NewNetwork(f RoundFunction, rounds int) (*Network, error) {
	if f == nil {
		return nil, errors.New("feistel: round function cannot be nil")
	}
	if rounds <= 0 {
		return nil, fmt.Errorf("feistel: rounds must be positive, got %d", rounds)
	}

	return &Network{f: f, rounds: rounds}, nil
}

func (n *Network) Rounds() int {
	return n.rounds
}

// Encrypt runs the rounds with keys[0] first. The halves are swapped after
// every round except the last. Keys must hold at least Rounds() entries.
func (n *Network) Encrypt(left, right uint32, keys []uint64) (uint32, uint32) {
	for i := 0; i < n.rounds; i++ {
		left ^= n.f.Apply(right, keys[i])
		if i != n.rounds-1 {
			left, right = right, left
		}
	}
	return left, right
}

// Decrypt is Encrypt with the key order reversed.
func (n *Network) Decrypt(left, right uint32, keys []uint64) (uint32, uint32) {
	for i := n.rounds - 1; i >= 0; i-- {
		left ^= n.f.Apply(right, keys[i])
		if i != 0 {
			left, right = right, left
		}
	}
	return left, right
}
