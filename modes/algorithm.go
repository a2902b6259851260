package modes

import (
	"fmt"
	"strings"
)

type Algorithm int

const (
	DES Algorithm = iota + 1
	AES128
	AES192
	AES256
	TDESEDE2
	TDESEDE3
)

var algorithms = []Algorithm{DES, AES128, AES192, AES256, TDESEDE2, TDESEDE3}

func (a Algorithm) String() string {
	switch a {
	case DES:
		return "des"
	case AES128:
		return "aes-128"
	case AES192:
		return "aes-192"
	case AES256:
		return "aes-256"
	case TDESEDE2:
		return "des-ede"
	case TDESEDE3:
		return "des-ede3"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

func (a Algorithm) Valid() bool {
	return a >= DES && a <= TDESEDE3
}

// BlockSize returns the block size in bytes, or 0 for an unknown algorithm.
func (a Algorithm) BlockSize() int {
	switch a {
	case DES, TDESEDE2, TDESEDE3:
		return 8
	case AES128, AES192, AES256:
		return 16
	default:
		return 0
	}
}

// KeySize returns the exact key length in bytes, or 0 for an unknown
// algorithm.
func (a Algorithm) KeySize() int {
	switch a {
	case DES:
		return 8
	case AES128, TDESEDE2:
		return 16
	case AES192, TDESEDE3:
		return 24
	case AES256:
		return 32
	default:
		return 0
	}
}

type Mode int

const (
	ECB Mode = iota + 1
	CBC
	CFB
	CFB1
	CFB8
	OFB
	CTR
)

var allModes = []Mode{ECB, CBC, CFB, CFB1, CFB8, OFB, CTR}

func (m Mode) String() string {
	switch m {
	case ECB:
		return "ecb"
	case CBC:
		return "cbc"
	case CFB:
		return "cfb"
	case CFB1:
		return "cfb1"
	case CFB8:
		return "cfb8"
	case OFB:
		return "ofb"
	case CTR:
		return "ctr"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func (m Mode) Valid() bool {
	return m >= ECB && m <= CTR
}

// Stream reports whether the mode turns the block cipher into a keystream
// generator. Stream modes need no padding and preserve the input length.
func (m Mode) Stream() bool {
	switch m {
	case CFB, CFB1, CFB8, OFB, CTR:
		return true
	default:
		return false
	}
}

// Identifier names one algorithm and mode pairing.
type Identifier struct {
	Algorithm Algorithm
	Mode      Mode
	Stream    bool
	Default   bool
}

// Descriptor holds the sizes an identifier implies. FeedbackBits is the
// segment width s of the stream modes and zero for ECB and CBC.
type Descriptor struct {
	BlockSize    int
	KeySize      int
	FeedbackBits int
}

func (id Identifier) String() string {
	return id.Algorithm.String() + "-" + id.Mode.String()
}

func (id Identifier) Valid() bool {
	return id.Algorithm.Valid() && id.Mode.Valid()
}

func (id Identifier) Describe() Descriptor {
	if !id.Valid() {
		return Descriptor{}
	}

	d := Descriptor{
		BlockSize: id.Algorithm.BlockSize(),
		KeySize:   id.Algorithm.KeySize(),
	}
	switch id.Mode {
	case CFB1:
		d.FeedbackBits = 1
	case CFB8:
		d.FeedbackBits = 8
	case CFB, OFB, CTR:
		d.FeedbackBits = d.BlockSize * 8
	}
	return d
}

// Lookup returns the identifier for an algorithm and mode.
func Lookup(a Algorithm, m Mode) (Identifier, error) {
	if !a.Valid() {
		return Identifier{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, a)
	}
	if !m.Valid() {
		return Identifier{}, fmt.Errorf("%w: %s", ErrUnknownMode, m)
	}
	return Identifier{
		Algorithm: a,
		Mode:      m,
		Stream:    m.Stream(),
		Default:   m == CBC,
	}, nil
}

// DefaultIdentifier returns the algorithm paired with its default mode, CBC.
func DefaultIdentifier(a Algorithm) (Identifier, error) {
	return Lookup(a, CBC)
}

var byName = buildNames()

func buildNames() map[string]Identifier {
	names := make(map[string]Identifier, len(algorithms)*(len(allModes)+1))
	for _, id := range Identifiers() {
		names[id.String()] = id
		if id.Default {
			names[id.Algorithm.String()] = id
		}
	}
	return names
}

// ParseIdentifier resolves names such as "des-cbc", "aes-128-cfb1" or
// "des-ede3-ctr". A bare algorithm name ("aes-256") selects the default mode.
func ParseIdentifier(name string) (Identifier, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, ok := byName[key]; ok {
		return id, nil
	}

	for _, a := range algorithms {
		if strings.HasPrefix(key, a.String()+"-") {
			return Identifier{}, fmt.Errorf("%w: %q", ErrUnknownMode, name)
		}
	}
	return Identifier{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Identifiers lists every supported pairing, grouped by algorithm.
func Identifiers() []Identifier {
	out := make([]Identifier, 0, len(algorithms)*len(allModes))
	for _, a := range algorithms {
		for _, m := range allModes {
			id, _ := Lookup(a, m)
			out = append(out, id)
		}
	}
	return out
}
