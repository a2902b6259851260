package modes

// CipherContext carries the inputs and outputs of one operation. Encrypt
// reads Plaintext and sets Ciphertext; Decrypt does the reverse. On success
// IV (CBC, CFB, OFB) or Nonce (CTR) is overwritten with the final chaining
// value so that a following call continues the same stream. On failure the
// context is left as it was.
type CipherContext struct {
	Identifier Identifier

	Key   []byte
	IV    []byte
	Nonce []byte

	Plaintext  []byte
	Ciphertext []byte
}

// NewContext returns a context for id with copies of key and iv. For CTR
// the iv argument is stored as the nonce.
func NewContext(id Identifier, key, iv []byte) *CipherContext {
	ctx := &CipherContext{
		Identifier: id,
		Key:        clone(key),
	}
	if id.Mode == CTR {
		ctx.Nonce = clone(iv)
	} else {
		ctx.IV = clone(iv)
	}
	return ctx
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

type direction int

const (
	encrypt direction = iota
	decrypt
)

func (d direction) String() string {
	if d == decrypt {
		return "decrypt"
	}
	return "encrypt"
}
