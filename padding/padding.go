// Package padding implements PKCS#7 block padding (RFC 5652 section 6.3).
package padding

import "errors"

var (
	ErrInvalidBlockSize = errors.New("invalid block size")
	ErrInvalidPadding   = errors.New("invalid padding")
)

// Pad returns a new slice holding data followed by 1 to blockSize bytes,
// each equal to the number of bytes added. Aligned input gains a full block.
func Pad(data []byte, blockSize int) ([]byte, error) {
	if blockSize < 1 || blockSize > 255 {
		return nil, ErrInvalidBlockSize
	}

	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out, nil
}

// Unpad checks and strips PKCS#7 padding. The result aliases data.
func Unpad(data []byte, blockSize int) ([]byte, error) {
	if blockSize < 1 || blockSize > 255 {
		return nil, ErrInvalidBlockSize
	}
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrInvalidBlockSize
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, ErrInvalidPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrInvalidPadding
		}
	}
	return data[:len(data)-n], nil
}
