package modes

import "github.com/vomar3/blockcipher/interfaces"

// ecbEncrypt encrypts each block of src independently. len(src) must be a
// multiple of the block size.
func ecbEncrypt(b interfaces.BlockCipher, src []byte) []byte {
	bs := b.BlockSize()
	out := make([]byte, len(src))
	for i := 0; i < len(src); i += bs {
		b.Encrypt(out[i:i+bs], src[i:i+bs])
	}
	return out
}

func ecbDecrypt(b interfaces.BlockCipher, src []byte) []byte {
	bs := b.BlockSize()
	out := make([]byte, len(src))
	for i := 0; i < len(src); i += bs {
		b.Decrypt(out[i:i+bs], src[i:i+bs])
	}
	return out
}
