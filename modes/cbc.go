package modes

import (
	"github.com/vomar3/blockcipher/bitblock"
	"github.com/vomar3/blockcipher/interfaces"
)

// cbcEncrypt chains src through b starting from iv. On return iv holds the
// last ciphertext block.
func cbcEncrypt(b interfaces.BlockCipher, iv bitblock.Block, src []byte) []byte {
	bs := b.BlockSize()
	out := make([]byte, len(src))
	for i := 0; i < len(src); i += bs {
		blk := out[i : i+bs]
		bitblock.Xor(blk, src[i:i+bs], iv)
		b.Encrypt(blk, blk)
		copy(iv, blk)
	}
	return out
}

// cbcDecrypt reverses cbcEncrypt. On return iv holds the last ciphertext
// block.
func cbcDecrypt(b interfaces.BlockCipher, iv bitblock.Block, src []byte) []byte {
	bs := b.BlockSize()
	out := make([]byte, len(src))
	for i := 0; i < len(src); i += bs {
		blk := out[i : i+bs]
		b.Decrypt(blk, src[i:i+bs])
		bitblock.Xor(blk, blk, iv)
		copy(iv, src[i:i+bs])
	}
	return out
}
