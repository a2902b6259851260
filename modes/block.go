package modes

import (
	"fmt"

	"github.com/vomar3/blockcipher/des"
	"github.com/vomar3/blockcipher/interfaces"
	"github.com/vomar3/blockcipher/rijndael"
	"github.com/vomar3/blockcipher/tripledes"
)

// newBlockCipher keys the single-block primitive for a. The key schedule is
// computed here once per operation.
func newBlockCipher(a Algorithm, key []byte) (interfaces.BlockCipher, error) {
	var (
		b   interfaces.BlockCipher
		err error
	)

	switch a {
	case DES:
		b, err = des.NewCipher(key)
	case AES128, AES192, AES256:
		b, err = rijndael.NewCipher(key)
	case TDESEDE2:
		b, err = tripledes.NewCipherVariant(tripledes.EDE2, key)
	case TDESEDE3:
		b, err = tripledes.NewCipherVariant(tripledes.EDE3, key)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, a)
	}

	if err != nil {
		return nil, err
	}
	return b, nil
}
