package paddingoracle

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/davxy/crypto-hacks/key"
)

// An Oracle is the attacker's only capability: it reveals whether decrypting
// target with reference as the CBC chaining block yields a buffer with valid
// PKCS#7 padding. Nothing else crosses this boundary. Implementations are
// expected to be deterministic; a production one may sit on top of network
// calls, rate limiting or caching without the attack code noticing.
type Oracle interface {
	Check(reference, target []byte) bool
}

// A CBCOracle can be thought of as a server that decrypts a value but doesn't
// return the plaintext to its caller. For example, a web server that decrypts
// a cookie to check for user permissions: all it leaks is whether the padding
// of the decrypted buffer was well formed.
//
// It exists for self tests and demos. A real attacker obviously cannot build
// one, since it holds the victim's key.
type CBCOracle struct {
	block cipher.Block
}

// NewCBCOracle builds an oracle bound to the given AES key.
func NewCBCOracle(k key.Key) (*CBCOracle, error) {
	block, err := aes.NewCipher(k.GetBytes())
	if err != nil {
		return nil, err
	}
	return &CBCOracle{block: block}, nil
}

// Check decrypts target chained on reference and reports whether the result
// carries valid padding. The plaintext itself never leaves this method.
func (o *CBCOracle) Check(reference, target []byte) bool {
	if len(reference) != BlockSize || len(target) != BlockSize {
		return false
	}
	buf := make([]byte, BlockSize)
	cipher.NewCBCDecrypter(o.block, reference).CryptBlocks(buf, target)
	_, err := removePadding(buf)
	return err == nil
}

// EncryptCBC pads plaintext with PKCS#7 and encrypts it under k with the
// given IV. It is the self-test collaborator feeding the demo and the tests,
// not part of the attacker's capability set.
func EncryptCBC(k key.Key, iv, plaintext []byte) ([]byte, error) {
	if len(iv) != BlockSize {
		return nil, ErrInvalidLength
	}
	block, err := aes.NewCipher(k.GetBytes())
	if err != nil {
		return nil, err
	}

	padded := addPadding(plaintext)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	return ciphertext, nil
}

func addPadding(b []byte) []byte {
	n := BlockSize - len(b)%BlockSize
	padded := make([]byte, len(b)+n)
	copy(padded, b)
	for i := len(b); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// removePadding validates and strips PKCS#7 padding: the last byte holds the
// pad length n, and all n trailing bytes must hold that same value.
func removePadding(b []byte) ([]byte, error) {
	if len(b) == 0 || len(b)%BlockSize != 0 {
		return nil, ErrInvalidPadding
	}
	n := int(b[len(b)-1])
	if n < 1 || n > BlockSize {
		return nil, ErrInvalidPadding
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, ErrInvalidPadding
		}
	}
	return b[:len(b)-n], nil
}
