package key

import (
	"crypto/rand"
)

// Key is symmetric key material of a fixed length.
type Key interface {
	GetBytes() []byte
	Len() int
}

type key128 struct {
	material [16]byte
}

func (k *key128) GetBytes() []byte {
	return k.material[:]
}

func (k *key128) Len() int {
	return len(k.material)
}

// Bit128 returns a fresh random 128-bit key.
func Bit128() Key {
	b := generateRandomBytes(16)
	return &key128{material: [16]byte(b)}
}

// NewKey wraps fixed 128-bit key material.
func NewKey(material [16]byte) Key {
	return &key128{material: material}
}

// Repeat returns a 128-bit key with every byte set to b.
// Handy for demos using a well-known key.
func Repeat(b byte) Key {
	var material [16]byte
	for i := range material {
		material[i] = b
	}
	return &key128{material: material}
}

func generateRandomBytes(n int) []byte {
	randBytes := make([]byte, n)

	i, err := rand.Read(randBytes)
	if i != n || err != nil {
		panic("Could not generate random bytes")
	}

	return randBytes
}
