// Package paddingoracle implements the classic chosen-ciphertext attack
// against CBC mode: given only a padding oracle, it recovers the plaintext
// of a ciphertext byte by byte, without ever learning the key.
//
// Reference: https://www.nccgroup.com/au/research-blog/cryptopals-exploiting-cbc-padding-oracles/
package paddingoracle

import (
	"errors"
	"fmt"
	"sync"
)

// BlockSize is the cipher block length in bytes (AES-128).
const BlockSize = 16

var (
	// ErrOracleExhausted means no candidate byte in 0..255 produced valid
	// padding for some round. The oracle violated its contract, or the
	// ciphertext was not produced under the oracle's key.
	ErrOracleExhausted = errors.New("no candidate byte validates")

	// ErrInvalidLength means the IV or ciphertext length is not a positive
	// multiple of BlockSize. Detected before any oracle query is issued.
	ErrInvalidLength = errors.New("length is not a positive multiple of the block size")

	// ErrInvalidPadding means a decrypted buffer carries malformed PKCS#7
	// padding.
	ErrInvalidPadding = errors.New("invalid padding")
)

// Attack recovers the plaintext of ciphertext, encrypted in CBC mode under
// the key hidden behind oracle, and strips its PKCS#7 padding.
//
// Blocks only depend on the previous ciphertext block (or the IV), so they
// are recovered concurrently; the byte-at-a-time rounds within one block are
// strictly sequential.
func Attack(oracle Oracle, iv, ciphertext []byte) ([]byte, error) {
	if len(iv) != BlockSize {
		return nil, fmt.Errorf("%w: IV is %d bytes", ErrInvalidLength, len(iv))
	}
	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is %d bytes", ErrInvalidLength, len(ciphertext))
	}

	nblocks := len(ciphertext) / BlockSize
	plaintext := make([]byte, len(ciphertext))
	errs := make([]error, nblocks)

	var wg sync.WaitGroup
	for i := 0; i < nblocks; i++ {
		reference := iv
		if i > 0 {
			reference = ciphertext[(i-1)*BlockSize : i*BlockSize]
		}
		target := ciphertext[i*BlockSize : (i+1)*BlockSize]

		wg.Add(1)
		go func(i int, reference, target []byte) {
			defer wg.Done()
			d, err := decryptBlock(oracle, reference, target)
			if err != nil {
				errs[i] = fmt.Errorf("block %d: %w", i, err)
				return
			}
			// The final CBC decryption step: plaintext is the intermediate
			// value XORed with the true previous ciphertext block.
			for j := 0; j < BlockSize; j++ {
				plaintext[i*BlockSize+j] = d[j] ^ reference[j]
			}
		}(i, reference, target)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return removePadding(plaintext)
}

// decryptBlock recovers the intermediate value of target: the raw block
// cipher decryption output before the CBC chaining XOR, built from the last
// byte to the first.
//
// For round pad the crafted block's tail already forces the trailing pad-1
// plaintext bytes to the value pad, so the oracle accepts a candidate c
// exactly when c ^ d[position] == pad.
func decryptBlock(oracle Oracle, reference, target []byte) ([]byte, error) {
	// Private working copy, so that concurrently recovered blocks never
	// alias each other's state.
	crafted := make([]byte, BlockSize)
	copy(crafted, reference)

	d := make([]byte, BlockSize)

	for pad := 1; pad <= BlockSize; pad++ {
		position := BlockSize - pad

		found := -1
		for candidate := 0; candidate <= 0xff; candidate++ {
			crafted[position] = byte(candidate)
			if !oracle.Check(crafted, target) {
				continue
			}
			if pad == 1 && !confirmLastByte(oracle, crafted, target) {
				// Spurious hit: the block decrypted to a longer valid tail
				// (02 02, 03 03 03, ...) instead of a single 01.
				continue
			}
			found = candidate
			break
		}
		if found < 0 {
			return nil, fmt.Errorf("%w: pad %d", ErrOracleExhausted, pad)
		}

		d[position] = byte(found) ^ byte(pad)

		if pad < BlockSize {
			forceTail(crafted, d, pad+1)
		}
	}

	return d, nil
}

// confirmLastByte re-queries with bit 0 of the second-to-last crafted byte
// flipped. A genuine 01 tail stays valid, since the byte before it is not
// part of the padding; any longer tail breaks. Later rounds need no such
// check: their trailing bytes are forced by the attacker, leaving no room
// for ambiguity. Note this disambiguation is specific to byte-oriented
// PKCS#7 and would have to be re-derived for a different padding scheme.
func confirmLastByte(oracle Oracle, crafted, target []byte) bool {
	crafted[BlockSize-2] ^= 1
	ok := oracle.Check(crafted, target)
	crafted[BlockSize-2] ^= 1
	return ok
}

// forceTail rewrites the trailing pad-1 bytes of crafted so that, combined
// with the recovered intermediate values, they decrypt to the constant pad.
func forceTail(crafted, d []byte, pad int) {
	for j := BlockSize - pad + 1; j < BlockSize; j++ {
		crafted[j] = d[j] ^ byte(pad)
	}
}
