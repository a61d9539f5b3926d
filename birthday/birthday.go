// Package birthday demonstrates the birthday paradox: drawing uniform values
// from a set D, a collision is expected after roughly sqrt(|D|) extractions.
//
// Some background: https://datawok.net/posts/birthday-paradox
package birthday

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	mrand "math/rand/v2"
)

// Collision reports the outcome of a collision search.
type Collision struct {
	// Count is the number of extractions performed, the last of which
	// produced the repeated value.
	Count int

	// Value is the repeated value.
	Value []byte

	// First and Second are the two counter preimages hashing to Value.
	// Only set by the hash-based search.
	First, Second uint64
}

// SubSHA searches for a collision among SHA-256 digests truncated to their
// first numBytes bytes, hashing an incrementing counter started at a random
// point.
func SubSHA(numBytes int) Collision {
	seen := make(map[string]uint64)
	curr := mrand.Uint64()

	count := 0
	for {
		count++
		curr++

		hash := shortHash(curr, numBytes)
		if old, ok := seen[hash]; ok {
			return Collision{
				Count:  count,
				Value:  []byte(hash),
				First:  old,
				Second: curr,
			}
		}
		seen[hash] = curr
	}
}

// OSRand searches for a collision among numBytes-long values drawn from the
// OS random source.
func OSRand(numBytes int) (Collision, error) {
	seen := make(map[string]struct{})
	buf := make([]byte, numBytes)

	count := 0
	for {
		count++
		if _, err := rand.Read(buf); err != nil {
			return Collision{}, err
		}
		if _, ok := seen[string(buf)]; ok {
			return Collision{Count: count, Value: append([]byte(nil), buf...)}, nil
		}
		seen[string(buf)] = struct{}{}
	}
}

func shortHash(counter uint64, numBytes int) string {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], counter)
	sum := sha256.Sum256(b[:])
	return string(sum[:numBytes])
}
