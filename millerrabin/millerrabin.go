// Package millerrabin implements probabilistic primality testing and random
// prime generation over math/big integers.
//
// Some background: https://datawok.net/posts/random-primes
package millerrabin

import (
	"crypto/rand"
	"math/big"
	"runtime"
	"sync"
	"sync/atomic"
)

const (
	millerRabinRounds   = 8
	primeGenMaxAttempts = 5000
)

var smallPrimes = [...]uint16{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97,
	101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151, 157, 163, 167, 173, 179, 181, 191, 193,
	197, 199, 211, 223, 227, 229, 233, 239, 241, 251, 257, 263, 269, 271, 277, 281, 283, 293, 307,
	311, 313, 317, 331, 337, 347, 349, 353, 359, 367, 373, 379, 383, 389, 397, 401, 409, 419, 421,
	431, 433, 439, 443, 449, 457, 461, 463, 467, 479, 487, 491, 499, 503, 509, 521, 523, 541, 547,
	557, 563, 569, 571, 577, 587, 593, 599, 601, 607, 613, 617, 619, 631, 641, 643, 647, 653, 659,
	661, 673, 677, 683, 691, 701, 709, 719, 727, 733, 739, 743, 751, 757, 761, 769, 773, 787, 797,
	809, 811, 821, 823, 827, 829, 839, 853, 857, 859, 863, 877, 881, 883, 887, 907, 911, 919, 929,
	937, 941, 947, 953, 967, 971, 977, 983, 991, 997, 1009, 1013, 1019, 1021, 1031, 1033, 1039,
}

// IsPrime reports whether n is probably prime: trial division by the small
// primes up to 1039 first, then 8 Miller-Rabin rounds with random bases.
func IsPrime(n *big.Int) bool {
	one := big.NewInt(1)

	if n.Sign() == 0 {
		return false
	}
	if n.Cmp(one) == 0 {
		return true
	}

	d := new(big.Int)
	m := new(big.Int)
	for _, p := range smallPrimes {
		d.SetUint64(uint64(p))
		if m.Mod(n, d).Sign() == 0 {
			// n is a small prime or a multiple of one.
			return n.Cmp(d) == 0
		}
	}

	return millerRabinTest(n, millerRabinRounds)
}

func millerRabinTest(n *big.Int, rounds int) bool {
	one := big.NewInt(1)
	two := big.NewInt(2)
	nMinusOne := new(big.Int).Sub(n, one)

	// n-1 = d·2^s with d odd
	s := 0
	d := new(big.Int).Set(nMinusOne)
	for d.Bit(0) == 0 {
		s++
		d.Rsh(d, 1)
	}

	x := new(big.Int)
	for i := 0; i < rounds; i++ {
		// Random base in [2, n-1)
		base, err := rand.Int(rand.Reader, new(big.Int).Sub(nMinusOne, two))
		if err != nil {
			panic("Could not generate random base")
		}
		base.Add(base, two)

		x.Exp(base, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinusOne) == 0 {
			continue
		}

		witness := true
		for j := 1; j < s; j++ {
			x.Exp(x, two, n)
			if x.Cmp(nMinusOne) == 0 {
				witness = false
				break
			}
		}
		if witness {
			return false
		}
	}
	return true
}

// PrimeNum searches for a probable prime with the given number of bits,
// fanning candidates out over one worker per CPU. It gives up and returns
// nil after maxAttempts candidates; pass 0 for the default of 5000.
func PrimeNum(bits, maxAttempts int) *big.Int {
	if maxAttempts <= 0 {
		maxAttempts = primeGenMaxAttempts
	}

	var attempts atomic.Int64
	found := make(chan *big.Int, 1)
	done := make(chan struct{})

	var wg sync.WaitGroup
	for w := 0; w < runtime.NumCPU(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for attempts.Add(1) <= int64(maxAttempts) {
				select {
				case <-done:
					return
				default:
				}
				n := randomOddCandidate(bits)
				if IsPrime(n) {
					select {
					case found <- n:
						close(done)
					default:
					}
					return
				}
			}
		}()
	}
	wg.Wait()

	select {
	case n := <-found:
		return n
	default:
		return nil
	}
}

// PrimeNumSerial is the sequential version of PrimeNum. It also reports how
// many candidates were drawn, e.g. to compare an average against the
// expected bits·ln(2)/2.
func PrimeNumSerial(bits, maxAttempts int) (*big.Int, int) {
	if maxAttempts <= 0 {
		maxAttempts = primeGenMaxAttempts
	}

	for i := 1; i <= maxAttempts; i++ {
		n := randomOddCandidate(bits)
		if IsPrime(n) {
			return n, i
		}
	}
	return nil, maxAttempts
}

func randomOddCandidate(bits int) *big.Int {
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		panic("Could not generate random candidate")
	}
	if n.Bit(0) == 0 {
		n.Add(n, big.NewInt(1))
	}
	return n
}
