// Package timing simulates a timing attack against a device implementing a
// group operation in non-constant time, here m^d mod n via square and
// multiply.
//
// The execution time of each group operation is not fixed: it follows a
// Gaussian distribution (mean 1000, deviation 50) deterministically derived
// from the current operand, as the time a real multiplier takes depends on
// the values involved. The secret exponent is recovered one bit at a time,
// MSB first, with the variance difference strategy: the candidate prefix
// whose replayed times track the victim's more closely wins.
//
// The attack is probabilistic in nature, so a single run may fail.
//
// Some background: https://datawok.net/posts/timing-attack
package timing

import (
	"fmt"
	"math/big"
	"math/rand/v2"
)

const (
	delayMean   = 1000.0
	delayStdDev = 50.0
)

// Modulus returns the fixed group modulus used for the given key length in
// bits. Supported lengths are 8, 16, 32, 64, 128 and 256.
func Modulus(keylen int) (*big.Int, bool) {
	switch keylen {
	case 8:
		return big.NewInt(61), true
	case 16:
		return big.NewInt(53759), true
	case 32:
		return big.NewInt(2675797811), true
	case 64:
		return new(big.Int).SetUint64(8642890157798231327), true
	case 128:
		n, _ := new(big.Int).SetString("249018405283997733407297959207515566297", 10)
		return n, true
	case 256:
		n, _ := new(big.Int).SetString(
			"44836394558820158783687605622545866580915032641323282158738215690847176590297", 10)
		return n, true
	}
	return nil, false
}

// SquareAndMultiply returns the simulated execution time of computing
// m^d mod p. The delay generator is re-seeded from the running residue, so
// the same operands always take the same time.
func SquareAndMultiply(m, d, p *big.Int) float64 {
	res := big.NewInt(1)
	delay := 0.0

	rng := delayRNG(m)

	nbits := d.BitLen()
	if nbits == 0 {
		nbits = 1
	}
	for i := 1; i <= nbits; i++ {
		res.Mul(res, res)
		res.Mod(res, p)
		delay += delayMean + delayStdDev*rng.NormFloat64()
		if d.Bit(nbits-i) == 1 {
			res.Mul(res, m)
			res.Mod(res, p)
			rng = delayRNG(res)
			delay += delayMean + delayStdDev*rng.NormFloat64()
		}
	}
	return delay
}

// Victim models the target device: it holds a hidden keylen-bit secret
// (top bit forced set) and leaks only how long signing takes.
type Victim struct {
	modulus *big.Int
	secret  *big.Int
}

// NewVictim builds a victim with a secret derived from seed.
func NewVictim(seed uint64, keylen int) (*Victim, error) {
	modulus, ok := Modulus(keylen)
	if !ok {
		return nil, fmt.Errorf("unsupported keylen %d", keylen)
	}

	rng := rand.New(rand.NewPCG(seed, 0))
	secret := randBits(rng, keylen)
	secret.SetBit(secret, keylen-1, 1)

	return &Victim{modulus: modulus, secret: secret}, nil
}

// Sign returns the simulated time of signing m with the hidden secret.
func (v *Victim) Sign(m *big.Int) float64 {
	return SquareAndMultiply(m, v.secret, v.modulus)
}

// Secret exposes the hidden exponent, for checking the attack outcome.
func (v *Victim) Secret() *big.Int {
	return new(big.Int).Set(v.secret)
}

// RecoverSecret runs the variance attack against the victim, timing iters
// random messages per recovered bit on an identical device model. More
// iterations lower the per-bit error probability; keylen 64 wants around
// 1000, 256 around 10000.
func RecoverSecret(victim *Victim, keylen, iters int, rng *rand.Rand) *big.Int {
	recovered := new(big.Int)

	for bit := 0; bit < keylen; bit++ {
		var sum0, sum0sq, sum1, sum1sq float64

		recovered.Lsh(recovered, 1)

		for i := 0; i < iters; i++ {
			m := randBits(rng, keylen)
			tVictim := victim.Sign(m)

			// Attempt with the current bit at 0
			recovered.SetBit(recovered, 0, 0)
			delta0 := tVictim - SquareAndMultiply(m, recovered, victim.modulus)
			sum0 += delta0
			sum0sq += delta0 * delta0

			// Attempt with the current bit at 1
			recovered.SetBit(recovered, 0, 1)
			delta1 := tVictim - SquareAndMultiply(m, recovered, victim.modulus)
			sum1 += delta1
			sum1sq += delta1 * delta1
		}

		n := float64(iters)
		exp0 := sum0 / n
		var0 := sum0sq/n - exp0*exp0
		exp1 := sum1 / n
		var1 := sum1sq/n - exp1*exp1

		if var0 < var1 {
			recovered.SetBit(recovered, 0, 0)
		} else {
			recovered.SetBit(recovered, 0, 1)
		}
	}
	return recovered
}

var mask64 = new(big.Int).SetUint64(^uint64(0))

func delayRNG(operand *big.Int) *rand.Rand {
	seed := new(big.Int).And(operand, mask64).Uint64()
	return rand.New(rand.NewPCG(seed, 0))
}

func randBits(rng *rand.Rand, bits int) *big.Int {
	buf := make([]byte, (bits+7)/8)
	for i := range buf {
		buf[i] = byte(rng.Uint64())
	}
	n := new(big.Int).SetBytes(buf)
	n.Rsh(n, uint(len(buf)*8-bits))
	return n
}
