// Package rsafails collects classic attacks against RSA misuse: encrypting
// one message under two exponents sharing a modulus, and fault injection
// into a CRT signature.
//
// Background: https://datawok.net/posts/rsa-cipher/#common-modulus-failure
package rsafails

import (
	"errors"
	"math/big"
)

var (
	// ErrNotCoprime means the two public exponents share a factor, so no
	// Bezout combination reaching exponent 1 exists.
	ErrNotCoprime = errors.New("public exponents are not coprime")

	// ErrNotInvertible means a ciphertext shares a factor with the modulus.
	// Very unlikely, and good news for the attacker anyway: the GCD is a
	// factor of n.
	ErrNotInvertible = errors.New("ciphertext not invertible modulo n")

	// ErrUselessFault means the faulty signature did not expose a proper
	// factor of the modulus.
	ErrUselessFault = errors.New("fault does not expose a factor")
)

// CommonModulus recovers a message m encrypted under two keypairs sharing
// the modulus n: c1 = m^e1, c2 = m^e2. With x, y such that e1·x + e2·y = 1,
// c1^x · c2^y = m^(e1·x + e2·y) = m.
func CommonModulus(n, e1, e2, c1, c2 *big.Int) (*big.Int, error) {
	g, x, y := new(big.Int), new(big.Int), new(big.Int)
	g.GCD(x, y, e1, e2)
	if g.Cmp(big.NewInt(1)) != 0 {
		return nil, ErrNotCoprime
	}

	t1, err := expSigned(c1, x, n)
	if err != nil {
		return nil, err
	}
	t2, err := expSigned(c2, y, n)
	if err != nil {
		return nil, err
	}

	m := t1.Mul(t1, t2)
	return m.Mod(m, n), nil
}

// expSigned computes c^e mod n, handling a negative exponent through the
// modular inverse: c^-a = (c^-1)^a.
func expSigned(c, e, n *big.Int) (*big.Int, error) {
	if e.Sign() >= 0 {
		return new(big.Int).Exp(c, e, n), nil
	}
	inv := new(big.Int).ModInverse(c, n)
	if inv == nil {
		return nil, ErrNotInvertible
	}
	return inv.Exp(inv, new(big.Int).Neg(e), n), nil
}

// CRTFaultFactor factors n given a correct CRT signature s and a faulty
// signature f of the same message, computed with a corrupted mod-q leg.
// The difference s-f is a multiple of p but not of q, so gcd(s-f, n) = p.
func CRTFaultFactor(n, s, f *big.Int) (p, q *big.Int, err error) {
	diff := new(big.Int).Sub(s, f)
	diff.Abs(diff)

	p = new(big.Int).GCD(nil, nil, diff, n)
	if p.Cmp(big.NewInt(1)) <= 0 || p.Cmp(n) == 0 {
		return nil, nil, ErrUselessFault
	}
	q = new(big.Int).Div(n, p)
	return p, q, nil
}
