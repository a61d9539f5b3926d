// Package shanks implements the Shanks baby-step giant-step algorithm, a
// meet-in-the-middle method for computing discrete logarithms in a finite
// abelian group.
//
// The lookup table holds ceil(sqrt(n)) entries in memory, so the
// implementation only suits groups of modest order.
//
// Some background: https://datawok.net/posts/discrete-logarithm/#shanks-algorithm
package shanks

import "math/big"

// Log computes the discrete logarithm x of h base g modulo the prime n,
// i.e. the smallest x with g^x = h (mod n).
//
// Writing x = m·i + j with m = ceil(sqrt(n)), it stores g^j for 0 <= j < m,
// then walks h·g^(-m·i) for 0 <= i < m looking for a table hit.
func Log(n, g, h *big.Int) (*big.Int, bool) {
	sqrt := new(big.Int).Sqrt(n)
	if !sqrt.IsUint64() {
		return nil, false
	}
	m := sqrt.Uint64() + 1

	// Baby steps: g^j mod n
	table := make(map[string]uint64, m)
	e := big.NewInt(1)
	for j := uint64(0); j < m; j++ {
		if _, ok := table[string(e.Bytes())]; !ok {
			table[string(e.Bytes())] = j
		}
		e.Mul(e, g)
		e.Mod(e, n)
	}

	// g^-m = g^(phi(n)-m) = g^(n-1-m) (mod n)
	exp := new(big.Int).Sub(n, big.NewInt(1))
	exp.Sub(exp, new(big.Int).SetUint64(m))
	factor := new(big.Int).Exp(g, exp, n)

	// Giant steps: h·g^(-m·i) mod n
	e = new(big.Int).Mod(h, n)
	for i := uint64(0); i < m; i++ {
		if j, ok := table[string(e.Bytes())]; ok {
			return new(big.Int).SetUint64(i*m + j), true
		}
		e.Mul(e, factor)
		e.Mod(e, n)
	}
	return nil, false
}
