package rsafails

import (
	"errors"
	"math/big"
	"testing"
)

func testPrimes(t *testing.T) (p, q *big.Int) {
	t.Helper()

	p, ok := new(big.Int).SetString(
		"1269137899329015734198852969175332151915502982003874425987364731216285546438096536038703243719054337",
		10,
	)
	if !ok {
		t.Fatal("Could not parse p")
	}
	q, ok = new(big.Int).SetString(
		"6504286590288767118032686861713724448149119312357868347142148568446447367009371975895368151336893777",
		10,
	)
	if !ok {
		t.Fatal("Could not parse q")
	}
	return p, q
}

func TestCommonModulus(t *testing.T) {
	p, q := testPrimes(t)
	n := new(big.Int).Mul(p, q)

	e1 := big.NewInt(13)
	e2 := big.NewInt(65537)
	m := big.NewInt(12345678987654321)

	c1 := new(big.Int).Exp(m, e1, n)
	c2 := new(big.Int).Exp(m, e2, n)

	recovered, err := CommonModulus(n, e1, e2, c1, c2)
	if err != nil {
		t.Fatalf("Error recovering message: %s", err)
	}
	if recovered.Cmp(m) != 0 {
		t.Errorf("Recovered %v, expected %v", recovered, m)
	}
}

func TestCommonModulusNotCoprime(t *testing.T) {
	p, q := testPrimes(t)
	n := new(big.Int).Mul(p, q)

	c := big.NewInt(42)
	_, err := CommonModulus(n, big.NewInt(6), big.NewInt(9), c, c)
	if !errors.Is(err, ErrNotCoprime) {
		t.Errorf("Got error %v, expected ErrNotCoprime", err)
	}
}

func TestCRTFaultFactor(t *testing.T) {
	p, q := testPrimes(t)
	n := new(big.Int).Mul(p, q)

	one := big.NewInt(1)
	phi := new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
	e := big.NewInt(65537)
	d := new(big.Int).ModInverse(e, phi)
	if d == nil {
		t.Fatal("Public exponent not invertible")
	}

	m := big.NewInt(1234519048532148324)

	// CRT signature: S = Sp·q·(q^-1 mod p) + Sq·p·(p^-1 mod q) mod n
	s1 := new(big.Int).Exp(m, d, p)
	s2 := new(big.Int).Exp(m, d, q)
	crt := func(a, b *big.Int) *big.Int {
		left := new(big.Int).Mul(a, q)
		left.Mul(left, new(big.Int).ModInverse(q, p))
		right := new(big.Int).Mul(b, p)
		right.Mul(right, new(big.Int).ModInverse(p, q))
		s := left.Add(left, right)
		return s.Mod(s, n)
	}

	s := crt(s1, s2)
	if s.Cmp(new(big.Int).Exp(m, d, n)) != 0 {
		t.Fatal("CRT signature does not match plain signature")
	}

	// Simulate a fault corrupting the mod-q leg.
	f := crt(s1, big.NewInt(91238102380912903))

	gotP, gotQ, err := CRTFaultFactor(n, s, f)
	if err != nil {
		t.Fatalf("Error factoring: %s", err)
	}
	if new(big.Int).Mul(gotP, gotQ).Cmp(n) != 0 {
		t.Errorf("Recovered factors do not multiply back to n")
	}
	if gotP.Cmp(p) != 0 && gotP.Cmp(q) != 0 {
		t.Errorf("Recovered factor %v is neither p nor q", gotP)
	}
}

func TestCRTFaultFactorUseless(t *testing.T) {
	p, q := testPrimes(t)
	n := new(big.Int).Mul(p, q)
	s := big.NewInt(123456789)

	// No fault at all: the difference is zero.
	if _, _, err := CRTFaultFactor(n, s, s); !errors.Is(err, ErrUselessFault) {
		t.Errorf("Got error %v, expected ErrUselessFault", err)
	}
}
