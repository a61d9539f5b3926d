package millerrabin

import (
	"math/big"
	"testing"
)

func TestSmallPrimes(t *testing.T) {
	tests := []struct {
		name string

		input *big.Int
		prime bool
	}{
		{name: "Zero", input: big.NewInt(0), prime: false},
		{name: "One", input: big.NewInt(1), prime: true},
		{name: "Two", input: big.NewInt(2), prime: true},
		{name: "Small composite", input: big.NewInt(561), prime: false},
		{name: "Prime above the sieve", input: big.NewInt(17791), prime: true},
		{name: "Product of primes above the sieve", input: big.NewInt(17791 * 17839 * 17851), prime: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsPrime(test.input); got != test.prime {
				t.Errorf("IsPrime(%v) = %v, expected %v", test.input, got, test.prime)
			}
		})
	}
}

func TestMillerRabin(t *testing.T) {
	p, ok := new(big.Int).SetString(
		"1269137899329015734198852969175332151915502982003874425987364731216285546438096536038703243719054337",
		10,
	)
	if !ok {
		t.Fatal("Could not parse p")
	}
	if !IsPrime(p) {
		t.Errorf("Expected p to be prime")
	}

	q, ok := new(big.Int).SetString(
		"6504286590288767118032686861713724448149119312357868347142148568446447367009371975895368151336893777",
		10,
	)
	if !ok {
		t.Fatal("Could not parse q")
	}
	if !IsPrime(q) {
		t.Errorf("Expected q to be prime")
	}

	pq := new(big.Int).Mul(p, q)
	if IsPrime(pq) {
		t.Errorf("Expected p*q to be composite")
	}
}

func TestPrimeNum(t *testing.T) {
	n := PrimeNum(256, 0)
	if n == nil {
		t.Fatal("No prime found")
	}
	if n.BitLen() > 256 {
		t.Errorf("Prime has %d bits, expected at most 256", n.BitLen())
	}
	if !IsPrime(n) {
		t.Errorf("Generated number %v is not prime", n)
	}
}

func TestPrimeNumSerial(t *testing.T) {
	n, count := PrimeNumSerial(128, 0)
	if n == nil {
		t.Fatalf("No prime found in %d attempts", count)
	}
	if count < 1 {
		t.Errorf("Bogus attempt count %d", count)
	}
	if !IsPrime(n) {
		t.Errorf("Generated number %v is not prime", n)
	}
}
