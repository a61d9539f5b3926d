package timing

import (
	"math/big"
	"math/rand/v2"
	"testing"
)

func TestModulus(t *testing.T) {
	for _, keylen := range []int{8, 16, 32, 64, 128, 256} {
		n, ok := Modulus(keylen)
		if !ok || n == nil {
			t.Errorf("No modulus for keylen %d", keylen)
		}
	}
	if _, ok := Modulus(48); ok {
		t.Errorf("Expected no modulus for keylen 48")
	}
}

func TestSquareAndMultiplyDeterministic(t *testing.T) {
	p, _ := Modulus(16)
	m := big.NewInt(12345)
	d := big.NewInt(0xa5a5)

	t1 := SquareAndMultiply(m, d, p)
	t2 := SquareAndMultiply(m, d, p)
	if t1 != t2 {
		t.Errorf("Same operands timed differently: %f vs %f", t1, t2)
	}

	// A different exponent walks a different operation sequence.
	t3 := SquareAndMultiply(m, big.NewInt(0x5a5a), p)
	if t1 == t3 {
		t.Errorf("Distinct exponents timed identically: %f", t1)
	}
}

func TestVictimSecretShape(t *testing.T) {
	const keylen = 64

	victim, err := NewVictim(1, keylen)
	if err != nil {
		t.Fatalf("Error building victim: %s", err)
	}

	secret := victim.Secret()
	if secret.BitLen() != keylen {
		t.Errorf("Secret has %d bits, expected the top of %d bits set", secret.BitLen(), keylen)
	}
}

func TestUnsupportedKeylen(t *testing.T) {
	if _, err := NewVictim(1, 48); err == nil {
		t.Errorf("Expected an error for keylen 48")
	}
}

func TestRecoverSecret(t *testing.T) {
	if testing.Short() {
		t.Skip("probabilistic attack, skipped in short mode")
	}

	const (
		keylen = 8
		iters  = 1000
	)

	// Probabilistic attack: allow a few fresh victims before declaring
	// failure.
	for attempt := 0; attempt < 5; attempt++ {
		victim, err := NewVictim(rand.Uint64(), keylen)
		if err != nil {
			t.Fatalf("Error building victim: %s", err)
		}

		rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		recovered := RecoverSecret(victim, keylen, iters, rng)
		if recovered.Cmp(victim.Secret()) == 0 {
			return
		}
		t.Logf("Attempt %d: recovered %0*b, expected %0*b", attempt, keylen, recovered, keylen, victim.Secret())
	}
	t.Errorf("Secret not recovered in 5 attempts")
}
