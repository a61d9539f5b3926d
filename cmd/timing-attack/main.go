// Variance-difference timing attack demo against a simulated 64-bit secret.
package main

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/davxy/crypto-hacks/timing"
)

func main() {
	// The longer the key, the more samples each bit wants:
	// 64 -> 1000, 128 -> 4000, 256 -> 10000.
	const (
		keylen = 64
		iters  = 1000
	)

	victim, err := timing.NewVictim(rand.Uint64(), keylen)
	if err != nil {
		log.Fatalf("victim: %v", err)
	}

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	recovered := timing.RecoverSecret(victim, keylen, iters, rng)

	fmt.Printf("secret    : %0*b\n", keylen, victim.Secret())
	fmt.Printf("recovered : %0*b\n", keylen, recovered)
	if recovered.Cmp(victim.Secret()) != 0 {
		fmt.Println("recovery failed, the attack is probabilistic: retry")
	}
}
