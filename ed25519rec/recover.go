// Package ed25519rec demonstrates why an Ed25519 signer must never accept a
// decoupled private/public keypair (RUSTSEC-2022-0093).
//
// The public key enters the deterministic computation of the S half of a
// signature but not of the R half. A signer tricked into signing one message
// under the same seed but two different claimed public keys thus emits two
// signatures sharing R and differing only in S:
//
//	s1 = r + h1·a
//	s2 = r + h2·a
//
// with h = SHA-512(R || pub || msg), which hands over the expanded secret
// scalar a = (s1 - s2)·(h1 - h2)^-1.
package ed25519rec

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha512"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
)

var (
	// ErrDistinctNonce means the two signatures do not share the R half, so
	// the S difference does not cancel the nonce.
	ErrDistinctNonce = errors.New("signatures do not share the nonce point")

	// ErrEqualChallenges means the two challenge scalars coincide and the
	// difference is not invertible.
	ErrEqualChallenges = errors.New("challenge scalars coincide")
)

// Sign signs msg with the given 32-byte seed while claiming pub as the
// public key. This mirrors the misuse enabled by APIs that model the two
// halves of a keypair as independently settable values: crypto/ed25519
// happily hashes whatever sits in the public half of the private key.
func Sign(seed []byte, pub ed25519.PublicKey, msg []byte) []byte {
	priv := make([]byte, ed25519.PrivateKeySize)
	copy(priv, seed)
	copy(priv[ed25519.SeedSize:], pub)
	return ed25519.Sign(priv, msg)
}

// RecoverScalar extracts the signer's expanded secret scalar from two
// signatures of msg made with the same seed but the claimed public keys
// pub1 and pub2.
func RecoverScalar(sig1, sig2 []byte, pub1, pub2 ed25519.PublicKey, msg []byte) (*edwards25519.Scalar, error) {
	if len(sig1) != ed25519.SignatureSize || len(sig2) != ed25519.SignatureSize {
		return nil, fmt.Errorf("signature is not %d bytes", ed25519.SignatureSize)
	}
	if !bytes.Equal(sig1[:32], sig2[:32]) {
		return nil, ErrDistinctNonce
	}

	s1, err := new(edwards25519.Scalar).SetCanonicalBytes(sig1[32:])
	if err != nil {
		return nil, fmt.Errorf("first signature: %w", err)
	}
	s2, err := new(edwards25519.Scalar).SetCanonicalBytes(sig2[32:])
	if err != nil {
		return nil, fmt.Errorf("second signature: %w", err)
	}

	h1 := challengeScalar(sig1[:32], pub1, msg)
	h2 := challengeScalar(sig2[:32], pub2, msg)

	num := new(edwards25519.Scalar).Subtract(s1, s2)
	den := new(edwards25519.Scalar).Subtract(h1, h2)
	if den.Equal(edwards25519.NewScalar()) == 1 {
		return nil, ErrEqualChallenges
	}

	return num.Multiply(num, den.Invert(den)), nil
}

// challengeScalar reduces SHA-512(R || pub || msg) to a scalar, as the
// Ed25519 verification equation does.
func challengeScalar(r []byte, pub ed25519.PublicKey, msg []byte) *edwards25519.Scalar {
	h := sha512.New()
	h.Write(r)
	h.Write(pub)
	h.Write(msg)

	s, err := new(edwards25519.Scalar).SetUniformBytes(h.Sum(nil))
	if err != nil {
		// SHA-512 output is always 64 bytes.
		panic(err)
	}
	return s
}
