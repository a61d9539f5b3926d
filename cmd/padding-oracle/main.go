// Self test for the CBC padding-oracle attack: encrypt a known plaintext
// under a fixed key and IV, hand the attacker only the IV, the ciphertext
// and an oracle bound to that key, and check the recovery.
package main

import (
	"bytes"
	"encoding/hex"
	"log"

	"github.com/davxy/crypto-hacks/key"
	"github.com/davxy/crypto-hacks/paddingoracle"
)

func main() {
	k := key.Repeat(0x42)
	iv := bytes.Repeat([]byte{0x24}, paddingoracle.BlockSize)
	plaintext := []byte("hello world! this is my plaintext!!!")

	ciphertext, err := paddingoracle.EncryptCBC(k, iv, plaintext)
	if err != nil {
		log.Fatalf("encrypt: %v", err)
	}
	log.Printf("CT: %s", hex.EncodeToString(ciphertext))

	oracle, err := paddingoracle.NewCBCOracle(k)
	if err != nil {
		log.Fatalf("oracle: %v", err)
	}

	recovered, err := paddingoracle.Attack(oracle, iv, ciphertext)
	if err != nil {
		log.Fatalf("attack: %v", err)
	}
	log.Printf("PT: %s", hex.EncodeToString(recovered))

	if !bytes.Equal(recovered, plaintext) {
		log.Fatalf("recovered plaintext does not match: %q", recovered)
	}
	log.Printf("recovered: %q", recovered)
}
