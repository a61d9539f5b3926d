// Birthday paradox demo over a 6-byte value space.
package main

import (
	"encoding/hex"
	"fmt"
	"log"

	"github.com/davxy/crypto-hacks/birthday"
)

func main() {
	const numBytes = 6

	fmt.Printf("Search set size: %d\n", uint64(1)<<(numBytes*8))
	fmt.Printf("First collision expected after: %d\n", uint64(1)<<(numBytes*4))

	fmt.Println("Random value obtained via OS rng")
	c, err := birthday.OSRand(numBytes)
	if err != nil {
		log.Fatalf("os random: %v", err)
	}
	fmt.Printf("Collision after %d extractions\n", c.Count)
	fmt.Printf("Value: %s\n", hex.EncodeToString(c.Value))

	fmt.Println("Random value obtained via sha256(counter)")
	c = birthday.SubSHA(numBytes)
	fmt.Printf("Collision after %d hashes\n", c.Count)
	fmt.Printf("%s = H(%d) = H(%d)\n", hex.EncodeToString(c.Value), c.First, c.Second)
}
