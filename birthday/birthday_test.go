package birthday

import (
	"testing"
)

func TestSubSHA(t *testing.T) {
	c := SubSHA(2)

	if c.Count < 1 {
		t.Errorf("Bogus extraction count %d", c.Count)
	}
	if c.First == c.Second {
		t.Errorf("Colliding preimages are identical: %d", c.First)
	}
	if len(c.Value) != 2 {
		t.Fatalf("Colliding value is %d bytes, expected 2", len(c.Value))
	}

	// Both preimages really hash to the reported prefix.
	if shortHash(c.First, 2) != string(c.Value) {
		t.Errorf("First preimage %d does not hash to %x", c.First, c.Value)
	}
	if shortHash(c.Second, 2) != string(c.Value) {
		t.Errorf("Second preimage %d does not hash to %x", c.Second, c.Value)
	}
}

func TestOSRand(t *testing.T) {
	c, err := OSRand(2)
	if err != nil {
		t.Fatalf("Error drawing random values: %s", err)
	}

	if c.Count < 2 {
		t.Errorf("Collision cannot happen on the first extraction, got count %d", c.Count)
	}
	if len(c.Value) != 2 {
		t.Errorf("Colliding value is %d bytes, expected 2", len(c.Value))
	}
}
