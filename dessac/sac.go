// Package dessac evaluates the strict avalanche criterion (SAC) of the DES
// substitution boxes: how many output bits flip, on average, when a single
// input bit is toggled. An ideal box scores 0.5.
//
// Background:
//   - https://datawok.net/posts/feistel-ciphers/#s-box
//   - https://link.springer.com/chapter/10.1007/3-540-39799-X_41
package dessac

import "math/bits"

const (
	inputBits  = 6
	outputBits = 4
)

// Apply applies box to the 6-bit input x. Bits 5 and 0 select the row, bits
// 4..1 the column.
func Apply(box [64]byte, x byte) byte {
	row := (x&0b100000)>>4 | x&0b000001
	col := (x & 0b011110) >> 1
	return box[row*16+col]
}

// bitDiff is the fraction of the 4 output bits differing between a and b.
func bitDiff(a, b byte) float64 {
	return float64(bits.OnesCount8((a^b)&0x0f)) / outputBits
}

// MeanInputDiff is the mean fraction of output bits flipped across all
// single-bit toggles of the input x.
func MeanInputDiff(box [64]byte, x byte) float64 {
	y := Apply(box, x)

	tot := 0.0
	for i := 0; i < inputBits; i++ {
		y1 := Apply(box, x^(1<<i))
		tot += bitDiff(y, y1)
	}
	return tot / inputBits
}

// SAC is the strict-avalanche-criterion value of box: MeanInputDiff averaged
// over all 64 possible inputs.
func SAC(box [64]byte) float64 {
	tot := 0.0
	for x := 0; x < 64; x++ {
		tot += MeanInputDiff(box, byte(x))
	}
	return tot / 64
}
