package symbology

// Static module pattern tables from the GS1 General Specifications. Kept as
// immutable package-level constants so the decoder logic stays auditable
// against the published standard.

// leftOdd holds the odd-parity (L) 7-module encodings of digits 0-9 used in
// the left half of EAN/UPC symbols. 1 is a dark module.
var leftOdd = [10][7]uint8{
	{0, 0, 0, 1, 1, 0, 1}, // 0
	{0, 0, 1, 1, 0, 0, 1}, // 1
	{0, 0, 1, 0, 0, 1, 1}, // 2
	{0, 1, 1, 1, 1, 0, 1}, // 3
	{0, 1, 0, 0, 0, 1, 1}, // 4
	{0, 1, 1, 0, 0, 0, 1}, // 5
	{0, 1, 0, 1, 1, 1, 1}, // 6
	{0, 1, 1, 1, 0, 1, 1}, // 7
	{0, 1, 1, 0, 1, 1, 1}, // 8
	{0, 0, 0, 1, 0, 1, 1}, // 9
}

// leftEven (G) and right (R) encodings are derived from leftOdd: R is the
// bitwise complement, G is the reversed complement.
var (
	leftEven = deriveLeftEven()
	right    = deriveRight()
)

func deriveRight() [10][7]uint8 {
	var out [10][7]uint8
	for d := 0; d < 10; d++ {
		for i := 0; i < 7; i++ {
			out[d][i] = 1 - leftOdd[d][i]
		}
	}
	return out
}

func deriveLeftEven() [10][7]uint8 {
	var out [10][7]uint8
	for d := 0; d < 10; d++ {
		for i := 0; i < 7; i++ {
			out[d][i] = 1 - leftOdd[d][6-i]
		}
	}
	return out
}

// firstDigitParity maps an EAN-13 first digit to the L/G parity word of the
// six left-half digits.
var firstDigitParity = [10]string{
	"LLLLLL", // 0
	"LLGLGG", // 1
	"LLGGLG", // 2
	"LLGGGL", // 3
	"LGLLGG", // 4
	"LGGLLG", // 5
	"LGGGLL", // 6
	"LGLGLG", // 7
	"LGLGGL", // 8
	"LGGLGL", // 9
}

// code128Digits holds the run-width patterns (6 runs, 11 modules) of Code128
// symbol values 0-9, which encode the digit pairs 00-09 in Code C and the
// ASCII digits in Code B. This is the numeric subset this decoder supports.
var code128Digits = [10][6]int{
	{2, 1, 2, 2, 2, 2}, // 0
	{2, 2, 2, 1, 2, 2}, // 1
	{2, 2, 2, 2, 2, 1}, // 2
	{1, 2, 1, 2, 2, 3}, // 3
	{1, 2, 1, 3, 2, 2}, // 4
	{1, 3, 1, 2, 2, 2}, // 5
	{1, 2, 2, 2, 1, 3}, // 6
	{1, 2, 2, 3, 1, 2}, // 7
	{1, 3, 2, 2, 1, 2}, // 8
	{2, 2, 1, 2, 1, 3}, // 9
}
