package deflate

// Length/distance base+extra-bits tables and the code-length alphabet
// permutation, per RFC 1951 §3.2.5 and §3.2.7. Values cross-checked against
// the reference implementation's HuffmanUtils::cLengthCodes /
// cDistanceCodes constant tables.

// codeLengthOrder is the order in which the HCLEN code-length code lengths
// appear in a DYNAMIC block header. Lengths for omitted trailing positions
// are 0.
var codeLengthOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// lengthBase and lengthExtra give the base length and extra-bit count for
// length symbols 257..285 (index 0 corresponds to symbol 257).
var lengthBase = [29]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13,
	15, 17, 19, 23, 27, 31, 35, 43, 51, 59,
	67, 83, 99, 115, 131, 163, 195, 227, 258,
}
var lengthExtra = [29]int{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1,
	1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distBase and distExtra give the base distance and extra-bit count for
// distance symbols 0..29.
var distBase = [30]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25,
	33, 49, 65, 97, 129, 193, 257, 385, 513, 769,
	1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}
var distExtra = [30]int{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3,
	4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// fixedLitLenLengths builds the RFC 1951 §3.2.6 fixed literal/length code
// lengths: 8 for 0-143, 9 for 144-255, 7 for 256-279, 8 for 280-287.
func fixedLitLenLengths() []int {
	lens := make([]int, 288)
	for i := 0; i <= 143; i++ {
		lens[i] = 8
	}
	for i := 144; i <= 255; i++ {
		lens[i] = 9
	}
	for i := 256; i <= 279; i++ {
		lens[i] = 7
	}
	for i := 280; i <= 287; i++ {
		lens[i] = 8
	}
	return lens
}

// fixedDistLengths builds the fixed distance code lengths: all 30 codes
// have length 5.
func fixedDistLengths() []int {
	lens := make([]int, 30)
	for i := range lens {
		lens[i] = 5
	}
	return lens
}

const (
	maxLitLenCodeLength = 15
	maxDistCodeLength   = 15
	maxCLCodeLength     = 7

	endOfBlockSymbol = 256
	firstLengthSym   = 257
	lastLengthSym    = 285
)
