package fiscalcode

// filler pads name blocks shorter than three characters.
const filler = 'X'

// unknown stands in for characters with no single-byte form.
const unknown = '?'

// monthLetters maps month 1-12 (index 0 = January) to its code letter.
var monthLetters = [12]byte{'A', 'B', 'C', 'D', 'E', 'H', 'L', 'M', 'P', 'R', 'S', 'T'}

// evenValues weights characters at even 1-based positions.
// Indexed by tableIndex: '0'-'9' then 'A'-'Z'.
var evenValues = [36]int{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12,
	13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25,
}

// oddValues weights characters at odd 1-based positions.
var oddValues = [36]int{
	1, 0, 5, 7, 9, 13, 15, 17, 19, 21,
	// A  B  C  D  E   F   G   H   I   J  K  L   M
	1, 0, 5, 7, 9, 13, 15, 17, 19, 21, 2, 4, 18,
	// N  O  P  Q  R   S   T   U   V   W   X   Y   Z
	20, 11, 3, 6, 8, 12, 14, 16, 10, 22, 25, 24, 23,
}

func isVowel(r rune) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

// tableIndex returns the checksum table slot for c, or -1 when c has none.
func tableIndex(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return -1
}

func evenValue(c rune) int {
	if i := tableIndex(c); i >= 0 {
		return evenValues[i]
	}
	return 0
}

func oddValue(c rune) int {
	if i := tableIndex(c); i >= 0 {
		return oddValues[i]
	}
	return 0
}
