// Package cipher implements the modular substitution transform used by the
// enc and dec services.
//
// The alphabet is the 26 uppercase letters followed by a space.  Each
// symbol maps to its position (A=0 … Z=25, space=26); the forward
// transform adds the key index modulo 27 and the inverse subtracts it.
// Nothing here is cryptographically sound; it is a one-time-pad lookalike.
package cipher

// Alphabet lists every valid symbol in index order.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ "

// Size is the number of symbols in [Alphabet].
const Size = len(Alphabet)

// Newline is passed through every transform untouched.  Text files
// usually end in one and it is carried on the wire verbatim.
const Newline = '\n'

// indexTable maps a byte to its alphabet position, or -1.  Built once at
// package init and read-only afterwards.
var indexTable = func() (t [256]int8) {
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < Size; i++ {
		t[Alphabet[i]] = int8(i)
	}
	return t
}()

// Index returns the alphabet position of b.  ok is false for bytes outside
// the alphabet.
func Index(b byte) (idx int, ok bool) {
	i := indexTable[b]
	return int(i), i >= 0
}

// Symbol returns the symbol at position i (taken modulo [Size]).
func Symbol(i int) byte {
	i %= Size
	if i < 0 {
		i += Size
	}
	return Alphabet[i]
}

// Valid reports whether b is an alphabet symbol.
func Valid(b byte) bool { return indexTable[b] >= 0 }
