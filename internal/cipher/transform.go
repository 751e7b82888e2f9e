package cipher

import "fmt"

// Direction selects the forward (encrypt) or inverse (decrypt) transform.
type Direction int

const (
	Forward Direction = iota
	Inverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Inverse:
		return "inverse"
	default:
		return "unknown"
	}
}

// Encrypt combines one message symbol with one key symbol.
func Encrypt(m, k byte) byte {
	if m == Newline {
		return m
	}
	mi, ok := Index(m)
	if !ok {
		return m
	}
	ki, ok := Index(k)
	if !ok {
		return m
	}
	return Alphabet[(mi+ki)%Size]
}

// Decrypt reverses [Encrypt] for the same key symbol.
func Decrypt(c, k byte) byte {
	if c == Newline {
		return c
	}
	ci, ok := Index(c)
	if !ok {
		return c
	}
	ki, ok := Index(k)
	if !ok {
		return c
	}
	return Alphabet[(ci-ki+Size)%Size]
}

// Byte applies the direction to a single symbol pair.
func (d Direction) Byte(m, k byte) byte {
	if d == Inverse {
		return Decrypt(m, k)
	}
	return Encrypt(m, k)
}

// Apply transforms msg position-wise with key into dst and returns the
// number of bytes written, which is the shortest of the three lengths.
// dst may alias msg.
func (d Direction) Apply(dst, msg, key []byte) int {
	n := len(msg)
	if len(key) < n {
		n = len(key)
	}
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = d.Byte(msg[i], key[i])
	}
	return n
}

// Transform returns a new buffer holding msg transformed with the leading
// len(msg) symbols of key.  Any excess key material is ignored.
func (d Direction) Transform(msg, key []byte) ([]byte, error) {
	if len(key) < len(msg) {
		return nil, fmt.Errorf("key length %d shorter than message length %d", len(key), len(msg))
	}
	out := make([]byte, len(msg))
	d.Apply(out, msg, key[:len(msg)])
	return out, nil
}
