// Package keygen produces pad keys: uniformly drawn alphabet symbols
// followed by a newline.  The source is math/rand and the output is not
// suitable for real cryptographic use.
package keygen

import (
	"bufio"
	"io"
	"math/rand"
	"time"

	"otp/internal/cipher"
	"otp/internal/errors"
)

// NewSource returns a generator seeded from the wall clock at second
// resolution, so two runs in the same second produce the same key.
func NewSource() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().Unix()))
}

// Generate writes length symbols drawn from src, then a newline.
func Generate(w io.Writer, length int, src *rand.Rand) error {
	if length <= 0 {
		return &errors.UsageError{Tool: "keygen", Message: "keylength must be a positive integer"}
	}
	if src == nil {
		src = NewSource()
	}

	bw := bufio.NewWriter(w)
	for i := 0; i < length; i++ {
		if err := bw.WriteByte(cipher.Symbol(src.Intn(cipher.Size))); err != nil {
			return errors.Transfer("write key", err)
		}
	}
	if err := bw.WriteByte(cipher.Newline); err != nil {
		return errors.Transfer("write key", err)
	}
	if err := bw.Flush(); err != nil {
		return errors.Transfer("write key", err)
	}
	return nil
}
