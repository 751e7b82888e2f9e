package core

import (
	"context"
	"io"
	"math/rand"
	"os"

	"otp/internal/keygen"
)

// KeygenMode prints one key of Length symbols plus a newline.
type KeygenMode struct {
	Length int
	Source *rand.Rand // nil = seeded from the clock

	// Stdout defaults to os.Stdout when nil.
	Stdout io.Writer
}

// Run writes the key.  It never blocks on ctx.
func (m *KeygenMode) Run(_ context.Context) error {
	out := m.Stdout
	if out == nil {
		out = os.Stdout
	}
	return keygen.Generate(out, m.Length, m.Source)
}
