package cipher

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	tests := []struct {
		in     byte
		want   int
		wantOK bool
	}{
		{'A', 0, true},
		{'M', 12, true},
		{'Z', 25, true},
		{' ', 26, true},
		{'a', -1, false},
		{'\n', -1, false},
		{'@', -1, false},
		{0xff, -1, false},
	}
	for _, tt := range tests {
		got, ok := Index(tt.in)
		require.Equal(t, tt.wantOK, ok, "Index(%q) ok", tt.in)
		require.Equal(t, tt.want, got, "Index(%q)", tt.in)
	}
}

func TestSymbol(t *testing.T) {
	require.Equal(t, byte('A'), Symbol(0))
	require.Equal(t, byte(' '), Symbol(26))
	require.Equal(t, byte('A'), Symbol(27))
	require.Equal(t, byte(' '), Symbol(-1))
}

func TestKnownVector(t *testing.T) {
	msg := []byte("HI THERE")
	key := []byte("ZEBRAXQP")

	ct, err := Forward.Transform(msg, key)
	require.NoError(t, err)
	require.Equal(t, "FMAJHAGT", string(ct))

	pt, err := Inverse.Transform(ct, key)
	require.NoError(t, err)
	require.Equal(t, "HI THERE", string(pt))
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 200; n++ {
		msg := randomSymbols(rng, n)
		key := randomSymbols(rng, n+rng.Intn(16))

		ct, err := Forward.Transform(msg, key)
		require.NoError(t, err)
		pt, err := Inverse.Transform(ct, key[:len(msg)])
		require.NoError(t, err)
		require.Equal(t, msg, pt)
	}
}

func TestBijective(t *testing.T) {
	for ki := 0; ki < Size; ki++ {
		k := Alphabet[ki]
		seen := make(map[byte]byte, Size)
		for mi := 0; mi < Size; mi++ {
			m := Alphabet[mi]
			c := Encrypt(m, k)
			require.True(t, Valid(c), "Encrypt(%q,%q) = %q outside alphabet", m, k, c)
			prev, dup := seen[c]
			require.False(t, dup, "key %q maps both %q and %q to %q", k, prev, m, c)
			seen[c] = m
			require.Equal(t, m, Decrypt(c, k))
		}
	}
}

func TestKeyTruncation(t *testing.T) {
	msg := []byte("ATTACK AT DAWN")
	key := []byte("QWERTYUIOPASDFGHJKLZXCVBNM QWERTY")

	full, err := Forward.Transform(msg, key)
	require.NoError(t, err)
	cut, err := Forward.Transform(msg, key[:len(msg)])
	require.NoError(t, err)
	require.Equal(t, full, cut)
}

func TestShortKey(t *testing.T) {
	_, err := Forward.Transform([]byte("HELLO"), []byte("KEY"))
	require.Error(t, err)
}

func TestPassThrough(t *testing.T) {
	// Newlines survive regardless of key.
	require.Equal(t, byte('\n'), Encrypt('\n', 'Q'))
	require.Equal(t, byte('\n'), Decrypt('\n', 'Q'))

	// Unknown symbols on either side fall back to the message byte.
	require.Equal(t, byte('a'), Encrypt('a', 'B'))
	require.Equal(t, byte('C'), Encrypt('C', '\n'))
	require.Equal(t, byte('C'), Decrypt('C', '#'))

	got, err := Forward.Transform([]byte("AB\n"), []byte("BBB"))
	require.NoError(t, err)
	require.Equal(t, "BC\n", string(got))
}

func TestApplyInPlace(t *testing.T) {
	buf := []byte("HELLO WORLD")
	key := []byte("XMCKLABCDEF")
	want, err := Forward.Transform(buf, key)
	require.NoError(t, err)

	n := Forward.Apply(buf, buf, key)
	require.Equal(t, len(buf), n)
	require.Equal(t, want, buf)
}

func TestApplyShortest(t *testing.T) {
	dst := make([]byte, 3)
	n := Inverse.Apply(dst, []byte("ABCDE"), []byte("AAAA"))
	require.Equal(t, 3, n)
	require.Equal(t, "ABC", string(dst))
}

func TestDirectionString(t *testing.T) {
	require.Equal(t, "forward", Forward.String())
	require.Equal(t, "inverse", Inverse.String())
	require.Equal(t, "unknown", Direction(9).String())
}

func randomSymbols(rng *rand.Rand, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = Alphabet[rng.Intn(Size)]
	}
	return out
}

func BenchmarkForwardTransform(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	msg := randomSymbols(rng, 64*1024)
	key := randomSymbols(rng, len(msg))
	dst := make([]byte, len(msg))
	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Forward.Apply(dst, msg, key)
	}
}
