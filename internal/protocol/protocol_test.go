package protocol

import (
	"bytes"
	"io"
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"otp/internal/cipher"
	"otp/internal/errors"
)

func TestRoleFor(t *testing.T) {
	enc := RoleFor(cipher.Forward)
	require.Equal(t, "enc_client", enc.Client)
	require.Equal(t, "enc_server", enc.Server)
	require.Equal(t, "enc", enc.String())

	dec := RoleFor(cipher.Inverse)
	require.Equal(t, "dec_client", dec.Client)
	require.Equal(t, "dec_server", dec.Server)
	require.Equal(t, "dec", dec.String())
}

func TestLengthHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLength(&buf, 8))
	require.Equal(t, []byte{0, 0, 0, 8}, buf.Bytes())

	n, err := ReadLength(&buf, 0)
	require.NoError(t, err)
	require.Equal(t, 8, n)
}

func TestLengthHeader_Large(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLength(&buf, 0x01020304))
	require.Equal(t, []byte{1, 2, 3, 4}, buf.Bytes())
}

func TestWriteLength_OutOfRange(t *testing.T) {
	err := WriteLength(io.Discard, -1)
	require.ErrorIs(t, err, errors.ErrFrameTooLarge)
}

func TestReadLength_TooLarge(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLength(&buf, 1025))

	_, err := ReadLength(&buf, 1024)
	require.ErrorIs(t, err, errors.ErrFrameTooLarge)

	var pe *errors.ProtocolError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, "length", pe.Phase)
}

func TestReadLength_Short(t *testing.T) {
	_, err := ReadLength(bytes.NewReader([]byte{0, 0}), 0)
	require.ErrorIs(t, err, errors.ErrShortTransfer)
	require.False(t, errors.IsFatal(err), "a truncated header is the peer's problem")
}

func TestReadField_TransferError(t *testing.T) {
	r := io.MultiReader(bytes.NewReader([]byte("AB")), &failingReader{})
	err := ReadField(r, "message", make([]byte, 4))

	var te *errors.TransferError
	require.True(t, errors.As(err, &te), "got %v", err)
	require.True(t, errors.IsFatal(err))
}

func TestReadField_Deadline(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	require.NoError(t, a.SetReadDeadline(time.Now().Add(20*time.Millisecond)))
	err := ReadField(a, "key", make([]byte, 4))
	require.ErrorIs(t, err, errors.ErrTimeout)
	require.False(t, errors.IsFatal(err))
}

func TestWriteField_PeerGone(t *testing.T) {
	a, b := net.Pipe()
	b.Close()
	defer a.Close()

	err := WriteField(a, "result", []byte("FMAJHAGT"))
	require.ErrorIs(t, err, errors.ErrShortTransfer)
}

func TestHandshake_Match(t *testing.T) {
	for _, dir := range []cipher.Direction{cipher.Forward, cipher.Inverse} {
		t.Run(dir.String(), func(t *testing.T) {
			client, server := net.Pipe()
			defer client.Close()
			defer server.Close()

			role := RoleFor(dir)
			done := make(chan error, 1)
			go func() { done <- Accept(server, role) }()

			require.NoError(t, Offer(client, role))
			require.NoError(t, <-done)
		})
	}
}

func TestHandshake_Mismatch(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	serverErr := make(chan error, 1)
	go func() {
		err := Accept(server, RoleFor(cipher.Forward))
		// Rejection: close without replying.
		server.Close()
		serverErr <- err
	}()

	err := Offer(client, RoleFor(cipher.Inverse))
	require.ErrorIs(t, err, errors.ErrRoleMismatch)
	require.Equal(t, errors.ExitProtocol, errors.ExitCode(err))

	require.ErrorIs(t, <-serverErr, errors.ErrRoleMismatch)
}

func TestAccept_NoReplyOnMismatch(t *testing.T) {
	var out bytes.Buffer
	rw := struct {
		io.Reader
		io.Writer
	}{bytes.NewReader([]byte("xyz_client")), &out}

	err := Accept(rw, RoleFor(cipher.Forward))
	require.ErrorIs(t, err, errors.ErrRoleMismatch)
	require.Zero(t, out.Len(), "server must not echo anything on rejection")
}

func TestAccept_ShortTag(t *testing.T) {
	var out bytes.Buffer
	rw := struct {
		io.Reader
		io.Writer
	}{bytes.NewReader([]byte("enc")), &out}

	err := Accept(rw, RoleFor(cipher.Forward))
	require.ErrorIs(t, err, errors.ErrRoleMismatch)
	require.Zero(t, out.Len())
}

func TestStateMachine(t *testing.T) {
	order := []State{
		Connecting, AwaitingHandshake, Authorized, AwaitingLength,
		AwaitingMessage, AwaitingKey, Processing, ResponseSent, Closed,
	}
	for i := 0; i < len(order)-1; i++ {
		require.Equal(t, order[i+1], order[i].Next())
		require.True(t, order[i].CanTransition(order[i+1]))
		require.True(t, order[i].CanTransition(Closed), "%s must be able to close", order[i])
	}
	require.True(t, Closed.Terminal())
	require.Equal(t, Closed, Closed.Next())
	require.False(t, Closed.CanTransition(Closed))
	require.False(t, AwaitingHandshake.CanTransition(AwaitingMessage))
	require.False(t, AwaitingKey.CanTransition(AwaitingMessage))

	require.Equal(t, "awaiting-handshake", AwaitingHandshake.String())
	require.Equal(t, "response-sent", ResponseSent.String())
	require.Equal(t, "invalid", State(99).String())
}

type failingReader struct{}

func (*failingReader) Read([]byte) (int, error) { return 0, os.ErrPermission }
