package protocol

import (
	"encoding/binary"
	"io"
	"math"
	"os"

	"otp/internal/errors"
	"otp/util"
)

// WriteField sends buf in full.  A peer that closes early yields a
// ProtocolError wrapping ErrShortTransfer; an outright I/O failure yields
// a TransferError.
func WriteField(w io.Writer, field string, buf []byte) error {
	n, err := util.SendAll(w, buf)
	if err != nil {
		return classify("send", field, err)
	}
	if n < len(buf) {
		return errors.Protocol(field, "", errors.Short(field, n, len(buf)))
	}
	return nil
}

// ReadField fills buf exactly, with the same error mapping as WriteField.
func ReadField(r io.Reader, field string, buf []byte) error {
	n, err := util.RecvAll(r, buf)
	if err != nil {
		return classify("recv", field, err)
	}
	if n < len(buf) {
		return errors.Protocol(field, "", errors.Short(field, n, len(buf)))
	}
	return nil
}

// WriteLength sends the 4-byte length header.
func WriteLength(w io.Writer, n int) error {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return errors.Protocol("length", "", errors.ErrFrameTooLarge)
	}
	var hdr [HeaderSize]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(n))
	return WriteField(w, "length", hdr[:])
}

// ReadLength reads the 4-byte length header and rejects values above max.
// A max of zero disables the check.
func ReadLength(r io.Reader, max int) (int, error) {
	var hdr [HeaderSize]byte
	if err := ReadField(r, "length", hdr[:]); err != nil {
		return 0, err
	}
	n := binary.BigEndian.Uint32(hdr[:])
	if max > 0 && uint64(n) > uint64(max) {
		return 0, errors.Protocol("length", "", errors.ErrFrameTooLarge)
	}
	return int(n), nil
}

// classify maps a failed primitive onto the error taxonomy.  Deadlines are
// a session-level outcome; anything else is the channel failing.
func classify(op, field string, err error) error {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return errors.Protocol(field, "", errors.ErrTimeout)
	}
	return errors.Transfer(op+" "+field, err)
}
