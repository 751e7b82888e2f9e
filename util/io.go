package util

import (
	"errors"
	"io"
	"net"
)

// DefaultBufSize is the chunk size used when streaming results (32 KiB).
const DefaultBufSize = 32 * 1024

// SendAll writes all of buf to w, retrying partial writes.  It stops early
// only when the channel reports closure, in which case it returns the
// count written so far and a nil error; the caller decides whether a
// short count is a failure.  Any other error is returned as-is.
func SendAll(w io.Writer, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := w.Write(buf[total:])
		total += n
		if err != nil {
			if isClosed(err) {
				return total, nil
			}
			return total, err
		}
		if n == 0 {
			return total, nil
		}
	}
	return total, nil
}

// RecvAll reads into buf until it is full, retrying partial reads.  Like
// [SendAll] it returns a short count with a nil error when the peer
// closes the channel, and the underlying error for anything else.
func RecvAll(r io.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			if isClosed(err) {
				return total, nil
			}
			return total, err
		}
		if n == 0 {
			return total, nil
		}
	}
	return total, nil
}

// StreamN copies up to n bytes from src to dst through a pooled chunk
// buffer, writing each chunk as soon as it arrives.  It returns the number
// of bytes received; a count below n with a nil error means src closed
// early.  Errors writing to dst are returned unchanged.
func StreamN(dst io.Writer, src io.Reader, n int) (int, error) {
	bp := GetBuf()
	defer PutBuf(bp)
	buf := *bp

	total := 0
	for total < n {
		chunk := buf
		if rem := n - total; rem < len(chunk) {
			chunk = chunk[:rem]
		}
		got, err := src.Read(chunk)
		if got > 0 {
			if _, werr := dst.Write(chunk[:got]); werr != nil {
				return total, werr
			}
			total += got
		}
		if err != nil {
			if isClosed(err) {
				return total, nil
			}
			return total, err
		}
		if got == 0 {
			return total, nil
		}
	}
	return total, nil
}

// isClosed reports whether err means the other side went away cleanly
// rather than the channel failing.
func isClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, net.ErrClosed)
	}
	return false
}
