package protocol

import (
	"io"

	"otp/internal/errors"
	"otp/util"
)

// Offer runs the client half of the handshake: announce the client tag,
// then require the matching server tag back.  A server of the other
// direction closes without replying, which surfaces here as a
// ProtocolError wrapping ErrRoleMismatch.
func Offer(rw io.ReadWriter, role Role) error {
	if err := WriteField(rw, "handshake", []byte(role.Client)); err != nil {
		return err
	}

	got := make([]byte, len(role.Server))
	n, err := util.RecvAll(rw, got)
	if err != nil {
		return classify("recv", "handshake", err)
	}
	if n < len(got) || string(got) != role.Server {
		return errors.Protocol("handshake", "", errors.ErrRoleMismatch)
	}
	return nil
}

// Accept runs the server half of the handshake.  It reads exactly one
// client tag; on a mismatch it returns without writing anything so the
// caller can close the connection.  On a match it replies with the
// server tag.
func Accept(rw io.ReadWriter, role Role) error {
	got := make([]byte, len(role.Client))
	n, err := util.RecvAll(rw, got)
	if err != nil {
		return classify("recv", "handshake", err)
	}
	if n < len(got) || string(got) != role.Client {
		return errors.Protocol("handshake", "", errors.ErrRoleMismatch)
	}
	return WriteField(rw, "handshake", []byte(role.Server))
}
