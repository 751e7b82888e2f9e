// Package protocol implements the framed, one-shot session spoken between
// the otp clients and services.
//
// Wire layout, in order:
//
//	client → server   role tag            ("enc_client" / "dec_client")
//	server → client   role tag            ("enc_server" / "dec_server")
//	client → server   uint32 N            (big-endian)
//	client → server   N bytes message
//	client → server   N bytes key         (leading N symbols only)
//	server → client   N bytes result
//
// There are no delimiters and no further length fields.  Every field is
// moved with the exact-count primitives in util, so partial reads and
// writes on the stream are retried until the field is complete or the
// peer goes away.
package protocol

import (
	"otp/internal/cipher"
)

// Role tags exchanged during the handshake.
const (
	TagEncClient = "enc_client"
	TagEncServer = "enc_server"
	TagDecClient = "dec_client"
	TagDecServer = "dec_server"
)

// HeaderSize is the length of the N field.
const HeaderSize = 4

// Role pairs the tags a client and server of one direction exchange.
type Role struct {
	Direction cipher.Direction
	Client    string
	Server    string
}

// RoleFor returns the role for the given transform direction.
func RoleFor(dir cipher.Direction) Role {
	if dir == cipher.Inverse {
		return Role{Direction: cipher.Inverse, Client: TagDecClient, Server: TagDecServer}
	}
	return Role{Direction: cipher.Forward, Client: TagEncClient, Server: TagEncServer}
}

func (r Role) String() string {
	if r.Direction == cipher.Inverse {
		return "dec"
	}
	return "enc"
}
