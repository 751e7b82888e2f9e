// Package input loads the plaintext, ciphertext and key files the
// clients send, and checks them against the alphabet before anything
// touches the network.
package input

import (
	"fmt"
	"os"

	"otp/internal/cipher"
	"otp/internal/errors"
)

// Load reads path verbatim and validates it.  A trailing newline is
// kept; it is part of the message and passes through the transform.
func Load(subject, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ValidationError{Subject: subject, Path: path, Err: err}
	}
	if err := Validate(data); err != nil {
		return nil, &errors.ValidationError{Subject: subject, Path: path, Err: err}
	}
	return data, nil
}

// Validate reports the first byte that is neither an alphabet symbol nor
// a newline.
func Validate(data []byte) error {
	for i, b := range data {
		if b == cipher.Newline || cipher.Valid(b) {
			continue
		}
		return fmt.Errorf("%w: %q at offset %d", errors.ErrInvalidSymbol, b, i)
	}
	return nil
}

// Pair loads the message and key for one client run and checks that the
// key covers the message.  Only key[:len(msg)] is ever sent, so the
// returned key is already truncated.
func Pair(msgPath, keyPath string) (msg, key []byte, err error) {
	msg, err = Load("input", msgPath)
	if err != nil {
		return nil, nil, err
	}
	key, err = Load("key", keyPath)
	if err != nil {
		return nil, nil, err
	}
	if len(key) < len(msg) {
		return nil, nil, &errors.ValidationError{
			Subject: "key",
			Path:    keyPath,
			Err:     fmt.Errorf("%w: %d bytes for a %d byte message", errors.ErrKeyTooShort, len(key), len(msg)),
		}
	}
	return msg, key[:len(msg)], nil
}
