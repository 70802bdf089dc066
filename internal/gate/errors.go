package gate

import "errors"

var (
	// ErrIncorrectPassword is a field-level challenge failure. Retries are
	// unlimited.
	ErrIncorrectPassword = errors.New("incorrect password")

	// ErrInsecureContext means the digest facility refused to run because
	// the client is not talking to the gateway over a secure transport.
	ErrInsecureContext = errors.New("secure connection required")

	// ErrHardLocked is returned when a challenge is attempted against an
	// entry that has no password.
	ErrHardLocked = errors.New("entry is private")
)
