package tlsutil

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPublicPrivateKeyPair is returned if the client certificate does not match the private key.
	ErrInvalidPublicPrivateKeyPair = errors.New("private key does not match public key")

	// ErrInvalidPasswordInputDataOrKey is returned when a key could not be decrypted, either the password is wrong or
	// the key is of an unsupported type.
	ErrInvalidPasswordInputDataOrKey = errors.New("invalid password, input data or an unsupported public/private key " +
		"format/type")

	// ErrPasswordProvidedButUnused is returned if a password was given, but the key turned out to be unencrypted.
	ErrPasswordProvidedButUnused = errors.New("a cert/key password has been provided, but isn't used")
)

// ParseCertKeyError is returned when no certificates/keys could be parsed from the provided data.
type ParseCertKeyError struct {
	what     string
	password bool
}

func (p ParseCertKeyError) Error() string {
	hint := "no password provided, perhaps it's encrypted"
	if p.password {
		hint = "password provided, perhaps it's unencrypted"
	}

	return fmt.Sprintf("failed to parse %s (%s) or the type/format is unsupported", p.what, hint)
}
