package domain

import "errors"

// MinPasswordLength is the minimum accepted raw password length.
const MinPasswordLength = 8

// ErrPasswordTooShort is returned for passwords below MinPasswordLength.
var ErrPasswordTooShort = errors.New("password must be at least 8 characters")

// Password is a validated raw password. It is never persisted or logged
// in this form; stores only ever see the hash.
type Password struct {
	value Secret
}

// ParsePassword validates a raw password.
func ParsePassword(raw string) (Password, error) {
	if len(raw) < MinPasswordLength {
		return Password{}, ErrPasswordTooShort
	}
	return Password{value: NewSecret(raw)}, nil
}

// Expose returns the raw password for hashing or verification.
func (p Password) Expose() string {
	return p.value.Expose()
}

func (p Password) String() string {
	return redactedPlaceholder
}

func (p Password) GoString() string {
	return redactedPlaceholder
}

func (p Password) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redactedPlaceholder + `"`), nil
}
