package domain

import (
	"errors"
	"regexp"
	"strings"
)

// emailPattern requires a local part, an @ and a dotted TLD of at least
// two characters.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ErrInvalidEmail is returned for empty or malformed addresses.
var ErrInvalidEmail = errors.New("invalid email format")

// Email is a validated, normalized email address. The normalized value
// is used for equality and as the user store key. Email redacts itself
// in diagnostic output; use Expose to read the address.
type Email struct {
	value string
}

// ParseEmail validates and normalizes a raw address.
func ParseEmail(raw string) (Email, error) {
	// RFC 5321 caps the address at 254 characters
	if raw == "" || len(raw) > 254 || !emailPattern.MatchString(raw) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: strings.ToLower(raw)}, nil
}

// Expose returns the normalized address.
func (e Email) Expose() string {
	return e.value
}

func (e Email) String() string {
	return redactedPlaceholder
}

func (e Email) GoString() string {
	return redactedPlaceholder
}

func (e Email) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redactedPlaceholder + `"`), nil
}
