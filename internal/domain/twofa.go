package domain

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"math/big"
	"regexp"
	"strconv"

	"github.com/google/uuid"
)

var (
	// ErrInvalidLoginAttemptID is returned when the id is not a valid UUID.
	ErrInvalidLoginAttemptID = errors.New("invalid login attempt id")
	// ErrInvalidTwoFACode is returned when the code is not exactly 6 digits.
	ErrInvalidTwoFACode = errors.New("2FA code must be exactly 6 digits")
)

var twoFACodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// LoginAttemptID identifies a single 2FA-triggering login. A fresh one
// is generated per login; the client must echo it back on verification.
type LoginAttemptID struct {
	value string
}

// NewLoginAttemptID generates a fresh random id.
func NewLoginAttemptID() LoginAttemptID {
	return LoginAttemptID{value: uuid.NewString()}
}

// ParseLoginAttemptID validates a caller-supplied id.
func ParseLoginAttemptID(raw string) (LoginAttemptID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return LoginAttemptID{}, ErrInvalidLoginAttemptID
	}
	return LoginAttemptID{value: id.String()}, nil
}

// Equal compares two ids in constant time.
func (id LoginAttemptID) Equal(other LoginAttemptID) bool {
	return subtle.ConstantTimeCompare([]byte(id.value), []byte(other.value)) == 1
}

// Expose returns the textual UUID.
func (id LoginAttemptID) Expose() string {
	return id.value
}

func (id LoginAttemptID) String() string {
	return redactedPlaceholder
}

func (id LoginAttemptID) GoString() string {
	return redactedPlaceholder
}

// TwoFACode is a one-time 6-digit challenge code.
type TwoFACode struct {
	value Secret
}

// NewTwoFACode generates a uniformly random code in [100000, 999999].
func NewTwoFACode() (TwoFACode, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return TwoFACode{}, err
	}
	code := strconv.FormatInt(n.Int64()+100000, 10)
	return TwoFACode{value: NewSecret(code)}, nil
}

// ParseTwoFACode validates a caller-supplied code.
func ParseTwoFACode(raw string) (TwoFACode, error) {
	if !twoFACodePattern.MatchString(raw) {
		return TwoFACode{}, ErrInvalidTwoFACode
	}
	return TwoFACode{value: NewSecret(raw)}, nil
}

// Equal compares two codes in constant time.
func (c TwoFACode) Equal(other TwoFACode) bool {
	return subtle.ConstantTimeCompare([]byte(c.Expose()), []byte(other.Expose())) == 1
}

// Expose returns the raw digits, e.g. for the outbound email body.
func (c TwoFACode) Expose() string {
	return c.value.Expose()
}

func (c TwoFACode) String() string {
	return redactedPlaceholder
}

func (c TwoFACode) GoString() string {
	return redactedPlaceholder
}
