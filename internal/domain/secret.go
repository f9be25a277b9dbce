package domain

import "fmt"

// redactedPlaceholder replaces secret values in any diagnostic output.
const redactedPlaceholder = "[REDACTED]"

// Secret wraps a sensitive string so it cannot leak into logs, error
// messages or JSON by accident. Reading the raw value requires an
// explicit Expose call.
type Secret struct {
	value string
}

// NewSecret wraps a raw value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// Expose returns the raw wrapped value.
func (s Secret) Expose() string {
	return s.value
}

// String implements fmt.Stringer and always redacts.
func (s Secret) String() string {
	return redactedPlaceholder
}

// GoString redacts %#v output as well.
func (s Secret) GoString() string {
	return redactedPlaceholder
}

// Format redacts every printf verb, including widths and flags.
func (s Secret) Format(f fmt.State, verb rune) {
	fmt.Fprint(f, redactedPlaceholder)
}

// MarshalJSON redacts the value when a secret ends up in a serialized
// structure.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redactedPlaceholder + `"`), nil
}
