// Package password represents a plaintext credential before it is hashed.
package password

import (
	"errors"
	"fmt"
)

// MaxBytes is the largest input bcrypt accepts.
const MaxBytes = 72

// MinLength is the smallest accepted password.
const MinLength = 6

// Set of errors for password parsing.
var (
	ErrEmpty    = errors.New("password is empty")
	ErrTooShort = fmt.Errorf("password must have at least %d characters", MinLength)
	ErrTooLong  = fmt.Errorf("password exceeds %d bytes", MaxBytes)
)

// Password holds a plaintext secret. It never renders its value.
type Password struct {
	value string
}

// String masks the password.
func (p Password) String() string {
	return "********"
}

// Bytes returns the raw password for hashing.
func (p Password) Bytes() []byte {
	return []byte(p.value)
}

// Equal provides support for the go-cmp package and testing.
func (p Password) Equal(p2 Password) bool {
	return p.value == p2.value
}

// MarshalText masks the password for logging.
func (p Password) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// =============================================================================

// Parse validates the plaintext value.
func Parse(value string) (Password, error) {
	switch {
	case value == "":
		return Password{}, ErrEmpty
	case len(value) < MinLength:
		return Password{}, ErrTooShort
	case len(value) > MaxBytes:
		return Password{}, ErrTooLong
	}

	return Password{value}, nil
}

// MustParse parses the value and panics if it is not a valid password.
func MustParse(value string) Password {
	p, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return p
}

// ParseConfirm parses the value and checks it matches the confirmation.
func ParseConfirm(value string, confirm string) (Password, error) {
	p, err := Parse(value)
	if err != nil {
		return Password{}, err
	}

	if value != confirm {
		return Password{}, errors.New("passwords do not match")
	}

	return p, nil
}
