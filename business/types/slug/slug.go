// Package slug represents the public URL handle of a company.
package slug

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
)

var slugRegEx = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const (
	minLength = 3
	maxLength = 63
)

// Slug represents a lowercase, hyphen separated URL handle.
type Slug struct {
	value string
}

// String returns the value of the slug.
func (s Slug) String() string {
	return s.value
}

// Equal provides support for the go-cmp package and testing.
func (s Slug) Equal(s2 Slug) bool {
	return s.value == s2.value
}

// MarshalText provides support for logging and any marshal needs.
func (s Slug) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// =============================================================================

// Parse parses the string value and returns a slug if the value complies
// with the rules for a slug. Input is lower cased before validation.
func Parse(value string) (Slug, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	if len(value) < minLength || len(value) > maxLength {
		return Slug{}, fmt.Errorf("slug %q must have between %d and %d characters", value, minLength, maxLength)
	}

	if !slugRegEx.MatchString(value) {
		return Slug{}, fmt.Errorf("invalid slug %q", value)
	}

	return Slug{value}, nil
}

// MustParse parses the string value and returns a slug. If an error occurs
// the function panics.
func MustParse(value string) Slug {
	s, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return s
}

// =============================================================================

// Null represents a slug that can be empty.
type Null struct {
	value string
	valid bool
}

// ToSQLNullString converts a Null value to a sql NullString.
func ToSQLNullString(n Null) sql.NullString {
	return sql.NullString{
		String: n.value,
		Valid:  n.valid,
	}
}

// Valid reports whether the slug is set.
func (n Null) Valid() bool {
	return n.valid
}

// String returns the value of the slug.
func (n Null) String() string {
	return n.value
}

// Equal provides support for the go-cmp package and testing.
func (n Null) Equal(n2 Null) bool {
	return n.value == n2.value && n.valid == n2.valid
}

// MarshalText provides support for logging and any marshal needs.
func (n Null) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

// ParseNull parses the string value and returns a nullable slug. An empty
// value is a valid unset slug.
func ParseNull(value string) (Null, error) {
	if strings.TrimSpace(value) == "" {
		return Null{}, nil
	}

	s, err := Parse(value)
	if err != nil {
		return Null{}, err
	}

	return Null{s.value, true}, nil
}

// MustParseNull parses the string value and returns a nullable slug. If an
// error occurs the function panics.
func MustParseNull(value string) Null {
	n, err := ParseNull(value)
	if err != nil {
		panic(err)
	}

	return n
}
