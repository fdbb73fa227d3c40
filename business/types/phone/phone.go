// Package phone represents a contact number such as a landline or WhatsApp.
package phone

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
)

// Phone represents a phone number stored in its normalized form: an optional
// leading + followed by digits only.
type Phone struct {
	value string
}

// String returns the value of the phone number.
func (p Phone) String() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Phone) Equal(p2 Phone) bool {
	return p.value == p2.value
}

// MarshalText provides support for logging and any marshal needs.
func (p Phone) MarshalText() ([]byte, error) {
	return []byte(p.value), nil
}

// WhatsAppLink returns the wa.me link for the number.
func (p Phone) WhatsAppLink() string {
	return "https://wa.me/" + strings.TrimPrefix(p.value, "+")
}

// =============================================================================

// inputRegEx accepts an optional +, followed by digits, spaces, dots,
// parentheses or hyphens.
var inputRegEx = regexp.MustCompile(`^\+?[0-9\s().-]{8,25}$`)

func normalize(value string) (string, error) {
	value = strings.TrimSpace(value)
	if !inputRegEx.MatchString(value) {
		return "", fmt.Errorf("invalid phone %q", value)
	}

	var b strings.Builder
	for i, r := range value {
		switch {
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}

	digits := strings.TrimPrefix(b.String(), "+")
	if len(digits) < 8 || len(digits) > 15 {
		return "", fmt.Errorf("invalid phone %q: expected 8 to 15 digits", value)
	}

	return b.String(), nil
}

// Parse parses the string value and returns a normalized phone number.
func Parse(value string) (Phone, error) {
	v, err := normalize(value)
	if err != nil {
		return Phone{}, err
	}

	return Phone{v}, nil
}

// MustParse parses the string value and returns a phone number. If an error
// occurs the function panics.
func MustParse(value string) Phone {
	phone, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return phone
}

// =============================================================================

// Null represents a phone number that can be empty.
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

// Valid reports whether a number is set.
func (n Null) Valid() bool {
	return n.valid
}

// String returns the value of the phone number or an empty string.
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

// WhatsAppLink returns the wa.me link for the number or an empty string when
// no number is set.
func (n Null) WhatsAppLink() string {
	if !n.valid {
		return ""
	}
	return Phone{n.value}.WhatsAppLink()
}

// =============================================================================

// ParseNull parses the string value and returns a nullable phone number. An
// empty value yields an unset number.
func ParseNull(value string) (Null, error) {
	if strings.TrimSpace(value) == "" {
		return Null{}, nil
	}

	v, err := normalize(value)
	if err != nil {
		return Null{}, err
	}

	return Null{v, true}, nil
}

// MustParseNull parses the string value and returns a nullable phone number.
// If an error occurs the function panics.
func MustParseNull(value string) Null {
	phone, err := ParseNull(value)
	if err != nil {
		panic(err)
	}

	return phone
}
