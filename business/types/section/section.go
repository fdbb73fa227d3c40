// Package section represents the named blocks of a landing page configuration.
package section

import "fmt"

// The set of sections that can be stored.
var (
	Hero         = newKey("heroSection")
	About        = newKey("aboutSection")
	CompanyInfo  = newKey("companyInfo")
	SocialLinks  = newKey("socialLinks")
	Testimonials = newKey("testimonialsSection")
	LegalLinks   = newKey("legalLinks")
	Promotion    = newKey("promotionSettings")
	CTA          = newKey("ctaSection")
	Footer       = newKey("footerSection")
	Plans        = newKey("plansSettings")
	Signup       = newKey("signupSettings")
)

// =============================================================================

var keys = make(map[string]Key)
var ordered []Key

// Key identifies one section of the landing page.
type Key struct {
	value string
}

func newKey(k string) Key {
	key := Key{k}
	keys[k] = key
	ordered = append(ordered, key)
	return key
}

// String returns the name of the section.
func (k Key) String() string {
	return k.value
}

// Equal provides support for the go-cmp package and testing.
func (k Key) Equal(k2 Key) bool {
	return k.value == k2.value
}

// MarshalText provides support for logging and any marshal needs.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.value), nil
}

// UnmarshalText lets a Key be used as a JSON object key.
func (k *Key) UnmarshalText(data []byte) error {
	key, err := Parse(string(data))
	if err != nil {
		return err
	}

	*k = key
	return nil
}

// =============================================================================

// Parse parses the string value and returns a section key if one exists.
func Parse(value string) (Key, error) {
	k, exists := keys[value]
	if !exists {
		return Key{}, fmt.Errorf("invalid section %q", value)
	}

	return k, nil
}

// MustParse parses the string value and returns a section key. If an error
// occurs the function panics.
func MustParse(value string) Key {
	k, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return k
}

// All returns every known section in declaration order.
func All() []Key {
	out := make([]Key, len(ordered))
	copy(out, ordered)
	return out
}
