// Package role represents the role type in the system.
package role

import "fmt"

// The set of roles that can be used.
var (
	SuperAdmin   = newRole("super_admin")
	CompanyAdmin = newRole("company_admin")
	Professional = newRole("professional")
)

// Default is the role assigned when none is provided.
var Default = Professional

// =============================================================================

// Set of known roles.
var roles = make(map[string]Role)

// Role represents a role in the system.
type Role struct {
	value string
}

func newRole(role string) Role {
	r := Role{role}
	roles[role] = r
	return r
}

// String returns the name of the role.
func (r Role) String() string {
	return r.value
}

// Equal provides support for the go-cmp package and testing.
func (r Role) Equal(r2 Role) bool {
	return r.value == r2.value
}

// IsZero reports whether the role was never set.
func (r Role) IsZero() bool {
	return r.value == ""
}

// MarshalText provides support for logging and any marshal needs.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

// =============================================================================

// Parse parses the string value and returns a role if one exists. An empty
// value resolves to the default role.
func Parse(value string) (Role, error) {
	if value == "" {
		return Default, nil
	}

	role, exists := roles[value]
	if !exists {
		return Role{}, fmt.Errorf("invalid role %q", value)
	}

	return role, nil
}

// MustParse parses the string value and returns a role if one exists. If
// an error occurs the function panics.
func MustParse(value string) Role {
	role, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return role
}

// ParseToString takes a collection of user roles and converts them to a slice
// of string.
func ParseToString(usrRoles []Role) []string {
	out := make([]string, len(usrRoles))
	for i, r := range usrRoles {
		out[i] = r.String()
	}

	return out
}

// ParseMany takes a collection of strings and converts them to a slice of
// roles.
func ParseMany(values []string) ([]Role, error) {
	out := make([]Role, len(values))
	for i, v := range values {
		r, err := Parse(v)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}

	return out, nil
}
