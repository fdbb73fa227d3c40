// Package status represents the lifecycle status of a company account.
package status

import "fmt"

// The set of statuses that can be used.
var (
	Active    = newStatus("active")
	Trial     = newStatus("trial")
	Suspended = newStatus("suspended")
	Cancelled = newStatus("cancelled")
)

// Default is the status a new company starts with.
var Default = Trial

// =============================================================================

var statuses = make(map[string]Status)

// Status represents an account status in the system.
type Status struct {
	value string
}

func newStatus(status string) Status {
	s := Status{status}
	statuses[status] = s
	return s
}

// String returns the name of the status.
func (s Status) String() string {
	return s.value
}

// Equal provides support for the go-cmp package and testing.
func (s Status) Equal(s2 Status) bool {
	return s.value == s2.value
}

// IsZero reports whether the status was never set.
func (s Status) IsZero() bool {
	return s.value == ""
}

// CanOperate reports whether a company in this status may use the product.
func (s Status) CanOperate() bool {
	return s == Active || s == Trial
}

// MarshalText provides support for logging and any marshal needs.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// =============================================================================

// Parse parses the string value and returns a status if one exists. An empty
// value resolves to the default status.
func Parse(value string) (Status, error) {
	if value == "" {
		return Default, nil
	}

	s, exists := statuses[value]
	if !exists {
		return Status{}, fmt.Errorf("invalid status %q", value)
	}

	return s, nil
}

// MustParse parses the string value and returns a status if one exists. If
// an error occurs the function panics.
func MustParse(value string) Status {
	s, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return s
}
