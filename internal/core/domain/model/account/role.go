package account

import (
	"fmt"
	"strings"

	"parcelquote/internal/pkg/errs"
)

// Role is what an account is allowed to do.
type Role string

const (
	Customer Role = "customer"
	Driver   Role = "driver"
	Admin    Role = "admin"
)

// ParseRole matches s case-insensitively.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case Customer, Driver, Admin:
		return r, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("unknown role %q", s))
}

// Capabilities lists what the role grants. Stored next to the role so that
// reporting queries can filter without knowing the mapping.
func (r Role) Capabilities() []string {
	switch r {
	case Customer:
		return []string{"quote", "checkout", "track"}
	case Driver:
		return []string{"quote", "deliver"}
	case Admin:
		return []string{"quote", "checkout", "track", "deliver", "manage"}
	}
	return nil
}

// Can reports whether the role grants capability.
func (r Role) Can(capability string) bool {
	for _, c := range r.Capabilities() {
		if c == capability {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
