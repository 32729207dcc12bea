package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Role is one of the fixed account roles. The numeric ids are the marketplace's.
type Role int

const (
	RoleLandlord Role = 1
	RoleTenant   Role = 2
	RoleAgent    Role = 3
	RoleManager  Role = 4
	RoleOwner    Role = 5
	RoleAdmin    Role = 6
)

// DefaultRole is applied when a new account has no pending selection
const DefaultRole = RoleTenant

// Roles lists every role
var Roles = []Role{RoleLandlord, RoleTenant, RoleAgent, RoleManager, RoleOwner, RoleAdmin}

var roleNames = map[Role]string{
	RoleLandlord: "landlord",
	RoleTenant:   "tenant",
	RoleAgent:    "agent",
	RoleManager:  "manager",
	RoleOwner:    "owner",
	RoleAdmin:    "admin",
}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "role(" + strconv.Itoa(int(r)) + ")"
}

// Label is the capitalised name shown in the UI
func (r Role) Label() string {
	name := r.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// DashboardPath is where a user of this role lands after sign-in
func (r Role) DashboardPath() string {
	if !r.Valid() {
		return "/"
	}
	return "/dashboard/" + r.String()
}

// SelfSelectable reports whether a user may pick the role at sign-up
func (r Role) SelfSelectable() bool {
	return r == RoleLandlord || r == RoleTenant || r == RoleAgent
}

// ParseRole accepts a numeric id or a role name
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if id, err := strconv.Atoi(s); err == nil {
		if r := Role(id); r.Valid() {
			return r, nil
		}
		return 0, fmt.Errorf("%w: %d", ErrUnknownRole, id)
	}
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// MarshalText lets roles travel as names in JSON map keys and query strings
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts either form ParseRole does
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalJSON keeps the marketplace's numeric encoding
func (r Role) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(r))), nil
}

// UnmarshalJSON accepts a number or a quoted name
func (r *Role) UnmarshalJSON(b []byte) error {
	return r.UnmarshalText([]byte(strings.Trim(string(b), `"`)))
}
