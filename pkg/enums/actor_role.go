package enums

import "fmt"

// ActorRole distinguishes member accounts from association staff.
type ActorRole string

const (
	ActorRoleMember ActorRole = "member"
	ActorRoleStaff  ActorRole = "staff"
)

var validActorRoles = []ActorRole{ActorRoleMember, ActorRoleStaff}

// String implements fmt.Stringer.
func (a ActorRole) String() string {
	return string(a)
}

// IsValid reports whether the value matches a known ActorRole.
func (a ActorRole) IsValid() bool {
	for _, candidate := range validActorRoles {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseActorRole converts raw input into an ActorRole.
func ParseActorRole(value string) (ActorRole, error) {
	for _, candidate := range validActorRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid actor role %q", value)
}
