package enums

import "fmt"

// UserType classifies the organization behind a registration.
type UserType string

const (
	UserTypeCompany    UserType = "company"
	UserTypeNGO        UserType = "ngo"
	UserTypeUniversity UserType = "university"
	UserTypeResearcher UserType = "researcher"
	UserTypeOther      UserType = "other"
)

var validUserTypes = []UserType{
	UserTypeCompany,
	UserTypeNGO,
	UserTypeUniversity,
	UserTypeResearcher,
	UserTypeOther,
}

// String implements fmt.Stringer.
func (u UserType) String() string {
	return string(u)
}

// IsValid reports whether the value matches a known UserType.
func (u UserType) IsValid() bool {
	for _, candidate := range validUserTypes {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUserType converts raw input into a UserType.
func ParseUserType(value string) (UserType, error) {
	for _, candidate := range validUserTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user type %q", value)
}
