package enums

import "fmt"

// MembershipStatus captures whether a membership is currently in force.
type MembershipStatus string

const (
	MembershipStatusInactive MembershipStatus = "inactive"
	MembershipStatusActive   MembershipStatus = "active"
)

var validMembershipStatuses = []MembershipStatus{
	MembershipStatusInactive,
	MembershipStatusActive,
}

// String implements fmt.Stringer.
func (m MembershipStatus) String() string {
	return string(m)
}

// IsValid reports whether the value matches a known MembershipStatus.
func (m MembershipStatus) IsValid() bool {
	for _, candidate := range validMembershipStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMembershipStatus converts raw input into a MembershipStatus.
func ParseMembershipStatus(value string) (MembershipStatus, error) {
	for _, candidate := range validMembershipStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid membership status %q", value)
}

// MembershipPaymentStatus tracks the aggregate payment state of a membership.
type MembershipPaymentStatus string

const (
	MembershipPaymentStatusPending       MembershipPaymentStatus = "pending"
	MembershipPaymentStatusPartiallyPaid MembershipPaymentStatus = "partially_paid"
	MembershipPaymentStatusPaid          MembershipPaymentStatus = "paid"
	MembershipPaymentStatusFailed        MembershipPaymentStatus = "failed"
	MembershipPaymentStatusRefunded      MembershipPaymentStatus = "refunded"
)

var validMembershipPaymentStatuses = []MembershipPaymentStatus{
	MembershipPaymentStatusPending,
	MembershipPaymentStatusPartiallyPaid,
	MembershipPaymentStatusPaid,
	MembershipPaymentStatusFailed,
	MembershipPaymentStatusRefunded,
}

// String implements fmt.Stringer.
func (m MembershipPaymentStatus) String() string {
	return string(m)
}

// IsValid reports whether the value matches a known MembershipPaymentStatus.
func (m MembershipPaymentStatus) IsValid() bool {
	for _, candidate := range validMembershipPaymentStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMembershipPaymentStatus converts raw input into a MembershipPaymentStatus.
func ParseMembershipPaymentStatus(value string) (MembershipPaymentStatus, error) {
	for _, candidate := range validMembershipPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid membership payment status %q", value)
}
