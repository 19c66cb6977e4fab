package enums

import "fmt"

// QuotationStatus captures the lifecycle of a quotation request.
type QuotationStatus string

const (
	QuotationStatusPending     QuotationStatus = "pending"
	QuotationStatusUnderReview QuotationStatus = "under_review"
	QuotationStatusSent        QuotationStatus = "sent"
	QuotationStatusAccepted    QuotationStatus = "accepted"
	QuotationStatusRejected    QuotationStatus = "rejected"
)

var validQuotationStatuses = []QuotationStatus{
	QuotationStatusPending,
	QuotationStatusUnderReview,
	QuotationStatusSent,
	QuotationStatusAccepted,
	QuotationStatusRejected,
}

// String implements fmt.Stringer.
func (q QuotationStatus) String() string {
	return string(q)
}

// IsValid reports whether the value matches a known QuotationStatus.
func (q QuotationStatus) IsValid() bool {
	for _, candidate := range validQuotationStatuses {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseQuotationStatus converts raw input into a QuotationStatus.
func ParseQuotationStatus(value string) (QuotationStatus, error) {
	for _, candidate := range validQuotationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quotation status %q", value)
}
