package enums

import "fmt"

// DocumentType enumerates the verification documents a membership can carry.
type DocumentType string

const (
	DocumentTypeIncorporationCertificate DocumentType = "incorporation_certificate"
	DocumentTypeTaxCertificate           DocumentType = "tax_certificate"
	DocumentTypeIDProof                  DocumentType = "id_proof"
	DocumentTypeAuthorizationLetter      DocumentType = "authorization_letter"
	DocumentTypeAddressProof             DocumentType = "address_proof"
	DocumentTypeBankProof                DocumentType = "bank_proof"
)

var validDocumentTypes = []DocumentType{
	DocumentTypeIncorporationCertificate,
	DocumentTypeTaxCertificate,
	DocumentTypeIDProof,
	DocumentTypeAuthorizationLetter,
	DocumentTypeAddressProof,
	DocumentTypeBankProof,
}

// String implements fmt.Stringer.
func (d DocumentType) String() string {
	return string(d)
}

// IsValid reports whether the value matches a known DocumentType.
func (d DocumentType) IsValid() bool {
	for _, candidate := range validDocumentTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDocumentType converts raw input into a DocumentType.
func ParseDocumentType(value string) (DocumentType, error) {
	for _, candidate := range validDocumentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid document type %q", value)
}

// VerificationStatus tracks staff review of documents and payments.
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusRejected VerificationStatus = "rejected"
)

var validVerificationStatuses = []VerificationStatus{
	VerificationStatusPending,
	VerificationStatusVerified,
	VerificationStatusRejected,
}

// String implements fmt.Stringer.
func (v VerificationStatus) String() string {
	return string(v)
}

// IsValid reports whether the value matches a known VerificationStatus.
func (v VerificationStatus) IsValid() bool {
	for _, candidate := range validVerificationStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVerificationStatus converts raw input into a VerificationStatus.
func ParseVerificationStatus(value string) (VerificationStatus, error) {
	for _, candidate := range validVerificationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid verification status %q", value)
}
