package enums

import "fmt"

// ProductCategory classifies a catalog product.
type ProductCategory string

const (
	ProductCategoryBiofertilizer ProductCategory = "biofertilizer"
	ProductCategoryBiopesticide  ProductCategory = "biopesticide"
	ProductCategoryBiostimulant  ProductCategory = "biostimulant"
	ProductCategoryBiocontrol    ProductCategory = "biocontrol"
)

var validProductCategories = []ProductCategory{
	ProductCategoryBiofertilizer,
	ProductCategoryBiopesticide,
	ProductCategoryBiostimulant,
	ProductCategoryBiocontrol,
}

// String implements fmt.Stringer.
func (p ProductCategory) String() string {
	return string(p)
}

// IsValid reports whether the value matches a known ProductCategory.
func (p ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// Formulation describes the physical form a product ships in.
type Formulation string

const (
	FormulationAqueousSuspension Formulation = "aqueous_suspension"
	FormulationWettablePowder    Formulation = "wettable_powder"
	FormulationEmulsion          Formulation = "emulsion"
	FormulationSuspension        Formulation = "suspension"
)

var validFormulations = []Formulation{
	FormulationAqueousSuspension,
	FormulationWettablePowder,
	FormulationEmulsion,
	FormulationSuspension,
}

// String implements fmt.Stringer.
func (f Formulation) String() string {
	return string(f)
}

// IsValid reports whether the value matches a known Formulation.
func (f Formulation) IsValid() bool {
	for _, candidate := range validFormulations {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFormulation converts raw input into a Formulation.
func ParseFormulation(value string) (Formulation, error) {
	for _, candidate := range validFormulations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid formulation %q", value)
}

// RegistrationStatus tracks per-country regulatory registration of a product.
type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusPending    RegistrationStatus = "pending"
	RegistrationStatusRejected   RegistrationStatus = "rejected"
)

var validRegistrationStatuses = []RegistrationStatus{
	RegistrationStatusRegistered,
	RegistrationStatusPending,
	RegistrationStatusRejected,
}

// String implements fmt.Stringer.
func (r RegistrationStatus) String() string {
	return string(r)
}

// IsValid reports whether the value matches a known RegistrationStatus.
func (r RegistrationStatus) IsValid() bool {
	for _, candidate := range validRegistrationStatuses {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRegistrationStatus converts raw input into a RegistrationStatus.
func ParseRegistrationStatus(value string) (RegistrationStatus, error) {
	for _, candidate := range validRegistrationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid registration status %q", value)
}
