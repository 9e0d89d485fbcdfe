package domain

// ProviderType is the supply channel a provider belongs to.
type ProviderType string

const (
	ProviderSupermarket ProviderType = "supermarket"
	ProviderWholesaler  ProviderType = "wholesaler"
	ProviderLocalMarket ProviderType = "local_market"
	ProviderDistributor ProviderType = "distributor"
	ProviderButcher     ProviderType = "butcher"
	ProviderGreengrocer ProviderType = "greengrocer"
	ProviderSpecialist  ProviderType = "specialist"
	ProviderOther       ProviderType = "other"
)

// IsValid reports whether t is a known provider type.
func (t ProviderType) IsValid() bool {
	switch t {
	case ProviderSupermarket, ProviderWholesaler, ProviderLocalMarket, ProviderDistributor,
		ProviderButcher, ProviderGreengrocer, ProviderSpecialist, ProviderOther:
		return true
	}
	return false
}

// Provider is a place products are bought from (a supermarket, a butcher...).
type Provider struct {
	ProviderID     string       `json:"providerID"` // Primary Key
	OrganizationID string       `json:"organizationID"`
	Name           string       `json:"name"`
	Type           ProviderType `json:"type"`
	Description    string       `json:"description"`
	IsActive       bool         `json:"isActive"`
	AuditFields
}
