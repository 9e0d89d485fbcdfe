package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Organization is the tenant boundary. Every other entity carries its ID.
type Organization struct {
	OrganizationID string    `json:"organizationID"` // Primary Key, immutable
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"createdAt"`
}

// OrderFrequency is how often restaurants of an organization are expected to order.
type OrderFrequency string

const (
	FrequencyWeekly   OrderFrequency = "weekly"
	FrequencyBiweekly OrderFrequency = "biweekly"
	FrequencyMonthly  OrderFrequency = "monthly"
)

const (
	DefaultTimezone  = "America/Mexico_City"
	DefaultCurrency  = "MXN"
	DefaultCountry   = "México"
	DefaultOrderTime = "09:00"
)

// OrganizationSettings is the operational configuration of an organization.
// It is stored lazily: reads before the first save return DefaultOrganizationSettings.
type OrganizationSettings struct {
	OrganizationID      string          `json:"organizationID"`
	OrganizationName    string          `json:"organizationName"`
	ContactEmail        string          `json:"contactEmail"`
	ContactPhone        string          `json:"contactPhone"`
	Address             string          `json:"address"`
	City                string          `json:"city"`
	Country             string          `json:"country"`
	Timezone            string          `json:"timezone"`
	OrderFrequency      OrderFrequency  `json:"orderFrequency"`
	Currency            string          `json:"currency"`
	UrgentNotifications bool            `json:"urgentNotifications"`
	EmailNotifications  bool            `json:"emailNotifications"`
	AutoAssignProviders bool            `json:"autoAssignProviders"`
	DefaultOrderTime    string          `json:"defaultOrderTime"`
	MinimumOrderValue   decimal.Decimal `json:"minimumOrderValue"`
	AuditFields
}

// DefaultOrganizationSettings returns the settings an organization has before anyone edits them.
func DefaultOrganizationSettings(orgID, orgName, contactEmail string) OrganizationSettings {
	return OrganizationSettings{
		OrganizationID:      orgID,
		OrganizationName:    orgName,
		ContactEmail:        contactEmail,
		Country:             DefaultCountry,
		Timezone:            DefaultTimezone,
		OrderFrequency:      FrequencyWeekly,
		Currency:            DefaultCurrency,
		UrgentNotifications: true,
		EmailNotifications:  true,
		DefaultOrderTime:    DefaultOrderTime,
		MinimumOrderValue:   decimal.Zero,
	}
}

// Location resolves the settings timezone, falling back to the default zone and then UTC.
func (s OrganizationSettings) Location() *time.Location {
	if s.Timezone != "" {
		if loc, err := time.LoadLocation(s.Timezone); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// IsValidOrderFrequency reports whether f is a known frequency.
func IsValidOrderFrequency(f OrderFrequency) bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	}
	return false
}
