package repositories

import (
	"context"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
)

// OrganizationReader defines read operations for organizations and their settings.
type OrganizationReader interface {
	FindOrganizationByID(ctx context.Context, orgID string) (*domain.Organization, error)

	// FindSettings returns apperrors.ErrNotFound until settings are saved for the first time.
	FindSettings(ctx context.Context, orgID string) (*domain.OrganizationSettings, error)
}

// OrganizationWriter defines write operations for organizations and their settings.
type OrganizationWriter interface {
	// SaveOrganization inserts the organization if it does not exist yet.
	SaveOrganization(ctx context.Context, org domain.Organization) error

	// UpsertSettings creates or replaces the settings of an organization.
	UpsertSettings(ctx context.Context, settings domain.OrganizationSettings) error
}

type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
