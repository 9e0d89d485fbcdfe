package pgsql

import (
	"context"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portsrepo "github.com/SscSPs/restaurant_supply_app/internal/core/ports/repositories"
	"github.com/SscSPs/restaurant_supply_app/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

func newPgxOrganizationRepository(pool *pgxpool.Pool) *PgxOrganizationRepository {
	return &PgxOrganizationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

const settingsColumns = `organization_id, organization_name, contact_email, contact_phone, address, city, country,
	timezone, order_frequency, currency, urgent_notifications, email_notifications, auto_assign_providers,
	default_order_time, minimum_order_value, created_at, created_by, last_updated_at, last_updated_by, version`

func toDomainSettings(m models.OrganizationSettings) domain.OrganizationSettings {
	return domain.OrganizationSettings{
		OrganizationID:      m.OrganizationID,
		OrganizationName:    m.OrganizationName,
		ContactEmail:        m.ContactEmail,
		ContactPhone:        m.ContactPhone,
		Address:             m.Address,
		City:                m.City,
		Country:             m.Country,
		Timezone:            m.Timezone,
		OrderFrequency:      domain.OrderFrequency(m.OrderFrequency),
		Currency:            m.Currency,
		UrgentNotifications: m.UrgentNotifications,
		EmailNotifications:  m.EmailNotifications,
		AutoAssignProviders: m.AutoAssignProviders,
		DefaultOrderTime:    m.DefaultOrderTime,
		MinimumOrderValue:   m.MinimumOrderValue,
		AuditFields:         toDomainAudit(m.AuditFields),
	}
}

func toDomainAudit(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
		Version:       m.Version,
	}
}

func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, orgID string) (*domain.Organization, error) {
	var m models.Organization
	err := r.Pool.QueryRow(ctx,
		`SELECT organization_id, name, created_at FROM organizations WHERE organization_id = $1`, orgID,
	).Scan(&m.OrganizationID, &m.Name, &m.CreatedAt)
	if err != nil {
		return nil, mapError(err, "find organization "+orgID)
	}
	return &domain.Organization{OrganizationID: m.OrganizationID, Name: m.Name, CreatedAt: m.CreatedAt}, nil
}

func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	return saveOrganization(ctx, r.Pool, org)
}

// saveOrganization is idempotent so registration can call it for every redeemed code.
func saveOrganization(ctx context.Context, q querier, org domain.Organization) error {
	_, err := q.Exec(ctx, `
		INSERT INTO organizations (organization_id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (organization_id) DO NOTHING`,
		org.OrganizationID, org.Name, org.CreatedAt)
	return mapError(err, "save organization "+org.OrganizationID)
}

func (r *PgxOrganizationRepository) FindSettings(ctx context.Context, orgID string) (*domain.OrganizationSettings, error) {
	var m models.OrganizationSettings
	err := r.Pool.QueryRow(ctx, `SELECT `+settingsColumns+` FROM organization_settings WHERE organization_id = $1`, orgID).Scan(
		&m.OrganizationID, &m.OrganizationName, &m.ContactEmail, &m.ContactPhone, &m.Address, &m.City, &m.Country,
		&m.Timezone, &m.OrderFrequency, &m.Currency, &m.UrgentNotifications, &m.EmailNotifications, &m.AutoAssignProviders,
		&m.DefaultOrderTime, &m.MinimumOrderValue, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	if err != nil {
		return nil, mapError(err, "find settings for "+orgID)
	}
	s := toDomainSettings(m)
	return &s, nil
}

// UpsertSettings writes the settings row and keeps the organization name in step.
func (r *PgxOrganizationRepository) UpsertSettings(ctx context.Context, s domain.OrganizationSettings) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := saveOrganization(ctx, tx, domain.Organization{
		OrganizationID: s.OrganizationID, Name: s.OrganizationName, CreatedAt: s.CreatedAt,
	}); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE organizations SET name = $2 WHERE organization_id = $1`,
		s.OrganizationID, s.OrganizationName); err != nil {
		return mapError(err, "rename organization "+s.OrganizationID)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO organization_settings (`+settingsColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (organization_id) DO UPDATE SET
			organization_name = EXCLUDED.organization_name,
			contact_email = EXCLUDED.contact_email,
			contact_phone = EXCLUDED.contact_phone,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			country = EXCLUDED.country,
			timezone = EXCLUDED.timezone,
			order_frequency = EXCLUDED.order_frequency,
			currency = EXCLUDED.currency,
			urgent_notifications = EXCLUDED.urgent_notifications,
			email_notifications = EXCLUDED.email_notifications,
			auto_assign_providers = EXCLUDED.auto_assign_providers,
			default_order_time = EXCLUDED.default_order_time,
			minimum_order_value = EXCLUDED.minimum_order_value,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by,
			version = EXCLUDED.version`,
		s.OrganizationID, s.OrganizationName, s.ContactEmail, s.ContactPhone, s.Address, s.City, s.Country,
		s.Timezone, string(s.OrderFrequency), s.Currency, s.UrgentNotifications, s.EmailNotifications, s.AutoAssignProviders,
		s.DefaultOrderTime, s.MinimumOrderValue, s.CreatedAt, s.CreatedBy, s.LastUpdatedAt, s.LastUpdatedBy, s.Version,
	)
	if err != nil {
		return mapError(err, "save settings for "+s.OrganizationID)
	}
	return r.Commit(ctx, tx)
}
