package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type Organization struct {
	OrganizationID string    `db:"organization_id"`
	Name           string    `db:"name"`
	CreatedAt      time.Time `db:"created_at"`
}

type OrganizationSettings struct {
	OrganizationID      string          `db:"organization_id"`
	OrganizationName    string          `db:"organization_name"`
	ContactEmail        string          `db:"contact_email"`
	ContactPhone        string          `db:"contact_phone"`
	Address             string          `db:"address"`
	City                string          `db:"city"`
	Country             string          `db:"country"`
	Timezone            string          `db:"timezone"`
	OrderFrequency      string          `db:"order_frequency"`
	Currency            string          `db:"currency"`
	UrgentNotifications bool            `db:"urgent_notifications"`
	EmailNotifications  bool            `db:"email_notifications"`
	AutoAssignProviders bool            `db:"auto_assign_providers"`
	DefaultOrderTime    string          `db:"default_order_time"`
	MinimumOrderValue   decimal.Decimal `db:"minimum_order_value"`
	AuditFields
}

// InviteCode is a row of the invite_codes table.
type InviteCode struct {
	Code             string         `db:"code"`
	OrganizationID   string         `db:"organization_id"`
	OrganizationName string         `db:"organization_name"`
	Used             bool           `db:"used"`
	UsedBy           sql.NullString `db:"used_by"`
	UsedAt           sql.NullTime   `db:"used_at"`
	CreatedAt        time.Time      `db:"created_at"`
	CreatedBy        string         `db:"created_by"`
}
