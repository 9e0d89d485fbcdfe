package domain

import "time"

// InviteCode is a single-use onboarding token. Codes are never deleted.
type InviteCode struct {
	Code             string     `json:"code"` // Primary Key, lower-case slug
	OrganizationID   string     `json:"organizationID"`
	OrganizationName string     `json:"organizationName"`
	Used             bool       `json:"used"`
	UsedBy           *string    `json:"usedBy,omitempty"` // last redeemer; kept when an admin releases the code
	UsedAt           *time.Time `json:"usedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	CreatedBy        string     `json:"createdBy"`
}
