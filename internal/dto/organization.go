package dto

import (
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest replaces the editable organization settings.
type UpdateSettingsRequest struct {
	OrganizationName    string           `json:"organizationName" binding:"required"`
	ContactEmail        string           `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone        string           `json:"contactPhone"`
	Address             string           `json:"address"`
	City                string           `json:"city"`
	Country             string           `json:"country"`
	Timezone            string           `json:"timezone" binding:"omitempty,timezone"`
	OrderFrequency      string           `json:"orderFrequency" binding:"omitempty,oneof=weekly biweekly monthly"`
	Currency            string           `json:"currency" binding:"omitempty,len=3"`
	UrgentNotifications bool             `json:"urgentNotifications"`
	EmailNotifications  bool             `json:"emailNotifications"`
	AutoAssignProviders bool             `json:"autoAssignProviders"`
	DefaultOrderTime    string           `json:"defaultOrderTime" binding:"omitempty,datetime=15:04"`
	MinimumOrderValue   *decimal.Decimal `json:"minimumOrderValue"`
}

// CreateInviteCodeRequest creates an invite code. An empty Code is generated.
type CreateInviteCodeRequest struct {
	Code             string `json:"code"`
	OrganizationName string `json:"organizationName"`
}

type InviteCodeResponse struct {
	Code             string     `json:"code"`
	OrganizationID   string     `json:"organizationID"`
	OrganizationName string     `json:"organizationName"`
	Used             bool       `json:"used"`
	UsedBy           *string    `json:"usedBy,omitempty"`
	UsedAt           *time.Time `json:"usedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

func ToInviteCodeResponse(c *domain.InviteCode) InviteCodeResponse {
	return InviteCodeResponse{
		Code:             c.Code,
		OrganizationID:   c.OrganizationID,
		OrganizationName: c.OrganizationName,
		Used:             c.Used,
		UsedBy:           c.UsedBy,
		UsedAt:           c.UsedAt,
		CreatedAt:        c.CreatedAt,
	}
}

func ToListInviteCodeResponse(codes []domain.InviteCode) []InviteCodeResponse {
	res := make([]InviteCodeResponse, len(codes))
	for i := range codes {
		res[i] = ToInviteCodeResponse(&codes[i])
	}
	return res
}
