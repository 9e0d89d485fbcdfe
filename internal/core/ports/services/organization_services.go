package services

import (
	"context"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
)

// OrganizationSvcFacade manages per-organization settings.
type OrganizationSvcFacade interface {
	// GetSettings returns the stored settings, or defaults when none were saved yet.
	GetSettings(ctx context.Context, actor domain.Actor) (*domain.OrganizationSettings, error)

	// UpdateSettings upserts the settings of the actor's organization.
	UpdateSettings(ctx context.Context, actor domain.Actor, req dto.UpdateSettingsRequest) (*domain.OrganizationSettings, error)
}

// InviteSvcFacade handles onboarding through single-use invite codes.
type InviteSvcFacade interface {
	CreateInviteCode(ctx context.Context, actor domain.Actor, req dto.CreateInviteCodeRequest) (*domain.InviteCode, error)
	ListInviteCodes(ctx context.Context, actor domain.Actor) ([]domain.InviteCode, error)

	// ReleaseInviteCode lets an admin reopen a code of their organization.
	ReleaseInviteCode(ctx context.Context, actor domain.Actor, code string) (*domain.InviteCode, error)

	// Register redeems an invite code and creates the user in the code's organization.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
}
