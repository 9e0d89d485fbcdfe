package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
)

// InviteCodeReader defines read operations for invite codes.
type InviteCodeReader interface {
	FindInviteCode(ctx context.Context, code string) (*domain.InviteCode, error)
	ListInviteCodes(ctx context.Context, orgID string) ([]domain.InviteCode, error)
}

// InviteCodeWriter defines write operations for invite codes.
type InviteCodeWriter interface {
	// SaveInviteCode inserts a new code. An existing code yields apperrors.ErrDuplicate.
	SaveInviteCode(ctx context.Context, code domain.InviteCode) error

	// RedeemInviteCode consumes the code and registers newUser in its organization, atomically.
	// The organization row is created on first redemption. newUser.OrganizationID is taken
	// from the code. Errors: apperrors.ErrNotFound (no such code), apperrors.ErrConflict
	// (already used), apperrors.ErrDuplicate (email taken). On any error nothing is written.
	RedeemInviteCode(ctx context.Context, code string, newUser domain.User, at time.Time) (*domain.User, error)

	// ReleaseInviteCode makes a used code redeemable again. Redemption history is kept.
	ReleaseInviteCode(ctx context.Context, code string) error
}

type InviteCodeRepositoryFacade interface {
	InviteCodeReader
	InviteCodeWriter
}
