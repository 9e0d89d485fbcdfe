// Command invitectl creates invite codes directly in the database. It is how the
// first admin of a new organization gets onboarded, before any user exists to call the API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/adapters/database/pgsql"
	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	"github.com/SscSPs/restaurant_supply_app/internal/core/services"
	"github.com/SscSPs/restaurant_supply_app/internal/platform/config"
	"github.com/SscSPs/restaurant_supply_app/internal/utils"
	"github.com/SscSPs/restaurant_supply_app/pkg/database"
	"github.com/spf13/pflag"
)

const createdBySystem = "invitectl"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var (
		orgID       = pflag.String("org-id", "", "organization the code registers users into (required)")
		orgName     = pflag.String("org-name", "", "display name of the organization; defaults to org-id")
		code        = pflag.String("code", "", "invite code to create; generated when empty")
		databaseURL = pflag.String("database-url", "", "PostgreSQL URL; defaults to PGSQL_URL")
	)
	pflag.Parse()

	if err := run(logger, *orgID, *orgName, *code, *databaseURL); err != nil {
		logger.Error("Failed to create invite code", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, orgID, orgName, code, databaseURL string) error {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		pflag.Usage()
		return fmt.Errorf("--org-id is required")
	}
	if strings.TrimSpace(orgName) == "" {
		orgName = orgID
	}

	if databaseURL == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		databaseURL = cfg.DatabaseURL
	}

	code = services.NormalizeInviteCode(code)
	if code == "" {
		suffix, err := utils.GenerateInviteSuffix()
		if err != nil {
			return err
		}
		code = services.NormalizeInviteCode(orgID + "-" + suffix)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPgxPool(ctx, databaseURL, database.PoolOptions{MaxConns: 2, Ping: true}, logger)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(pool, logger)

	repos := pgsql.NewRepositoryProvider(pool)
	now := time.Now().UTC()

	if err := repos.OrganizationRepo.SaveOrganization(ctx, domain.Organization{
		OrganizationID: orgID,
		Name:           orgName,
		CreatedAt:      now,
	}); err != nil {
		return err
	}
	if err := repos.InviteCodeRepo.SaveInviteCode(ctx, domain.InviteCode{
		Code:             code,
		OrganizationID:   orgID,
		OrganizationName: orgName,
		CreatedAt:        now,
		CreatedBy:        createdBySystem,
	}); err != nil {
		return err
	}

	logger.Info("Invite code created", slog.String("code", code), slog.String("organization_id", orgID))
	fmt.Println(code)
	return nil
}
