package pgsql

import (
	portsrepo "github.com/SscSPs/restaurant_supply_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
		InviteCodeRepo:   newPgxInviteCodeRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		ProductRepo:      newPgxProductRepository(dbPool),
		ProviderRepo:     newPgxProviderRepository(dbPool),
		StockRepo:        newPgxStockRepository(dbPool),
		OrderRepo:        newPgxOrderRepository(dbPool),
	}
}
