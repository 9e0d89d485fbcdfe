package services_test

import (
	"context"
	"time"
	_ "time/tzdata"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portsrepo "github.com/SscSPs/restaurant_supply_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Users ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsersByOrganization(ctx context.Context, orgID string) ([]domain.User, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Organizations ---

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, orgID string) (*domain.Organization, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindSettings(ctx context.Context, orgID string) (*domain.OrganizationSettings, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizationSettings), args.Error(1)
}

func (m *MockOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) UpsertSettings(ctx context.Context, settings domain.OrganizationSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- Invite codes ---

type MockInviteCodeRepository struct {
	mock.Mock
}

func (m *MockInviteCodeRepository) FindInviteCode(ctx context.Context, code string) (*domain.InviteCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InviteCode), args.Error(1)
}

func (m *MockInviteCodeRepository) ListInviteCodes(ctx context.Context, orgID string) ([]domain.InviteCode, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InviteCode), args.Error(1)
}

func (m *MockInviteCodeRepository) SaveInviteCode(ctx context.Context, code domain.InviteCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockInviteCodeRepository) RedeemInviteCode(ctx context.Context, code string, newUser domain.User, at time.Time) (*domain.User, error) {
	args := m.Called(ctx, code, newUser, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockInviteCodeRepository) ReleaseInviteCode(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

// --- Catalog ---

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, orgID, productID string) (*domain.Product, error) {
	args := m.Called(ctx, orgID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDs(ctx context.Context, orgID string, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, orgID, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, orgID string, active *bool) ([]domain.Product, error) {
	args := m.Called(ctx, orgID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product, opening *domain.StockTransaction) error {
	args := m.Called(ctx, product, opening)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SetProductActive(ctx context.Context, orgID, productID string, active bool, userID string, at time.Time) error {
	args := m.Called(ctx, orgID, productID, active, userID, at)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, orgID, productID string) error {
	args := m.Called(ctx, orgID, productID)
	return args.Error(0)
}

type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) FindProviderByID(ctx context.Context, orgID, providerID string) (*domain.Provider, error) {
	args := m.Called(ctx, orgID, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) ListProviders(ctx context.Context, orgID string, active *bool) ([]domain.Provider, error) {
	args := m.Called(ctx, orgID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) SaveProvider(ctx context.Context, provider domain.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *MockProviderRepository) UpdateProvider(ctx context.Context, provider domain.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *MockProviderRepository) SetProviderActive(ctx context.Context, orgID, providerID string, active bool, userID string, at time.Time) error {
	args := m.Called(ctx, orgID, providerID, active, userID, at)
	return args.Error(0)
}

func (m *MockProviderRepository) DeleteProvider(ctx context.Context, orgID, providerID string) error {
	args := m.Called(ctx, orgID, providerID)
	return args.Error(0)
}

// --- Stock ---

// MockStockRepository runs the mutation against a configured product so the
// service's ledger arithmetic is exercised for real.
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) ListTransactionsByProduct(ctx context.Context, orgID, productID string) ([]domain.StockTransaction, error) {
	args := m.Called(ctx, orgID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockTransaction), args.Error(1)
}

func (m *MockStockRepository) RecordMovement(ctx context.Context, orgID, productID string, mutate portsrepo.StockMutation) (*domain.Product, *domain.StockTransaction, error) {
	args := m.Called(ctx, orgID, productID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(1)
	}
	locked := *args.Get(0).(*domain.Product)
	txn, err := mutate(&locked)
	if err != nil {
		return nil, nil, err
	}
	return &locked, &txn, nil
}

// --- Orders ---

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orgID, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orgID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, orgID string, filter portsrepo.OrderFilter) ([]domain.Order, error) {
	args := m.Called(ctx, orgID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderIfVersion(ctx context.Context, order domain.Order, expectedVersion int) error {
	args := m.Called(ctx, order, expectedVersion)
	return args.Error(0)
}

// --- Fixtures ---

const testOrgID = "org-centro"

func restaurantActor() domain.Actor {
	return domain.Actor{
		UserID:         "user-rest",
		Name:           "Ana",
		Email:          "ana@example.com",
		OrganizationID: testOrgID,
		Restaurant:     "Sucursal Norte",
		Role:           domain.ResolvedRole{Kind: domain.RoleRestaurant},
		Active:         true,
	}
}

func supplierActor() domain.Actor {
	return domain.Actor{
		UserID:         "user-sup",
		Name:           "Beto",
		Email:          "beto@example.com",
		OrganizationID: testOrgID,
		Role:           domain.ResolvedRole{Kind: domain.RoleSupplier},
		Active:         true,
	}
}

func adminActor() domain.Actor {
	return domain.Actor{
		UserID:         "user-admin",
		Name:           "Carla",
		Email:          "carla@example.com",
		OrganizationID: testOrgID,
		Role:           domain.ResolvedRole{Kind: domain.RoleAdmin, CanAdmin: true},
		Active:         true,
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
