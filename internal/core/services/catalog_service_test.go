package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
	"github.com/SscSPs/restaurant_supply_app/internal/clock"
	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/SscSPs/restaurant_supply_app/internal/core/services"
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	mockProduct  *MockProductRepository
	mockProvider *MockProviderRepository
	clock        *clock.FakeClock
	service      portssvc.CatalogSvcFacade
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.mockProduct = new(MockProductRepository)
	suite.mockProvider = new(MockProviderRepository)
	suite.clock = clock.NewFakeClock(time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC))
	suite.service = services.NewCatalogService(suite.mockProduct, suite.mockProvider, services.WithClock(suite.clock))
}

func (suite *CatalogServiceTestSuite) TestCreateProduct_Success() {
	ctx := context.Background()
	ten := decimal.NewFromInt(10)
	five := decimal.NewFromInt(5)
	var opening *domain.StockTransaction
	suite.mockProvider.On("FindProviderByID", ctx, testOrgID, "prov-walmart").
		Return(&domain.Provider{ProviderID: "prov-walmart", Name: "Walmart", IsActive: true}, nil).Once()
	suite.mockProduct.On("SaveProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.Name == "Pollo entero" && p.OrganizationID == testOrgID && p.StockLevel.Equal(ten)
	}), mock.AnythingOfType("*domain.StockTransaction")).
		Run(func(args mock.Arguments) { opening = args.Get(2).(*domain.StockTransaction) }).
		Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, adminActor(), dto.CreateProductRequest{
		Name:              "  Pollo entero ",
		Unit:              "kg",
		Category:          "Carnes",
		DefaultProviderID: strPtr("prov-walmart"),
		InitialStock:      &ten,
		MinStockAlert:     &five,
	})

	suite.Require().NoError(err)
	suite.NotEmpty(product.ProductID)
	suite.True(product.IsActive)
	suite.Equal("Walmart", product.DefaultProviderName)
	suite.Equal(domain.StockOK, product.Status())
	suite.True(product.MaxStock.IsZero())
	suite.Equal("user-admin", product.CreatedBy)
	suite.Equal(suite.clock.Now(), product.CreatedAt)
	suite.Require().NotNil(product.LastRestockDate)
	suite.Equal(suite.clock.Now(), *product.LastRestockDate)

	suite.Require().NotNil(opening)
	suite.Equal(product.ProductID, opening.ProductID)
	suite.Equal(domain.MovementIn, opening.Type)
	suite.Equal(domain.DefaultReasonOpening, opening.Reason)
	suite.True(opening.PreviousStock.IsZero())
	suite.True(opening.NewStock.Equal(ten))
	replayed, err := domain.ReplayLedger(decimal.Zero, []domain.StockTransaction{*opening})
	suite.Require().NoError(err)
	suite.True(replayed.Equal(product.StockLevel), "ledger replays to %s, cached level is %s", replayed, product.StockLevel)
	suite.mockProduct.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestCreateProduct_NoStockWritesNoLedgerEntry() {
	ctx := context.Background()
	suite.mockProduct.On("SaveProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.StockLevel.IsZero() && p.LastRestockDate == nil
	}), (*domain.StockTransaction)(nil)).Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, adminActor(), dto.CreateProductRequest{
		Name: "Sal", Unit: "kg", Category: "Abarrotes",
	})

	suite.Require().NoError(err)
	replayed, err := domain.ReplayLedger(decimal.Zero, nil)
	suite.Require().NoError(err)
	suite.True(replayed.Equal(product.StockLevel))
	suite.Equal(domain.StockEmpty, product.Status())
	suite.mockProduct.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestCreateProduct_Validation() {
	ctx := context.Background()
	negative := decimal.NewFromInt(-1)
	testCases := []struct {
		name string
		req  dto.CreateProductRequest
	}{
		{"blank name", dto.CreateProductRequest{Name: " ", Unit: "kg", Category: "Carnes"}},
		{"blank unit", dto.CreateProductRequest{Name: "Pollo", Category: "Carnes"}},
		{"blank category", dto.CreateProductRequest{Name: "Pollo", Unit: "kg"}},
		{"negative stock", dto.CreateProductRequest{Name: "Pollo", Unit: "kg", Category: "Carnes", InitialStock: &negative}},
		{"negative min", dto.CreateProductRequest{Name: "Pollo", Unit: "kg", Category: "Carnes", MinStockAlert: &negative}},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := suite.service.CreateProduct(ctx, adminActor(), tc.req)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockProduct.AssertNotCalled(suite.T(), "SaveProduct", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestCreateProduct_UnknownProvider() {
	ctx := context.Background()
	suite.mockProvider.On("FindProviderByID", ctx, testOrgID, "prov-x").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateProduct(ctx, adminActor(), dto.CreateProductRequest{
		Name: "Pollo", Unit: "kg", Category: "Carnes", DefaultProviderID: strPtr("prov-x"),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CatalogServiceTestSuite) TestCreateProduct_NonAdminForbidden() {
	for _, actor := range []domain.Actor{restaurantActor(), supplierActor()} {
		_, err := suite.service.CreateProduct(context.Background(), actor, dto.CreateProductRequest{
			Name: "Pollo", Unit: "kg", Category: "Carnes",
		})
		suite.ErrorIs(err, apperrors.ErrForbidden)
	}
}

func (suite *CatalogServiceTestSuite) TestUpdateProduct_ClearsProviderAndKeepsStock() {
	ctx := context.Background()
	walmart := "prov-walmart"
	existing := &domain.Product{
		ProductID: "prod-1", OrganizationID: testOrgID, Name: "Pollo", Unit: "kg", Category: "Carnes",
		DefaultProviderID: &walmart, DefaultProviderName: "Walmart", StockLevel: decimal.NewFromInt(8), IsActive: true,
	}
	suite.mockProduct.On("FindProductByID", ctx, testOrgID, "prod-1").Return(existing, nil).Once()
	suite.mockProduct.On("UpdateProduct", ctx, mock.AnythingOfType("domain.Product")).Return(nil).Once()

	product, err := suite.service.UpdateProduct(ctx, adminActor(), "prod-1", dto.UpdateProductRequest{
		Name:              strPtr("Pollo entero"),
		DefaultProviderID: strPtr(""),
	})

	suite.Require().NoError(err)
	suite.Equal("Pollo entero", product.Name)
	suite.Nil(product.DefaultProviderID)
	suite.Empty(product.DefaultProviderName)
	suite.True(product.StockLevel.Equal(decimal.NewFromInt(8)))
	suite.Equal(suite.clock.Now(), product.LastUpdatedAt)
}

func (suite *CatalogServiceTestSuite) TestUpdateProduct_RefreshesProviderName() {
	ctx := context.Background()
	walmart := "prov-walmart"
	existing := &domain.Product{ProductID: "prod-1", Name: "Pollo", Unit: "kg", Category: "Carnes",
		DefaultProviderID: &walmart, DefaultProviderName: "Wal-Mart"}
	suite.mockProduct.On("FindProductByID", ctx, testOrgID, "prod-1").Return(existing, nil).Once()
	suite.mockProvider.On("FindProviderByID", ctx, testOrgID, "prov-walmart").
		Return(&domain.Provider{ProviderID: "prov-walmart", Name: "Walmart"}, nil).Once()
	suite.mockProduct.On("UpdateProduct", ctx, mock.AnythingOfType("domain.Product")).Return(nil).Once()

	product, err := suite.service.UpdateProduct(ctx, adminActor(), "prod-1", dto.UpdateProductRequest{Unit: strPtr("pieza")})
	suite.Require().NoError(err)
	suite.Equal("Walmart", product.DefaultProviderName)
	suite.Equal("pieza", product.Unit)
}

func (suite *CatalogServiceTestSuite) TestSetProductActive() {
	ctx := context.Background()
	suite.mockProduct.On("SetProductActive", ctx, testOrgID, "prod-1", false, "user-admin", suite.clock.Now()).Return(nil).Once()
	suite.mockProduct.On("FindProductByID", ctx, testOrgID, "prod-1").
		Return(&domain.Product{ProductID: "prod-1", IsActive: false}, nil).Once()

	product, err := suite.service.SetProductActive(ctx, adminActor(), "prod-1", false)
	suite.Require().NoError(err)
	suite.False(product.IsActive)
	suite.mockProduct.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestDeleteProduct_NotFound() {
	ctx := context.Background()
	suite.mockProduct.On("DeleteProduct", ctx, testOrgID, "prod-x").Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteProduct(ctx, adminActor(), "prod-x")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CatalogServiceTestSuite) TestListProducts_Filters() {
	ctx := context.Background()
	products := []domain.Product{
		{ProductID: "3", Name: "tomate", Category: "Verduras", IsActive: true, StockLevel: decimal.NewFromInt(1), MinStockAlert: decimal.NewFromInt(2)},
		{ProductID: "1", Name: "Arroz", Category: "Abarrotes", IsActive: true, StockLevel: decimal.NewFromInt(10), MinStockAlert: decimal.NewFromInt(2)},
		{ProductID: "2", Name: "Lechuga", Category: "Verduras", IsActive: true, StockLevel: decimal.Zero},
	}
	suite.mockProduct.On("ListProducts", ctx, testOrgID, (*bool)(nil)).Return(products, nil).Times(3)

	all, err := suite.service.ListProducts(ctx, restaurantActor(), domain.ProductFilter{Category: "all"})
	suite.Require().NoError(err)
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	assert.Equal(suite.T(), []string{"Arroz", "Lechuga", "tomate"}, names)

	veg, err := suite.service.ListProducts(ctx, restaurantActor(), domain.ProductFilter{Search: "VERD", StockStatus: domain.StockLow})
	suite.Require().NoError(err)
	suite.Require().Len(veg, 1)
	suite.Equal("3", veg[0].ProductID)

	empty, err := suite.service.ListProducts(ctx, restaurantActor(), domain.ProductFilter{StockStatus: domain.StockEmpty})
	suite.Require().NoError(err)
	suite.Require().Len(empty, 1)
	suite.Equal("Lechuga", empty[0].Name)

	_, err = suite.service.ListProducts(ctx, restaurantActor(), domain.ProductFilter{StockStatus: "overflowing"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CatalogServiceTestSuite) TestCreateProvider() {
	ctx := context.Background()
	suite.mockProvider.On("SaveProvider", ctx, mock.MatchedBy(func(p domain.Provider) bool {
		return p.Name == "Central de Abasto" && p.Type == domain.ProviderWholesaler && p.IsActive
	})).Return(nil).Once()

	provider, err := suite.service.CreateProvider(ctx, adminActor(), dto.CreateProviderRequest{
		Name: "Central de Abasto", Type: "wholesaler",
	})
	suite.Require().NoError(err)
	suite.NotEmpty(provider.ProviderID)

	_, err = suite.service.CreateProvider(ctx, adminActor(), dto.CreateProviderRequest{Name: "X", Type: "spaceship"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CatalogServiceTestSuite) TestUpdateProvider_SupplierAllowed() {
	ctx := context.Background()
	suite.mockProvider.On("FindProviderByID", ctx, testOrgID, "prov-1").
		Return(&domain.Provider{ProviderID: "prov-1", Name: "Costco", Type: domain.ProviderSupermarket}, nil).Once()
	suite.mockProvider.On("UpdateProvider", ctx, mock.AnythingOfType("domain.Provider")).Return(nil).Once()

	provider, err := suite.service.UpdateProvider(ctx, supplierActor(), "prov-1", dto.UpdateProviderRequest{
		Description: strPtr(" Abre a las 7 "),
	})
	suite.Require().NoError(err)
	suite.Equal("Abre a las 7", provider.Description)
	suite.Equal("user-sup", provider.LastUpdatedBy)
}

func (suite *CatalogServiceTestSuite) TestDeleteProvider_SupplierForbidden() {
	err := suite.service.DeleteProvider(context.Background(), supplierActor(), "prov-1")
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockProvider.AssertNotCalled(suite.T(), "DeleteProvider", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestListProviders_ActiveOnly() {
	ctx := context.Background()
	suite.mockProvider.On("ListProviders", ctx, testOrgID, boolPtr(true)).
		Return([]domain.Provider{{ProviderID: "prov-1"}}, nil).Once()

	providers, err := suite.service.ListProviders(ctx, restaurantActor(), boolPtr(true))
	suite.Require().NoError(err)
	suite.Len(providers, 1)
}

func TestCatalogService(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}
