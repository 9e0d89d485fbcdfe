package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
	"github.com/SscSPs/restaurant_supply_app/internal/handlers"
	"github.com/SscSPs/restaurant_supply_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ResolveActor(ctx context.Context, userID string) (domain.Actor, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Actor), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) CreateStaff(ctx context.Context, actor domain.Actor, req dto.CreateStaffRequest) (*domain.User, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, actor domain.Actor, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, actor, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) SetUserActive(ctx context.Context, actor domain.Actor, userID string, active bool) (*domain.User, error) {
	args := m.Called(ctx, actor, userID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateProfile(ctx context.Context, actor domain.Actor, req dto.UpdateProfileRequest) (*domain.User, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock StockService ---
type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) RecordMovement(ctx context.Context, actor domain.Actor, productID string, req dto.RecordMovementRequest) (*domain.Product, *domain.StockTransaction, error) {
	args := m.Called(ctx, actor, productID, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Product), args.Get(1).(*domain.StockTransaction), args.Error(2)
}
func (m *MockStockService) ListMovements(ctx context.Context, actor domain.Actor, productID string) ([]domain.StockTransaction, error) {
	args := m.Called(ctx, actor, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockTransaction), args.Error(1)
}
func (m *MockStockService) InventorySummary(ctx context.Context, actor domain.Actor) (domain.InventorySummary, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(domain.InventorySummary), args.Error(1)
}

var _ portssvc.StockSvcFacade = (*MockStockService)(nil)

// --- Mock OrderService ---
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) SubmitOrder(ctx context.Context, actor domain.Actor, req dto.SubmitOrderRequest) (*domain.Order, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) ListOrderHistory(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderService) GetOrder(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, actor, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) ListOrders(ctx context.Context, actor domain.Actor, status *domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(ctx, actor, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderService) AdvanceOrderStatus(ctx context.Context, actor domain.Actor, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	args := m.Called(ctx, actor, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

var _ portssvc.OrderSvcFacade = (*MockOrderService)(nil)

// --- Mock FulfillmentService ---
type MockFulfillmentService struct {
	mock.Mock
}

func (m *MockFulfillmentService) orderResult(args mock.Arguments) (*domain.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockFulfillmentService) MarkFound(ctx context.Context, actor domain.Actor, orderID, productID string) (*domain.Order, error) {
	return m.orderResult(m.Called(ctx, actor, orderID, productID))
}
func (m *MockFulfillmentService) MarkNotFound(ctx context.Context, actor domain.Actor, orderID, productID string) (*domain.Order, error) {
	return m.orderResult(m.Called(ctx, actor, orderID, productID))
}
func (m *MockFulfillmentService) Substitute(ctx context.Context, actor domain.Actor, orderID, productID, note string) (*domain.Order, error) {
	return m.orderResult(m.Called(ctx, actor, orderID, productID, note))
}
func (m *MockFulfillmentService) ReassignProvider(ctx context.Context, actor domain.Actor, orderID, productID, providerID string) (*domain.Order, error) {
	return m.orderResult(m.Called(ctx, actor, orderID, productID, providerID))
}
func (m *MockFulfillmentService) PendingGroupedByProvider(ctx context.Context, actor domain.Actor) ([]domain.ProviderBucket, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProviderBucket), args.Error(1)
}
func (m *MockFulfillmentService) UrgentOrders(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockFulfillmentService) UnassignedLineItems(ctx context.Context, actor domain.Actor) ([]domain.PendingLineItem, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingLineItem), args.Error(1)
}

var _ portssvc.FulfillmentSvcFacade = (*MockFulfillmentService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockUser        *MockUserService
	mockStock       *MockStockService
	mockOrder       *MockOrderService
	mockFulfillment *MockFulfillmentService
	jwtSecret       string

	supplier   domain.Actor
	restaurant domain.Actor
}

// generateTestToken creates a dummy JWT for testing.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "supply-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockUser = new(MockUserService)
	suite.mockStock = new(MockStockService)
	suite.mockOrder = new(MockOrderService)
	suite.mockFulfillment = new(MockFulfillmentService)

	suite.supplier = domain.Actor{
		UserID: "supplier-1", Name: "Sam", OrganizationID: "org-1",
		Role: domain.ResolvedRole{Kind: domain.RoleSupplier}, Active: true,
	}
	suite.restaurant = domain.Actor{
		UserID: "resto-1", Name: "Centro", OrganizationID: "org-1", Restaurant: "Centro",
		Role: domain.ResolvedRole{Kind: domain.RoleRestaurant}, Active: true,
	}
	suite.mockUser.On("ResolveActor", mock.Anything, suite.supplier.UserID).Return(suite.supplier, nil).Maybe()
	suite.mockUser.On("ResolveActor", mock.Anything, suite.restaurant.UserID).Return(suite.restaurant, nil).Maybe()

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	services := &portssvc.ServiceContainer{
		User:        suite.mockUser,
		Stock:       suite.mockStock,
		Order:       suite.mockOrder,
		Fulfillment: suite.mockFulfillment,
	}
	err := handlers.RegisterRoutes(suite.router, cfg, services, handlers.RouterOptions{})
	suite.Require().NoError(err)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.mockUser.AssertExpectations(suite.T())
	suite.mockStock.AssertExpectations(suite.T())
	suite.mockOrder.AssertExpectations(suite.T())
	suite.mockFulfillment.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) do(method, path, userID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decodeError(w *httptest.ResponseRecorder) handlers.ErrorResponse {
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestMissingToken() {
	w := suite.do(http.MethodGet, "/api/v1/fulfillment/pending", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestInactiveUserRejected() {
	inactive := domain.Actor{UserID: "gone-1", OrganizationID: "org-1", Role: domain.ResolvedRole{Kind: domain.RoleSupplier}}
	suite.mockUser.On("ResolveActor", mock.Anything, "gone-1").Return(inactive, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/fulfillment/pending", "gone-1", nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestUnknownUserRejected() {
	suite.mockUser.On("ResolveActor", mock.Anything, "ghost").
		Return(domain.Actor{}, fmt.Errorf("user ghost: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/fulfillment/pending", "ghost", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestRecordMovement_Success() {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	product := &domain.Product{
		ProductID: "p-1", OrganizationID: "org-1", Name: "Tomate", Unit: "kg",
		StockLevel: decimal.NewFromInt(8), MinStockAlert: decimal.NewFromInt(2), IsActive: true,
	}
	txn := &domain.StockTransaction{
		TransactionID: "t-1", ProductID: "p-1", ProductName: "Tomate", Type: domain.MovementIn,
		Quantity: decimal.NewFromInt(5), PreviousStock: decimal.NewFromInt(3), NewStock: decimal.NewFromInt(8),
		Reason: domain.DefaultReasonIn, UserID: "supplier-1", CreatedAt: now,
	}
	suite.mockStock.On("RecordMovement", mock.Anything, suite.supplier, "p-1",
		mock.MatchedBy(func(req dto.RecordMovementRequest) bool {
			return req.Type == domain.MovementIn && req.Quantity.Equal(decimal.NewFromInt(5))
		})).Return(product, txn, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/products/p-1/movements", "supplier-1", map[string]any{
		"type": "in", "quantity": "5",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.RecordMovementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("p-1", resp.Product.ProductID)
	suite.Equal(domain.StockOK, resp.Product.StockStatus)
	suite.True(resp.Transaction.NewStock.Equal(decimal.NewFromInt(8)))
}

func (suite *HandlerTestSuite) TestRecordMovement_InsufficientStock() {
	suite.mockStock.On("RecordMovement", mock.Anything, suite.supplier, "p-1", mock.Anything).
		Return(nil, nil, fmt.Errorf("%w: requested 9 kg but only 3 available", domain.ErrInsufficientStock)).Once()

	w := suite.do(http.MethodPost, "/api/v1/products/p-1/movements", "supplier-1", map[string]any{
		"type": "out", "quantity": 9,
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("insufficient_stock", suite.decodeError(w).Code)
}

func (suite *HandlerTestSuite) TestRecordMovement_InvalidType() {
	w := suite.do(http.MethodPost, "/api/v1/products/p-1/movements", "supplier-1", map[string]any{
		"type": "sideways", "quantity": 1,
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockStock.AssertNotCalled(suite.T(), "RecordMovement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRecordMovement_Forbidden() {
	suite.mockStock.On("RecordMovement", mock.Anything, suite.restaurant, "p-1", mock.Anything).
		Return(nil, nil, fmt.Errorf("%w: restaurant cannot record stock", apperrors.ErrForbidden)).Once()

	w := suite.do(http.MethodPost, "/api/v1/products/p-1/movements", "resto-1", map[string]any{
		"type": "in", "quantity": 1,
	})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestSubmitOrder_Success() {
	order := &domain.Order{
		OrderID: "o-1", OrganizationID: "org-1", RestaurantID: "resto-1", RestaurantName: "Centro",
		Items:  []domain.OrderLineItem{{ProductID: "p-1", ProductName: "Tomate", Quantity: 3}},
		Status: domain.OrderPending, WeekOf: "2025-03-09", TotalItems: 3,
	}
	suite.mockOrder.On("SubmitOrder", mock.Anything, suite.restaurant, dto.SubmitOrderRequest{
		Items:    []dto.OrderItemRequest{{ProductID: "p-1", Quantity: 3}},
		IsUrgent: true,
	}).Return(order, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/orders", "resto-1", map[string]any{
		"items":    []map[string]any{{"productID": "p-1", "quantity": 3}},
		"isUrgent": true,
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.OrderResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("o-1", resp.OrderID)
	suite.Equal(domain.OrderPending, resp.Status)
	suite.Equal("2025-03-09", resp.WeekOf)
}

func (suite *HandlerTestSuite) TestSubmitOrder_EmptyRejected() {
	suite.mockOrder.On("SubmitOrder", mock.Anything, suite.restaurant, mock.Anything).
		Return(nil, fmt.Errorf("%w: order has no items", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/orders", "resto-1", map[string]any{"items": []any{}})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestSubmitOrder_NonPositiveQuantity() {
	w := suite.do(http.MethodPost, "/api/v1/orders", "resto-1", map[string]any{
		"items": []map[string]any{{"productID": "p-1", "quantity": 0}},
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListOrders_StatusFilter() {
	status := domain.OrderProcessing
	suite.mockOrder.On("ListOrders", mock.Anything, suite.supplier, &status).
		Return([]domain.Order{{OrderID: "o-2", Status: status}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/orders?status=processing", "supplier-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListOrdersResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Orders, 1)
	suite.Equal("o-2", resp.Orders[0].OrderID)
}

func (suite *HandlerTestSuite) TestListOrders_InvalidStatus() {
	w := suite.do(http.MethodGet, "/api/v1/orders?status=lost", "supplier-1", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetOrder_NotFound() {
	suite.mockOrder.On("GetOrder", mock.Anything, suite.restaurant, "missing").
		Return(nil, fmt.Errorf("order missing: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/orders/missing", "resto-1", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestAdvanceStatus_Backwards() {
	suite.mockOrder.On("AdvanceOrderStatus", mock.Anything, suite.supplier, "o-1", domain.OrderPending).
		Return(nil, fmt.Errorf("%w: cannot move from completed to pending", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPatch, "/api/v1/orders/o-1/status", "supplier-1", map[string]any{"status": "pending"})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestMarkFound_Success() {
	order := &domain.Order{
		OrderID: "o-1", Status: domain.OrderPending,
		Items: []domain.OrderLineItem{{ProductID: "p-1", Quantity: 2, Status: domain.ItemFound}},
	}
	suite.mockFulfillment.On("MarkFound", mock.Anything, suite.supplier, "o-1", "p-1").Return(order, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/orders/o-1/items/p-1/found", "supplier-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.OrderResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.ItemFound, resp.Items[0].Status)
}

func (suite *HandlerTestSuite) TestSubstitute_AlreadyResolved() {
	suite.mockFulfillment.On("Substitute", mock.Anything, suite.supplier, "o-1", "p-1", "Roma tomato").
		Return(nil, fmt.Errorf("%w: found -> substituted", domain.ErrInvalidTransition)).Once()

	w := suite.do(http.MethodPost, "/api/v1/orders/o-1/items/p-1/substitute", "supplier-1", map[string]any{"note": "Roma tomato"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("invalid_transition", suite.decodeError(w).Code)
}

func (suite *HandlerTestSuite) TestSubstitute_MissingNote() {
	w := suite.do(http.MethodPost, "/api/v1/orders/o-1/items/p-1/substitute", "supplier-1", map[string]any{})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestPendingByProvider() {
	providerID := "prov-1"
	buckets := []domain.ProviderBucket{
		{Key: providerID, ProviderID: &providerID, ProviderName: "Mercado", Items: []domain.PendingLineItem{{OrderID: "o-1"}}},
		{Key: domain.UnassignedProviderKey, ProviderName: "", Items: []domain.PendingLineItem{{OrderID: "o-2"}}},
	}
	suite.mockFulfillment.On("PendingGroupedByProvider", mock.Anything, suite.supplier).Return(buckets, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/fulfillment/pending", "supplier-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []domain.ProviderBucket
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.Equal(domain.UnassignedProviderKey, resp[1].Key)
}

func (suite *HandlerTestSuite) TestStoreUnavailable() {
	suite.mockFulfillment.On("UrgentOrders", mock.Anything, suite.supplier).
		Return(nil, fmt.Errorf("list orders: %w", apperrors.ErrUnavailable)).Once()

	w := suite.do(http.MethodGet, "/api/v1/fulfillment/urgent", "supplier-1", nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
