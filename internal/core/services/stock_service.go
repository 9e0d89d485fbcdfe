package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portsrepo "github.com/SscSPs/restaurant_supply_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
	"github.com/SscSPs/restaurant_supply_app/internal/utils"
	"github.com/google/uuid"
)

type stockService struct {
	BaseService
	stockRepo   portsrepo.StockRepositoryFacade
	productRepo portsrepo.ProductReader
}

// NewStockService creates the stock ledger service.
func NewStockService(stockRepo portsrepo.StockRepositoryFacade, productRepo portsrepo.ProductReader, opts ...ServiceOption) portssvc.StockSvcFacade {
	return &stockService{
		BaseService: newBaseService(opts),
		stockRepo:   stockRepo,
		productRepo: productRepo,
	}
}

func (s *stockService) RecordMovement(ctx context.Context, actor domain.Actor, productID string, req dto.RecordMovementRequest) (*domain.Product, *domain.StockTransaction, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectStock, domain.ActionRecord); err != nil {
		return nil, nil, err
	}
	// Reject bad input before any repository call.
	if !req.Type.IsValid() {
		return nil, nil, fmt.Errorf("%w: movement type must be in or out", apperrors.ErrValidation)
	}
	if !req.Quantity.IsPositive() {
		return nil, nil, fmt.Errorf("%w: quantity must be greater than zero", apperrors.ErrValidation)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = req.Type.DefaultReason()
	}
	now := s.now()
	var clamped bool

	mutate := func(product *domain.Product) (domain.StockTransaction, error) {
		m, err := domain.ApplyMovement(product.StockLevel, req.Type, req.Quantity)
		if err != nil {
			return domain.StockTransaction{}, err
		}
		if m.Clamped() && !req.AllowPartial {
			return domain.StockTransaction{}, fmt.Errorf("%w: requested %s %s but only %s available",
				domain.ErrInsufficientStock, req.Quantity.String(), product.Unit, m.PreviousStock.String())
		}
		clamped = m.Clamped()

		product.StockLevel = m.NewStock
		if req.Type == domain.MovementIn {
			restocked := now
			product.LastRestockDate = &restocked
		}
		product.Touch(actor.UserID, now)
		product.Version++

		return domain.StockTransaction{
			TransactionID:  uuid.NewString(),
			ProductID:      product.ProductID,
			ProductName:    product.Name,
			OrganizationID: product.OrganizationID,
			Location:       actor.Location(),
			Type:           req.Type,
			Quantity:       req.Quantity,
			PreviousStock:  m.PreviousStock,
			NewStock:       m.NewStock,
			Reason:         reason,
			Notes:          strings.TrimSpace(req.Notes),
			UserID:         actor.UserID,
			UserName:       actor.Name,
			CreatedAt:      now,
		}, nil
	}

	product, txn, err := s.stockRepo.RecordMovement(ctx, actor.OrganizationID, productID, mutate)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, domain.ErrInsufficientStock) {
			s.LogError(ctx, err, "Failed to record stock movement", slog.String("product_id", productID))
		}
		return nil, nil, err
	}

	s.Metrics.StockMovementRecorded(string(req.Type), clamped)
	s.Analytics.Enqueue(actor.UserID, utils.EventStockMovement, map[string]any{
		"organization_id": actor.OrganizationID,
		"type":            string(req.Type),
		"clamped":         clamped,
	})
	s.LogInfo(ctx, "Stock movement recorded",
		slog.String("product_id", productID),
		slog.String("type", string(req.Type)),
		slog.String("quantity", req.Quantity.String()),
		slog.String("new_stock", txn.NewStock.String()))
	return product, txn, nil
}

func (s *stockService) ListMovements(ctx context.Context, actor domain.Actor, productID string) ([]domain.StockTransaction, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectStock, domain.ActionView); err != nil {
		return nil, err
	}
	if _, err := s.productRepo.FindProductByID(ctx, actor.OrganizationID, productID); err != nil {
		return nil, err
	}
	return s.stockRepo.ListTransactionsByProduct(ctx, actor.OrganizationID, productID)
}

func (s *stockService) InventorySummary(ctx context.Context, actor domain.Actor) (domain.InventorySummary, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectStock, domain.ActionView); err != nil {
		return domain.InventorySummary{}, err
	}
	active := true
	products, err := s.productRepo.ListProducts(ctx, actor.OrganizationID, &active)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products for inventory summary")
		return domain.InventorySummary{}, err
	}
	return domain.SummarizeInventory(products), nil
}
