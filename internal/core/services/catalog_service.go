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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type catalogService struct {
	BaseService
	productRepo  portsrepo.ProductRepositoryFacade
	providerRepo portsrepo.ProviderRepositoryFacade
}

// NewCatalogService creates the product and provider registry.
func NewCatalogService(productRepo portsrepo.ProductRepositoryFacade, providerRepo portsrepo.ProviderRepositoryFacade, opts ...ServiceOption) portssvc.CatalogSvcFacade {
	return &catalogService{
		BaseService:  newBaseService(opts),
		productRepo:  productRepo,
		providerRepo: providerRepo,
	}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func requireText(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", apperrors.ErrValidation, field)
	}
	return v, nil
}

func nonNegative(field string, v *decimal.Decimal) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	if v.LessThan(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: %s cannot be negative", apperrors.ErrValidation, field)
	}
	return *v, nil
}

// resolveDefaultProvider returns the provider ID and display name; an empty id clears it.
func (s *catalogService) resolveDefaultProvider(ctx context.Context, orgID string, providerID *string) (*string, string, error) {
	if providerID == nil || strings.TrimSpace(*providerID) == "" {
		return nil, "", nil
	}
	id := strings.TrimSpace(*providerID)
	provider, err := s.providerRepo.FindProviderByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: default provider %s does not exist", apperrors.ErrValidation, id)
		}
		return nil, "", err
	}
	return &id, provider.Name, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, actor domain.Actor, req dto.CreateProductRequest) (*domain.Product, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectProduct, domain.ActionCreate); err != nil {
		return nil, err
	}
	name, err := requireText("name", req.Name)
	if err != nil {
		return nil, err
	}
	unit, err := requireText("unit", req.Unit)
	if err != nil {
		return nil, err
	}
	category, err := requireText("category", req.Category)
	if err != nil {
		return nil, err
	}
	initial, err := nonNegative("initial stock", req.InitialStock)
	if err != nil {
		return nil, err
	}
	minAlert, err := nonNegative("minimum stock alert", req.MinStockAlert)
	if err != nil {
		return nil, err
	}
	maxStock, err := nonNegative("maximum stock", req.MaxStock)
	if err != nil {
		return nil, err
	}
	providerID, providerName, err := s.resolveDefaultProvider(ctx, actor.OrganizationID, req.DefaultProviderID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	product := domain.Product{
		ProductID:           uuid.NewString(),
		OrganizationID:      actor.OrganizationID,
		Name:                name,
		Unit:                unit,
		Category:            category,
		DefaultProviderID:   providerID,
		DefaultProviderName: providerName,
		IsActive:            true,
		StockLevel:          initial,
		MinStockAlert:       minAlert,
		MaxStock:            maxStock,
		AuditFields:         domain.NewAuditFields(actor.UserID, now),
	}
	opening := domain.OpeningStockTransaction(product, uuid.NewString(), actor, now)
	if opening != nil {
		product.LastRestockDate = &now
	}
	if err := s.productRepo.SaveProduct(ctx, product, opening); err != nil {
		s.LogError(ctx, err, "Failed to save product", slog.String("product_id", product.ProductID))
		return nil, err
	}
	s.LogInfo(ctx, "Product created", slog.String("product_id", product.ProductID))
	return &product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, actor domain.Actor, productID string, req dto.UpdateProductRequest) (*domain.Product, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectProduct, domain.ActionUpdate); err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindProductByID(ctx, actor.OrganizationID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if product.Name, err = requireText("name", *req.Name); err != nil {
			return nil, err
		}
	}
	if req.Unit != nil {
		if product.Unit, err = requireText("unit", *req.Unit); err != nil {
			return nil, err
		}
	}
	if req.Category != nil {
		if product.Category, err = requireText("category", *req.Category); err != nil {
			return nil, err
		}
	}
	if req.MinStockAlert != nil {
		if product.MinStockAlert, err = nonNegative("minimum stock alert", req.MinStockAlert); err != nil {
			return nil, err
		}
	}
	if req.MaxStock != nil {
		if product.MaxStock, err = nonNegative("maximum stock", req.MaxStock); err != nil {
			return nil, err
		}
	}
	if req.DefaultProviderID != nil {
		product.DefaultProviderID, product.DefaultProviderName, err = s.resolveDefaultProvider(ctx, actor.OrganizationID, req.DefaultProviderID)
		if err != nil {
			return nil, err
		}
	} else if product.DefaultProviderID != nil {
		// refresh the cached display name
		if provider, err := s.providerRepo.FindProviderByID(ctx, actor.OrganizationID, *product.DefaultProviderID); err == nil {
			product.DefaultProviderName = provider.Name
		}
	}
	product.Touch(actor.UserID, s.now())

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		s.LogError(ctx, err, "Failed to update product", slog.String("product_id", productID))
		return nil, err
	}
	return product, nil
}

func (s *catalogService) SetProductActive(ctx context.Context, actor domain.Actor, productID string, active bool) (*domain.Product, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectProduct, domain.ActionToggle); err != nil {
		return nil, err
	}
	if err := s.productRepo.SetProductActive(ctx, actor.OrganizationID, productID, active, actor.UserID, s.now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to toggle product", slog.String("product_id", productID))
		}
		return nil, err
	}
	return s.productRepo.FindProductByID(ctx, actor.OrganizationID, productID)
}

func (s *catalogService) DeleteProduct(ctx context.Context, actor domain.Actor, productID string) error {
	if err := s.Authorize(ctx, actor, domain.ObjectProduct, domain.ActionDelete); err != nil {
		return err
	}
	if err := s.productRepo.DeleteProduct(ctx, actor.OrganizationID, productID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete product", slog.String("product_id", productID))
		}
		return err
	}
	s.LogInfo(ctx, "Product deleted", slog.String("product_id", productID))
	return nil
}

func (s *catalogService) GetProduct(ctx context.Context, actor domain.Actor, productID string) (*domain.Product, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectProduct, domain.ActionView); err != nil {
		return nil, err
	}
	return s.productRepo.FindProductByID(ctx, actor.OrganizationID, productID)
}

func (s *catalogService) ListProducts(ctx context.Context, actor domain.Actor, filter domain.ProductFilter) ([]domain.Product, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectProduct, domain.ActionView); err != nil {
		return nil, err
	}
	if filter.StockStatus != "" && !filter.StockStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown stock status %q", apperrors.ErrValidation, filter.StockStatus)
	}
	products, err := s.productRepo.ListProducts(ctx, actor.OrganizationID, filter.Active)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products", slog.String("organization_id", actor.OrganizationID))
		return nil, err
	}
	return domain.FilterProducts(products, filter), nil
}

func (s *catalogService) CreateProvider(ctx context.Context, actor domain.Actor, req dto.CreateProviderRequest) (*domain.Provider, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectProvider, domain.ActionCreate); err != nil {
		return nil, err
	}
	name, err := requireText("name", req.Name)
	if err != nil {
		return nil, err
	}
	providerType := domain.ProviderType(req.Type)
	if !providerType.IsValid() {
		return nil, fmt.Errorf("%w: unknown provider type %q", apperrors.ErrValidation, req.Type)
	}

	provider := domain.Provider{
		ProviderID:     uuid.NewString(),
		OrganizationID: actor.OrganizationID,
		Name:           name,
		Type:           providerType,
		Description:    strings.TrimSpace(req.Description),
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(actor.UserID, s.now()),
	}
	if err := s.providerRepo.SaveProvider(ctx, provider); err != nil {
		s.LogError(ctx, err, "Failed to save provider", slog.String("provider_id", provider.ProviderID))
		return nil, err
	}
	s.LogInfo(ctx, "Provider created", slog.String("provider_id", provider.ProviderID))
	return &provider, nil
}

func (s *catalogService) UpdateProvider(ctx context.Context, actor domain.Actor, providerID string, req dto.UpdateProviderRequest) (*domain.Provider, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectProvider, domain.ActionUpdate); err != nil {
		return nil, err
	}
	provider, err := s.providerRepo.FindProviderByID(ctx, actor.OrganizationID, providerID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if provider.Name, err = requireText("name", *req.Name); err != nil {
			return nil, err
		}
	}
	if req.Type != nil {
		t := domain.ProviderType(*req.Type)
		if !t.IsValid() {
			return nil, fmt.Errorf("%w: unknown provider type %q", apperrors.ErrValidation, *req.Type)
		}
		provider.Type = t
	}
	if req.Description != nil {
		provider.Description = strings.TrimSpace(*req.Description)
	}
	provider.Touch(actor.UserID, s.now())

	if err := s.providerRepo.UpdateProvider(ctx, *provider); err != nil {
		s.LogError(ctx, err, "Failed to update provider", slog.String("provider_id", providerID))
		return nil, err
	}
	return provider, nil
}

func (s *catalogService) SetProviderActive(ctx context.Context, actor domain.Actor, providerID string, active bool) (*domain.Provider, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectProvider, domain.ActionToggle); err != nil {
		return nil, err
	}
	if err := s.providerRepo.SetProviderActive(ctx, actor.OrganizationID, providerID, active, actor.UserID, s.now()); err != nil {
		return nil, err
	}
	return s.providerRepo.FindProviderByID(ctx, actor.OrganizationID, providerID)
}

func (s *catalogService) DeleteProvider(ctx context.Context, actor domain.Actor, providerID string) error {
	if err := s.Authorize(ctx, actor, domain.ObjectProvider, domain.ActionDelete); err != nil {
		return err
	}
	if err := s.providerRepo.DeleteProvider(ctx, actor.OrganizationID, providerID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete provider", slog.String("provider_id", providerID))
		}
		return err
	}
	s.LogInfo(ctx, "Provider deleted", slog.String("provider_id", providerID))
	return nil
}

func (s *catalogService) GetProvider(ctx context.Context, actor domain.Actor, providerID string) (*domain.Provider, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectProvider, domain.ActionView); err != nil {
		return nil, err
	}
	return s.providerRepo.FindProviderByID(ctx, actor.OrganizationID, providerID)
}

func (s *catalogService) ListProviders(ctx context.Context, actor domain.Actor, active *bool) ([]domain.Provider, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectProvider, domain.ActionView); err != nil {
		return nil, err
	}
	return s.providerRepo.ListProviders(ctx, actor.OrganizationID, active)
}
