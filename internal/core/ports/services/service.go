package services

import (
	"context"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Auth         AuthSvcFacade
	User         UserSvcFacade
	Invite       InviteSvcFacade
	Organization OrganizationSvcFacade
	Catalog      CatalogSvcFacade
	Stock        StockSvcFacade
	Order        OrderSvcFacade
	Fulfillment  FulfillmentSvcFacade
	Dashboard    DashboardSvc
}

// AuthorizerSvc decides whether an actor may perform action on object.
// A denial is reported as apperrors.ErrForbidden.
type AuthorizerSvc interface {
	Authorize(ctx context.Context, actor domain.Actor, object, action string) error
}
