package services

import (
	portsrepo "github.com/SscSPs/restaurant_supply_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/SscSPs/restaurant_supply_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// All services share one policy authorizer; opts add the clock, metrics and analytics.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, opts ...ServiceOption) *portssvc.ServiceContainer {
	shared := append([]ServiceOption{WithAuthorizer(NewPolicyAuthorizer())}, opts...)

	return &portssvc.ServiceContainer{
		Auth:         NewAuthService(cfg, repos.UserRepo, nil, shared...),
		User:         NewUserService(repos.UserRepo, shared...),
		Invite:       NewInviteService(repos.InviteCodeRepo, repos.OrganizationRepo, shared...),
		Organization: NewOrganizationService(repos.OrganizationRepo, shared...),
		Catalog:      NewCatalogService(repos.ProductRepo, repos.ProviderRepo, shared...),
		Stock:        NewStockService(repos.StockRepo, repos.ProductRepo, shared...),
		Order:        NewOrderService(repos.OrderRepo, repos.ProductRepo, repos.ProviderRepo, repos.OrganizationRepo, shared...),
		Fulfillment:  NewFulfillmentService(repos.OrderRepo, repos.ProviderRepo, shared...),
		Dashboard:    NewDashboardService(repos.OrderRepo, repos.ProductRepo, repos.UserRepo, repos.OrganizationRepo, shared...),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AuthSvcFacade         = (*authService)(nil)
	_ portssvc.UserSvcFacade         = (*userService)(nil)
	_ portssvc.InviteSvcFacade       = (*inviteService)(nil)
	_ portssvc.OrganizationSvcFacade = (*organizationService)(nil)
	_ portssvc.CatalogSvcFacade      = (*catalogService)(nil)
	_ portssvc.StockSvcFacade        = (*stockService)(nil)
	_ portssvc.OrderSvcFacade        = (*orderService)(nil)
	_ portssvc.FulfillmentSvcFacade  = (*fulfillmentService)(nil)
	_ portssvc.DashboardSvc          = (*dashboardService)(nil)
)
