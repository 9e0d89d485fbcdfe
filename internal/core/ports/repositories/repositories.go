package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	OrganizationRepo OrganizationRepositoryFacade
	InviteCodeRepo   InviteCodeRepositoryFacade
	UserRepo         UserRepositoryFacade
	ProductRepo      ProductRepositoryFacade
	ProviderRepo     ProviderRepositoryFacade
	StockRepo        StockRepositoryFacade
	OrderRepo        OrderRepositoryFacade
}
