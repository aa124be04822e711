package repositories

// RepositoryProvider bundles every repository facade the service layer needs.
// Concrete database packages return one fully-populated provider.
type RepositoryProvider struct {
	Product     ProductRepositoryFacade
	Application ApplicationRepositoryFacade
	Loan        LoanRepositoryFacade
	Repayment   RepaymentRepositoryFacade
	Restructure RestructureRepositoryFacade
	Takeover    TakeoverRepositoryFacade
	Default     DefaultRepositoryFacade
}
