package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	User    UserSvcFacade
	Wallet  WalletSvcFacade
	Pin     PinSvcFacade
	TopUp   TopUpSvcFacade
	Receipt ReceiptSvcFacade
}
