package router

import (
	"tailorbook_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupCustomerRoutes sets up the customer record routes.
func SetupCustomerRoutes(apiGroup *gin.RouterGroup, customerHandler *handlers.CustomerHandler) {
	customerRoutes := apiGroup.Group("/customers")
	{
		customerRoutes.POST("", customerHandler.CreateCustomer)
		customerRoutes.GET("", customerHandler.GetCustomers)
		customerRoutes.POST("/search", customerHandler.SearchCustomer)
		customerRoutes.GET("/:customerId", customerHandler.GetCustomerByID)
		customerRoutes.PUT("/:customerId", customerHandler.UpdateCustomer)
		customerRoutes.DELETE("/:customerId", customerHandler.DeleteCustomer)
		customerRoutes.GET("/:customerId/print", customerHandler.PrintCustomer)
	}
}

// SetupLedgerRoutes sets up the ledger transaction and summary routes.
func SetupLedgerRoutes(apiGroup *gin.RouterGroup, ledgerHandler *handlers.LedgerHandler) {
	apiGroup.POST("/customers/:customerId/ledger", ledgerHandler.ApplyTransaction)

	ledgerRoutes := apiGroup.Group("/ledger")
	{
		ledgerRoutes.GET("/summary", ledgerHandler.GetSummary)
	}
}
