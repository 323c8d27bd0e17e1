package router

import (
	"database/sql"

	"tailorbook_backend/internal/handlers"
	"tailorbook_backend/internal/repositories"
	"tailorbook_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application. The database handle and
// shop configuration are constructed once in main and threaded through here;
// no package holds an ambient store handle.
func Setup(engine *gin.Engine, db *sql.DB, cfg services.ShopConfig) {
	// Initialize Repositories
	customerRepo := repositories.NewCustomerRepository(db)

	// Initialize Services
	customerService := services.NewCustomerService(customerRepo, db, cfg)
	ledgerService := services.NewLedgerService(customerRepo, db)

	// Initialize Handlers
	customerHandler := handlers.NewCustomerHandler(customerService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)

	apiV1 := engine.Group("/api/v1")
	{
		SetupCustomerRoutes(apiV1, customerHandler)
		SetupLedgerRoutes(apiV1, ledgerHandler)
	}
}
