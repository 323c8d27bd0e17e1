package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"tailorbook_backend/internal/database"
	"tailorbook_backend/internal/middleware"
	router_pkg "tailorbook_backend/internal/router"
	"tailorbook_backend/internal/services"
	"tailorbook_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	utils.InitLogger()

	// Database configuration from environment variables
	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "tailorbook_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "tailorbook_password")
	dbName := utils.Getenv("DB_NAME", "tailorbook_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	db, err := database.Open(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)
	if err != nil {
		utils.LogError(err, "Failed to initialize database")
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.ApplySchema(db, dbSchemaPath); err != nil {
		utils.LogError(err, "Failed to apply database schema")
		log.Fatalf("Failed to apply database schema: %v", err)
	}
	if err := database.EnsureLegacyColumns(db); err != nil {
		utils.LogError(err, "Failed to reconcile legacy columns")
		log.Fatalf("Failed to reconcile legacy columns: %v", err)
	}
	if err := database.EnsureIssuedIDLog(db); err != nil {
		utils.LogError(err, "Failed to reconcile issued-ID log")
		log.Fatalf("Failed to reconcile issued-ID log: %v", err)
	}
	utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})

	// Shop configuration
	shopCfg := services.ShopConfig{
		IDPrefix:    utils.Getenv("CUSTOMER_ID_PREFIX", "AB"),
		ShopName:    utils.Getenv("SHOP_NAME", "Tailor Book"),
		ShopPhone:   utils.Getenv("SHOP_PHONE", ""),
		ShopAddress: utils.Getenv("SHOP_ADDRESS", ""),
	}

	router := gin.Default()

	router.Use(middleware.RequestID())
	router.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader}
	config.AllowCredentials = true
	router.Use(cors.New(config))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	router_pkg.Setup(router, db, shopCfg)

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port, "configured_from_env": true})

	if err := router.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
