package main

import (
	"log"

	"github.com/solemart/storefront/config"
	"github.com/solemart/storefront/controllers"
	"github.com/solemart/storefront/gateway"
	"github.com/solemart/storefront/repository"
	"github.com/solemart/storefront/routes"
	"github.com/solemart/storefront/services"
	"github.com/solemart/storefront/utils"
)

const defaultGatewayBaseURL = "https://api.mercadopago.com"

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables. Missing required configuration is a
	// fail-fast startup error.
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}
	if cfg.GatewayBaseURL == "" {
		cfg.GatewayBaseURL = defaultGatewayBaseURL
	}

	// Initialize database
	config.InitDB(cfg)

	// Create bootstrap admin when configured
	if err := controllers.EnsureAdminUser(); err != nil {
		utils.LogError("Failed to create admin user: %v", err)
		log.Fatal("Failed to create admin user:", err)
	}

	// Wire the reconciliation pipeline: clients are constructed once
	// here and injected, never built ad hoc inside handlers.
	store := repository.NewOrderStore(config.DB)
	gw := gateway.NewClient(cfg.GatewayBaseURL, cfg.GatewayAccessToken)
	mailer := utils.NewAdminMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.AdminEmail)

	notifier := services.NewOrderNotifier(mailer)
	intents := services.NewPaymentIntentService(store, gw, cfg.PublicBaseURL)
	reconciler := services.NewReconcileService(store, gw, notifier)
	payments := controllers.NewPaymentController(intents, reconciler, notifier, store)

	router := routes.SetupRouter(payments)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
