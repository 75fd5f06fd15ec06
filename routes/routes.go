package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/solemart/storefront/controllers"
	"github.com/solemart/storefront/utils"
)

// SetupRouter initializes and returns the Gin router with all routes.
// Global middleware is installed before any route so the CORS preflight
// handling covers every endpoint, including the payment pipeline.
func SetupRouter(payments *controllers.PaymentController) *gin.Engine {
	router := gin.New()

	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	api := router.Group("/v1")
	{
		initUserRoutes(api, payments)
		initAdminRoutes(api)
	}

	return router
}
