package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/solemart/storefront/controllers"
	"github.com/solemart/storefront/middleware"
)

// initUserRoutes initializes storefront and payment pipeline routes
func initUserRoutes(router *gin.RouterGroup, payments *controllers.PaymentController) {
	// Auth
	router.POST("/register", controllers.RegisterUser)
	router.POST("/login", controllers.LoginUser)

	// Catalog
	router.GET("/products", controllers.ListProducts)
	router.GET("/products/:id", controllers.GetProduct)
	router.GET("/categories", controllers.ListCategories)

	// Checkout. Guests and registered customers share these routes;
	// a bearer token attaches the order to the account when present.
	checkout := router.Group("")
	checkout.Use(middleware.OptionalAuthMiddleware())
	{
		checkout.POST("/orders", controllers.CreateOrder)
		checkout.GET("/orders/:id", controllers.GetOrder)
		checkout.GET("/orders/:id/invoice", controllers.DownloadInvoice)
		checkout.POST("/create-payment", payments.CreatePayment)
	}

	// Gateway callbacks carry no credentials.
	router.POST("/payment-webhook", payments.PaymentWebhook)
	router.POST("/order-notifications", payments.OrderNotifications)

	// Account area
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/orders", controllers.ListMyOrders)
	}
}
