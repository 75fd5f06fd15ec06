package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/solemart/storefront/controllers"
	"github.com/solemart/storefront/middleware"
)

// initAdminRoutes initializes all admin-only routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/products", controllers.CreateProduct)
		admin.PUT("/products/:id", controllers.UpdateProduct)

		admin.GET("/orders", controllers.AdminListOrders)
		admin.PUT("/orders/:id/status", controllers.AdminUpdateOrderStatus)

		admin.GET("/reports/sales/export", controllers.DownloadSalesReportExcel)
	}
}
