// routes/seller_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/dracohq/seller_backend/controllers"
	"github.com/dracohq/seller_backend/middleware"
	"github.com/dracohq/seller_backend/models"
)

// RegisterSellerRoutes registers seller registry and referral routes
func RegisterSellerRoutes(e *echo.Echo, sellerController *controllers.SellerController) {
	sellers := e.Group("/api/v1/sellers")

	// Registration is public; everything else requires a token
	sellers.POST("/register", sellerController.Register)

	authed := sellers.Group("")
	authed.Use(middleware.JWTMiddleware())

	authed.GET("", sellerController.ListSellers)
	authed.GET("/:sellerId", sellerController.GetSeller)
	authed.GET("/email/:email", sellerController.GetSellerByEmail)
	authed.PUT("/:sellerId", sellerController.UpdateSeller)
	authed.GET("/:sellerId/referrals", sellerController.GetReferralInfo)
	authed.GET("/:sellerId/referrals/qrcode", sellerController.GetReferralQRCode)
	authed.POST("/:sellerId/customers/:customerId", sellerController.AddCustomer)

	admin := sellers.Group("/admin")
	admin.Use(middleware.JWTMiddleware(), middleware.RequireRole(models.RoleAdmin))
	admin.POST("/referrals/reconcile", sellerController.ReconcileReferralTotals)
}
