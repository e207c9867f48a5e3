// routes/payout_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/dracohq/seller_backend/controllers"
	"github.com/dracohq/seller_backend/middleware"
	"github.com/dracohq/seller_backend/models"
)

// RegisterPayoutRoutes registers payout lifecycle routes. Transition and
// delete endpoints are admin-only; sellers can raise requests and view
// their own history.
func RegisterPayoutRoutes(e *echo.Echo, payoutController *controllers.PayoutController) {
	payouts := e.Group("/api/v1/payouts")
	payouts.Use(middleware.JWTMiddleware())

	payouts.POST("", payoutController.CreatePayout)
	payouts.GET("/:payoutId", payoutController.GetPayout)
	payouts.GET("/seller/:sellerId", payoutController.ListSellerPayouts)
	payouts.PUT("/:payoutId", payoutController.UpdatePayout)

	admin := payouts.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.GET("", payoutController.ListPayouts)
	admin.POST("/:payoutId/approve", payoutController.ApprovePayout)
	admin.POST("/:payoutId/reject", payoutController.RejectPayout)
	admin.POST("/:payoutId/paid", payoutController.MarkPayoutPaid)
	admin.DELETE("/:payoutId", payoutController.DeletePayout)
}
