// routes/webhook_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/dracohq/seller_backend/controllers"
)

// RegisterWebhookRoutes registers the partner-facing webhook endpoints.
// Partner systems resolve sellers by referral code and report rewards;
// both GET and POST are accepted on the lookup for webhook compatibility.
func RegisterWebhookRoutes(e *echo.Echo, webhookController *controllers.WebhookController) {
	webhook := e.Group("/api/v1/webhook")

	webhook.GET("/seller/:uniqueCode", webhookController.GetSellerByCode)
	webhook.POST("/seller/:uniqueCode", webhookController.GetSellerByCode)
	webhook.POST("/rewards/create", webhookController.CreateReward)
	webhook.GET("/rewards/seller/:sellerUniqueCode/total", webhookController.GetTotalEarned)
}
