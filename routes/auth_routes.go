// routes/auth_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/dracohq/seller_backend/controllers"
)

// RegisterAuthRoutes registers authentication routes
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	auth := e.Group("/api/v1/auth")
	auth.POST("/login", authController.Login)
}
