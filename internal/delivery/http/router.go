package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, ops *OpsHandler) {
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Health polling is noise.
			return c.Request().URL.Path == "/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/health", ops.Health)

	api := e.Group("/api")
	{
		api.GET("/stats", ops.Stats)
		api.GET("/users/:id/portfolio", ops.UserPortfolio)
	}
}
