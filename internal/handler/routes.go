package handler

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/middleware"
)

// Handlers groups every resource handler served by the API
type Handlers struct {
	User        *UserHandler
	Auth        *AuthHandler
	Category    *CategoryHandler
	Budget      *BudgetHandler
	BudgetEntry *BudgetEntryHandler
	WebSocket   *WebSocketHandler
}

// RegisterRoutes sets up all API routes. Every path is served with and without a trailing slash.
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, h Handlers) {
	e.Pre(echomiddleware.RemoveTrailingSlash())

	credentialLimit := middleware.RateLimitMiddleware(rateLimiter)

	// Registration and token routes (anonymous, rate limited)
	e.POST("/user", h.User.Register, credentialLimit)
	auth := e.Group("/auth")
	auth.POST("/token", h.Auth.ObtainToken, credentialLimit)

	// Category routes (protected)
	categories := e.Group("/category")
	categories.Use(authMiddleware.Authenticate())
	categories.GET("", h.Category.ListCategories)
	categories.POST("", h.Category.CreateCategory)
	categories.GET("/:id", h.Category.GetCategory)
	categories.PUT("/:id", h.Category.UpdateCategory)
	categories.PATCH("/:id", h.Category.UpdateCategory)
	categories.DELETE("/:id", h.Category.DeleteCategory)

	// Budget routes; retrieve is open, the rest require a user
	budgets := e.Group("/budget")
	budgets.Use(authMiddleware.OptionalAuthenticate())
	budgets.GET("", h.Budget.ListBudgets)
	budgets.POST("", h.Budget.CreateBudget)
	budgets.GET("/:id", h.Budget.GetBudget)
	budgets.PUT("/:id", h.Budget.UpdateBudget)
	budgets.PATCH("/:id", h.Budget.UpdateBudget)
	budgets.DELETE("/:id", h.Budget.DeleteBudget)

	// Budget entry routes (protected, no list)
	entries := e.Group("/budget_entries")
	entries.Use(authMiddleware.Authenticate())
	entries.POST("", h.BudgetEntry.CreateEntry)
	entries.GET("/:id", h.BudgetEntry.GetEntry)
	entries.PUT("/:id", h.BudgetEntry.UpdateEntry)
	entries.PATCH("/:id", h.BudgetEntry.UpdateEntry)
	entries.DELETE("/:id", h.BudgetEntry.DeleteEntry)

	// Change events
	if h.WebSocket != nil {
		e.GET("/ws", h.WebSocket.HandleWS)
	}
}
