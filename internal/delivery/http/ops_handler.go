package http

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"finchbot/internal/domain"
)

// Pinger is the subset of the database pool used by the health check
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsHandler serves the read-only operational API
type OpsHandler struct {
	db         Pinger
	users      domain.UserRepository
	portfolios domain.PortfolioRepository
}

// NewOpsHandler creates a new OpsHandler
func NewOpsHandler(db Pinger, users domain.UserRepository, portfolios domain.PortfolioRepository) *OpsHandler {
	return &OpsHandler{
		db:         db,
		users:      users,
		portfolios: portfolios,
	}
}

// Health reports service and database status
func (h *OpsHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := h.db.Ping(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	return SuccessResponse(c, map[string]interface{}{
		"status":    "healthy",
		"service":   "finchbot",
		"database":  dbStatus,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Stats reports how many users have registered and how many portfolios exist
func (h *OpsHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	userCount, err := h.users.Count(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "failed to count users", err)
	}

	portfolioCount, err := h.portfolios.Count(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "failed to count portfolios", err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"users":      userCount,
		"portfolios": portfolioCount,
	})
}

// UserPortfolio returns the latest portfolio generated for a user
func (h *OpsHandler) UserPortfolio(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return BadRequestResponse(c, "invalid user id")
	}

	record, found, err := h.portfolios.GetByUserID(c.Request().Context(), id)
	if err != nil {
		return InternalServerErrorResponse(c, "failed to load portfolio", err)
	}
	if !found {
		return NotFoundResponse(c, "no portfolio for this user")
	}

	return SuccessResponse(c, record)
}
