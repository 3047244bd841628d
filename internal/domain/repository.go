package domain

import "context"

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create registers a new user; creating an existing user is a no-op
	Create(ctx context.Context, user *User) error

	// Exists reports whether a user is registered
	Exists(ctx context.Context, id int64) (bool, error)

	// GetByID retrieves a user by chat id; found is false when absent
	GetByID(ctx context.Context, id int64) (*User, bool, error)

	// SetHorizon stores the user's investment horizon
	SetHorizon(ctx context.Context, id int64, horizon Horizon) error

	// SetGoal stores the user's investment goal ordinal
	SetGoal(ctx context.Context, id int64, goal int) error

	// SetRiskProfile stores the user's risk tier
	SetRiskProfile(ctx context.Context, id int64, tier RiskTier) error

	// GetGoal retrieves the user's goal ordinal; found is false when unset
	GetGoal(ctx context.Context, id int64) (int, bool, error)

	// GetRiskProfile retrieves the user's risk tier; found is false when unset
	GetRiskProfile(ctx context.Context, id int64) (RiskTier, bool, error)

	// Count returns the number of registered users
	Count(ctx context.Context) (int64, error)
}

// PortfolioRepository defines the interface for portfolio data operations
type PortfolioRepository interface {
	// Save stores a portfolio, replacing any prior portfolio for the user
	Save(ctx context.Context, record *PortfolioRecord) error

	// GetByUserID retrieves the user's latest portfolio; found is false when absent
	GetByUserID(ctx context.Context, userID int64) (*PortfolioRecord, bool, error)

	// Count returns the number of generated portfolios
	Count(ctx context.Context) (int64, error)
}
