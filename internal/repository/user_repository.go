package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"finchbot/internal/domain"
)

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create registers a new user. Re-registering an existing user is a no-op.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, user.ID, user.Name)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Exists reports whether a user is registered
func (r *UserRepositoryImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

// GetByID retrieves a user by chat id
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id int64) (*domain.User, bool, error) {
	query := `
		SELECT user_id, name, horizon, goal, risk_profile, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`

	user := &domain.User{}
	var horizon *int16
	var riskProfile *string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&horizon,
		&user.Goal,
		&riskProfile,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get user by ID: %w", err)
	}

	if horizon != nil {
		h := domain.Horizon(*horizon)
		user.Horizon = &h
	}
	if riskProfile != nil {
		tier := domain.RiskTier(*riskProfile)
		user.RiskProfile = &tier
	}

	return user, true, nil
}

// SetHorizon stores the user's investment horizon
func (r *UserRepositoryImpl) SetHorizon(ctx context.Context, id int64, horizon domain.Horizon) error {
	query := `UPDATE users SET horizon = $1, updated_at = NOW() WHERE user_id = $2`

	_, err := r.db.Exec(ctx, query, int16(horizon), id)
	if err != nil {
		return fmt.Errorf("failed to set horizon: %w", err)
	}

	return nil
}

// SetGoal stores the user's investment goal ordinal
func (r *UserRepositoryImpl) SetGoal(ctx context.Context, id int64, goal int) error {
	query := `UPDATE users SET goal = $1, updated_at = NOW() WHERE user_id = $2`

	_, err := r.db.Exec(ctx, query, goal, id)
	if err != nil {
		return fmt.Errorf("failed to set goal: %w", err)
	}

	return nil
}

// SetRiskProfile stores the user's risk tier
func (r *UserRepositoryImpl) SetRiskProfile(ctx context.Context, id int64, tier domain.RiskTier) error {
	query := `UPDATE users SET risk_profile = $1, updated_at = NOW() WHERE user_id = $2`

	_, err := r.db.Exec(ctx, query, string(tier), id)
	if err != nil {
		return fmt.Errorf("failed to set risk profile: %w", err)
	}

	return nil
}

// GetGoal retrieves the user's goal ordinal
func (r *UserRepositoryImpl) GetGoal(ctx context.Context, id int64) (int, bool, error) {
	var goal *int
	err := r.db.QueryRow(ctx, `SELECT goal FROM users WHERE user_id = $1`, id).Scan(&goal)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get goal: %w", err)
	}
	if goal == nil {
		return 0, false, nil
	}

	return *goal, true, nil
}

// GetRiskProfile retrieves the user's risk tier
func (r *UserRepositoryImpl) GetRiskProfile(ctx context.Context, id int64) (domain.RiskTier, bool, error) {
	var profile *string
	err := r.db.QueryRow(ctx, `SELECT risk_profile FROM users WHERE user_id = $1`, id).Scan(&profile)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get risk profile: %w", err)
	}
	if profile == nil {
		return "", false, nil
	}

	return domain.RiskTier(*profile), true, nil
}

// Count returns the number of registered users
func (r *UserRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}
