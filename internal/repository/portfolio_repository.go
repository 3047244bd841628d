package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"finchbot/internal/domain"
)

// PortfolioRepositoryImpl implements the PortfolioRepository interface
type PortfolioRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewPortfolioRepository creates a new PortfolioRepository
func NewPortfolioRepository(db *pgxpool.Pool) domain.PortfolioRepository {
	return &PortfolioRepositoryImpl{db: db}
}

// Save stores a portfolio, replacing any prior portfolio for the user
func (r *PortfolioRepositoryImpl) Save(ctx context.Context, record *domain.PortfolioRecord) error {
	weights, err := json.Marshal(record.Weights)
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio weights: %w", err)
	}

	query := `
		INSERT INTO portfolios (id, user_id, weights, expected_return, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET id = EXCLUDED.id,
		    weights = EXCLUDED.weights,
		    expected_return = EXCLUDED.expected_return,
		    created_at = EXCLUDED.created_at
	`

	_, err = r.db.Exec(ctx, query,
		record.ID,
		record.UserID,
		weights,
		record.ExpectedReturn,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save portfolio: %w", err)
	}

	return nil
}

// GetByUserID retrieves the user's latest portfolio
func (r *PortfolioRepositoryImpl) GetByUserID(ctx context.Context, userID int64) (*domain.PortfolioRecord, bool, error) {
	query := `
		SELECT id, user_id, weights, expected_return, created_at
		FROM portfolios
		WHERE user_id = $1
	`

	record := &domain.PortfolioRecord{}
	var weights []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&record.ID,
		&record.UserID,
		&weights,
		&record.ExpectedReturn,
		&record.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get portfolio: %w", err)
	}

	if err := json.Unmarshal(weights, &record.Weights); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal portfolio weights: %w", err)
	}

	return record, true, nil
}

// Count returns the number of generated portfolios
func (r *PortfolioRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM portfolios`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count portfolios: %w", err)
	}

	return count, nil
}
