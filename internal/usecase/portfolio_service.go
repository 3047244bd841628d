package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"finchbot/internal/domain"
)

// indexCodes maps each asset class to the MOEX index used as its live
// annualized return estimate.
var indexCodes = map[domain.AssetClass]string{
	domain.AssetEquities: "IMOEX",
	domain.AssetBonds:    "RGBI",
	domain.AssetGold:     "RUGOLD",
}

// PortfolioService builds and persists the user's portfolio once both the
// investment goal and the risk profile are known.
type PortfolioService struct {
	users           domain.UserRepository
	portfolios      domain.PortfolioRepository
	market          domain.MarketDataService
	messenger       domain.Messenger
	autoRebalance   bool
	updateFrequency string
	log             zerolog.Logger
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(
	users domain.UserRepository,
	portfolios domain.PortfolioRepository,
	market domain.MarketDataService,
	messenger domain.Messenger,
	autoRebalance bool,
	updateFrequency string,
	log zerolog.Logger,
) *PortfolioService {
	return &PortfolioService{
		users:           users,
		portfolios:      portfolios,
		market:          market,
		messenger:       messenger,
		autoRebalance:   autoRebalance,
		updateFrequency: updateFrequency,
		log:             log.With().Str("component", "portfolio").Logger(),
	}
}

// Handle processes the /portfolio command.
func (s *PortfolioService) Handle(ctx context.Context, chatID int64) error {
	_, goalSet, err := s.users.GetGoal(ctx, chatID)
	if err != nil {
		s.sendApology(ctx, chatID)
		return fmt.Errorf("failed to read goal: %w", err)
	}

	tier, riskSet, err := s.users.GetRiskProfile(ctx, chatID)
	if err != nil {
		s.sendApology(ctx, chatID)
		return fmt.Errorf("failed to read risk profile: %w", err)
	}

	if !goalSet || !riskSet {
		return s.messenger.SendMessage(ctx, chatID, missingStepsText(goalSet, riskSet))
	}

	weights := domain.SelectPortfolio(tier)

	returns := make(map[domain.AssetClass]float64, len(indexCodes))
	for asset, code := range indexCodes {
		if value, ok := s.market.GetIndexValue(ctx, code); ok {
			returns[asset] = value
		} else {
			s.log.Debug().Str("index", code).Msg("Index value unavailable, using default return")
		}
	}

	expectedReturn := domain.ExpectedReturn(weights, returns)

	record := &domain.PortfolioRecord{
		ID:             uuid.New(),
		UserID:         chatID,
		Weights:        weights,
		ExpectedReturn: expectedReturn,
		CreatedAt:      time.Now(),
	}
	if err := s.portfolios.Save(ctx, record); err != nil {
		s.sendApology(ctx, chatID)
		return fmt.Errorf("failed to save portfolio: %w", err)
	}

	s.log.Info().
		Int64("chat_id", chatID).
		Str("tier", string(tier)).
		Float64("expected_return", expectedReturn).
		Msg("Portfolio generated")

	return s.messenger.SendMessage(ctx, chatID, s.formatResult(weights, expectedReturn))
}

// missingStepsText tells the user exactly which prerequisite steps remain.
func missingStepsText(goalSet, riskSet bool) string {
	steps := make([]string, 0, 2)
	if !goalSet {
		steps = append(steps, "set your goal (/start)")
	}
	if !riskSet {
		steps = append(steps, "take the risk assessment (/risk_profile)")
	}

	return fmt.Sprintf("To build a portfolio, first %s.", strings.Join(steps, " and "))
}

func (s *PortfolioService) formatResult(weights domain.Portfolio, expectedReturn float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "✅ Your investment portfolio is ready:\n\n%s\n\n", domain.FormatPortfolio(weights))
	fmt.Fprintf(&b, "📈 Expected return (based on live market data): %.2f%% per year\n", expectedReturn)

	// Advisory text only; no rebalancing or scheduled updates are performed.
	if s.autoRebalance {
		b.WriteString("\n🔄 Auto-rebalancing: if the asset mix drifts, we'll tell you how to restore it.")
	}
	fmt.Fprintf(&b, "\n📅 Portfolio updates (%s): we adapt the portfolio to current market conditions.", s.updateFrequency)

	return b.String()
}

func (s *PortfolioService) sendApology(ctx context.Context, chatID int64) {
	if err := s.messenger.SendMessage(ctx, chatID, apologyText); err != nil {
		s.log.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to send apology")
	}
}
