package usecase

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finchbot/internal/domain"
	"finchbot/internal/session"
)

func newAdvisor() (*AdvisorService, *fakeUserRepo, *fakePortfolioRepo, *fakeMessenger) {
	users := newFakeUserRepo()
	portfolios := &fakePortfolioRepo{}
	messenger := &fakeMessenger{}
	sessions := session.NewStore()
	market := &fakeMarket{}

	onboarding := NewOnboardingService(users, messenger, zerolog.Nop())
	risk := NewRiskService(users, messenger, sessions, zerolog.Nop())
	portfolio := NewPortfolioService(users, portfolios, market, messenger, true, "quarterly", zerolog.Nop())

	return NewAdvisorService(onboarding, risk, portfolio, zerolog.Nop()), users, portfolios, messenger
}

func TestHandleEventRoutesCommands(t *testing.T) {
	advisor, users, _, messenger := newAdvisor()
	ctx := context.Background()

	advisor.HandleEvent(ctx, domain.Event{
		ChatID: testChatID, Kind: domain.EventCommand, Command: "start", Name: "Alice",
	})
	_, registered := users.users[testChatID]
	assert.True(t, registered)

	advisor.HandleEvent(ctx, domain.Event{
		ChatID: testChatID, Kind: domain.EventCommand, Command: "risk_profile",
	})
	assert.Equal(t, domain.RiskQuestions[0].Text, messenger.lastSent().text)
}

func TestHandleEventIgnoresUnknownCommand(t *testing.T) {
	advisor, _, _, messenger := newAdvisor()

	advisor.HandleEvent(context.Background(), domain.Event{
		ChatID: testChatID, Kind: domain.EventCommand, Command: "weather",
	})

	assert.Empty(t, messenger.sent)
}

func TestEndToEndFlow(t *testing.T) {
	advisor, users, portfolios, messenger := newAdvisor()
	ctx := context.Background()

	// Onboard: register, pick medium horizon, pick second goal.
	advisor.HandleEvent(ctx, domain.Event{ChatID: testChatID, Kind: domain.EventCommand, Command: "start", Name: "Alice"})
	advisor.HandleEvent(ctx, horizonEvent(2))
	advisor.HandleEvent(ctx, goalEvent(2))

	// Assess risk: answers 1+2+2+3 = 8 → moderate.
	advisor.HandleEvent(ctx, domain.Event{ChatID: testChatID, Kind: domain.EventCommand, Command: "risk_profile"})
	for _, answer := range []int{1, 2, 2, 3} {
		advisor.HandleEvent(ctx, answerEvent(answer))
	}
	require.Equal(t, []domain.RiskTier{domain.TierModerate}, users.riskCalls)

	// Build the portfolio; live data unavailable → defaults give 7.2%.
	advisor.HandleEvent(ctx, domain.Event{ChatID: testChatID, Kind: domain.EventCommand, Command: "portfolio"})

	require.Len(t, portfolios.saved, 1)
	record := portfolios.saved[0]
	assert.Equal(t, domain.Portfolio{
		domain.AssetBonds:    50,
		domain.AssetEquities: 40,
		domain.AssetGold:     10,
	}, record.Weights)
	assert.InDelta(t, 7.2, record.ExpectedReturn, 1e-9)
	assert.Contains(t, messenger.lastSent().text, "7.20%")
}

func TestPortfolioBeforeAssessmentRejected(t *testing.T) {
	advisor, _, portfolios, messenger := newAdvisor()
	ctx := context.Background()

	advisor.HandleEvent(ctx, domain.Event{ChatID: testChatID, Kind: domain.EventCommand, Command: "start", Name: "Alice"})
	advisor.HandleEvent(ctx, domain.Event{ChatID: testChatID, Kind: domain.EventCommand, Command: "portfolio"})

	assert.Empty(t, portfolios.saved)
	assert.Contains(t, messenger.lastSent().text, "To build a portfolio")
}
