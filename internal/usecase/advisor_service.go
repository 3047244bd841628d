package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"finchbot/internal/domain"
)

// AdvisorService routes inbound events to the dialogue that owns them and
// serializes handling per chat: the transport may deliver events for
// distinct users concurrently, but each user's events run one at a time.
type AdvisorService struct {
	onboarding *OnboardingService
	risk       *RiskService
	portfolio  *PortfolioService
	log        zerolog.Logger

	mu        sync.Mutex
	chatLocks map[int64]*sync.Mutex
}

// NewAdvisorService creates a new AdvisorService
func NewAdvisorService(
	onboarding *OnboardingService,
	risk *RiskService,
	portfolio *PortfolioService,
	log zerolog.Logger,
) *AdvisorService {
	return &AdvisorService{
		onboarding: onboarding,
		risk:       risk,
		portfolio:  portfolio,
		log:        log.With().Str("component", "advisor").Logger(),
		chatLocks:  make(map[int64]*sync.Mutex),
	}
}

func (s *AdvisorService) lockFor(chatID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.chatLocks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		s.chatLocks[chatID] = lock
	}
	return lock
}

// HandleEvent dispatches a single inbound event to completion.
func (s *AdvisorService) HandleEvent(ctx context.Context, event domain.Event) {
	lock := s.lockFor(event.ChatID)
	lock.Lock()
	defer lock.Unlock()

	var err error
	switch event.Kind {
	case domain.EventCommand:
		switch event.Command {
		case "start":
			err = s.onboarding.Start(ctx, event.ChatID, event.Name)
		case "risk_profile":
			err = s.risk.Start(ctx, event.ChatID)
		case "portfolio":
			err = s.portfolio.Handle(ctx, event.ChatID)
		default:
			s.log.Debug().Str("command", event.Command).Int64("chat_id", event.ChatID).Msg("Ignoring unknown command")
			return
		}

	case domain.EventOptionSelected:
		switch event.Category {
		case domain.CategoryHorizon:
			err = s.onboarding.HandleHorizon(ctx, event)
		case domain.CategoryGoal:
			err = s.onboarding.HandleGoal(ctx, event)
		case domain.CategoryAnswer:
			err = s.risk.HandleAnswer(ctx, event)
		}
	}

	if err != nil {
		s.log.Error().Err(err).
			Int64("chat_id", event.ChatID).
			Str("kind", string(event.Kind)).
			Msg("Event handling failed")
	}
}
