package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"finchbot/internal/domain"
)

// onboardingState is the explicit per-chat state of the onboarding dialogue.
// It lives only in memory; the persisted horizon/goal fields are written as
// each step completes.
type onboardingState int

const (
	stateAwaitingHorizon onboardingState = iota + 1
	stateAwaitingGoal
)

// OnboardingService drives the registration dialogue: greet, pick an
// investment horizon, pick a goal.
type OnboardingService struct {
	users     domain.UserRepository
	messenger domain.Messenger
	log       zerolog.Logger

	mu     sync.Mutex
	states map[int64]onboardingState
}

// NewOnboardingService creates a new OnboardingService
func NewOnboardingService(users domain.UserRepository, messenger domain.Messenger, log zerolog.Logger) *OnboardingService {
	return &OnboardingService{
		users:     users,
		messenger: messenger,
		log:       log.With().Str("component", "onboarding").Logger(),
		states:    make(map[int64]onboardingState),
	}
}

func (s *OnboardingService) state(chatID int64) (onboardingState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[chatID]
	return st, ok
}

func (s *OnboardingService) setState(chatID int64, st onboardingState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[chatID] = st
}

func (s *OnboardingService) clearState(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatID)
}

// Start handles the /start command: registers the user if needed and offers
// the three horizon options.
func (s *OnboardingService) Start(ctx context.Context, chatID int64, name string) error {
	exists, err := s.users.Exists(ctx, chatID)
	if err != nil {
		s.sendApology(ctx, chatID)
		return fmt.Errorf("failed to check registration: %w", err)
	}

	if !exists {
		user := &domain.User{ID: chatID, Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		if err := s.users.Create(ctx, user); err != nil {
			s.sendApology(ctx, chatID)
			return fmt.Errorf("failed to register user: %w", err)
		}
		s.log.Info().Int64("chat_id", chatID).Msg("Registered new user")
	}

	text := fmt.Sprintf(
		"👋 Hi, %s! I'm your personal robo-advisor <b>Finch</b>.\n\n"+
			"💼 I'll help you build a balanced investment portfolio and keep an eye on it. Let's get started!\n\n"+
			"⏳ First, pick your investment time horizon:",
		name,
	)

	choices := make([]domain.Choice, 0, 3)
	for h := domain.HorizonShort; h <= domain.HorizonLong; h++ {
		choices = append(choices, domain.Choice{
			Label: h.Label(),
			Data:  fmt.Sprintf("horizon_%d", h),
		})
	}

	if err := s.messenger.SendMessage(ctx, chatID, text, choices...); err != nil {
		return fmt.Errorf("failed to send horizon options: %w", err)
	}

	s.setState(chatID, stateAwaitingHorizon)
	return nil
}

// HandleHorizon handles a horizon selection and offers the goal options for
// the chosen horizon. Selections outside the awaiting-horizon state are
// acknowledged and ignored.
func (s *OnboardingService) HandleHorizon(ctx context.Context, event domain.Event) error {
	if st, ok := s.state(event.ChatID); !ok || st != stateAwaitingHorizon {
		return s.messenger.AnswerCallback(ctx, event.CallbackID, "")
	}

	horizon := domain.Horizon(event.Ordinal)
	if !horizon.Valid() {
		return s.messenger.AnswerCallback(ctx, event.CallbackID, "")
	}

	if err := s.users.SetHorizon(ctx, event.ChatID, horizon); err != nil {
		s.sendApology(ctx, event.ChatID)
		return fmt.Errorf("failed to save horizon: %w", err)
	}

	if err := s.messenger.AnswerCallback(ctx, event.CallbackID, ""); err != nil {
		s.log.Warn().Err(err).Int64("chat_id", event.ChatID).Msg("Failed to acknowledge selection")
	}

	options := domain.GoalOptions(horizon)
	choices := make([]domain.Choice, 0, len(options))
	for i, label := range options {
		choices = append(choices, domain.Choice{
			Label: label,
			Data:  fmt.Sprintf("goal_%d", i+1),
		})
	}

	if err := s.messenger.EditLastMessage(ctx, event.ChatID, "✅ Great! Now pick your goal:", choices...); err != nil {
		return fmt.Errorf("failed to send goal options: %w", err)
	}

	s.setState(event.ChatID, stateAwaitingGoal)
	return nil
}

// HandleGoal handles a goal selection and completes the dialogue.
func (s *OnboardingService) HandleGoal(ctx context.Context, event domain.Event) error {
	if st, ok := s.state(event.ChatID); !ok || st != stateAwaitingGoal {
		return s.messenger.AnswerCallback(ctx, event.CallbackID, "")
	}

	if event.Ordinal < 1 || event.Ordinal > 3 {
		return s.messenger.AnswerCallback(ctx, event.CallbackID, "")
	}

	if err := s.users.SetGoal(ctx, event.ChatID, event.Ordinal); err != nil {
		s.sendApology(ctx, event.ChatID)
		return fmt.Errorf("failed to save goal: %w", err)
	}

	if err := s.messenger.AnswerCallback(ctx, event.CallbackID, ""); err != nil {
		s.log.Warn().Err(err).Int64("chat_id", event.ChatID).Msg("Failed to acknowledge selection")
	}

	text := "🎯 Great! Now you can take the risk assessment. Just send /risk_profile"
	if err := s.messenger.EditLastMessage(ctx, event.ChatID, text); err != nil {
		return fmt.Errorf("failed to send completion message: %w", err)
	}

	s.clearState(event.ChatID)
	return nil
}

func (s *OnboardingService) sendApology(ctx context.Context, chatID int64) {
	if err := s.messenger.SendMessage(ctx, chatID, apologyText); err != nil {
		s.log.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to send apology")
	}
}
