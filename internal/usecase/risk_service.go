package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"finchbot/internal/domain"
	"finchbot/internal/session"
)

// apologyText is the generic user-facing message for persistence failures.
// Collaborator error detail is never shown to the user.
const apologyText = "😔 Something went wrong on our side. Please try again a bit later."

var answerBadges = [3]string{"1️⃣", "2️⃣", "3️⃣"}

// RiskService drives the four-question risk questionnaire and classifies the
// user's risk tier from the accumulated score.
type RiskService struct {
	users     domain.UserRepository
	messenger domain.Messenger
	sessions  *session.Store
	log       zerolog.Logger
}

// NewRiskService creates a new RiskService
func NewRiskService(users domain.UserRepository, messenger domain.Messenger, sessions *session.Store, log zerolog.Logger) *RiskService {
	return &RiskService{
		users:     users,
		messenger: messenger,
		sessions:  sessions,
		log:       log.With().Str("component", "risk_assessment").Logger(),
	}
}

// Start handles the /risk_profile command: resets the session and asks the
// first question.
func (s *RiskService) Start(ctx context.Context, chatID int64) error {
	s.sessions.Begin(chatID)

	intro := "📝 Let's figure out your risk profile. I'll ask you 4 questions — pick an answer for each."
	if err := s.messenger.SendMessage(ctx, chatID, intro); err != nil {
		return fmt.Errorf("failed to send questionnaire intro: %w", err)
	}

	return s.askQuestion(ctx, chatID, 0)
}

// HandleAnswer processes one answer selection.
//
// A valid answer (1..3) adds its value to the score and advances to the next
// question; the fourth answer classifies the tier, persists it, and destroys
// the session. An out-of-range answer re-prompts without consuming a turn.
// An answer with no live session (stale callback, restart) is acknowledged
// and dropped.
func (s *RiskService) HandleAnswer(ctx context.Context, event domain.Event) error {
	sess, ok := s.sessions.Get(event.ChatID)
	if !ok || sess.QuestionIndex >= len(domain.RiskQuestions) {
		return s.messenger.AnswerCallback(ctx, event.CallbackID, "")
	}

	if event.Ordinal < 1 || event.Ordinal > 3 {
		return s.messenger.AnswerCallback(ctx, event.CallbackID, "Please choose one of the options")
	}

	sess.Score += event.Ordinal
	sess.QuestionIndex++

	if err := s.messenger.AnswerCallback(ctx, event.CallbackID, ""); err != nil {
		s.log.Warn().Err(err).Int64("chat_id", event.ChatID).Msg("Failed to acknowledge answer")
	}

	if sess.QuestionIndex < len(domain.RiskQuestions) {
		s.sessions.Put(event.ChatID, sess)
		return s.askQuestion(ctx, event.ChatID, sess.QuestionIndex)
	}

	return s.complete(ctx, event.ChatID, sess.Score)
}

func (s *RiskService) askQuestion(ctx context.Context, chatID int64, index int) error {
	question := domain.RiskQuestions[index]

	choices := make([]domain.Choice, 0, len(question.Options))
	for i, option := range question.Options {
		choices = append(choices, domain.Choice{
			Label: fmt.Sprintf("%s %s", answerBadges[i], option),
			Data:  fmt.Sprintf("%d", i+1),
		})
	}

	if err := s.messenger.SendMessage(ctx, chatID, question.Text, choices...); err != nil {
		return fmt.Errorf("failed to send question %d: %w", index, err)
	}

	return nil
}

func (s *RiskService) complete(ctx context.Context, chatID int64, score int) error {
	// The session is gone either way; a failed save means the user restarts
	// the questionnaire rather than resuming a half-finished one.
	s.sessions.Delete(chatID)

	tier := domain.ClassifyRisk(score)
	if err := s.users.SetRiskProfile(ctx, chatID, tier); err != nil {
		s.sendApology(ctx, chatID)
		return fmt.Errorf("failed to save risk profile: %w", err)
	}

	s.log.Info().
		Int64("chat_id", chatID).
		Int("score", score).
		Str("tier", string(tier)).
		Msg("Risk assessment completed")

	text := fmt.Sprintf(
		"🎯 Analysis complete!\n\nYour risk profile:\n%s\n\n✨ Now you can move on to building your portfolio! Just send /portfolio",
		tier.Display(),
	)
	if err := s.messenger.SendMessage(ctx, chatID, text); err != nil {
		return fmt.Errorf("failed to send assessment result: %w", err)
	}

	return nil
}

func (s *RiskService) sendApology(ctx context.Context, chatID int64) {
	if err := s.messenger.SendMessage(ctx, chatID, apologyText); err != nil {
		s.log.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to send apology")
	}
}
