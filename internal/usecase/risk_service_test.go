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

func newRisk() (*RiskService, *fakeUserRepo, *fakeMessenger, *session.Store) {
	users := newFakeUserRepo()
	messenger := &fakeMessenger{}
	sessions := session.NewStore()
	svc := NewRiskService(users, messenger, sessions, zerolog.Nop())
	return svc, users, messenger, sessions
}

func answerEvent(ordinal int) domain.Event {
	return domain.Event{
		ChatID:     testChatID,
		Kind:       domain.EventOptionSelected,
		Category:   domain.CategoryAnswer,
		Ordinal:    ordinal,
		CallbackID: "cb",
	}
}

func runQuestionnaire(t *testing.T, svc *RiskService, answers []int) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, svc.Start(ctx, testChatID))
	for _, answer := range answers {
		require.NoError(t, svc.HandleAnswer(ctx, answerEvent(answer)))
	}
}

func TestStartAsksFirstQuestion(t *testing.T) {
	svc, _, messenger, sessions := newRisk()

	require.NoError(t, svc.Start(context.Background(), testChatID))

	require.Len(t, messenger.sent, 2) // intro + first question
	question := messenger.lastSent()
	assert.Equal(t, domain.RiskQuestions[0].Text, question.text)
	require.Len(t, question.choices, 3)
	assert.Equal(t, "1", question.choices[0].Data)
	assert.Contains(t, question.choices[0].Label, domain.RiskQuestions[0].Options[0])

	sess, ok := sessions.Get(testChatID)
	require.True(t, ok)
	assert.Equal(t, 0, sess.Score)
	assert.Equal(t, 0, sess.QuestionIndex)
}

func TestQuestionnaireClassifiesTier(t *testing.T) {
	tests := []struct {
		name    string
		answers []int
		want    domain.RiskTier
	}{
		{"all minimum", []int{1, 1, 1, 1}, domain.TierConservative},
		{"mixed moderate", []int{1, 2, 2, 3}, domain.TierModerate},
		{"all maximum", []int{3, 3, 3, 3}, domain.TierAggressive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, messenger, sessions := newRisk()

			runQuestionnaire(t, svc, tt.answers)

			// Exactly one risk-profile write, session destroyed.
			assert.Equal(t, []domain.RiskTier{tt.want}, users.riskCalls)
			_, ok := sessions.Get(testChatID)
			assert.False(t, ok)
			assert.Contains(t, messenger.lastSent().text, tt.want.Display())
		})
	}
}

func TestFewerThanFourAnswersPersistsNothing(t *testing.T) {
	svc, users, _, sessions := newRisk()

	runQuestionnaire(t, svc, []int{2, 3, 1})

	assert.Empty(t, users.riskCalls)

	sess, ok := sessions.Get(testChatID)
	require.True(t, ok)
	assert.Equal(t, 3, sess.QuestionIndex)
	assert.Equal(t, 6, sess.Score)
}

func TestMalformedAnswerDoesNotConsumeTurn(t *testing.T) {
	svc, users, messenger, sessions := newRisk()
	ctx := context.Background()

	require.NoError(t, svc.Start(ctx, testChatID))
	require.NoError(t, svc.HandleAnswer(ctx, answerEvent(2)))

	questionsAsked := len(messenger.sent)

	require.NoError(t, svc.HandleAnswer(ctx, answerEvent(9)))
	require.NoError(t, svc.HandleAnswer(ctx, answerEvent(0)))

	sess, ok := sessions.Get(testChatID)
	require.True(t, ok)
	assert.Equal(t, 1, sess.QuestionIndex)
	assert.Equal(t, 2, sess.Score)
	assert.Len(t, messenger.sent, questionsAsked) // no new question sent
	assert.Contains(t, messenger.callbacks, "Please choose one of the options")
	assert.Empty(t, users.riskCalls)
}

func TestAnswerWithoutSessionIsNoOp(t *testing.T) {
	svc, users, messenger, _ := newRisk()

	require.NoError(t, svc.HandleAnswer(context.Background(), answerEvent(2)))

	assert.Empty(t, users.riskCalls)
	assert.Empty(t, messenger.sent)
	assert.Len(t, messenger.callbacks, 1) // acknowledged, nothing else
}

func TestRestartResetsScore(t *testing.T) {
	svc, _, _, sessions := newRisk()
	ctx := context.Background()

	runQuestionnaire(t, svc, []int{3, 3})
	require.NoError(t, svc.Start(ctx, testChatID))

	sess, ok := sessions.Get(testChatID)
	require.True(t, ok)
	assert.Equal(t, 0, sess.Score)
	assert.Equal(t, 0, sess.QuestionIndex)
}

func TestPersistFailureOnCompletion(t *testing.T) {
	svc, users, messenger, sessions := newRisk()
	ctx := context.Background()

	require.NoError(t, svc.Start(ctx, testChatID))
	for _, answer := range []int{1, 1, 1} {
		require.NoError(t, svc.HandleAnswer(ctx, answerEvent(answer)))
	}

	users.err = assert.AnError
	err := svc.HandleAnswer(ctx, answerEvent(1))
	require.Error(t, err)

	assert.Equal(t, apologyText, messenger.lastSent().text)
	_, ok := sessions.Get(testChatID)
	assert.False(t, ok, "failed completion must not leave a session behind")
}
