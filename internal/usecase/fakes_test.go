package usecase

import (
	"context"

	"finchbot/internal/domain"
)

// fakeUserRepo is an in-memory UserRepository recording writes.
type fakeUserRepo struct {
	users        map[int64]*domain.User
	horizonCalls []domain.Horizon
	goalCalls    []int
	riskCalls    []domain.RiskTier
	err          error // returned by every method when set
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[user.ID]; !ok {
		u := *user
		r.users[user.ID] = &u
	}
	return nil
}

func (r *fakeUserRepo) Exists(_ context.Context, id int64) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, bool, error) {
	if r.err != nil {
		return nil, false, r.err
	}
	user, ok := r.users[id]
	return user, ok, nil
}

func (r *fakeUserRepo) SetHorizon(_ context.Context, id int64, horizon domain.Horizon) error {
	if r.err != nil {
		return r.err
	}
	r.horizonCalls = append(r.horizonCalls, horizon)
	if user, ok := r.users[id]; ok {
		user.Horizon = &horizon
	}
	return nil
}

func (r *fakeUserRepo) SetGoal(_ context.Context, id int64, goal int) error {
	if r.err != nil {
		return r.err
	}
	r.goalCalls = append(r.goalCalls, goal)
	if user, ok := r.users[id]; ok {
		user.Goal = &goal
	}
	return nil
}

func (r *fakeUserRepo) SetRiskProfile(_ context.Context, id int64, tier domain.RiskTier) error {
	if r.err != nil {
		return r.err
	}
	r.riskCalls = append(r.riskCalls, tier)
	if user, ok := r.users[id]; ok {
		user.RiskProfile = &tier
	}
	return nil
}

func (r *fakeUserRepo) GetGoal(_ context.Context, id int64) (int, bool, error) {
	if r.err != nil {
		return 0, false, r.err
	}
	user, ok := r.users[id]
	if !ok || user.Goal == nil {
		return 0, false, nil
	}
	return *user.Goal, true, nil
}

func (r *fakeUserRepo) GetRiskProfile(_ context.Context, id int64) (domain.RiskTier, bool, error) {
	if r.err != nil {
		return "", false, r.err
	}
	user, ok := r.users[id]
	if !ok || user.RiskProfile == nil {
		return "", false, nil
	}
	return *user.RiskProfile, true, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), r.err
}

// fakePortfolioRepo records saved portfolios.
type fakePortfolioRepo struct {
	saved []*domain.PortfolioRecord
	err   error
}

func (r *fakePortfolioRepo) Save(_ context.Context, record *domain.PortfolioRecord) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, record)
	return nil
}

func (r *fakePortfolioRepo) GetByUserID(_ context.Context, userID int64) (*domain.PortfolioRecord, bool, error) {
	if r.err != nil {
		return nil, false, r.err
	}
	for i := len(r.saved) - 1; i >= 0; i-- {
		if r.saved[i].UserID == userID {
			return r.saved[i], true, nil
		}
	}
	return nil, false, nil
}

func (r *fakePortfolioRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.saved)), r.err
}

// fakeMarket serves canned index values and counts lookups.
type fakeMarket struct {
	values map[string]float64
	calls  int
}

func (m *fakeMarket) GetIndexValue(_ context.Context, code string) (float64, bool) {
	m.calls++
	value, ok := m.values[code]
	return value, ok
}

// sentMessage captures an outbound message.
type sentMessage struct {
	chatID  int64
	text    string
	choices []domain.Choice
}

// fakeMessenger records everything sent through it.
type fakeMessenger struct {
	sent      []sentMessage
	edited    []sentMessage
	callbacks []string // callback notification texts, "" for plain acks
}

func (m *fakeMessenger) SendMessage(_ context.Context, chatID int64, text string, choices ...domain.Choice) error {
	m.sent = append(m.sent, sentMessage{chatID: chatID, text: text, choices: choices})
	return nil
}

func (m *fakeMessenger) EditLastMessage(_ context.Context, chatID int64, text string, choices ...domain.Choice) error {
	m.edited = append(m.edited, sentMessage{chatID: chatID, text: text, choices: choices})
	return nil
}

func (m *fakeMessenger) AnswerCallback(_ context.Context, _ string, text string) error {
	m.callbacks = append(m.callbacks, text)
	return nil
}

func (m *fakeMessenger) lastSent() sentMessage {
	return m.sent[len(m.sent)-1]
}

func (m *fakeMessenger) lastEdited() sentMessage {
	return m.edited[len(m.edited)-1]
}
