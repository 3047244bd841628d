package domain

import "time"

// User represents a bot user. The ID is the Telegram chat id.
type User struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Horizon     *Horizon  `json:"horizon,omitempty"`
	Goal        *int      `json:"goal,omitempty"`
	RiskProfile *RiskTier `json:"risk_profile,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Horizon is the investment time horizon chosen during onboarding (1..3).
type Horizon int

// Investment horizon tiers
const (
	HorizonShort  Horizon = 1 // 1-3 years
	HorizonMedium Horizon = 2 // 3-7 years
	HorizonLong   Horizon = 3 // 7+ years
)

// Valid reports whether h is one of the three defined tiers.
func (h Horizon) Valid() bool {
	return h >= HorizonShort && h <= HorizonLong
}

// Label returns the user-facing label for the horizon tier.
func (h Horizon) Label() string {
	switch h {
	case HorizonShort:
		return "Short-term (1-3 years)"
	case HorizonMedium:
		return "Medium-term (3-7 years)"
	case HorizonLong:
		return "Long-term (7+ years)"
	default:
		return "Unknown"
	}
}

// goalOptions maps each horizon to its own set of three investment goals.
// The sets are deliberately distinct per horizon.
var goalOptions = map[Horizon][3]string{
	HorizonShort:  {"Emergency fund", "Buying a car", "Mortgage down payment"},
	HorizonMedium: {"Buying property", "Children's education", "Replacing the car"},
	HorizonLong:   {"Financial independence", "Retirement savings", "Buying a country house"},
}

// GoalOptions returns the three goal labels offered for the given horizon.
// An unknown horizon falls back to the medium-term set.
func GoalOptions(h Horizon) [3]string {
	if opts, ok := goalOptions[h]; ok {
		return opts
	}
	return goalOptions[HorizonMedium]
}
