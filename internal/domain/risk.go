package domain

// RiskTier represents an investor risk profile derived from the questionnaire
type RiskTier string

// Risk tiers
const (
	TierConservative RiskTier = "CONSERVATIVE"
	TierModerate     RiskTier = "MODERATE"
	TierAggressive   RiskTier = "AGGRESSIVE"
)

// Display returns the user-facing description of the tier.
func (t RiskTier) Display() string {
	switch t {
	case TierConservative:
		return "🔵 Conservative investor\n💼 Low risk, steady income"
	case TierModerate:
		return "🟠 Moderate investor\n💼 Medium risk, balanced approach"
	case TierAggressive:
		return "🔴 Aggressive investor\n💼 High risk, maximum growth"
	default:
		return string(t)
	}
}

// RiskQuestion is a single questionnaire entry with exactly three options.
// Options are worth 1, 2 and 3 points by position.
type RiskQuestion struct {
	Text    string
	Options [3]string
}

// RiskQuestions is the fixed, ordered questionnaire.
var RiskQuestions = [4]RiskQuestion{
	{
		Text: "❓ How do you feel about losses?",
		Options: [3]string{
			"Not prepared to lose anything",
			"Fine with small drawdowns",
			"Comfortable with high risk for growth",
		},
	},
	{
		Text: "⏳ What is your investment horizon?",
		Options: [3]string{
			"1-3 years",
			"3-7 years",
			"7+ years",
		},
	},
	{
		Text: "⚖️ What matters more to you: stability or high returns?",
		Options: [3]string{
			"Stability",
			"A balance of return and risk",
			"Maximum growth",
		},
	},
	{
		Text: "📊 How much of a drawdown can you tolerate?",
		Options: [3]string{
			"Up to -5%",
			"Up to -15%",
			"-30% or more",
		},
	},
}

// ClassifyRisk maps a questionnaire score to a risk tier. Scores from a
// completed questionnaire are in [4,12]; out-of-range values clamp to the
// nearest band.
func ClassifyRisk(score int) RiskTier {
	switch {
	case score <= 7:
		return TierConservative
	case score <= 11:
		return TierModerate
	default:
		return TierAggressive
	}
}
