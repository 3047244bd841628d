package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AssetClass identifies an asset class in a portfolio allocation
type AssetClass string

// Asset classes
const (
	AssetBonds    AssetClass = "BONDS"
	AssetEquities AssetClass = "EQUITIES"
	AssetGold     AssetClass = "GOLD"
)

// AssetClasses lists all asset classes in display order.
var AssetClasses = [3]AssetClass{AssetBonds, AssetEquities, AssetGold}

// Label returns the user-facing name of the asset class.
func (a AssetClass) Label() string {
	switch a {
	case AssetBonds:
		return "Bonds"
	case AssetEquities:
		return "Equities"
	case AssetGold:
		return "Gold"
	default:
		return string(a)
	}
}

// Portfolio maps asset classes to integer weights in percent.
// Weights always sum to 100.
type Portfolio map[AssetClass]int

// PortfolioRecord is a persisted portfolio with its expected annual return.
type PortfolioRecord struct {
	ID             uuid.UUID `json:"id"`
	UserID         int64     `json:"user_id"`
	Weights        Portfolio `json:"weights"`
	ExpectedReturn float64   `json:"expected_return"`
	CreatedAt      time.Time `json:"created_at"`
}

// allocations are the three fixed weight templates, never interpolated.
var allocations = map[RiskTier]Portfolio{
	TierConservative: {AssetBonds: 70, AssetEquities: 20, AssetGold: 10},
	TierModerate:     {AssetBonds: 50, AssetEquities: 40, AssetGold: 10},
	TierAggressive:   {AssetBonds: 30, AssetEquities: 50, AssetGold: 20},
}

// defaultReturns are the fallback annual returns used when live index data
// is unavailable for an asset class.
var defaultReturns = map[AssetClass]float64{
	AssetEquities: 10.0,
	AssetBonds:    5.0,
	AssetGold:     7.0,
}

// SelectPortfolio returns the fixed allocation for the given risk tier.
// An unrecognized tier falls back to the moderate allocation.
func SelectPortfolio(tier RiskTier) Portfolio {
	alloc, ok := allocations[tier]
	if !ok {
		alloc = allocations[TierModerate]
	}

	// Return a copy so callers cannot mutate the template.
	portfolio := make(Portfolio, len(alloc))
	for asset, weight := range alloc {
		portfolio[asset] = weight
	}
	return portfolio
}

// ExpectedReturn computes the weighted annual return of a portfolio.
// Assets missing from returns use the fixed defaults, so the computation
// succeeds even when every live lookup failed.
func ExpectedReturn(portfolio Portfolio, returns map[AssetClass]float64) float64 {
	total := 0.0
	for asset, weight := range portfolio {
		r, ok := returns[asset]
		if !ok {
			r = defaultReturns[asset]
		}
		total += float64(weight) / 100 * r
	}
	return total
}

// FormatPortfolio renders the allocation as one "Asset: N%" line per asset
// class, in display order.
func FormatPortfolio(portfolio Portfolio) string {
	lines := make([]string, 0, len(portfolio))
	for _, asset := range AssetClasses {
		if weight, ok := portfolio[asset]; ok {
			lines = append(lines, fmt.Sprintf("%s: %d%%", asset.Label(), weight))
		}
	}
	return strings.Join(lines, "\n")
}
