package service

import (
	"math"

	"github.com/smblend/credit-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// ScoringEngine – third pipeline stage, composite underwriting score
// ---------------------------------------------------------------------------

// DSCRTier maps a minimum DSCR to the points it earns. Tiers are evaluated
// in order; the first matching (highest) tier wins.
type DSCRTier struct {
	Min    float64
	Points float64
}

// ScoreConfig holds the component weights of the composite score. The four
// components sum to at most 100 with the default weights.
type ScoreConfig struct {
	LowRiskPoints      float64
	ModerateRiskPoints float64
	HighRiskPoints     float64
	DSCRTiers          []DSCRTier
	StabilityWeight    float64
	VolatilityWeight   float64
}

// DefaultScoreConfig returns the production 40/30/20/10 weighting.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		LowRiskPoints:      40,
		ModerateRiskPoints: 25,
		HighRiskPoints:     10,
		DSCRTiers: []DSCRTier{
			{Min: 1.75, Points: 30},
			{Min: 1.50, Points: 25},
			{Min: 1.25, Points: 20},
			{Min: 1.00, Points: 10},
		},
		StabilityWeight:  20,
		VolatilityWeight: 10,
	}
}

// ScoringEngine combines risk level, DSCR tier, stability, and volatility
// into a single bounded score.
type ScoringEngine struct {
	cfg ScoreConfig
}

// NewScoringEngine returns an engine bound to the given configuration.
func NewScoringEngine(cfg ScoreConfig) *ScoringEngine {
	return &ScoringEngine{cfg: cfg}
}

// Score computes the composite underwriting score, clamped to [0,100] and
// rounded to the nearest integer.
func (e *ScoringEngine) Score(
	riskLevel valueobject.RiskLevel,
	dscr float64,
	stabilityScore int,
	revenueVolatility float64,
) int {
	total := e.riskComponent(riskLevel) +
		e.dscrComponent(dscr) +
		float64(stabilityScore)/100*e.cfg.StabilityWeight +
		(1-math.Min(revenueVolatility, 1.0))*e.cfg.VolatilityWeight

	return int(math.Round(math.Max(0, math.Min(100, total))))
}

func (e *ScoringEngine) riskComponent(level valueobject.RiskLevel) float64 {
	switch level {
	case valueobject.RiskLevelLow:
		return e.cfg.LowRiskPoints
	case valueobject.RiskLevelModerate:
		return e.cfg.ModerateRiskPoints
	default:
		return e.cfg.HighRiskPoints
	}
}

func (e *ScoringEngine) dscrComponent(dscr float64) float64 {
	for _, tier := range e.cfg.DSCRTiers {
		if dscr >= tier.Min {
			return tier.Points
		}
	}
	return 0
}
