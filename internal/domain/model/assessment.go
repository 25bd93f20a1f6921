package model

import "github.com/smblend/credit-service/internal/domain/valueobject"

// RiskFlag is a single triggered risk rule.
type RiskFlag struct {
	Severity valueobject.Severity `json:"severity"`
	Code     valueobject.FlagCode `json:"flag"`
	Message  string               `json:"message"`
}

// RiskAssessment is the immutable output of the risk rule engine. Flags are
// ordered by rule position, so output ordering is deterministic.
type RiskAssessment struct {
	RiskLevel       valueobject.RiskLevel `json:"risk_level"`
	Flags           []RiskFlag            `json:"flags"`
	PositiveSignals []string              `json:"positive_signals"`
}

// HighFlagCount returns the number of HIGH-severity flags.
func (a RiskAssessment) HighFlagCount() int {
	return a.countBySeverity(valueobject.SeverityHigh)
}

// MediumFlagCount returns the number of MEDIUM-severity flags.
func (a RiskAssessment) MediumFlagCount() int {
	return a.countBySeverity(valueobject.SeverityMedium)
}

// HasFlag reports whether the given rule triggered.
func (a RiskAssessment) HasFlag(code valueobject.FlagCode) bool {
	for _, f := range a.Flags {
		if f.Code == code {
			return true
		}
	}
	return false
}

func (a RiskAssessment) countBySeverity(s valueobject.Severity) int {
	n := 0
	for _, f := range a.Flags {
		if f.Severity == s {
			n++
		}
	}
	return n
}
