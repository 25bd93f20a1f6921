package model

import "github.com/smblend/credit-service/internal/domain/valueobject"

// Decision is the terminal output of the pipeline. Conditions are populated
// only for conditional approvals; decline reasons only for declines.
type Decision struct {
	UnderwritingScore int                        `json:"underwriting_score"`
	Recommendation    valueobject.Recommendation `json:"recommendation"`
	Conditions        []string                   `json:"conditions,omitempty"`
	DeclineReasons    []string                   `json:"decline_reasons,omitempty"`
}
