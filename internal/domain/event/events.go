package event

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events implement.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// BaseEvent provides a default implementation of DomainEvent. Fields are
// exported so embedding events serialize cleanly with encoding/json.
type BaseEvent struct {
	ID         string    `json:"event_id"`
	Type       string    `json:"event_type"`
	Aggregate  string    `json:"aggregate_id"`
	OccurredTS time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a BaseEvent with a generated UUID and the current time.
func NewBaseEvent(eventType, aggregateID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Aggregate:  aggregateID,
		OccurredTS: time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) OccurredAt() time.Time { return e.OccurredTS }

// ---------------------------------------------------------------------------
// Credit analysis events
// ---------------------------------------------------------------------------

// AnalysisCompleted is raised when an analysis finishes, whatever the
// recommendation.
type AnalysisCompleted struct {
	BaseEvent
	BusinessName      string `json:"business_name"`
	Recommendation    string `json:"recommendation"`
	RiskLevel         string `json:"risk_level"`
	UnderwritingScore int    `json:"underwriting_score"`
}

func NewAnalysisCompleted(
	analysisID, businessName, recommendation, riskLevel string,
	underwritingScore int,
) AnalysisCompleted {
	return AnalysisCompleted{
		BaseEvent:         NewBaseEvent("credit.analysis.completed", analysisID),
		BusinessName:      businessName,
		Recommendation:    recommendation,
		RiskLevel:         riskLevel,
		UnderwritingScore: underwritingScore,
	}
}

// AnalysisDeclined is raised in addition to AnalysisCompleted when the
// recommendation is DECLINE, so downstream consumers can subscribe to
// declines alone.
type AnalysisDeclined struct {
	BaseEvent
	BusinessName   string   `json:"business_name"`
	DeclineReasons []string `json:"decline_reasons"`
}

func NewAnalysisDeclined(analysisID, businessName string, reasons []string) AnalysisDeclined {
	return AnalysisDeclined{
		BaseEvent:      NewBaseEvent("credit.analysis.declined", analysisID),
		BusinessName:   businessName,
		DeclineReasons: reasons,
	}
}
