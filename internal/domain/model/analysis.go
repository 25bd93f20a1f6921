package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smblend/credit-service/internal/domain/event"
	"github.com/smblend/credit-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// CreditAnalysis aggregate root
// ---------------------------------------------------------------------------

// StatusCompleted is the only terminal status an analysis record can carry;
// failed analyses are never persisted.
const StatusCompleted = "completed"

// CreditAnalysis is an immutable aggregate holding one complete analysis
// result: the applicant's terms, the derived metrics, the risk assessment,
// the decision, and the generated credit memo.
type CreditAnalysis struct {
	id           string
	businessName string
	industry     string
	terms        valueobject.LoanTerms
	metrics      FinancialMetrics
	assessment   RiskAssessment
	decision     Decision
	creditMemo   string
	status       string
	version      int
	createdAt    time.Time
	domainEvents []event.DomainEvent
}

// NewCreditAnalysis creates a completed analysis and raises its domain
// events. The decision drives which events fire.
func NewCreditAnalysis(
	businessName, industry string,
	terms valueobject.LoanTerms,
	metrics FinancialMetrics,
	assessment RiskAssessment,
	decision Decision,
	creditMemo string,
	now time.Time,
) (CreditAnalysis, error) {
	if businessName == "" {
		return CreditAnalysis{}, fmt.Errorf("%w: business name is required", valueobject.ErrValidation)
	}

	id := uuid.New().String()
	a := CreditAnalysis{
		id:           id,
		businessName: businessName,
		industry:     industry,
		terms:        terms,
		metrics:      metrics,
		assessment:   assessment,
		decision:     decision,
		creditMemo:   creditMemo,
		status:       StatusCompleted,
		version:      1,
		createdAt:    now,
	}

	a.domainEvents = append(a.domainEvents, event.NewAnalysisCompleted(
		id, businessName,
		decision.Recommendation.String(),
		assessment.RiskLevel.String(),
		decision.UnderwritingScore,
	))
	if decision.Recommendation == valueobject.RecommendationDecline {
		a.domainEvents = append(a.domainEvents, event.NewAnalysisDeclined(
			id, businessName, decision.DeclineReasons,
		))
	}
	return a, nil
}

// ReconstructCreditAnalysis rebuilds an aggregate from persistence without
// side-effects.
func ReconstructCreditAnalysis(
	id, businessName, industry string,
	terms valueobject.LoanTerms,
	metrics FinancialMetrics,
	assessment RiskAssessment,
	decision Decision,
	creditMemo, status string,
	version int,
	createdAt time.Time,
) CreditAnalysis {
	return CreditAnalysis{
		id:           id,
		businessName: businessName,
		industry:     industry,
		terms:        terms,
		metrics:      metrics,
		assessment:   assessment,
		decision:     decision,
		creditMemo:   creditMemo,
		status:       status,
		version:      version,
		createdAt:    createdAt,
	}
}

func (a CreditAnalysis) ID() string                     { return a.id }
func (a CreditAnalysis) BusinessName() string           { return a.businessName }
func (a CreditAnalysis) Industry() string               { return a.industry }
func (a CreditAnalysis) Terms() valueobject.LoanTerms   { return a.terms }
func (a CreditAnalysis) Metrics() FinancialMetrics      { return a.metrics }
func (a CreditAnalysis) Assessment() RiskAssessment     { return a.assessment }
func (a CreditAnalysis) Decision() Decision             { return a.decision }
func (a CreditAnalysis) CreditMemo() string             { return a.creditMemo }
func (a CreditAnalysis) Status() string                 { return a.status }
func (a CreditAnalysis) Version() int                   { return a.version }
func (a CreditAnalysis) CreatedAt() time.Time           { return a.createdAt }
func (a CreditAnalysis) DomainEvents() []event.DomainEvent { return a.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a CreditAnalysis) ClearEvents() CreditAnalysis {
	next := a
	next.domainEvents = nil
	return next
}
