package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smblend/credit-service/internal/domain/event"
	"github.com/smblend/credit-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// AnalysisRepository persists and retrieves completed credit analyses.
type AnalysisRepository interface {
	Save(ctx context.Context, analysis model.CreditAnalysis) error
	FindByID(ctx context.Context, id string) (model.CreditAnalysis, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// MemoRequest carries the structured facts a credit memo is written from.
// The memo narrative must be built from these facts alone.
type MemoRequest struct {
	BusinessName   string
	Industry       string
	LoanAmount     decimal.Decimal
	MonthlyPayment decimal.Decimal
	TotalInterest  decimal.Decimal
	Metrics        model.FinancialMetrics
	Assessment     model.RiskAssessment
	Decision       model.Decision
}

// MemoGenerator produces the credit memo text for a finished analysis.
// Implementations must degrade gracefully: memo generation failing never
// fails or alters the analysis itself.
type MemoGenerator interface {
	Generate(ctx context.Context, req MemoRequest) (string, error)
}

// AnalysisCache caches serialized analysis responses keyed by analysis ID.
type AnalysisCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
