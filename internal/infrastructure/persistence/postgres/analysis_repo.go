package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/smblend/credit-service/internal/domain/model"
	"github.com/smblend/credit-service/internal/domain/valueobject"
)

// AnalysisRepo implements port.AnalysisRepository.
type AnalysisRepo struct {
	pool *pgxpool.Pool
}

// NewAnalysisRepo creates a new repository backed by PostgreSQL.
func NewAnalysisRepo(pool *pgxpool.Pool) *AnalysisRepo {
	return &AnalysisRepo{pool: pool}
}

// Save persists a credit analysis (upsert by ID with optimistic locking).
// Metrics, assessment and decision are stored as jsonb documents; the loan
// terms are flattened into columns for ad-hoc querying.
func (r *AnalysisRepo) Save(ctx context.Context, analysis model.CreditAnalysis) error {
	metricsJSON, err := json.Marshal(analysis.Metrics())
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	assessmentJSON, err := json.Marshal(analysis.Assessment())
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}
	decisionJSON, err := json.Marshal(analysis.Decision())
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}

	terms := analysis.Terms()
	query := `
		INSERT INTO credit_analyses (
			id, business_name, industry,
			loan_amount, annual_rate, term_months, existing_debt, business_age_years,
			metrics, assessment, decision, credit_memo,
			status, version, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (id) DO UPDATE SET
			metrics     = EXCLUDED.metrics,
			assessment  = EXCLUDED.assessment,
			decision    = EXCLUDED.decision,
			credit_memo = EXCLUDED.credit_memo,
			status      = EXCLUDED.status,
			version     = credit_analyses.version + 1
		WHERE credit_analyses.version = $14
	`
	tag, err := r.pool.Exec(ctx, query,
		analysis.ID(), analysis.BusinessName(), analysis.Industry(),
		terms.Amount(), terms.AnnualRate(), terms.TermMonths(),
		terms.ExistingDebt(), terms.BusinessAgeYears(),
		metricsJSON, assessmentJSON, decisionJSON, analysis.CreditMemo(),
		analysis.Status(), analysis.Version(), analysis.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save credit analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on credit analysis")
	}
	return nil
}

// FindByID retrieves a single analysis.
func (r *AnalysisRepo) FindByID(ctx context.Context, id string) (model.CreditAnalysis, error) {
	query := `
		SELECT id, business_name, industry,
		       loan_amount, annual_rate, term_months, existing_debt, business_age_years,
		       metrics, assessment, decision, credit_memo,
		       status, version, created_at
		FROM credit_analyses
		WHERE id = $1
	`

	var (
		analysisID, businessName, industry string
		loanAmount, existingDebt           decimal.Decimal
		annualRate                         float64
		termMonths, businessAgeYears       int
		metricsJSON, assessmentJSON        []byte
		decisionJSON                       []byte
		creditMemo, status                 string
		version                            int
		createdAt                          time.Time
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&analysisID, &businessName, &industry,
		&loanAmount, &annualRate, &termMonths, &existingDebt, &businessAgeYears,
		&metricsJSON, &assessmentJSON, &decisionJSON, &creditMemo,
		&status, &version, &createdAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.CreditAnalysis{}, valueobject.ErrAnalysisNotFound
	}
	if err != nil {
		return model.CreditAnalysis{}, fmt.Errorf("scan credit analysis: %w", err)
	}

	var metrics model.FinancialMetrics
	if err := json.Unmarshal(metricsJSON, &metrics); err != nil {
		return model.CreditAnalysis{}, fmt.Errorf("unmarshal metrics: %w", err)
	}
	var assessment model.RiskAssessment
	if err := json.Unmarshal(assessmentJSON, &assessment); err != nil {
		return model.CreditAnalysis{}, fmt.Errorf("unmarshal assessment: %w", err)
	}
	var decision model.Decision
	if err := json.Unmarshal(decisionJSON, &decision); err != nil {
		return model.CreditAnalysis{}, fmt.Errorf("unmarshal decision: %w", err)
	}

	terms := valueobject.ReconstructLoanTerms(loanAmount, annualRate, termMonths, existingDebt, businessAgeYears)
	return model.ReconstructCreditAnalysis(
		analysisID, businessName, industry,
		terms, metrics, assessment, decision,
		creditMemo, status, version, createdAt,
	), nil
}
