package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/smblend/credit-service/internal/application/dto"
	"github.com/smblend/credit-service/internal/domain/model"
	"github.com/smblend/credit-service/internal/domain/port"
	"github.com/smblend/credit-service/internal/domain/service"
	"github.com/smblend/credit-service/internal/domain/valueobject"
)

// cacheTTL bounds how long a cached analysis response is served.
const cacheTTL = 24 * time.Hour

// AnalysisRecorder records per-analysis telemetry. Implementations live in
// the platform layer; a nil recorder disables recording.
type AnalysisRecorder interface {
	RecordAnalysis(ctx context.Context, recommendation string, score int)
}

// AnalyzeLoanUseCase runs the full pipeline: metrics, risk flags, score,
// decision, memo, persistence, and event publication.
type AnalyzeLoanUseCase struct {
	repo      port.AnalysisRepository
	publisher port.EventPublisher
	memo      port.MemoGenerator
	cache     port.AnalysisCache

	calculator *service.MetricsCalculator
	riskEngine *service.RiskEngine
	scorer     *service.ScoringEngine
	decider    *service.Decider

	recorder AnalysisRecorder
	logger   *slog.Logger
}

// NewAnalyzeLoanUseCase wires dependencies. cache and recorder may be nil.
func NewAnalyzeLoanUseCase(
	repo port.AnalysisRepository,
	publisher port.EventPublisher,
	memo port.MemoGenerator,
	cache port.AnalysisCache,
	calculator *service.MetricsCalculator,
	riskEngine *service.RiskEngine,
	scorer *service.ScoringEngine,
	decider *service.Decider,
	recorder AnalysisRecorder,
	logger *slog.Logger,
) *AnalyzeLoanUseCase {
	return &AnalyzeLoanUseCase{
		repo:       repo,
		publisher:  publisher,
		memo:       memo,
		cache:      cache,
		calculator: calculator,
		riskEngine: riskEngine,
		scorer:     scorer,
		decider:    decider,
		recorder:   recorder,
		logger:     logger,
	}
}

// Execute analyzes one loan application end to end. The computation is a
// pure forward pass; any validation or insufficient-data error aborts the
// whole analysis and nothing partial is emitted.
func (uc *AnalyzeLoanUseCase) Execute(ctx context.Context, req dto.AnalyzeRequest) (dto.AnalysisResponse, error) {
	now := time.Now().UTC()

	// 1. Validate and build the input value objects.
	terms, bank, tax, err := buildInputs(req)
	if err != nil {
		return dto.AnalysisResponse{}, err
	}

	// 2. Derive financial metrics.
	metrics, err := uc.calculator.Calculate(terms, bank, tax)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("calculate metrics: %w", err)
	}

	// 3. Evaluate risk rules.
	assessment := uc.riskEngine.Assess(metrics, bank.NSFFees())

	// 4. Composite underwriting score.
	score := uc.scorer.Score(assessment.RiskLevel, metrics.DSCR, metrics.StabilityScore, metrics.RevenueVolatility)

	// 5. Terminal decision.
	decision := uc.decider.Decide(score, assessment, metrics, bank.NSFFees())

	// 6. Credit memo. Memo generation failing never fails the analysis.
	memo := uc.generateMemo(ctx, req, terms, metrics, assessment, decision)

	// 7. Build the aggregate.
	analysis, err := model.NewCreditAnalysis(
		req.BusinessName, req.Industry, terms, metrics, assessment, decision, memo, now,
	)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("create analysis: %w", err)
	}

	// 8. Persist.
	if err := uc.repo.Save(ctx, analysis); err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("save analysis: %w", err)
	}

	// 9. Publish domain events.
	if err := uc.publisher.Publish(ctx, analysis.DomainEvents()...); err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("publish events: %w", err)
	}

	resp := toAnalysisResponse(analysis)

	// 10. Cache the response, best-effort.
	uc.cacheResponse(ctx, resp)

	if uc.recorder != nil {
		uc.recorder.RecordAnalysis(ctx, decision.Recommendation.String(), score)
	}
	uc.logger.InfoContext(ctx, "analysis complete",
		"analysis_id", analysis.ID(),
		"business_name", req.BusinessName,
		"risk_level", assessment.RiskLevel,
		"underwriting_score", score,
		"recommendation", decision.Recommendation,
	)
	return resp, nil
}

func (uc *AnalyzeLoanUseCase) generateMemo(
	ctx context.Context,
	req dto.AnalyzeRequest,
	terms valueobject.LoanTerms,
	metrics model.FinancialMetrics,
	assessment model.RiskAssessment,
	decision model.Decision,
) string {
	if uc.memo == nil {
		return ""
	}
	schedule := model.AmortizationSchedule(terms.Amount(), terms.AnnualRate(), terms.TermMonths())
	memo, err := uc.memo.Generate(ctx, port.MemoRequest{
		BusinessName:   req.BusinessName,
		Industry:       req.Industry,
		LoanAmount:     terms.Amount(),
		MonthlyPayment: model.MonthlyPayment(terms.Amount(), terms.AnnualRate(), terms.TermMonths()),
		TotalInterest:  model.TotalInterest(schedule),
		Metrics:        metrics,
		Assessment:     assessment,
		Decision:       decision,
	})
	if err != nil {
		uc.logger.WarnContext(ctx, "memo generation failed, continuing without memo", "error", err)
		return ""
	}
	return memo
}

func (uc *AnalyzeLoanUseCase) cacheResponse(ctx context.Context, resp dto.AnalysisResponse) {
	if uc.cache == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, cacheKey(resp.ID), string(payload), cacheTTL); err != nil {
		uc.logger.WarnContext(ctx, "failed to cache analysis", "analysis_id", resp.ID, "error", err)
	}
}

func cacheKey(analysisID string) string {
	return "analysis:" + analysisID
}

// buildInputs converts the transport DTO into validated value objects.
func buildInputs(req dto.AnalyzeRequest) (valueobject.LoanTerms, valueobject.BankStatement, *valueobject.TaxReturn, error) {
	if req.BusinessName == "" {
		return valueobject.LoanTerms{}, valueobject.BankStatement{}, nil,
			fmt.Errorf("%w: business name is required", valueobject.ErrValidation)
	}

	terms, err := valueobject.NewLoanTerms(
		req.LoanAmount, req.AnnualInterestRate, req.TermMonths, req.ExistingDebt, req.BusinessAgeYears,
	)
	if err != nil {
		return valueobject.LoanTerms{}, valueobject.BankStatement{}, nil, err
	}

	bank, err := valueobject.NewBankStatement(
		req.BankData.MonthlyDeposits, req.BankData.MonthlyWithdrawals,
		req.BankData.NSFFees, req.BankData.MonthsCovered,
	)
	if err != nil {
		return valueobject.LoanTerms{}, valueobject.BankStatement{}, nil, err
	}
	if req.BankData.AverageBalance != nil {
		bank = bank.WithAverageBalance(*req.BankData.AverageBalance)
	}

	var tax *valueobject.TaxReturn
	if req.TaxData != nil {
		t, err := valueobject.NewTaxReturn(
			req.TaxData.GrossRevenue, req.TaxData.TotalExpenses, req.TaxData.NetIncome, req.TaxData.TaxYear,
		)
		if err != nil {
			return valueobject.LoanTerms{}, valueobject.BankStatement{}, nil, err
		}
		tax = &t
	}
	return terms, bank, tax, nil
}

// toAnalysisResponse maps the aggregate to its external representation.
func toAnalysisResponse(analysis model.CreditAnalysis) dto.AnalysisResponse {
	decision := analysis.Decision()
	terms := analysis.Terms()
	return dto.AnalysisResponse{
		ID:                analysis.ID(),
		Status:            analysis.Status(),
		BusinessName:      analysis.BusinessName(),
		Industry:          analysis.Industry(),
		MonthlyPayment:    model.MonthlyPayment(terms.Amount(), terms.AnnualRate(), terms.TermMonths()),
		FinancialMetrics:  analysis.Metrics(),
		RiskAssessment:    analysis.Assessment(),
		CreditMemo:        analysis.CreditMemo(),
		UnderwritingScore: decision.UnderwritingScore,
		Recommendation:    decision.Recommendation.String(),
		Conditions:        decision.Conditions,
		DeclineReasons:    decision.DeclineReasons,
		CreatedAt:         analysis.CreatedAt(),
	}
}
