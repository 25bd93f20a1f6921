package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/smblend/credit-service/internal/application/dto"
	"github.com/smblend/credit-service/internal/domain/service"
)

// QuickScoreUseCase runs the scoring pipeline without persisting anything.
// It is the pre-qualification path: same math as a full analysis, no
// aggregate, no events, no memo.
type QuickScoreUseCase struct {
	calculator *service.MetricsCalculator
	riskEngine *service.RiskEngine
	scorer     *service.ScoringEngine

	logger *slog.Logger
}

func NewQuickScoreUseCase(
	calculator *service.MetricsCalculator,
	riskEngine *service.RiskEngine,
	scorer *service.ScoringEngine,
	logger *slog.Logger,
) *QuickScoreUseCase {
	return &QuickScoreUseCase{
		calculator: calculator,
		riskEngine: riskEngine,
		scorer:     scorer,
		logger:     logger,
	}
}

func (uc *QuickScoreUseCase) Execute(ctx context.Context, req dto.AnalyzeRequest) (dto.QuickScoreResponse, error) {
	terms, bank, tax, err := buildInputs(req)
	if err != nil {
		return dto.QuickScoreResponse{}, err
	}

	metrics, err := uc.calculator.Calculate(terms, bank, tax)
	if err != nil {
		return dto.QuickScoreResponse{}, fmt.Errorf("calculate metrics: %w", err)
	}

	assessment := uc.riskEngine.Assess(metrics, bank.NSFFees())
	score := uc.scorer.Score(assessment.RiskLevel, metrics.DSCR, metrics.StabilityScore, metrics.RevenueVolatility)

	uc.logger.DebugContext(ctx, "quick score computed",
		"business_name", req.BusinessName,
		"underwriting_score", score,
		"risk_level", assessment.RiskLevel,
	)
	return dto.QuickScoreResponse{
		UnderwritingScore: score,
		RiskLevel:         assessment.RiskLevel.String(),
	}, nil
}
