package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smblend/credit-service/internal/application/usecase"
	"github.com/smblend/credit-service/internal/domain/service"
	"github.com/smblend/credit-service/internal/domain/valueobject"
)

func newQuickScoreUseCase() *usecase.QuickScoreUseCase {
	return usecase.NewQuickScoreUseCase(
		service.NewMetricsCalculator(service.DefaultStabilityWeights()),
		service.NewRiskEngine(service.DefaultRiskConfig()),
		service.NewScoringEngine(service.DefaultScoreConfig()),
		discardLogger(),
	)
}

func TestQuickScoreUseCase_ScoresWithoutSideEffects(t *testing.T) {
	uc := newQuickScoreUseCase()

	resp, err := uc.Execute(context.Background(), strongRequest())
	require.NoError(t, err)

	assert.Equal(t, 99, resp.UnderwritingScore)
	assert.Equal(t, "LOW", resp.RiskLevel)
}

func TestQuickScoreUseCase_ValidationFailure(t *testing.T) {
	uc := newQuickScoreUseCase()

	req := strongRequest()
	req.TermMonths = 0

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, valueobject.ErrValidation)
}

func TestQuickScoreUseCase_MatchesFullAnalysisScore(t *testing.T) {
	quick := newQuickScoreUseCase()
	full := newAnalyzeUseCase(&mockRepo{}, &mockPublisher{}, &mockMemoGenerator{}, nil, nil)

	req := strongRequest()

	quickResp, err := quick.Execute(context.Background(), req)
	require.NoError(t, err)
	fullResp, err := full.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, fullResp.UnderwritingScore, quickResp.UnderwritingScore)
	assert.Equal(t, fullResp.RiskAssessment.RiskLevel.String(), quickResp.RiskLevel)
}
