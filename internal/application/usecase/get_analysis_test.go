package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smblend/credit-service/internal/application/usecase"
	"github.com/smblend/credit-service/internal/domain/model"
	"github.com/smblend/credit-service/internal/domain/valueobject"
)

// savedAnalysis runs a full analysis against an in-memory repo and returns
// the stored aggregate alongside the repo.
func savedAnalysis(t *testing.T) (*mockRepo, model.CreditAnalysis) {
	t.Helper()
	repo := &mockRepo{}
	analyze := newAnalyzeUseCase(repo, &mockPublisher{}, &mockMemoGenerator{}, nil, nil)
	_, err := analyze.Execute(context.Background(), strongRequest())
	require.NoError(t, err)
	require.Len(t, repo.saved, 1)
	return repo, repo.saved[0]
}

func TestGetAnalysisUseCase_FetchesFromRepository(t *testing.T) {
	repo, stored := savedAnalysis(t)
	repo.findByIDFn = func(_ context.Context, id string) (model.CreditAnalysis, error) {
		require.Equal(t, stored.ID(), id)
		return stored, nil
	}
	cache := newMockCache()
	uc := usecase.NewGetAnalysisUseCase(repo, cache, discardLogger())

	resp, err := uc.Execute(context.Background(), stored.ID())
	require.NoError(t, err)

	assert.Equal(t, stored.ID(), resp.ID)
	assert.Equal(t, "ABC Hardware LLC", resp.BusinessName)
	assert.Equal(t, "APPROVE", resp.Recommendation)

	// The repository result is written back to the cache.
	_, ok := cache.store["analysis:"+stored.ID()]
	assert.True(t, ok)
}

func TestGetAnalysisUseCase_CacheHitSkipsRepository(t *testing.T) {
	repo, stored := savedAnalysis(t)
	cache := newMockCache()

	// Warm the cache through a repository read, then poison the repo.
	uc := usecase.NewGetAnalysisUseCase(repo, cache, discardLogger())
	repo.findByIDFn = func(_ context.Context, _ string) (model.CreditAnalysis, error) {
		return stored, nil
	}
	first, err := uc.Execute(context.Background(), stored.ID())
	require.NoError(t, err)

	repo.findByIDFn = func(_ context.Context, _ string) (model.CreditAnalysis, error) {
		return model.CreditAnalysis{}, errors.New("repository must not be called")
	}
	second, err := uc.Execute(context.Background(), stored.ID())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.UnderwritingScore, second.UnderwritingScore)
	assert.Equal(t, first.Recommendation, second.Recommendation)
	assert.True(t, first.FinancialMetrics.AvgMonthlyRevenue.Equal(second.FinancialMetrics.AvgMonthlyRevenue))
}

func TestGetAnalysisUseCase_UnreadableCacheEntryFallsThrough(t *testing.T) {
	repo, stored := savedAnalysis(t)
	repo.findByIDFn = func(_ context.Context, _ string) (model.CreditAnalysis, error) {
		return stored, nil
	}
	cache := newMockCache()
	cache.store["analysis:"+stored.ID()] = "{not json"

	uc := usecase.NewGetAnalysisUseCase(repo, cache, discardLogger())
	resp, err := uc.Execute(context.Background(), stored.ID())
	require.NoError(t, err)
	assert.Equal(t, stored.ID(), resp.ID)
}

func TestGetAnalysisUseCase_NotFound(t *testing.T) {
	uc := usecase.NewGetAnalysisUseCase(&mockRepo{}, nil, discardLogger())

	_, err := uc.Execute(context.Background(), "missing-id")
	assert.ErrorIs(t, err, valueobject.ErrAnalysisNotFound)
}

func TestGetAnalysisUseCase_NilCache(t *testing.T) {
	repo, stored := savedAnalysis(t)
	repo.findByIDFn = func(_ context.Context, _ string) (model.CreditAnalysis, error) {
		return stored, nil
	}

	uc := usecase.NewGetAnalysisUseCase(repo, nil, discardLogger())
	resp, err := uc.Execute(context.Background(), stored.ID())
	require.NoError(t, err)
	assert.Equal(t, stored.ID(), resp.ID)
}
