package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/smblend/credit-service/internal/application/dto"
	"github.com/smblend/credit-service/internal/domain/port"
)

// GetAnalysisUseCase serves a previously completed analysis, cache-first.
type GetAnalysisUseCase struct {
	repo   port.AnalysisRepository
	cache  port.AnalysisCache
	logger *slog.Logger
}

func NewGetAnalysisUseCase(repo port.AnalysisRepository, cache port.AnalysisCache, logger *slog.Logger) *GetAnalysisUseCase {
	return &GetAnalysisUseCase{repo: repo, cache: cache, logger: logger}
}

func (uc *GetAnalysisUseCase) Execute(ctx context.Context, analysisID string) (dto.AnalysisResponse, error) {
	if uc.cache != nil {
		if payload, ok := uc.cache.Get(ctx, cacheKey(analysisID)); ok {
			var resp dto.AnalysisResponse
			if err := json.Unmarshal([]byte(payload), &resp); err == nil {
				return resp, nil
			}
			uc.logger.WarnContext(ctx, "discarding unreadable cached analysis", "analysis_id", analysisID)
		}
	}

	analysis, err := uc.repo.FindByID(ctx, analysisID)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("find analysis %s: %w", analysisID, err)
	}

	resp := toAnalysisResponse(analysis)
	if uc.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := uc.cache.Set(ctx, cacheKey(analysisID), string(payload), cacheTTL); err != nil {
				uc.logger.WarnContext(ctx, "failed to cache analysis", "analysis_id", analysisID, "error", err)
			}
		}
	}
	return resp, nil
}
