package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/smblend/credit-service/internal/application/usecase"
	"github.com/smblend/credit-service/internal/domain/valueobject"
)

// CreditHandler exposes credit analysis operations over gRPC.
type CreditHandler struct {
	UnimplementedCreditAnalysisServiceServer

	analyze    *usecase.AnalyzeLoanUseCase
	quickScore *usecase.QuickScoreUseCase
	get        *usecase.GetAnalysisUseCase
}

// NewCreditHandler creates a new handler with all use-case dependencies.
func NewCreditHandler(
	analyze *usecase.AnalyzeLoanUseCase,
	quickScore *usecase.QuickScoreUseCase,
	get *usecase.GetAnalysisUseCase,
) *CreditHandler {
	return &CreditHandler{
		analyze:    analyze,
		quickScore: quickScore,
		get:        get,
	}
}

// AnalyzeLoan runs the full analysis pipeline for one application.
func (h *CreditHandler) AnalyzeLoan(ctx context.Context, req *AnalyzeLoanRequest) (*AnalyzeLoanResponse, error) {
	resp, err := h.analyze.Execute(ctx, req.AnalyzeRequest)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &AnalyzeLoanResponse{AnalysisResponse: resp}, nil
}

// QuickScore computes the score and risk level without persisting anything.
func (h *CreditHandler) QuickScore(ctx context.Context, req *QuickScoreRequest) (*QuickScoreResponse, error) {
	resp, err := h.quickScore.Execute(ctx, req.AnalyzeRequest)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &QuickScoreResponse{QuickScoreResponse: resp}, nil
}

// GetAnalysis retrieves a completed analysis by ID.
func (h *CreditHandler) GetAnalysis(ctx context.Context, req *GetAnalysisRequest) (*GetAnalysisResponse, error) {
	if req.AnalysisID == "" {
		return nil, status.Error(codes.InvalidArgument, "analysis_id is required")
	}
	resp, err := h.get.Execute(ctx, req.AnalysisID)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &GetAnalysisResponse{AnalysisResponse: resp}, nil
}

// toStatusError maps domain errors onto gRPC status codes.
func toStatusError(err error) error {
	switch {
	case errors.Is(err, valueobject.ErrValidation),
		errors.Is(err, valueobject.ErrInsufficientData):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, valueobject.ErrAnalysisNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
