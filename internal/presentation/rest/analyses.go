package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/smblend/credit-service/internal/application/dto"
	"github.com/smblend/credit-service/internal/application/usecase"
	"github.com/smblend/credit-service/internal/domain/valueobject"
)

// AnalysesHandler serves the credit analysis JSON API.
type AnalysesHandler struct {
	analyze    *usecase.AnalyzeLoanUseCase
	quickScore *usecase.QuickScoreUseCase
	get        *usecase.GetAnalysisUseCase
	logger     *slog.Logger
}

// NewAnalysesHandler creates the handler with its use-case dependencies.
func NewAnalysesHandler(
	analyze *usecase.AnalyzeLoanUseCase,
	quickScore *usecase.QuickScoreUseCase,
	get *usecase.GetAnalysisUseCase,
	logger *slog.Logger,
) *AnalysesHandler {
	return &AnalysesHandler{
		analyze:    analyze,
		quickScore: quickScore,
		get:        get,
		logger:     logger,
	}
}

// RegisterRoutes attaches the analysis routes to the given mux.
func (h *AnalysesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/analyses", h.analyzeLoan)
	mux.HandleFunc("POST /api/v1/analyses/quick-score", h.quickScoreLoan)
	mux.HandleFunc("GET /api/v1/analyses/{id}", h.getAnalysis)
}

func (h *AnalysesHandler) analyzeLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.analyze.Execute(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AnalysesHandler) quickScoreLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.quickScore.Execute(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AnalysesHandler) getAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "analysis id is required")
		return
	}

	resp, err := h.get.Execute(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeDomainError maps domain errors onto HTTP status codes.
func (h *AnalysesHandler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, valueobject.ErrValidation),
		errors.Is(err, valueobject.ErrInsufficientData):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, valueobject.ErrAnalysisNotFound):
		writeError(w, http.StatusNotFound, "analysis not found")
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
