package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"numerus/internal/numerology/models"
	"numerus/internal/numerology/service"
	id "numerus/pkg/domain"
	"numerus/pkg/platform/httputil"
	"numerus/pkg/platform/middleware/version"
	"numerus/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the numerology operations the HTTP layer needs.
type Service interface {
	Analyze(ctx context.Context, req service.AnalyzeRequest) (*models.AnalysisResult, error)
	AnalyzeBatch(ctx context.Context, reqs []service.AnalyzeRequest) []service.BatchItem
	Systems(ctx context.Context) ([]models.SystemInfo, error)
}

// Handler serves the /v1 numerology endpoints.
type Handler struct {
	svc           Service
	logger        *slog.Logger
	maxBatchItems int
}

// New creates a numerology Handler. maxBatchItems bounds batch requests.
func New(svc Service, logger *slog.Logger, maxBatchItems int) *Handler {
	return &Handler{
		svc:           svc,
		logger:        logger,
		maxBatchItems: maxBatchItems,
	}
}

// Register mounts the numerology routes under /v1.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(version.ExtractVersion(id.APIVersionV1))
		v1.Post("/analyze", h.handleAnalyze)
		v1.Post("/analyze/batch", h.handleAnalyzeBatch)
		v1.Get("/systems", h.handleSystems)
		v1.Get("/examples", h.handleExamples)
	})
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AnalyzeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.svc.Analyze(ctx, req.toService())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[BatchAnalyzeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := req.validateSize(h.maxBatchItems); err != nil {
		h.logger.WarnContext(ctx, "batch request rejected",
			"request_id", requestID,
			"items", len(req.Requests),
		)
		httputil.WriteError(w, err)
		return
	}

	// Entries that fail request validation never reach the service; the
	// others are analyzed together and merged back in input order.
	results := make([]BatchItemResponse, len(req.Requests))
	valid := make([]service.AnalyzeRequest, 0, len(req.Requests))
	positions := make([]int, 0, len(req.Requests))
	for i := range req.Requests {
		if err := req.Requests[i].Validate(); err != nil {
			results[i] = toBatchItemResponse(service.BatchItem{Err: err})
			continue
		}
		valid = append(valid, req.Requests[i].toService())
		positions = append(positions, i)
	}
	for j, item := range h.svc.AnalyzeBatch(ctx, valid) {
		results[positions[j]] = toBatchItemResponse(item)
	}

	httputil.WriteJSON(w, http.StatusOK, BatchAnalyzeResponse{Results: results})
}

func (h *Handler) handleSystems(w http.ResponseWriter, r *http.Request) {
	systems, err := h.svc.Systems(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if systems == nil {
		systems = []models.SystemInfo{}
	}
	httputil.WriteJSON(w, http.StatusOK, SystemsResponse{Systems: systems})
}

func (h *Handler) handleExamples(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, examples)
}
