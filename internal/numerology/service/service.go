package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"numerus/internal/numerology/engine"
	"numerus/internal/numerology/metrics"
	"numerus/internal/numerology/models"
	id "numerus/pkg/domain"
	dErrors "numerus/pkg/domain-errors"
	"numerus/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Registry

// Registry resolves system ids to compiled rule-sets.
type Registry interface {
	Get(ctx context.Context, id string) (*models.RuleSet, error)
	Systems(ctx context.Context) ([]models.SystemInfo, error)
}

const (
	defaultSystem           = "pythagorean"
	defaultBatchConcurrency = 4
)

var tracer = otel.Tracer("numerus/internal/numerology/service")

// AnalyzeRequest is one analysis as asked for by a caller. An empty System
// selects the default system; a nil TargetYear selects the current year of
// the request clock.
type AnalyzeRequest struct {
	FullName    string
	DateOfBirth string
	Gender      *string
	System      string
	TargetYear  *int
	Trace       bool
}

// BatchItem is the outcome of one batch entry: exactly one of Result and Err
// is set.
type BatchItem struct {
	Result *models.AnalysisResult
	Err    error
}

// Service runs analyses against rule-sets resolved through the registry.
type Service struct {
	registry         Registry
	logger           *slog.Logger
	metrics          *metrics.Metrics
	defaultSystem    string
	batchConcurrency int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithDefaultSystem sets the system used when a request names none.
func WithDefaultSystem(system string) Option {
	return func(s *Service) {
		if system = strings.TrimSpace(system); system != "" {
			s.defaultSystem = system
		}
	}
}

// WithBatchConcurrency bounds how many batch entries are analyzed at once.
func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// New constructs a Service.
func New(registry Registry, opts ...Option) *Service {
	s := &Service{
		registry:         registry,
		logger:           slog.Default(),
		defaultSystem:    defaultSystem,
		batchConcurrency: defaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze computes one analysis. Errors are *dErrors.Error: CodeValidation for
// an invalid date, CodeBadRequest for an unknown system, CodeInternal for a
// rule-set that does not compile, CodeUnavailable when the rule-set store
// cannot be reached.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (*models.AnalysisResult, error) {
	start := time.Now()
	system := strings.TrimSpace(req.System)
	if system == "" {
		system = s.defaultSystem
	}

	ctx, span := tracer.Start(ctx, "numerology.Analyze")
	defer span.End()
	span.SetAttributes(
		attribute.String("numerology.system", system),
		attribute.Bool("numerology.trace", req.Trace),
	)

	res, err := s.analyze(ctx, system, req)
	outcome := outcomeOf(err)
	s.metrics.ObserveAnalysis(metricSystemLabel(system, outcome), outcome, start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		s.logFailure(ctx, system, outcome, err, start)
		return nil, translateError(err)
	}

	s.logger.InfoContext(ctx, "analysis completed",
		"request_id", requestcontext.RequestID(ctx),
		"system", res.Input.System,
		"trace", req.Trace,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (s *Service) analyze(ctx context.Context, system string, req AnalyzeRequest) (*models.AnalysisResult, error) {
	systemID, err := id.ParseSystemID(system)
	if err != nil {
		return nil, &models.UnknownSystemError{SystemID: system}
	}
	rs, err := s.registry.Get(ctx, systemID.String())
	if err != nil {
		return nil, err
	}

	targetYear := requestcontext.Now(ctx).Year()
	if req.TargetYear != nil {
		targetYear = *req.TargetYear
	}
	return engine.Analyze(engine.Input{
		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		TargetYear:  targetYear,
		Trace:       req.Trace,
	}, rs)
}

// AnalyzeBatch analyzes every request independently; one failing entry never
// affects the others. Results keep the input order. All entries share the
// same request clock, so defaulted target years agree.
func (s *Service) AnalyzeBatch(ctx context.Context, reqs []AnalyzeRequest) []BatchItem {
	ctx, span := tracer.Start(ctx, "numerology.AnalyzeBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("numerology.batch_size", len(reqs)))
	s.metrics.ObserveBatchSize(len(reqs))

	ctx = requestcontext.WithTime(ctx, requestcontext.Now(ctx))
	items := make([]BatchItem, len(reqs))

	var g errgroup.Group
	g.SetLimit(s.batchConcurrency)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := s.Analyze(ctx, req)
			items[i] = BatchItem{Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}
	s.logger.InfoContext(ctx, "batch analysis completed",
		"request_id", requestcontext.RequestID(ctx),
		"items", len(reqs),
		"failed", failed,
	)
	return items
}

// Systems lists the available systems sorted by id.
func (s *Service) Systems(ctx context.Context) ([]models.SystemInfo, error) {
	systems, err := s.registry.Systems(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list systems",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to list systems")
	}
	return systems, nil
}

func (s *Service) logFailure(ctx context.Context, system, outcome string, err error, start time.Time) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"system", system,
		"outcome", outcome,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	switch outcome {
	case outcomeInvalidDate, outcomeUnknownSystem:
		s.logger.WarnContext(ctx, "analysis rejected", attrs...)
	default:
		s.logger.ErrorContext(ctx, "analysis failed", append(attrs, "error", err.Error())...)
	}
}

const (
	outcomeOK               = "ok"
	outcomeInvalidDate      = "invalid_date"
	outcomeUnknownSystem    = "unknown_system"
	outcomeMalformedRuleSet = "malformed_ruleset"
	outcomeCanceled         = "canceled"
	outcomeError            = "error"
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, models.ErrInvalidDate):
		return outcomeInvalidDate
	case errors.Is(err, models.ErrUnknownSystem):
		return outcomeUnknownSystem
	case errors.Is(err, models.ErrMalformedRuleSet):
		return outcomeMalformedRuleSet
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	default:
		return outcomeError
	}
}

// metricSystemLabel keeps caller-supplied ids out of label values: only ids
// the registry actually resolved are used, in their canonical form.
func metricSystemLabel(system, outcome string) string {
	switch outcome {
	case outcomeOK, outcomeInvalidDate, outcomeMalformedRuleSet:
		if systemID, err := id.ParseSystemID(system); err == nil {
			return systemID.String()
		}
	}
	return "unknown"
}

// translateError maps engine and registry failures to coded domain errors.
// Messages for caller mistakes are returned verbatim; internal detail is not.
func translateError(err error) error {
	switch outcomeOf(err) {
	case outcomeInvalidDate:
		return dErrors.Wrap(err, dErrors.CodeValidation, err.Error())
	case outcomeUnknownSystem:
		return dErrors.Wrap(err, dErrors.CodeBadRequest, err.Error())
	case outcomeMalformedRuleSet:
		return dErrors.Wrap(err, dErrors.CodeInternal, "rule-set is misconfigured")
	case outcomeCanceled:
		return dErrors.Wrap(err, dErrors.CodeTimeout, "analysis canceled")
	default:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "rule-set store unavailable")
	}
}
