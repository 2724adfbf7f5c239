package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"numerus/internal/numerology/metrics"
	"numerus/internal/numerology/models"
	"numerus/pkg/platform/sentinel"
)

//go:generate mockgen -source=registry.go -destination=mocks/mocks.go -package=mocks Source

// Source loads raw rule-set definitions by system id.
type Source interface {
	// Load returns sentinel.ErrNotFound (possibly wrapped) for unknown ids.
	Load(ctx context.Context, id string) (*models.Definition, error)
	List(ctx context.Context) ([]models.SystemInfo, error)
}

var tracer = otel.Tracer("numerus/internal/numerology/registry")

// Registry resolves system ids to compiled rule-sets. Compiled rule-sets are
// cached for the life of the process; concurrent misses for the same id share
// one load. Failed loads are never cached.
type Registry struct {
	source  Source
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu         sync.RWMutex
	sets       map[string]*models.RuleSet
	generation uint64
	group      singleflight.Group
}

type Option func(*Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// New constructs a Registry over source.
func New(source Source, opts ...Option) *Registry {
	r := &Registry{
		source: source,
		logger: slog.Default(),
		sets:   make(map[string]*models.RuleSet),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the compiled rule-set for id. It fails with
// *models.UnknownSystemError when no source knows id and with
// *models.MalformedRuleSetError when the stored definition does not compile.
func (r *Registry) Get(ctx context.Context, id string) (*models.RuleSet, error) {
	ctx, span := tracer.Start(ctx, "registry.Get",
		trace.WithAttributes(attribute.String("numerology.system", id)))
	defer span.End()

	r.mu.RLock()
	rs, ok := r.sets[id]
	r.mu.RUnlock()
	if ok {
		r.metrics.RecordCacheHit()
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return rs, nil
	}
	r.metrics.RecordCacheMiss()
	span.SetAttributes(attribute.Bool("cache.hit", false))

	// The shared load outlives any single caller: a caller that gives up
	// stops waiting, but the others still get the result.
	ch := r.group.DoChan(id, func() (any, error) {
		return r.load(context.WithoutCancel(ctx), id)
	})
	select {
	case <-ctx.Done():
		err := ctx.Err()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	case res := <-ch:
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
			return nil, res.Err
		}
		span.SetAttributes(attribute.Bool("singleflight.shared", res.Shared))
		return res.Val.(*models.RuleSet), nil
	}
}

func (r *Registry) load(ctx context.Context, id string) (*models.RuleSet, error) {
	start := time.Now()

	r.mu.RLock()
	cached, ok := r.sets[id]
	generation := r.generation
	r.mu.RUnlock()
	// A flight that finished between the caller's miss and this one already
	// stored the result.
	if ok {
		return cached, nil
	}

	def, err := r.source.Load(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			r.metrics.ObserveRuleSetLoad("not_found", start)
			return nil, &models.UnknownSystemError{SystemID: id}
		}
		if errors.Is(err, models.ErrMalformedRuleSet) {
			r.metrics.ObserveRuleSetLoad("malformed", start)
			r.logger.ErrorContext(ctx, "stored rule-set is unreadable",
				"system", id,
				"error", err.Error(),
			)
			return nil, err
		}
		r.metrics.ObserveRuleSetLoad("error", start)
		return nil, fmt.Errorf("load rule-set %q: %w", id, err)
	}

	rs, err := Compile(id, def)
	if err != nil {
		r.metrics.ObserveRuleSetLoad("malformed", start)
		r.logger.ErrorContext(ctx, "rule-set failed to compile",
			"system", id,
			"error", err.Error(),
		)
		return nil, err
	}
	r.metrics.ObserveRuleSetLoad("ok", start)

	r.mu.Lock()
	// An invalidation that raced this load wins: the result is returned to
	// the callers already waiting but not cached.
	if r.generation == generation {
		r.sets[id] = rs
	}
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "rule-set loaded",
		"system", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return rs, nil
}

// Invalidate drops id from the cache so the next Get reloads it.
func (r *Registry) Invalidate(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, id)
	r.generation++
}

// InvalidateAll empties the cache.
func (r *Registry) InvalidateAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.sets)
	r.generation++
}

// Systems lists the systems the source knows, sorted by id.
func (r *Registry) Systems(ctx context.Context) ([]models.SystemInfo, error) {
	ctx, span := tracer.Start(ctx, "registry.Systems")
	defer span.End()

	systems, err := r.source.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list systems: %w", err)
	}
	systems = slices.Clone(systems)
	slices.SortFunc(systems, func(a, b models.SystemInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return systems, nil
}
