// Package requestcontext carries request-scoped values from HTTP middleware
// to services without making services depend on net/http.
package requestcontext

import (
	"context"
	"time"

	id "numerus/pkg/domain"
)

type (
	requestIDKey   struct{}
	requestTimeKey struct{}
	apiVersionKey  struct{}
)

// RequestID returns the request ID, or "" outside a request.
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// APIVersion returns the version of the serving route group, or "".
func APIVersion(ctx context.Context) id.APIVersion {
	v, _ := ctx.Value(apiVersionKey{}).(id.APIVersion)
	return v
}

func WithAPIVersion(ctx context.Context, version id.APIVersion) context.Context {
	return context.WithValue(ctx, apiVersionKey{}, version)
}

// Now returns the time pinned for this request. Analyses default their target
// year from it, so every entry of a batch agrees on "this year". Outside a
// request it is the wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime pins the request time.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
