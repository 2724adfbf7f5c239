// Package version tags requests with the API version of the route group that
// serves them.
package version

import (
	"net/http"

	id "numerus/pkg/domain"
	"numerus/pkg/requestcontext"
)

// HeaderAPIVersion echoes the serving API version on every versioned response.
const HeaderAPIVersion = "X-API-Version"

// ExtractVersion stores version in the request context and echoes it as a
// response header. Mount it on the subrouter of that version:
//
//	r.Route("/v1", func(v1 chi.Router) {
//	    v1.Use(version.ExtractVersion(id.APIVersionV1))
//	})
func ExtractVersion(version id.APIVersion) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderAPIVersion, version.String())
			ctx := requestcontext.WithAPIVersion(r.Context(), version)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
