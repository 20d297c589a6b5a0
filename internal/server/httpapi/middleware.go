package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/metrics"
	"github.com/google/uuid"
)

type requestIDKey struct{}

// RequestIDFromContext returns the id assigned by the access log middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// withAccessLog assigns a request id, echoes it back, and logs and counts
// every request once it completes.
func (h *Handler) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := uuid.NewString()
		w.Header().Set(common.RequestIDHeaderName, requestID)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// set by the mux on the request it was handed
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		h.metrics.ObserveHTTP(route, rec.status, elapsed)

		h.logger.Info(r.Context(), "http request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}

// bearerToken extracts the token from "Authorization: Bearer <token>". The
// scheme is matched case-insensitively.
func bearerToken(r *http.Request) string {
	header := r.Header.Get(common.AuthorizationHeaderName)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}

// authenticated resolves the bearer token and puts the identity on the
// request context. Expired tokens get 403, everything else unresolvable 401.
func (h *Handler) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := h.resolver.ResolveIdentity(bearerToken(r))
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				h.metrics.IdentityResolution(metrics.IdentityExpired)
			} else {
				h.metrics.IdentityResolution(metrics.IdentityInvalid)
			}
			h.logger.Debug(r.Context(), "identity rejected", "reason", err.Error())
			h.writeError(w, r, err)
			return
		}

		h.metrics.IdentityResolution(metrics.IdentityValid)
		next(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
	}
}
