package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/roach88/giftcycle/internal/domain"
)

// RequesterHeader carries the authenticated caller's user id.
const RequesterHeader = "X-Requester-ID"

type requesterKey struct{}

// RequireRequester rejects requests without RequesterHeader with 401 and
// stores the id in the request context.
func RequireRequester(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequesterHeader)
		if id == "" {
			writeJSON(w, http.StatusUnauthorized, Response{
				Status: "error",
				Error:  &ErrorResponse{Code: string(domain.CodeUnauthorized), Message: "missing " + RequesterHeader + " header"},
			})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requesterKey{}, id)))
	})
}

// RequesterFrom returns the id stored by RequireRequester.
func RequesterFrom(ctx context.Context) string {
	id, _ := ctx.Value(requesterKey{}).(string)
	return id
}

// requestLogger logs one line per request through slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
