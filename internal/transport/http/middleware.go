package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// accountHeader carries the caller's identity. Wallet/session management is
// out of scope; upstream auth is expected to set this header.
const accountHeader = "X-Account-ID"

type accountKey struct{}

// WithAccount extracts the caller account from the request header and places
// it in the context. Requests without an account are rejected.
func WithAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account := r.Header.Get(accountHeader)
		if account == "" {
			writeError(w, http.StatusUnauthorized, codeAccountRequired, "missing "+accountHeader+" header")
			return
		}
		ctx := context.WithValue(r.Context(), accountKey{}, account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AccountFromContext returns the caller account set by WithAccount.
func AccountFromContext(ctx context.Context) string {
	account, _ := ctx.Value(accountKey{}).(string)
	return account
}

// RequestLogger logs basic request details and latency.
func RequestLogger(next http.Handler, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
