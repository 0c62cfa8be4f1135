package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type ctxKey int

const transactionIDKey ctxKey = iota

// TransactionID assigns every request a fresh correlation id, echoed in
// the X-Transaction-ID response header and available to handlers and
// log lines via the request context.
func TransactionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Transaction-ID", id)
		ctx := context.WithValue(r.Context(), transactionIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func transactionID(ctx context.Context) string {
	id, _ := ctx.Value(transactionIDKey).(string)
	return id
}

// RequestLogger logs one line per request with the transaction id.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.InfoContext(r.Context(), "Request handled",
			"transaction_id", transactionID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
