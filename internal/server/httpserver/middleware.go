package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/greeter/internal/common"
	"github.com/dmitrijs2005/greeter/internal/logging"
	"github.com/google/uuid"
)

type ctxKey string

const loggerKey ctxKey = "logger"

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

func loggerFrom(ctx context.Context, fallback logging.Logger) logging.Logger {
	if l, ok := ctx.Value(loggerKey).(logging.Logger); ok {
		return l
	}
	return fallback
}

// requestID reuses the caller's X-Request-ID or generates one, echoes it in
// the response and attaches a request-scoped logger to the context.
func (s *HTTPServer) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), loggerKey, s.logger.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.wroteHeader {
		return
	}
	rec.status = code
	rec.wroteHeader = true
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if !rec.wroteHeader {
		rec.WriteHeader(http.StatusOK)
	}
	return rec.ResponseWriter.Write(b)
}

func (s *HTTPServer) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		ctx := r.Context()
		loggerFrom(ctx, s.logger).Info(ctx, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func (s *HTTPServer) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				ctx := r.Context()
				loggerFrom(ctx, s.logger).Error(ctx, "panic serving request", "panic", p)
				// the response is already on its way; a second header would be ignored
				if !rec.wroteHeader {
					s.writeError(rec, r, http.StatusInternalServerError, common.ErrorInternal)
				}
			}
		}()
		next.ServeHTTP(rec, r)
	})
}
