// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package api

import (
	"net/http"
	"time"

	"github.com/tastematch/tastematch/internal/logging"
	"github.com/tastematch/tastematch/internal/metrics"
)

// RequestID attaches a request ID to the context and the response headers.
// An incoming X-Request-ID is honored so ids correlate across services.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = logging.GenerateRequestID()
			}

			ctx := logging.ContextWithRequestID(r.Context(), id)
			logger := logging.With().Str("request_id", id).Logger()
			ctx = logging.ContextWithLogger(ctx, logger)

			w.Header().Set("X-Request-ID", id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// statusRecorder captures the response status code for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// PrometheusMetrics records request counts and latency per route pattern.
func PrometheusMetrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			metrics.RecordAPIRequest(r.Method, r.URL.Path, rec.status, time.Since(start))
		})
	}
}

// RequestLogging writes one structured log line per request.
func RequestLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logging.Ctx(r.Context()).Debug().
				Str("method", r.Method).
				Str("path", sanitizeLogValue(r.URL.Path)).
				Int("status", rec.status).
				Dur("duration", time.Since(start)).
				Msg("request handled")
		})
	}
}
