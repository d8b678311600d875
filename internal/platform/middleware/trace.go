// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the cross-cutting HTTP chain mounted in front of
every handler: request ids, per-request loggers, metrics, panic recovery,
per-IP rate limiting, CORS and bearer-token authentication.
*/
package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/taibuivan/otakurin/internal/platform/constants"
	"github.com/taibuivan/otakurin/internal/platform/ctxutil"
	"github.com/taibuivan/otakurin/internal/platform/metrics"
	"github.com/taibuivan/otakurin/pkg/uuid"
)

// RequestID reuses the caller's X-Request-ID or mints a UUIDv7.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestID := request.Header.Get(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New()
		}

		writer.Header().Set(constants.HeaderXRequestID, requestID)
		next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
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

// Observe installs a request-scoped logger, then logs and counts the finished request.
func Observe(logger *slog.Logger, recorder *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			started := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)

			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			wrapped := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(wrapped, request.WithContext(ctx))

			elapsed := time.Since(started)
			recorder.HTTPRequest(request.Method, wrapped.status, elapsed)

			level := slog.LevelInfo
			switch {
			case wrapped.status >= http.StatusInternalServerError:
				level = slog.LevelError
			case wrapped.status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			requestLogger.Log(ctx, level, "http_request_finished",
				slog.Int("status", wrapped.status),
				slog.Int64("latency_ms", elapsed.Milliseconds()),
			)
		})
	}
}

// Recover turns a panic into a 500 and logs the stack.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			stack := make([]byte, 4096)
			stack = stack[:runtime.Stack(stack, false)]

			ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "panic_recovered",
				slog.Any("error", recovered),
				slog.String("stack", string(stack)),
			)

			writeError(writer, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
		}()

		next.ServeHTTP(writer, request)
	})
}

// RealIP returns the client address, preferring proxy headers.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}

// writeError writes the error envelope without depending on respond, which
// needs a logger the chain may not have installed yet.
func writeError(writer http.ResponseWriter, status int, code, message string) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]string{
		constants.FieldCode:  code,
		constants.FieldError: message,
	})
}
