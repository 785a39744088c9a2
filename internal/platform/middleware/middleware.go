// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

// Package middleware holds the chi middleware chain of the Books API:
// request IDs, request logging, panic recovery, CORS, rate limiting and
// bearer-token authentication. Each constructor returns a
// func(http.Handler) http.Handler.
package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
	"github.com/taligrayzel/BooksAPI/internal/platform/constants"
	"github.com/taligrayzel/BooksAPI/internal/platform/ctxutil"
	"github.com/taligrayzel/BooksAPI/internal/platform/respond"
	"github.com/taligrayzel/BooksAPI/pkg/uuidv7"
)

// # Request Tracing

// maxRequestIDLen bounds a client-supplied X-Request-ID before it reaches logs.
const maxRequestIDLen = 128

// RequestID echoes a well-formed X-Request-ID or replaces it with a UUIDv7.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if !usableRequestID(requestID) {
				requestID = uuidv7.New()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			ctx := ctxutil.WithRequestID(request.Context(), requestID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func usableRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// # Activity Logging

// statusRecorder captures the response status. RequireAuth records the
// verified user on it so the access line can name who made the request.
type statusRecorder struct {
	http.ResponseWriter
	status int
	userID int64
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// StructuredLogger stores a request-scoped logger in the context and writes
// one http_request_finished line per request. 5xx logs at Error, 4xx at Warn.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
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
			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(recorder, request.WithContext(ctx))

			level := slog.LevelInfo
			switch {
			case recorder.status >= http.StatusInternalServerError:
				level = slog.LevelError
			case recorder.status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			attrs := []slog.Attr{
				slog.Int("status", recorder.status),
				slog.Int64("latency_ms", time.Since(started).Milliseconds()),
			}
			if recorder.userID != 0 {
				attrs = append(attrs, slog.Int64("user_id", recorder.userID))
			}
			requestLogger.LogAttrs(ctx, level, "http_request_finished", attrs...)
		})
	}
}

// # Reliability & Safety

// PanicRecovery turns a handler panic into a logged 500 internal-error
// response. http.ErrAbortHandler is re-raised.
func PanicRecovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
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
					slog.Any("panic", recovered),
					slog.String("stack", string(stack)),
				)

				respond.Error(writer, request, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// AppConfig is the part of the configuration CORS depends on.
type AppConfig interface {
	IsDevelopment() bool
}

// CORS answers cross-origin requests. Development accepts any origin;
// other environments accept only allowedOrigins. Preflight requests end
// here with 204.
func CORS(cfg AppConfig, allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			if cfg.IsDevelopment() || slices.Contains(allowedOrigins, origin) {
				header := writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization, X-Request-ID")
				header.Set("Access-Control-Expose-Headers", "X-Request-ID, Retry-After")
				header.Set("Access-Control-Max-Age", "300")
				header.Add("Vary", constants.HeaderOrigin)
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// # Middleware Helpers

// RealIP returns the client address: X-Real-IP, then the first
// X-Forwarded-For hop, then the connection's remote host.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	return remoteHost(request)
}

// ClientIP is [RealIP] when trustProxy is set, and the connection's remote
// host otherwise.
func ClientIP(request *http.Request, trustProxy bool) string {
	if trustProxy {
		return RealIP(request)
	}
	return remoteHost(request)
}

func remoteHost(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
