// internal/middleware/logger.go
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// accessLevel は 5xx を Error、4xx を Warn にする
func accessLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// routePattern は chi が一致させたルート。文字を含む生のパスより集計しやすい。
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// NewStructuredLogger はアクセスログを1リクエスト1行で出す。
// リクエストID付きのロガーをコンテキストに入れるので、後続は GetLogger で使える。
func NewStructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLogger := logger.With(slog.String("request_id", middleware.GetReqID(r.Context())))
			ctx := WithLogger(r.Context(), reqLogger)
			r = r.WithContext(ctx)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				reqLogger.LogAttrs(ctx, accessLevel(status), "Request completed",
					slog.String("method", r.Method),
					slog.String("route", routePattern(r)),
					slog.String("remote_addr", r.RemoteAddr),
					slog.Int("status", status),
					slog.Int("bytes_out", ww.BytesWritten()),
					slog.Duration("latency", time.Since(start)),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
