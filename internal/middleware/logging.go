package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// logCtxKey はコンテキストにロガーを格納するためのキーです。
type logCtxKey struct{}

// ログに出すボディの上限
const maxLogBodySizeBytes = 2048

// sensitiveHeaders はログ出力時に値をマスキングするヘッダー名のリストです (小文字で定義)。
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"x-api-key":     true,
	"x-csrf-token":  true,
}

// sensitiveBodyFields は JSON ボディの中でマスキングするキー
var sensitiveBodyFields = map[string]bool{
	"token":        true,
	"access_token": true,
	"email":        true,
}

// responseLogger は http.ResponseWriter をラップし、ステータスコードとレスポンスボディを記録します。
type responseLogger struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func newResponseLogger(w http.ResponseWriter) *responseLogger {
	return &responseLogger{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
		body:           new(bytes.Buffer),
	}
}

func (rl *responseLogger) WriteHeader(statusCode int) {
	rl.statusCode = statusCode
	rl.ResponseWriter.WriteHeader(statusCode)
}

func (rl *responseLogger) Write(b []byte) (int, error) {
	if rl.body.Len() < maxLogBodySizeBytes {
		rl.body.Write(b)
	}
	return rl.ResponseWriter.Write(b)
}

// LoggingMiddleware は Debug レベルのときだけリクエストとレスポンスの中身をログに出す。
// 概要は NewStructuredLogger が出すので、ここでは詳細だけ。
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Value(logCtxKey{}).(*slog.Logger); !ok {
				r = r.WithContext(context.WithValue(r.Context(), logCtxKey{}, logger))
			}
			if !logger.Enabled(r.Context(), slog.LevelDebug) {
				next.ServeHTTP(w, r)
				return
			}
			requestLogger := GetLogger(r.Context())

			var reqBodyBytes []byte
			if r.Body != nil {
				reqBodyBytes, _ = io.ReadAll(r.Body)
				r.Body = io.NopCloser(bytes.NewBuffer(reqBodyBytes))
			}

			rl := newResponseLogger(w)
			next.ServeHTTP(rl, r)

			requestLogger.Debug("Request detail",
				"headers", formatHeaders(r.Header),
				"body", formatBody(r.Header.Get("Content-Type"), reqBodyBytes),
			)
			requestLogger.Debug("Response detail",
				"status", rl.statusCode,
				"headers", formatHeaders(rl.Header()),
				"body", formatBody(rl.Header().Get("Content-Type"), rl.body.Bytes()),
			)
		})
	}
}

// GetLogger はコンテキストから slog.Logger を取得します。
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger はコンテキストにロガーを入れる。CLI から store を使うときなど。
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, logger)
}

// formatHeaders はヘッダー情報をログ出力用に整形・マスキングするヘルパー関数
func formatHeaders(headers http.Header) map[string]string {
	result := make(map[string]string)
	for key, values := range headers {
		lowerKey := strings.ToLower(key)
		if sensitiveHeaders[lowerKey] {
			result[key] = "[SENSITIVE]"
		} else {
			result[key] = strings.Join(values, ", ")
		}
	}
	return result
}

// formatBody は JSON ならマスキングして返し、それ以外は長さだけにする。
func formatBody(contentType string, body []byte) interface{} {
	if len(body) == 0 {
		return ""
	}
	if !strings.HasPrefix(contentType, "application/json") {
		if strings.HasPrefix(contentType, "text/") && len(body) <= maxLogBodySizeBytes {
			return string(body)
		}
		return fmt.Sprintf("[%d bytes, Content-Type: %s]", len(body), contentType)
	}
	if len(body) > maxLogBodySizeBytes {
		return fmt.Sprintf("[JSON body too large to log: %d bytes]", len(body))
	}
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return fmt.Sprintf("[Unparseable JSON body: %d bytes]", len(body))
	}
	return maskSensitiveFields(data)
}

func maskSensitiveFields(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		for key, value := range v {
			if sensitiveBodyFields[strings.ToLower(key)] {
				v[key] = "[MASKED]"
				continue
			}
			v[key] = maskSensitiveFields(value)
		}
		return v
	case []interface{}:
		for i := range v {
			v[i] = maskSensitiveFields(v[i])
		}
		return v
	default:
		return v
	}
}
