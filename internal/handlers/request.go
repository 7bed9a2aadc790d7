package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"go_5_wobushizi/internal/model"
	"go_5_wobushizi/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// decodeAndValidate はボディを読み、検証まで行う。失敗時はレスポンスを書いて false を返す。
func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst interface{}) bool {
	if err := webutil.DecodeJSONBody(r, dst); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return false
	}
	if err := webutil.ValidateStruct(dst); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return false
	}
	return true
}

// characterParam はパスの {character} を取り出す。エンコードされたまま届くこともある。
func characterParam(r *http.Request) string {
	raw := chi.URLParam(r, "character")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
