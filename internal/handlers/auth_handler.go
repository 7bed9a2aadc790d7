package handlers

import (
	"net/http"

	"go_5_wobushizi/internal/middleware"
	"go_5_wobushizi/internal/model"
	"go_5_wobushizi/internal/service"
	"go_5_wobushizi/internal/webutil"

	"github.com/google/uuid"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// RequestMagicLink はサインイン用リンクをメールで送る。
// アカウントの有無が分からないよう、成功時は常に同じ文面を返す。
func (h *AuthHandler) RequestMagicLink(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.MagicLinkRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	if err := h.service.RequestMagicLink(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.MessageResponse{Message: service.MagicLinkSentMessage}, logger)
}

// Verify はリンクのトークンを JWT に交換する
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.VerifyRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	res, err := h.service.VerifyMagicLink(r.Context(), &req)
	if err != nil {
		// サービス層でログは出力済み
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, res, logger)
}

// GetMe はサインイン中のプロフィールを返す。RequireRemote の後ろで使う。
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	identity := middleware.GetIdentity(r.Context())
	profileID, err := uuid.Parse(identity.UserID)
	if err != nil {
		appErr := model.NewAppError("UNAUTHORIZED", "サインインが必要です。", "", model.ErrUnauthorized)
		webutil.HandleError(w, logger, appErr)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), profileID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, &model.ProfileResponse{ID: profile.ID, Email: profile.Email}, logger)
}
