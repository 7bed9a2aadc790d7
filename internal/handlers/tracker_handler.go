package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"go_5_wobushizi/internal/middleware"
	"go_5_wobushizi/internal/model"
	"go_5_wobushizi/internal/service"
	"go_5_wobushizi/internal/webutil"
)

const (
	defaultEventsLimit = 50
	maxEventsLimit     = 500
)

type TrackerHandler struct {
	service service.TrackerService
}

func NewTrackerHandler(s service.TrackerService) *TrackerHandler {
	return &TrackerHandler{service: s}
}

// Review は貼り付けた文章を確認用の一覧にする
func (h *TrackerHandler) Review(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "Review"))

	var req model.ReviewRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	res, err := h.service.Review(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, res, logger)
}

// Log は確認画面の結果を1件のイベントとして記録する
func (h *TrackerHandler) Log(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "Log"))

	var req model.LogRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	res, err := h.service.Log(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, res, logger)
}

func (h *TrackerHandler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "ListCharacters"))

	status := model.CharacterStatus(r.URL.Query().Get("status"))
	rows, err := h.service.ListStates(r.Context(), status)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if rows == nil {
		rows = []model.EnrichedState{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, rows, logger)
}

// GetStatus は指定した文字の状態をまとめて返す。状態のない字は含まない。
func (h *TrackerHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetStatus"))

	var req model.GetStatusRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	states, err := h.service.GetStatus(r.Context(), req.Chars)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, states, logger)
}

func (h *TrackerHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "SetStatus"))

	character := characterParam(r)
	var req model.SetStatusRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	state, err := h.service.SetStatus(r.Context(), character, req.Status)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, state, logger)
}

func (h *TrackerHandler) Events(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "Events"))

	limit := defaultEventsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxEventsLimit {
			appErr := model.NewAppError("VALIDATION_ERROR", "limitは1以上500以下で指定してください。", "limit", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		limit = n
	}

	events, err := h.service.Events(r.Context(), limit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if events == nil {
		events = []model.LogEvent{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, events, logger)
}

func (h *TrackerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "Summary"))

	summary, err := h.service.Summary(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}

func (h *TrackerHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "Lookup"))

	character, err := h.service.Lookup(r.Context(), characterParam(r))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, character, logger)
}

// Reset は持ち主の状態とイベントを全て消す。confirm が必須。
func (h *TrackerHandler) Reset(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "Reset"))

	var req model.ResetRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	if err := h.service.Reset(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
