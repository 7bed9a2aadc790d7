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

type MasterListHandler struct {
	service service.MasterListService
}

func NewMasterListHandler(s service.MasterListService) *MasterListHandler {
	return &MasterListHandler{service: s}
}

// Search は GET /master のクエリ文字列で一覧を検索する
func (h *MasterListHandler) Search(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "MasterSearch"))

	query, err := parseMasterListQuery(r)
	if err != nil {
		logger.Warn("Invalid master list query", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	if err := webutil.ValidateStruct(query); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	res, err := h.service.Search(r.Context(), query)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, res, logger)
}

func parseMasterListQuery(r *http.Request) (*model.MasterListQuery, error) {
	q := r.URL.Query()
	query := &model.MasterListQuery{
		Query:  q.Get("q"),
		Status: q.Get("status"),
		Hsk:    q.Get("hsk"),
		Sort:   q.Get("sort"),
	}

	if raw := q.Get("variants_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, model.NewAppError("VALIDATION_ERROR", "variants_onlyはtrueかfalseで指定してください。", "variants_only", model.ErrInvalidInput)
		}
		query.VariantsOnly = v
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, model.NewAppError("VALIDATION_ERROR", "limitは整数で指定してください。", "limit", model.ErrInvalidInput)
		}
		query.Limit = n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, model.NewAppError("VALIDATION_ERROR", "offsetは0以上の整数で指定してください。", "offset", model.ErrInvalidInput)
		}
		query.Offset = n
	}
	return query, nil
}

// ExportCSV は拡張 CSV をダウンロードさせる。認証不要。
func (h *MasterListHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "ExportCSV"))

	body, err := h.service.ExportCSV(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="master-list.csv"`)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.Warn("Failed to write CSV response", slog.Any("error", err))
	}
}
