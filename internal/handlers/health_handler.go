package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go_5_wobushizi/internal/middleware"
	"go_5_wobushizi/internal/webutil"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthResponse struct {
	Status     string `json:"status"`
	Characters int    `json:"characters"`
	Database   string `json:"database"`
	Redis      string `json:"redis"`
}

// HealthHandler は任意の依存先 (DB, Redis) への疎通を確かめる。nil の依存先は "disabled"。
type HealthHandler struct {
	db         *gorm.DB
	redis      *redis.Client
	characters int
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client, characters int) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, characters: characters}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	res := HealthResponse{Status: "ok", Characters: h.characters, Database: "disabled", Redis: "disabled"}
	code := http.StatusOK

	if h.db != nil {
		res.Database = "ok"
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			logger.Error("Health check failed: could not ping DB", slog.Any("error", err))
			res.Database = "unavailable"
			res.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}
	if h.redis != nil {
		res.Redis = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			// 節目フラグが使えないだけなので 200 のまま
			logger.Warn("Health check: redis ping failed", slog.Any("error", err))
			res.Redis = "unavailable"
			res.Status = "degraded"
		}
	}

	webutil.RespondWithJSON(w, code, res, logger)
}
