// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go_5_wobushizi/internal/bootstrap"
	"go_5_wobushizi/internal/config"
	"go_5_wobushizi/internal/handlers"
	"go_5_wobushizi/internal/repository"
	"go_5_wobushizi/internal/service"
	"go_5_wobushizi/internal/store"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 期限切れログイントークンの掃除間隔
const tokenPurgeInterval = time.Hour

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := &config.Cfg

	appEnv := os.Getenv("APP_ENV")
	logger := bootstrap.NewLogger(os.Stderr, cfg.Log.Level, appEnv)
	tempLogger.Info("Logger configured", slog.String("APP_ENV", appEnv), slog.String("level", cfg.Log.Level))
	log.Println("Log Config Loaded...")

	// Configファイルの読み込み完了後、アプリケーション全体のデフォルトロガーを設定
	slog.SetDefault(logger)

	slog.Info("Application starting...", slog.String("version", config.AppVersion))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. 文字表
	dataset, err := bootstrap.LoadDataset(ctx, cfg.Dataset.JSONPath, cfg.Dataset.CSVPath, logger)
	if err != nil {
		slog.Error("Error loading dataset", slog.String("path", cfg.Dataset.JSONPath), slog.Any("error", err))
		os.Exit(1)
	}

	dataDir, err := bootstrap.ExpandDataDir(cfg.Local.DataDir)
	if err != nil {
		slog.Error("Error resolving local data dir", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("Local store directory", slog.String("dir", dataDir))

	// 2. Initialize Database Connection (GORM)。URL がなければ端末ローカルのみで動く
	var db *gorm.DB
	if cfg.Database.URL != "" {
		db, err = repository.NewDB(cfg.Database.Driver, cfg.Database.URL, logger)
		if err != nil {
			slog.Error("Error initializing database", slog.Any("error", err))
			os.Exit(1)
		}
		sqlDB, err := db.DB()
		if err != nil {
			slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := sqlDB.Close(); err != nil {
				slog.Error("Error closing database connection", slog.Any("error", err))
			} else {
				slog.Info("Database connection closed.")
			}
		}()
	} else {
		slog.Warn("Database URL is empty, remote storage and sign-in are disabled")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = bootstrap.NewRedisClient(ctx, cfg.Redis.Addr, logger)
		defer redisClient.Close()
	}

	// 3. Dependency Injection
	selector := store.NewSelector(db, dataset.Index,
		store.NewLocalProvider(dataDir, dataset.Index, logger),
		repository.NewGormCharacterStateRepository(),
		repository.NewGormLogEventRepository(),
		redisClient, logger)

	trackerService := service.NewTrackerService(selector, dataset.Index, cfg)
	masterService := service.NewMasterListService(selector, dataset.Index, dataset.CSV)

	deps := handlers.RouterDeps{
		Tracker: handlers.NewTrackerHandler(trackerService),
		Master:  handlers.NewMasterListHandler(masterService),
		Health:  handlers.NewHealthHandler(db, redisClient, dataset.Index.Len()),
		Config:  cfg,
		Logger:  logger,
	}

	if db != nil {
		mailer, err := service.NewMailer(ctx, cfg)
		if err != nil {
			slog.Error("Error initializing mailer", slog.String("type", cfg.Mailer.Type), slog.Any("error", err))
			os.Exit(1)
		}
		authService := service.NewAuthService(db,
			repository.NewGormProfileRepository(),
			repository.NewGormLoginTokenRepository(),
			mailer, cfg)
		deps.Auth = handlers.NewAuthHandler(authService)
		go purgeTokens(ctx, authService)
	}
	if cfg.Auth.Enabled && cfg.JWT.SecretKey == "" {
		slog.Warn("Auth is enabled but jwt.secret_key is empty, bearer tokens cannot be verified")
	}

	// 4. Setup Router
	r := handlers.NewRouter(deps)

	// 5. Start Server
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port), slog.Bool("auth_enabled", cfg.Auth.Enabled))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
			os.Exit(1) // Listen失敗は致命的
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

// purgeTokens は起動時と一定間隔で期限切れのログイントークンを消す
func purgeTokens(ctx context.Context, authService service.AuthService) {
	ticker := time.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()
	for {
		if _, err := authService.PurgeExpiredTokens(ctx); err != nil && ctx.Err() == nil {
			slog.Warn("Failed to purge expired login tokens", slog.Any("error", err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
