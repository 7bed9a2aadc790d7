package repository

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"go_5_wobushizi/internal/model"

	slogGorm "github.com/orandin/slog-gorm" // slogGormはエイリアス
	"gorm.io/driver/postgres"               // postgresドライバ
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB は driver ("postgres" または "sqlite") に応じて接続する
func NewDB(driver, databaseURL string, appLogger *slog.Logger) (*gorm.DB, error) {

	// === slog を利用する GORM Logger の設定 ===
	var gormLogLevel gormlogger.LogLevel
	// APP_ENV によって GORM のログレベルを切り替え
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	} else {
		gormLogLevel = gormlogger.Warn
	}

	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond), // 遅いクエリの閾値
	)
	finalGormLogger := slogGormLogger.LogMode(gormLogLevel)

	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case "", "postgres":
		dialector = postgres.Open(databaseURL)
	case "sqlite":
		dialector = sqlite.Open(databaseURL)
	default:
		return nil, fmt.Errorf("repository.NewDB: unsupported driver %q", driver)
	}

	// === GORM 接続設定 ===
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: finalGormLogger,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err), slog.String("driver", driver))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	// Pingで接続確認
	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close() // Ping失敗時はここでClose
		return nil, err
	}

	// コネクションプールの設定
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	appLogger.Info("Database connection established with GORM", slog.String("driver", driver))

	return db, nil
}

// Models はマイグレーション対象のテーブル
func Models() []interface{} {
	return []interface{}{
		&model.Profile{},
		&model.LoginToken{},
		&model.CharacterState{},
		&model.LogEvent{},
		&model.LogEventItem{},
	}
}

// AutoMigrate はテーブルを作成・更新する
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("repository.AutoMigrate: %w", err)
	}
	return nil
}
