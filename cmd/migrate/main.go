// cmd/migrate/main.go
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"go_5_wobushizi/internal/bootstrap"
	"go_5_wobushizi/internal/config"
	"go_5_wobushizi/internal/repository"
)

// リモート保存用のテーブルを作成・更新する。API サーバーは起動時にマイグレーションしない。
func main() {
	if err := config.LoadConfig("configs"); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	cfg := &config.Cfg

	logger := bootstrap.NewLogger(os.Stderr, cfg.Log.Level, os.Getenv("APP_ENV"))
	slog.SetDefault(logger)

	if cfg.Database.URL == "" {
		log.Fatal("database.url (DATABASE_URL) is empty, nothing to migrate")
	}

	db, err := repository.NewDB(cfg.Database.Driver, cfg.Database.URL, logger)
	if err != nil {
		log.Fatalf("Failed to connect database using GORM: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB: %v", err)
	}
	defer sqlDB.Close()

	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	// 作成したテーブルの行数を確認用に出す
	for _, m := range repository.Models() {
		var count int64
		if err := db.Model(m).Count(&count).Error; err != nil {
			log.Printf("Failed to count rows for %T: %v", m, err)
			continue
		}
		fmt.Printf("%-24s %d rows\n", tableName(m), count)
	}
	fmt.Println("Auto migration completed.")
}

func tableName(m interface{}) string {
	if t, ok := m.(interface{ TableName() string }); ok {
		return t.TableName()
	}
	return fmt.Sprintf("%T", m)
}
