// Package bootstrap は API サーバーと CLI が共通で使う起動処理をまとめる。
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"go_5_wobushizi/internal/hanzi"

	"github.com/lmittmann/tint"
	"github.com/mitchellh/go-homedir"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// ParseLevel は設定ファイルのログレベルを slog のレベルにする。不明なら Info と false。
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// NewLogger は APP_ENV=dev なら tint、それ以外は JSON のロガーを作る
func NewLogger(w io.Writer, level string, appEnv string) *slog.Logger {
	logLevel := new(slog.LevelVar)
	lv, ok := ParseLevel(level)
	logLevel.Set(lv)

	var handler slog.Handler
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}

	logger := slog.New(handler)
	if !ok {
		logger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", level))
	}
	return logger
}

// Dataset は起動時に読み込む文字表と配布用 CSV
type Dataset struct {
	Index *hanzi.Index
	CSV   []byte
}

// LoadDataset は JSON の文字表と CSV を並行して読む。CSV は任意で、なければ nil のまま。
func LoadDataset(ctx context.Context, jsonPath, csvPath string, logger *slog.Logger) (*Dataset, error) {
	var (
		entries []hanzi.Entry
		raw     []byte
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = hanzi.LoadDataset(jsonPath)
		return err
	})
	if csvPath != "" {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b, err := os.ReadFile(csvPath)
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("Enhanced CSV not found, it will be generated from the dataset", slog.String("path", csvPath))
				return nil
			}
			if err != nil {
				return fmt.Errorf("bootstrap.LoadDataset: read csv: %w", err)
			}
			raw = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := hanzi.NewIndex(entries)
	collisions := idx.Collisions()
	for _, c := range collisions {
		logger.Debug("Variant claimed by more than one character",
			slog.String("variant", c.Variant),
			slog.String("winner", c.Winner),
			slog.Any("claimers", c.Claimers))
	}
	logger.Info("Dataset loaded",
		slog.Int("characters", idx.Len()),
		slog.Int("collisions", len(collisions)),
		slog.Bool("csv", raw != nil))

	return &Dataset{Index: idx, CSV: raw}, nil
}

// ExpandDataDir は ~ を含むデータディレクトリをホームディレクトリ基準に展開する
func ExpandDataDir(dir string) (string, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf("bootstrap.ExpandDataDir(%s): %w", dir, err)
	}
	return expanded, nil
}

// NewRedisClient は Redis に接続する。Ping に失敗しても起動は続け、節目フラグの読み書きが警告になるだけ。
func NewRedisClient(ctx context.Context, addr string, logger *slog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis ping failed, milestone flags may be unavailable", slog.String("addr", addr), slog.Any("error", err))
	} else {
		logger.Info("Redis connection established", slog.String("addr", addr))
	}
	return client
}
