package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"go_5_wobushizi/internal/config"
	"go_5_wobushizi/internal/hanzi"
	"go_5_wobushizi/internal/middleware"
	"go_5_wobushizi/internal/model"
	"go_5_wobushizi/internal/store"
)

func intPtr(n int) *int { return &n }

func testIndex() *hanzi.Index {
	return hanzi.NewIndex([]hanzi.Entry{
		{Character: "我", Pinyin: "wǒ", Definition: "I; me", HskLevel: intPtr(1), Frequency: intPtr(9)},
		{Character: "爱", TraditionalCharacter: "愛", AlternateCharacters: hanzi.PipeList{"愛"}, Pinyin: "ài", Definition: "love", HskLevel: intPtr(1), Frequency: intPtr(29)},
		{Character: "的", Pinyin: "de", PinyinAlternates: "dí, dì", Definition: "possessive particle", HskLevel: intPtr(1), Frequency: intPtr(1)},
		{Character: "猫", TraditionalCharacter: "貓", AlternateCharacters: hanzi.PipeList{"貓"}, Pinyin: "māo", Definition: "cat", HskLevel: intPtr(1), Frequency: intPtr(30)},
		{Character: "学", TraditionalCharacter: "學", AlternateCharacters: hanzi.PipeList{"學"}, Pinyin: "xué", Definition: "learn; study", HskLevel: intPtr(1)},
		{Character: "中", Pinyin: "zhōng", Definition: "middle; center", HskLevel: intPtr(2), Frequency: intPtr(14)},
		{Character: "白", Pinyin: "bái", Definition: "white", HskLevel: intPtr(2), Frequency: intPtr(300)},
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:           "wobushizi",
			ProgressTarget: 10,
			Milestones:     []int{2, 3},
		},
	}
}

// newLocalSessions は一時ディレクトリを使う端末ローカルのストアだけを返す
func newLocalSessions(t *testing.T, idx *hanzi.Index) *store.Selector {
	t.Helper()
	local := store.NewLocalProvider(t.TempDir(), idx, discardLogger())
	return store.NewSelector(nil, idx, local, nil, nil, nil, discardLogger())
}

func deviceContext(deviceID string) context.Context {
	ctx := middleware.WithLogger(context.Background(), discardLogger())
	return middleware.WithIdentity(ctx, model.Identity{DeviceID: deviceID})
}
