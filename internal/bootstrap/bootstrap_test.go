package bootstrap

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const datasetJSON = `[
  {"character": "爱", "traditional_character": "愛", "pinyin": "ài", "hsk_level": 1, "frequency": 29},
  {"character": "我", "pinyin": "wǒ", "hsk_level": 1, "frequency": 9},
  {"character": "", "pinyin": "x"}
]`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("本番はJSONで出力", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, "warn", "prod")
		logger.Info("hidden")
		logger.Warn("shown")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, `"msg":"shown"`)
	})

	t.Run("不明なレベルは警告してInfo", func(t *testing.T) {
		var buf bytes.Buffer
		NewLogger(&buf, "loud", "dev")
		assert.Contains(t, buf.String(), "Unknown log level")
	})
}

func TestLoadDataset(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "hanzidb.json", datasetJSON)

	t.Run("JSONとCSVを読む", func(t *testing.T) {
		csvPath := writeFile(t, dir, "enhanced.csv", "character\n我\n")

		ds, err := LoadDataset(context.Background(), jsonPath, csvPath, logger)
		require.NoError(t, err)
		assert.Equal(t, 2, ds.Index.Len())
		assert.Equal(t, "爱", ds.Index.Canonicalize("愛"))
		assert.Equal(t, "character\n我\n", string(ds.CSV))
	})

	t.Run("CSVがなくても起動できる", func(t *testing.T) {
		ds, err := LoadDataset(context.Background(), jsonPath, filepath.Join(dir, "missing.csv"), logger)
		require.NoError(t, err)
		assert.Nil(t, ds.CSV)
	})

	t.Run("JSONがなければエラー", func(t *testing.T) {
		_, err := LoadDataset(context.Background(), filepath.Join(dir, "missing.json"), "", logger)
		require.Error(t, err)
	})

	t.Run("壊れたJSONはエラー", func(t *testing.T) {
		broken := writeFile(t, dir, "broken.json", "{")
		_, err := LoadDataset(context.Background(), broken, "", logger)
		require.Error(t, err)
	})
}

func TestExpandDataDir(t *testing.T) {
	got, err := ExpandDataDir("~/.wobushizi")
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(got, "~"))
	assert.True(t, strings.HasSuffix(got, ".wobushizi"))

	got, err = ExpandDataDir("/var/lib/wobushizi")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/wobushizi", got)
}
