package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"go_5_wobushizi/internal/hanzi"
	"go_5_wobushizi/internal/middleware"
	"go_5_wobushizi/internal/model"
	"go_5_wobushizi/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func masterCharacters(res *model.MasterListResponse) []string {
	out := make([]string, 0, len(res.Items))
	for _, item := range res.Items {
		out = append(out, item.Character)
	}
	return out
}

func TestMasterListService_Search(t *testing.T) {
	idx := testIndex()
	sessions := newLocalSessions(t, idx)
	ctx := deviceContext(middleware.DefaultDeviceID)

	tracker := service.NewTrackerService(sessions, idx, testConfig())
	_, err := tracker.SetStatus(ctx, "我", model.StatusKnown)
	require.NoError(t, err)
	_, err = tracker.SetStatus(ctx, "猫", model.StatusStudy)
	require.NoError(t, err)

	master := service.NewMasterListService(sessions, idx, nil)

	tests := []struct {
		name      string
		query     model.MasterListQuery
		expected  []string
		wantTotal int
	}{
		{
			name:      "既定は頻度の昇順で順位なしは最後",
			query:     model.MasterListQuery{},
			expected:  []string{"的", "我", "中", "爱", "猫", "白", "学"},
			wantTotal: 7,
		},
		{
			name:      "頻度の降順",
			query:     model.MasterListQuery{Sort: "frequency_desc"},
			expected:  []string{"白", "猫", "爱", "中", "我", "的", "学"},
			wantTotal: 7,
		},
		{
			name:      "HSKの昇順は同順位を照合順で",
			query:     model.MasterListQuery{Sort: "hsk_asc"},
			expected:  []string{"爱", "的", "猫", "我", "学", "白", "中"},
			wantTotal: 7,
		},
		{
			name:      "ピンインは音節単位で一致",
			query:     model.MasterListQuery{Query: "ai"},
			expected:  []string{"爱"},
			wantTotal: 1,
		},
		{
			name:      "声調付きのピンイン",
			query:     model.MasterListQuery{Query: "bái"},
			expected:  []string{"白"},
			wantTotal: 1,
		},
		{
			name:      "別の読みでも一致",
			query:     model.MasterListQuery{Query: "di"},
			expected:  []string{"的"},
			wantTotal: 1,
		},
		{
			name:      "英語の意味で検索",
			query:     model.MasterListQuery{Query: "cat"},
			expected:  []string{"猫"},
			wantTotal: 1,
		},
		{
			name:      "繁体字で検索",
			query:     model.MasterListQuery{Query: "貓"},
			expected:  []string{"猫"},
			wantTotal: 1,
		},
		{
			name:      "状態で絞り込み",
			query:     model.MasterListQuery{Status: "known"},
			expected:  []string{"我"},
			wantTotal: 1,
		},
		{
			name:      "未登録だけ",
			query:     model.MasterListQuery{Status: "none", Hsk: "2"},
			expected:  []string{"中", "白"},
			wantTotal: 2,
		},
		{
			name:      "異体字のある字だけ",
			query:     model.MasterListQuery{VariantsOnly: true, Sort: "character"},
			expected:  []string{"爱", "猫", "学"},
			wantTotal: 3,
		},
		{
			name:      "ページ分割",
			query:     model.MasterListQuery{Limit: 2, Offset: 1},
			expected:  []string{"我", "中"},
			wantTotal: 7,
		},
		{
			name:      "範囲外のオフセット",
			query:     model.MasterListQuery{Offset: 100},
			expected:  []string{},
			wantTotal: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := master.Search(ctx, &tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.Total)
			assert.Equal(t, tt.expected, masterCharacters(res))
		})
	}
}

func TestMasterListService_SearchAttachesStatus(t *testing.T) {
	idx := testIndex()
	sessions := newLocalSessions(t, idx)
	ctx := deviceContext(middleware.DefaultDeviceID)

	tracker := service.NewTrackerService(sessions, idx, testConfig())
	_, err := tracker.SetStatus(ctx, "愛", model.StatusKnown)
	require.NoError(t, err)

	res, err := service.NewMasterListService(sessions, idx, nil).Search(ctx, &model.MasterListQuery{Query: "爱"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	require.NotNil(t, res.Items[0].Status)
	assert.Equal(t, model.StatusKnown, *res.Items[0].Status)
}

func TestMasterListService_ExportCSV(t *testing.T) {
	idx := testIndex()
	sessions := newLocalSessions(t, idx)

	t.Run("読み込んだCSVをそのまま返す", func(t *testing.T) {
		raw := []byte("character,pinyin\n我,wǒ\n")
		got, err := service.NewMasterListService(sessions, idx, raw).ExportCSV(context.Background())
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	})

	t.Run("CSVがなければ表から作る", func(t *testing.T) {
		got, err := service.NewMasterListService(sessions, idx, nil).ExportCSV(context.Background())
		require.NoError(t, err)

		records, err := csv.NewReader(bytes.NewReader(got)).ReadAll()
		require.NoError(t, err)
		// ヘッダー + 7 行
		assert.Len(t, records, 8)
		assert.Equal(t, hanzi.EnhancedHeader, records[0])
	})
}
