// Package store は文字ごとの学習状態を読み書きする。
// 端末ローカル (diskv) とリモート DB (gorm) の2つの実装があり、どちらも正規化済みの文字だけを保存する。
package store

import (
	"context"
	"sort"
	"time"

	"go_5_wobushizi/internal/hanzi"
	"go_5_wobushizi/internal/model"
)

// StateStore は1ユーザー (または1端末) 分の状態を扱う。
type StateStore interface {
	// GetStatus は存在する行だけを正規形をキーにして返す。
	GetStatus(ctx context.Context, chars []string) (map[string]model.CharacterState, error)
	// GetByStatus は中国語の照合順で並べて返す。
	GetByStatus(ctx context.Context, status model.CharacterStatus) ([]model.CharacterState, error)
	GetAll(ctx context.Context) ([]model.CharacterState, error)
	SetStatus(ctx context.Context, character string, status model.CharacterStatus, at time.Time) (*model.CharacterState, error)
	// ApplyLogBatch は状態の更新とイベントの記録をまとめて行う。途中の状態は呼び出し側から見えない。
	ApplyLogBatch(ctx context.Context, batch LogBatch) (*model.LogEvent, error)
	// ListEvents は新しい順。limit <= 0 なら全件。
	ListEvents(ctx context.Context, limit int) ([]model.LogEvent, error)
	ResetAll(ctx context.Context) error
	UserID() string
}

// LogBatch は確認画面で「記録」を押したときの入力
type LogBatch struct {
	SourceText  string
	UniqueChars []string
	Known       map[string]bool
	Selected    map[string]bool
	At          time.Time
}

// NewSet はスライスを集合にする
func NewSet(chars []string) map[string]bool {
	set := make(map[string]bool, len(chars))
	for _, ch := range chars {
		set[ch] = true
	}
	return set
}

// PlannedChange は正規形1文字に対する更新内容
type PlannedChange struct {
	Character    string
	Status       model.CharacterStatus
	Action       model.LogAction
	AlreadyKnown bool
}

// PlanLogBatch は入力字形を正規形ごとにまとめ、状態と記録内容を決める。
//   - 字形のどれかが既知なら alreadyKnown
//   - 字形のどれかが選択されていなければ study (選択解除が優先)
//   - study なら queued_study、既知なら skipped、それ以外は logged_known
//
// 結果は正規形の初出順で、正規形ごとに1件。
func PlanLogBatch(idx *hanzi.Index, batch LogBatch) []PlannedChange {
	type group struct {
		alreadyKnown bool
		selected     int
		deselected   int
	}
	order := make([]string, 0, len(batch.UniqueChars))
	groups := make(map[string]*group, len(batch.UniqueChars))

	for _, glyph := range batch.UniqueChars {
		c := idx.Canonicalize(glyph)
		g, ok := groups[c]
		if !ok {
			g = &group{}
			groups[c] = g
			order = append(order, c)
		}
		if batch.Known[glyph] || batch.Known[c] {
			g.alreadyKnown = true
		}
		if batch.Selected[glyph] {
			g.selected++
		} else {
			g.deselected++
		}
	}

	plan := make([]PlannedChange, 0, len(order))
	for _, c := range order {
		g := groups[c]
		change := PlannedChange{Character: c, Status: model.StatusKnown, AlreadyKnown: g.alreadyKnown}
		switch {
		case g.deselected > 0:
			change.Status = model.StatusStudy
			change.Action = model.ActionQueuedStudy
		case g.alreadyKnown:
			change.Action = model.ActionSkipped
		default:
			change.Action = model.ActionLoggedKnown
		}
		plan = append(plan, change)
	}
	return plan
}

// SortByCharacter は中国語の照合順で並べる。
func SortByCharacter(states []model.CharacterState) {
	c := hanzi.NewCollator()
	sort.SliceStable(states, func(i, j int) bool {
		return hanzi.CompareChars(c, states[i].Character, states[j].Character) < 0
	})
}

// SortEventsNewestFirst は created_at の降順に並べる。
func SortEventsNewestFirst(events []model.LogEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
}

func nowOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
