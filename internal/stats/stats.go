// Package stats は状態のスナップショットから集計値を毎回作り直す。
package stats

import (
	"sort"
	"strconv"

	"go_5_wobushizi/internal/hanzi"
	"go_5_wobushizi/internal/model"
)

const UnknownBucket = "unknown"

// NewHskCounts は 1〜6 と unknown をすべて 0 で持つ集計を返す。
func NewHskCounts() model.HskCounts {
	counts := make(model.HskCounts, 7)
	for lv := 1; lv <= 6; lv++ {
		counts[strconv.Itoa(lv)] = 0
	}
	counts[UnknownBucket] = 0
	return counts
}

// BucketKey は HSK レベルの集計キー。1〜6 以外は unknown。
func BucketKey(level *int) string {
	if level == nil || *level < 1 || *level > 6 {
		return UnknownBucket
	}
	return strconv.Itoa(*level)
}

// CountHskLevels は各行の HSK レベルを数える。
func CountHskLevels(levels []*int) model.HskCounts {
	counts := NewHskCounts()
	for _, lv := range levels {
		counts[BucketKey(lv)]++
	}
	return counts
}

// CountCharacters は文字ごとにメタデータを引いて HSK レベルを数える。表にない字は unknown。
func CountCharacters(idx *hanzi.Index, chars []string) model.HskCounts {
	levels := make([]*int, 0, len(chars))
	for _, ch := range chars {
		var lv *int
		if e, ok := idx.Lookup(ch); ok {
			lv = e.HskLevel
		}
		levels = append(levels, lv)
	}
	return CountHskLevels(levels)
}

// KnownCount は status が known の行数
func KnownCount(states []model.CharacterState) int {
	n := 0
	for _, s := range states {
		if s.Status == model.StatusKnown {
			n++
		}
	}
	return n
}

// CharactersWithStatus は指定した状態の文字を返す。status が空なら全件。
func CharactersWithStatus(states []model.CharacterState, status model.CharacterStatus) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		if status == "" || s.Status == status {
			out = append(out, s.Character)
		}
	}
	return out
}

// TotalHskCounts は表に含まれる正規形の文字だけを数える。起動時に一度だけ呼ぶ想定。
func TotalHskCounts(idx *hanzi.Index) model.HskCounts {
	entries := hanzi.DedupByCharacter(idx.All())
	levels := make([]*int, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		if idx.Canonicalize(e.Character) != e.Character {
			continue
		}
		levels = append(levels, e.HskLevel)
	}
	return CountHskLevels(levels)
}

// CrossedMilestones は prev < t <= now を満たす閾値を昇順で返す。
func CrossedMilestones(prev, now int, thresholds []int) []int {
	var out []int
	for _, t := range thresholds {
		if prev < t && t <= now {
			out = append(out, t)
		}
	}
	sort.Ints(out)
	return out
}
