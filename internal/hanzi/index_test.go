// internal/hanzi/index_test.go
package hanzi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

// 衝突を意図的に含む小さな表
func collisionEntries() []Entry {
	return []Entry{
		{Character: "爱", TraditionalCharacter: "愛", AlternateCharacters: PipeList{"愛"}, HskLevel: intPtr(1), Frequency: intPtr(10)},
		// 繁体字を持たない行が "干" を異体字として主張する
		{Character: "乾", AlternateCharacters: PipeList{"干"}},
		// 繁体字を持つ行が "乾" を異体字として主張する (4点 > 乾 自身の2点)
		{Character: "干", TraditionalCharacter: "幹", AlternateCharacters: PipeList{"乾", "幹"}, Frequency: intPtr(300)},
		// 同点の取り合いは先に登録した行が残る
		{Character: "甲", AlternateCharacters: PipeList{"丙"}},
		{Character: "乙", AlternateCharacters: PipeList{"丙"}},
		{Character: "我", HskLevel: intPtr(1), Frequency: intPtr(5)},
	}
}

func TestIndex_Canonicalize(t *testing.T) {
	idx := NewIndex(collisionEntries())

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "正常系: 簡体字はそのまま", input: "爱", want: "爱"},
		{name: "正常系: 繁体字は簡体字へ", input: "愛", want: "爱"},
		{name: "正常系: 異体字は所有する行へ", input: "幹", want: "干"},
		{name: "衝突: 繁体字を持つ行が自己参照の低い行に勝つ", input: "乾", want: "干"},
		{name: "衝突: 自分自身の行は繁体字なしの主張に負けない", input: "干", want: "干"},
		{name: "衝突: 同点なら先の行", input: "丙", want: "甲"},
		{name: "表にない字はそのまま返す", input: "龘", want: "龘"},
		{name: "漢字以外もそのまま", input: "a", want: "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idx.Canonicalize(tt.input))
		})
	}
}

func TestIndex_CanonicalizeIdempotent(t *testing.T) {
	idx := NewIndex(collisionEntries())
	inputs := []string{"爱", "愛", "乾", "干", "幹", "丙", "甲", "乙", "我", "龘", ""}
	for _, x := range inputs {
		once := idx.Canonicalize(x)
		assert.Equal(t, once, idx.Canonicalize(once), "input %q", x)
	}
}

func TestIndex_RowsMapToThemselvesUnlessOverridden(t *testing.T) {
	idx := NewIndex(collisionEntries())
	overridden := map[string]bool{}
	for _, c := range idx.Collisions() {
		if c.Winner != c.Variant {
			overridden[c.Variant] = true
		}
	}
	for _, e := range idx.All() {
		if overridden[e.Character] {
			assert.NotEqual(t, e.Character, idx.Canonicalize(e.Character))
			continue
		}
		assert.Equal(t, e.Character, idx.Canonicalize(e.Character))
	}
	assert.True(t, overridden["乾"])
}

// 行Aの異体字 X -> 行A の文字 -> 行B と連鎖するとき、X は行Bに寄せる
func TestIndex_CanonicalizeFollowsChain(t *testing.T) {
	idx := NewIndex([]Entry{
		// 繁体字なしの行。自分の文字 "丑" は下の行に取られる
		{Character: "丑", AlternateCharacters: PipeList{"丒"}},
		// 繁体字を持つ行が "丑" を異体字として主張する (4点 > 丑 自身の2点)
		{Character: "戊", TraditionalCharacter: "戌", AlternateCharacters: PipeList{"戌", "丑"}},
	})

	tests := []struct {
		input string
		want  string
	}{
		{input: "丒", want: "戊"},
		{input: "丑", want: "戊"},
		{input: "戌", want: "戊"},
		{input: "戊", want: "戊"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := idx.Canonicalize(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, idx.Canonicalize(got))
		})
	}

	// Lookup は正規形の完全一致を優先するので "丑" の行そのものが引ける
	e, ok := idx.Lookup("丑")
	require.True(t, ok)
	assert.Equal(t, "丑", e.Character)

	// 異体字は連鎖の先の行
	e, ok = idx.Lookup("丒")
	require.True(t, ok)
	assert.Equal(t, "戊", e.Character)

	require.Len(t, idx.Collisions(), 1)
	assert.Equal(t, Collision{Variant: "丑", Winner: "戊", Claimers: []string{"丑", "戊"}}, idx.Collisions()[0])
}

func TestIndex_Collisions(t *testing.T) {
	idx := NewIndex(collisionEntries())
	got := idx.Collisions()

	byVariant := map[string]Collision{}
	for _, c := range got {
		byVariant[c.Variant] = c
	}
	require.Contains(t, byVariant, "乾")
	assert.Equal(t, "干", byVariant["乾"].Winner)
	assert.ElementsMatch(t, []string{"乾", "干"}, byVariant["乾"].Claimers)

	require.Contains(t, byVariant, "丙")
	assert.Equal(t, []string{"甲", "乙"}, byVariant["丙"].Claimers)

	// 自分の繁体字と異体字の重複は衝突ではない
	assert.NotContains(t, byVariant, "愛")
}

func TestIndex_Lookup(t *testing.T) {
	idx := NewIndex(collisionEntries())

	e, ok := idx.Lookup("爱")
	require.True(t, ok)
	assert.Equal(t, "爱", e.Character)

	e, ok = idx.Lookup("愛")
	require.True(t, ok)
	assert.Equal(t, "爱", e.Character)

	// 正規形の完全一致が字形の索引より優先される
	e, ok = idx.Lookup("乾")
	require.True(t, ok)
	assert.Equal(t, "乾", e.Character)

	_, ok = idx.Lookup("龘")
	assert.False(t, ok)
}

func TestIndex_AllKeepsDatasetOrder(t *testing.T) {
	entries := collisionEntries()
	idx := NewIndex(entries)
	all := idx.All()
	require.Len(t, all, len(entries))
	for i := range entries {
		assert.Equal(t, entries[i].Character, all[i].Character)
	}
	assert.Equal(t, len(entries), idx.Len())
}

func TestIndex_CanonicalizeAll(t *testing.T) {
	idx := NewIndex(collisionEntries())
	got := idx.CanonicalizeAll([]string{"愛", "我", "爱", "幹", "干"})
	assert.Equal(t, []string{"爱", "我", "干"}, got)
}

func TestIndex_Nil(t *testing.T) {
	var idx *Index
	assert.Equal(t, "爱", idx.Canonicalize("爱"))
	_, ok := idx.Lookup("爱")
	assert.False(t, ok)
	assert.Equal(t, 0, idx.Len())
}

// 同梱データの衝突が想定どおりに解決されているかを確認する
func TestBundledDataset_Validation(t *testing.T) {
	path := filepath.Join("..", "..", "data", "hanzidb.json")
	if _, err := os.Stat(path); err != nil {
		t.Skip("bundled dataset not found")
	}
	entries, err := LoadDataset(path)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	idx := NewIndex(entries)
	for _, e := range idx.All() {
		c := idx.Canonicalize(e.Character)
		assert.Equal(t, c, idx.Canonicalize(c), "not idempotent for %q", e.Character)
		if e.HasTraditional() {
			assert.Equal(t, e.Character, c, "row with traditional form must own itself: %q", e.Character)
			assert.Equal(t, e.Character, idx.Canonicalize(e.TraditionalCharacter))
		}
	}

	for _, c := range idx.Collisions() {
		// 3行以上が同じ字形を取り合うケースはスコアの近似が効かない可能性がある
		assert.LessOrEqual(t, len(c.Claimers), 2, "three-way collision on %q: %v", c.Variant, c.Claimers)
	}
	assert.Equal(t, "爱", idx.Canonicalize("愛"))
	assert.Equal(t, "干", idx.Canonicalize("乾"))
}
