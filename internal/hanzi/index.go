package hanzi

import "sort"

// Index は文字表から組み立てる読み取り専用の索引。
// 構築後は変更しないので複数の goroutine から同時に参照してよい。
type Index struct {
	entries   []Entry
	canonical map[string]int // 簡体字 -> entries の添字
	variants  map[string]int // 任意の字形 -> entries の添字
	scores    map[string]int
	conflicts map[string][]string
}

// Collision は同じ字形を複数の行が取り合った記録
type Collision struct {
	Variant  string
	Winner   string
	Claimers []string
}

// variantScore は字形 key を行 e に割り当てる際の優先度。
// 繁体字を持つ行は +4、行自身の文字が key と一致すれば +2。
func variantScore(e *Entry, key string) int {
	score := 0
	if e.HasTraditional() {
		score += 4
	}
	if e.Character == key {
		score += 2
	}
	return score
}

// NewIndex は字形ごとの正規形を決める。同点なら先に登録された行が残る。
func NewIndex(entries []Entry) *Index {
	idx := &Index{
		entries:   entries,
		canonical: make(map[string]int, len(entries)),
		variants:  make(map[string]int, len(entries)*2),
		scores:    make(map[string]int, len(entries)*2),
		conflicts: make(map[string][]string),
	}

	for i := range entries {
		e := &entries[i]
		if _, dup := idx.canonical[e.Character]; !dup {
			idx.canonical[e.Character] = i
		}
		idx.claim(e.Character, i)
		if e.HasTraditional() {
			idx.claim(e.TraditionalCharacter, i)
		}
		for _, alt := range e.AlternateCharacters {
			idx.claim(alt, i)
		}
	}

	idx.flatten()
	return idx
}

func (idx *Index) claim(key string, i int) {
	if key == "" {
		return
	}
	score := variantScore(&idx.entries[i], key)
	cur, ok := idx.variants[key]
	if !ok {
		idx.variants[key] = i
		idx.scores[key] = score
		return
	}
	if cur == i {
		return
	}
	if len(idx.conflicts[key]) == 0 {
		idx.conflicts[key] = append(idx.conflicts[key], idx.entries[cur].Character)
	}
	idx.conflicts[key] = append(idx.conflicts[key], idx.entries[i].Character)
	if score > idx.scores[key] {
		idx.variants[key] = i
		idx.scores[key] = score
	}
}

// flatten は X -> A, A -> B のような連鎖を X -> B にまとめる。
// 繁体字を持つ行は自分自身を最高点で押さえるので、連鎖は1段で止まる。
func (idx *Index) flatten() {
	for key, i := range idx.variants {
		seen := map[int]bool{i: true}
		for {
			next, ok := idx.variants[idx.entries[i].Character]
			if !ok || seen[next] {
				break
			}
			seen[next] = true
			i = next
		}
		idx.variants[key] = i
	}
}

// Canonicalize は任意の字形を正規の簡体字に寄せる。表にない字はそのまま返す。
func (idx *Index) Canonicalize(ch string) string {
	if idx == nil {
		return ch
	}
	if i, ok := idx.variants[ch]; ok {
		return idx.entries[i].Character
	}
	return ch
}

// CanonicalizeAll は順序を保ったまま正規化し、重複を除く。
func (idx *Index) CanonicalizeAll(chars []string) []string {
	out := make([]string, 0, len(chars))
	seen := make(map[string]struct{}, len(chars))
	for _, ch := range chars {
		c := idx.Canonicalize(ch)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Lookup は正規形の完全一致を優先し、なければ字形の索引を引く。
func (idx *Index) Lookup(ch string) (*Entry, bool) {
	if idx == nil {
		return nil, false
	}
	if i, ok := idx.canonical[ch]; ok {
		return &idx.entries[i], true
	}
	if i, ok := idx.variants[ch]; ok {
		return &idx.entries[i], true
	}
	return nil, false
}

// All は表の順序のまま全行を返す。
func (idx *Index) All() []Entry {
	if idx == nil {
		return nil
	}
	return idx.entries
}

func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// Collisions は複数の行が同じ字形を主張したものを字形順に返す。
func (idx *Index) Collisions() []Collision {
	out := make([]Collision, 0, len(idx.conflicts))
	for key, claimers := range idx.conflicts {
		out = append(out, Collision{
			Variant:  key,
			Winner:   idx.Canonicalize(key),
			Claimers: append([]string(nil), claimers...),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Variant < out[j].Variant })
	return out
}
