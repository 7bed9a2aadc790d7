package hanzi

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadDataset は JSON 形式の文字表を読み込む。
func LoadDataset(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("hanzi.LoadDataset: %w", err)
	}
	defer f.Close()

	entries, err := ParseDataset(f)
	if err != nil {
		return nil, fmt.Errorf("hanzi.LoadDataset(%s): %w", path, err)
	}
	return entries, nil
}

// ParseDataset は character が空の行を捨て、残りを表の順序のまま返す。
func ParseDataset(r io.Reader) ([]Entry, error) {
	var raw []Entry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(raw))
	for _, e := range raw {
		e.Character = strings.TrimSpace(e.Character)
		if e.Character == "" {
			continue
		}
		e.TraditionalCharacter = strings.TrimSpace(e.TraditionalCharacter)
		if e.TraditionalCharacter == e.Character {
			e.TraditionalCharacter = ""
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// DedupByCharacter は同じ文字の行を1つにまとめる。頻度順位が小さい方を残し、出現順は保つ。
func DedupByCharacter(entries []Entry) []Entry {
	pos := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		i, seen := pos[e.Character]
		if !seen {
			pos[e.Character] = len(out)
			out = append(out, e)
			continue
		}
		if FrequencyRank(&e) < FrequencyRank(&out[i]) {
			out[i] = e
		}
	}
	return out
}

const unrankedFrequency = int(^uint(0) >> 1)

// FrequencyRank は未設定を最後尾として扱う順位を返す。
func FrequencyRank(e *Entry) int {
	if e == nil || e.Frequency == nil {
		return unrankedFrequency
	}
	return *e.Frequency
}
