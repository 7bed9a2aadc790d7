package hanzi

import (
	"encoding/json"
	"strings"
)

// Entry は文字メタデータ表の1行。起動時に一度だけ読み込まれ、以降は変更しない。
type Entry struct {
	Character             string   `json:"character"`
	TraditionalCharacter  string   `json:"traditional_character,omitempty"`
	AlternateCharacters   PipeList `json:"alternate_characters,omitempty"`
	Pinyin                string   `json:"pinyin,omitempty"`
	PinyinAlternates      string   `json:"pinyin_alternates,omitempty"`
	CommonWord1           string   `json:"common_word_1,omitempty"`
	CommonWord1Pinyin     string   `json:"common_word_1_pinyin,omitempty"`
	CommonWord1Definition string   `json:"common_word_1_definition,omitempty"`
	CommonWord2           string   `json:"common_word_2,omitempty"`
	CommonWord2Pinyin     string   `json:"common_word_2_pinyin,omitempty"`
	CommonWord2Definition string   `json:"common_word_2_definition,omitempty"`
	Definition            string   `json:"definition,omitempty"`
	HskLevel              *int     `json:"hsk_level,omitempty"`
	Frequency             *int     `json:"frequency,omitempty"`
	Radical               string   `json:"radical,omitempty"`
	RadicalCode           *float64 `json:"radical_code,omitempty"`
	StrokeCount           *int     `json:"stroke_count,omitempty"`
	GeneralStandardNumber *int     `json:"general_standard_num,omitempty"`
}

// HasTraditional は繁体字が簡体字と異なる場合のみ true
func (e *Entry) HasTraditional() bool {
	return e.TraditionalCharacter != "" && e.TraditionalCharacter != e.Character
}

// HasVariants は繁体字か異体字を持つ行かどうか
func (e *Entry) HasVariants() bool {
	return e.HasTraditional() || len(e.AlternateCharacters) > 0
}

// HskBucket は 1〜6 の HSK レベルを返す。範囲外や未設定は 0。
func (e *Entry) HskBucket() int {
	if e == nil || e.HskLevel == nil {
		return 0
	}
	if lv := *e.HskLevel; lv >= 1 && lv <= 6 {
		return lv
	}
	return 0
}

// PipeList は保存形式では "|" 区切りの文字列、メモリ上では順序付きリスト。
type PipeList []string

func ParsePipeList(raw string) PipeList {
	var out PipeList
	for _, part := range strings.Split(raw, "|") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (p PipeList) String() string {
	return strings.Join(p, "|")
}

func (p PipeList) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PipeList) UnmarshalJSON(data []byte) error {
	// 配列でも受け付ける
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*p = ParsePipeList(strings.Join(list, "|"))
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = ParsePipeList(raw)
	return nil
}
