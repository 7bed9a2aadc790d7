package hanzi

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// EnhancedHeader は配布用 CSV の列順
var EnhancedHeader = []string{
	"frequency_rank",
	"character",
	"pinyin",
	"pinyin_alternates",
	"common_word_1",
	"common_word_1_pinyin",
	"common_word_1_definition",
	"common_word_2",
	"common_word_2_pinyin",
	"common_word_2_definition",
	"definition",
	"radical",
	"radical_code",
	"stroke_count",
	"hsk_level",
	"general_standard_num",
	"traditional_character",
	"same_simp_trad",
	"alternate_characters",
}

// Conversion は元 CSV から作った JSON 用の行と配布用 CSV の行。
type Conversion struct {
	Entries []Entry
	Rows    [][]string
}

// ConvertCSV は hanzidb 形式の CSV を読み、字形の対応付きの表に変換する。
// 先頭の BOM は読み飛ばす。
func ConvertCSV(r io.Reader) (*Conversion, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && string(b) == "\xef\xbb\xbf" {
		_, _ = br.Discard(3)
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("hanzi.ConvertCSV: read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	if _, ok := cols["character"]; !ok {
		return nil, fmt.Errorf("hanzi.ConvertCSV: missing column %q", "character")
	}

	conv := &Conversion{}
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("hanzi.ConvertCSV: line %d: %w", line, err)
		}
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		character := get("character")
		if character == "" {
			continue
		}
		traditional := get("traditional_character")
		if traditional == character {
			traditional = ""
		}
		alternates := mergeAlternates(character, traditional, get("alternate_characters"))

		frequencyRank := get("frequency_rank")
		if frequencyRank == "" {
			frequencyRank = get("frequency")
		}

		values := map[string]string{
			"frequency_rank":           frequencyRank,
			"character":                character,
			"pinyin":                   get("pinyin"),
			"pinyin_alternates":        get("pinyin_alternates"),
			"common_word_1":            get("common_word_1"),
			"common_word_1_pinyin":     get("common_word_1_pinyin"),
			"common_word_1_definition": get("common_word_1_definition"),
			"common_word_2":            get("common_word_2"),
			"common_word_2_pinyin":     get("common_word_2_pinyin"),
			"common_word_2_definition": get("common_word_2_definition"),
			"definition":               get("definition"),
			"radical":                  get("radical"),
			"radical_code":             get("radical_code"),
			"stroke_count":             get("stroke_count"),
			"hsk_level":                get("hsk_level"),
			"general_standard_num":     get("general_standard_num"),
			"traditional_character":    traditional,
			"same_simp_trad":           get("same_simp_trad"),
			"alternate_characters":     alternates.String(),
		}
		row := make([]string, len(EnhancedHeader))
		for i, name := range EnhancedHeader {
			row[i] = values[name]
		}
		conv.Rows = append(conv.Rows, row)

		conv.Entries = append(conv.Entries, Entry{
			Character:             character,
			TraditionalCharacter:  traditional,
			AlternateCharacters:   alternates,
			Pinyin:                values["pinyin"],
			PinyinAlternates:      values["pinyin_alternates"],
			CommonWord1:           values["common_word_1"],
			CommonWord1Pinyin:     values["common_word_1_pinyin"],
			CommonWord1Definition: values["common_word_1_definition"],
			CommonWord2:           values["common_word_2"],
			CommonWord2Pinyin:     values["common_word_2_pinyin"],
			CommonWord2Definition: values["common_word_2_definition"],
			Definition:            values["definition"],
			HskLevel:              parseLenientInt(values["hsk_level"]),
			Frequency:             parseLenientInt(frequencyRank),
			Radical:               values["radical"],
			RadicalCode:           parseLenientFloat(values["radical_code"]),
			StrokeCount:           parseLenientInt(values["stroke_count"]),
			GeneralStandardNumber: parseLenientInt(values["general_standard_num"]),
		})
	}
	return conv, nil
}

// mergeAlternates は異体字の集合に繁体字を加え、(文字数, 値) の順に並べる。
func mergeAlternates(character, traditional, raw string) PipeList {
	set := make(map[string]struct{})
	for _, v := range ParsePipeList(raw) {
		if v != character {
			set[v] = struct{}{}
		}
	}
	if traditional != "" {
		set[traditional] = struct{}{}
	}
	out := make(PipeList, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(out[i]), utf8.RuneCountInString(out[j])
		if li != lj {
			return li < lj
		}
		return out[i] < out[j]
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

// parseLenientInt は "3", "3.0" のどちらも 3 として読む。読めなければ nil。
func parseLenientInt(raw string) *int {
	f := parseLenientFloat(raw)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

func parseLenientFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// WriteJSON は表を整形済み JSON で書き出す。漢字はエスケープしない。
func WriteJSON(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if entries == nil {
		entries = []Entry{}
	}
	return enc.Encode(entries)
}

// WriteEnhancedCSV はヘッダー付きで CSV を書き出す。
func WriteEnhancedCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EnhancedHeader); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// EntryToRow は読み込み済みの行から配布用 CSV の1行を組み立てる。
// CSV ファイルが用意されていないときの代替出力に使う。
func EntryToRow(e *Entry) []string {
	same := "Y"
	if e.HasTraditional() {
		same = "N"
	}
	values := map[string]string{
		"frequency_rank":           intText(e.Frequency),
		"character":                e.Character,
		"pinyin":                   e.Pinyin,
		"pinyin_alternates":        e.PinyinAlternates,
		"common_word_1":            e.CommonWord1,
		"common_word_1_pinyin":     e.CommonWord1Pinyin,
		"common_word_1_definition": e.CommonWord1Definition,
		"common_word_2":            e.CommonWord2,
		"common_word_2_pinyin":     e.CommonWord2Pinyin,
		"common_word_2_definition": e.CommonWord2Definition,
		"definition":               e.Definition,
		"radical":                  e.Radical,
		"radical_code":             floatText(e.RadicalCode),
		"stroke_count":             intText(e.StrokeCount),
		"hsk_level":                intText(e.HskLevel),
		"general_standard_num":     intText(e.GeneralStandardNumber),
		"traditional_character":    e.TraditionalCharacter,
		"same_simp_trad":           same,
		"alternate_characters":     e.AlternateCharacters.String(),
	}
	row := make([]string, len(EnhancedHeader))
	for i, name := range EnhancedHeader {
		row[i] = values[name]
	}
	return row
}

func intText(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func floatText(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
