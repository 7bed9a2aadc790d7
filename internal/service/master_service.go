package service

import (
	"bytes"
	"context"
	"sort"
	"strconv"
	"strings"

	"go_5_wobushizi/internal/hanzi"
	"go_5_wobushizi/internal/middleware"
	"go_5_wobushizi/internal/model"
)

const (
	defaultMasterLimit = 100
	maxMasterLimit     = 1000
)

// MasterListService は全漢字の一覧を検索し、CSV を返す。
type MasterListService interface {
	Search(ctx context.Context, query *model.MasterListQuery) (*model.MasterListResponse, error)
	ExportCSV(ctx context.Context) ([]byte, error)
}

type masterListService struct {
	sessions SessionResolver
	idx      *hanzi.Index
	rows     []hanzi.Entry
	csv      []byte
}

// NewMasterListService の csv は起動時に読んだ拡張 CSV。nil なら表から作る。
func NewMasterListService(sessions SessionResolver, idx *hanzi.Index, csv []byte) MasterListService {
	return &masterListService{
		sessions: sessions,
		idx:      idx,
		rows:     hanzi.DedupByCharacter(idx.All()),
		csv:      csv,
	}
}

func (s *masterListService) Search(ctx context.Context, query *model.MasterListQuery) (*model.MasterListResponse, error) {
	logger := middleware.GetLogger(ctx)

	sess, err := s.sessions.ForIdentity(middleware.GetIdentity(ctx))
	if err != nil {
		return nil, err
	}
	states, err := sess.Store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	statuses := make(map[string]model.CharacterStatus, len(states))
	for _, row := range states {
		statuses[row.Character] = row.Status
	}

	filter := newMasterFilter(query)
	matched := make([]model.EnrichedCharacter, 0, len(s.rows))
	for i := range s.rows {
		e := &s.rows[i]
		var status *model.CharacterStatus
		if st, ok := statuses[s.idx.Canonicalize(e.Character)]; ok {
			status = &st
		}
		if !filter.match(e, status) {
			continue
		}
		matched = append(matched, model.EnrichedCharacter{Entry: *e, Status: status})
	}
	sortMasterRows(matched, query.Sort)

	total := len(matched)
	limit := query.Limit
	if limit <= 0 {
		limit = defaultMasterLimit
	}
	if limit > maxMasterLimit {
		limit = maxMasterLimit
	}
	start := query.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	logger.Debug("Master list searched", "q", query.Query, "total", total)
	return &model.MasterListResponse{Total: total, Items: matched[start:end]}, nil
}

// ExportCSV は拡張 CSV をそのまま返す。ファイルがなければ表から同じ形式で作る。
func (s *masterListService) ExportCSV(ctx context.Context) ([]byte, error) {
	if len(s.csv) > 0 {
		return s.csv, nil
	}
	middleware.GetLogger(ctx).Info("Enhanced CSV not loaded, generating from dataset", "rows", len(s.rows))

	rows := make([][]string, 0, len(s.rows))
	for i := range s.rows {
		rows = append(rows, hanzi.EntryToRow(&s.rows[i]))
	}
	var buf bytes.Buffer
	if err := hanzi.WriteEnhancedCSV(&buf, rows); err != nil {
		return nil, model.NewAppError("CSV_EXPORT_FAILED", "CSVの作成に失敗しました。", "", err)
	}
	return buf.Bytes(), nil
}

type masterFilter struct {
	status       string
	hsk          string
	variantsOnly bool
	raw          string
	latin        bool
	tokens       []string
	prefix       string
}

func newMasterFilter(q *model.MasterListQuery) *masterFilter {
	raw := strings.TrimSpace(q.Query)
	f := &masterFilter{
		status:       q.Status,
		hsk:          q.Hsk,
		variantsOnly: q.VariantsOnly,
		raw:          raw,
		latin:        hanzi.HasLatin(raw),
	}
	if f.latin {
		f.tokens = hanzi.TokenizePinyin(raw)
	} else {
		f.prefix = hanzi.NormalizePinyin(raw)
	}
	return f
}

func (f *masterFilter) match(e *hanzi.Entry, status *model.CharacterStatus) bool {
	switch f.status {
	case "", "all":
	case "none":
		if status != nil {
			return false
		}
	default:
		if status == nil || string(*status) != f.status {
			return false
		}
	}

	if f.hsk != "" && f.hsk != "all" {
		level := "unknown"
		if b := e.HskBucket(); b > 0 {
			level = strconv.Itoa(b)
		}
		if level != f.hsk {
			return false
		}
	}

	if f.variantsOnly && !e.HasVariants() {
		return false
	}

	if f.raw == "" {
		return true
	}
	if f.latin {
		return f.matchPinyin(e)
	}
	return f.matchText(e)
}

// matchPinyin は音節単位の完全一致。"ai" は "ài" に一致するが "bai" には一致しない。
func (f *masterFilter) matchPinyin(e *hanzi.Entry) bool {
	syllables := append(hanzi.TokenizePinyin(e.Pinyin), hanzi.TokenizePinyin(e.PinyinAlternates)...)
	for _, want := range f.tokens {
		for _, got := range syllables {
			if want == got {
				return true
			}
		}
	}
	return strings.Contains(strings.ToLower(e.Definition), strings.ToLower(f.raw))
}

func (f *masterFilter) matchText(e *hanzi.Entry) bool {
	if strings.Contains(e.Character, f.raw) || (e.TraditionalCharacter != "" && strings.Contains(e.TraditionalCharacter, f.raw)) {
		return true
	}
	for _, alt := range e.AlternateCharacters {
		if strings.Contains(alt, f.raw) {
			return true
		}
	}
	if f.prefix != "" {
		for _, syllable := range hanzi.TokenizePinyin(e.Pinyin) {
			if strings.HasPrefix(syllable, f.prefix) {
				return true
			}
		}
	}
	if e.HskLevel != nil && strconv.Itoa(*e.HskLevel) == f.raw {
		return true
	}
	return e.Frequency != nil && strconv.Itoa(*e.Frequency) == f.raw
}

// sortMasterRows は並び順の後に中国語の照合順で同順位を決める。
func sortMasterRows(rows []model.EnrichedCharacter, order string) {
	c := hanzi.NewCollator()
	byCharacter := func(a, b *model.EnrichedCharacter) bool {
		return hanzi.CompareChars(c, a.Character, b.Character) < 0
	}
	hsk := func(e *model.EnrichedCharacter) int {
		if e.HskLevel == nil {
			return 99
		}
		return *e.HskLevel
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		switch order {
		case "character":
			return byCharacter(a, b)
		case "hsk_asc":
			if hsk(a) != hsk(b) {
				return hsk(a) < hsk(b)
			}
		case "frequency_desc":
			// 順位なしは降順でも最後
			if (a.Frequency == nil) != (b.Frequency == nil) {
				return a.Frequency != nil
			}
			if a.Frequency != nil && *a.Frequency != *b.Frequency {
				return *a.Frequency > *b.Frequency
			}
		default:
			fa, fb := hanzi.FrequencyRank(&a.Entry), hanzi.FrequencyRank(&b.Entry)
			if fa != fb {
				return fa < fb
			}
		}
		return byCharacter(a, b)
	})
}
