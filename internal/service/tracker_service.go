// internal/service/tracker_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go_5_wobushizi/internal/config"
	"go_5_wobushizi/internal/hanzi"
	"go_5_wobushizi/internal/middleware"
	"go_5_wobushizi/internal/model"
	"go_5_wobushizi/internal/stats"
	"go_5_wobushizi/internal/store"
	"go_5_wobushizi/internal/textscan"
)

// NoCharactersMessage は貼り付けた文章に漢字がなかったときの案内
const NoCharactersMessage = "No Chinese characters were found in the pasted text."

// SessionResolver はリクエストの持ち主からストアを選ぶ。store.Selector が実装する。
type SessionResolver interface {
	ForIdentity(identity model.Identity) (*store.Session, error)
}

type TrackerService interface {
	Review(ctx context.Context, req *model.ReviewRequest) (*model.ReviewResponse, error)
	Log(ctx context.Context, req *model.LogRequest) (*model.LogResult, error)
	SetStatus(ctx context.Context, character string, status model.CharacterStatus) (*model.EnrichedState, error)
	GetStatus(ctx context.Context, chars []string) (map[string]model.EnrichedState, error)
	// ListStates は status が空なら全件
	ListStates(ctx context.Context, status model.CharacterStatus) ([]model.EnrichedState, error)
	Events(ctx context.Context, limit int) ([]model.LogEvent, error)
	Summary(ctx context.Context) (*model.SummaryResponse, error)
	Lookup(ctx context.Context, character string) (*model.EnrichedCharacter, error)
	Reset(ctx context.Context, req *model.ResetRequest) error
}

type trackerService struct {
	sessions     SessionResolver
	idx          *hanzi.Index
	datasetByHsk model.HskCounts
	target       int
	milestones   []int
	now          func() time.Time
}

func NewTrackerService(sessions SessionResolver, idx *hanzi.Index, cfg *config.Config) TrackerService {
	target := cfg.App.ProgressTarget
	if target <= 0 {
		target = config.DefaultProgressTarget
	}
	milestones := cfg.App.Milestones
	if len(milestones) == 0 {
		milestones = config.DefaultMilestones
	}
	return &trackerService{
		sessions:     sessions,
		idx:          idx,
		datasetByHsk: stats.TotalHskCounts(idx),
		target:       target,
		milestones:   milestones,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *trackerService) session(ctx context.Context) (*store.Session, error) {
	identity := middleware.GetIdentity(ctx)
	sess, err := s.sessions.ForIdentity(identity)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			return nil, model.NewAppError("INVALID_DEVICE_ID", "端末IDの形式が正しくありません。", "X-Device-ID", err)
		}
		middleware.GetLogger(ctx).Error("Failed to select state store", "error", err, "remote", identity.Remote)
		return nil, err
	}
	return sess, nil
}

// Review は文章から漢字を取り出し、それぞれの現在の状態を添えて返す。
func (s *trackerService) Review(ctx context.Context, req *model.ReviewRequest) (*model.ReviewResponse, error) {
	logger := middleware.GetLogger(ctx)

	text := req.Text
	if strings.TrimSpace(text) == "" && req.HTML != "" {
		article, err := textscan.ExtractArticleText(strings.NewReader(req.HTML), nil)
		if err != nil {
			logger.Warn("Failed to extract article text", "error", err)
			return nil, model.NewAppError("INVALID_HTML", "HTMLから本文を取り出せませんでした。", "html", model.ErrInvalidInput)
		}
		text = article.Text
		if article.Title != "" && textscan.HasHan(article.Title) {
			text = article.Title + "\n" + text
		}
	}

	chars := textscan.ExtractUniqueChars(text)
	if len(chars) == 0 {
		logger.Info("No Chinese characters in pasted text", "length", len(text))
		return &model.ReviewResponse{
			SourceText:  text,
			UniqueChars: chars,
			Items:       []model.ReviewItem{},
			Message:     NoCharactersMessage,
		}, nil
	}

	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	states, err := sess.Store.GetStatus(ctx, chars)
	if err != nil {
		return nil, err
	}

	items := make([]model.ReviewItem, 0, len(chars))
	for _, ch := range chars {
		c := s.idx.Canonicalize(ch)
		var status *model.CharacterStatus
		if row, ok := states[c]; ok {
			st := row.Status
			status = &st
		}
		known := status != nil && *status == model.StatusKnown
		items = append(items, model.ReviewItem{
			EnrichedCharacter: s.enrichCharacter(ch, status),
			Glyph:             ch,
			Canonical:         c,
			Known:             known,
			Selected:          true,
		})
	}

	logger.Info("Text reviewed", "unique_chars", len(chars), "tracked", len(states))
	return &model.ReviewResponse{
		SourceText:  text,
		UniqueChars: chars,
		Items:       items,
	}, nil
}

// Log は確認画面の選択結果を記録し、新しく到達した節目を返す。
func (s *trackerService) Log(ctx context.Context, req *model.LogRequest) (*model.LogResult, error) {
	logger := middleware.GetLogger(ctx)

	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	before, err := sess.Store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	prev := stats.KnownCount(before)

	// クライアントが送ってきた既知の字に、保存済みの既知の字を足す
	known := store.NewSet(req.Known)
	for _, c := range stats.CharactersWithStatus(before, model.StatusKnown) {
		known[c] = true
	}

	event, err := sess.Store.ApplyLogBatch(ctx, store.LogBatch{
		SourceText:  req.SourceText,
		UniqueChars: req.UniqueChars,
		Known:       known,
		Selected:    store.NewSet(req.Selected),
		At:          s.now(),
	})
	if err != nil {
		return nil, err
	}

	after, err := sess.Store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	current := stats.KnownCount(after)

	result := &model.LogResult{
		Event:       event,
		NewKnown:    []model.EnrichedCharacter{},
		QueuedStudy: []model.EnrichedCharacter{},
		Skipped:     []model.EnrichedCharacter{},
		KnownCount:  current,
		Milestones:  s.reachMilestones(ctx, sess.Milestones, prev, current),
	}
	knownStatus, studyStatus := model.StatusKnown, model.StatusStudy
	for _, item := range event.Items {
		switch item.Action {
		case model.ActionLoggedKnown:
			result.NewKnown = append(result.NewKnown, s.enrichCharacter(item.Character, &knownStatus))
		case model.ActionQueuedStudy:
			result.QueuedStudy = append(result.QueuedStudy, s.enrichCharacter(item.Character, &studyStatus))
		case model.ActionSkipped:
			result.Skipped = append(result.Skipped, s.enrichCharacter(item.Character, &knownStatus))
		}
	}

	logger.Info("Log batch recorded",
		"event_id", event.ID,
		"new_known", len(result.NewKnown),
		"queued_study", len(result.QueuedStudy),
		"skipped", len(result.Skipped),
		"known_count", current,
	)
	return result, nil
}

// reachMilestones は今回越えた節目のうち未通知のものだけを返し、通知済みにする。
// フラグの読み書きに失敗しても記録自体は成功として扱う。
func (s *trackerService) reachMilestones(ctx context.Context, flags store.MilestoneFlags, prev, current int) []int {
	logger := middleware.GetLogger(ctx)
	reached := []int{}
	if flags == nil {
		return reached
	}
	for _, threshold := range stats.CrossedMilestones(prev, current, s.milestones) {
		seen, err := flags.Seen(ctx, threshold)
		if err != nil {
			logger.Warn("Failed to read milestone flag", "error", err, "threshold", threshold)
			continue
		}
		if seen {
			continue
		}
		if err := flags.MarkSeen(ctx, threshold); err != nil {
			logger.Warn("Failed to mark milestone as seen", "error", err, "threshold", threshold)
		}
		logger.Info("Milestone reached", "threshold", threshold)
		reached = append(reached, threshold)
	}
	return reached
}

func (s *trackerService) SetStatus(ctx context.Context, character string, status model.CharacterStatus) (*model.EnrichedState, error) {
	if !status.Valid() {
		return nil, model.NewAppError("INVALID_STATUS", "状態は known か study を指定してください。", "status", model.ErrInvalidInput)
	}
	if !textscan.HasHan(character) || len([]rune(character)) != 1 {
		return nil, model.NewAppError("INVALID_CHARACTER", "漢字を1文字指定してください。", "character", model.ErrInvalidInput)
	}

	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	row, err := sess.Store.SetStatus(ctx, character, status, s.now())
	if err != nil {
		return nil, err
	}
	middleware.GetLogger(ctx).Info("Character status set", "character", row.Character, "status", row.Status)
	enriched := s.enrichState(*row)
	return &enriched, nil
}

func (s *trackerService) GetStatus(ctx context.Context, chars []string) (map[string]model.EnrichedState, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := sess.Store.GetStatus(ctx, chars)
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.EnrichedState, len(rows))
	for c, row := range rows {
		out[c] = s.enrichState(row)
	}
	return out, nil
}

func (s *trackerService) ListStates(ctx context.Context, status model.CharacterStatus) ([]model.EnrichedState, error) {
	if status != "" && !status.Valid() {
		return nil, model.NewAppError("INVALID_STATUS", "状態は known か study を指定してください。", "status", model.ErrInvalidInput)
	}
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.CharacterState
	if status == "" {
		rows, err = sess.Store.GetAll(ctx)
	} else {
		rows, err = sess.Store.GetByStatus(ctx, status)
	}
	if err != nil {
		return nil, err
	}

	out := make([]model.EnrichedState, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.enrichState(row))
	}
	return out, nil
}

func (s *trackerService) Events(ctx context.Context, limit int) ([]model.LogEvent, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return sess.Store.ListEvents(ctx, limit)
}

func (s *trackerService) Summary(ctx context.Context) (*model.SummaryResponse, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := sess.Store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	knownChars := stats.CharactersWithStatus(rows, model.StatusKnown)
	studyChars := stats.CharactersWithStatus(rows, model.StatusStudy)
	trackedChars := stats.CharactersWithStatus(rows, "")

	ratio := float64(len(knownChars)) / float64(s.target)
	if ratio > 1 {
		ratio = 1
	}
	return &model.SummaryResponse{
		KnownCount:     len(knownChars),
		StudyCount:     len(studyChars),
		ProgressTarget: s.target,
		ProgressRatio:  ratio,
		KnownByHsk:     stats.CountCharacters(s.idx, knownChars),
		TrackedByHsk:   stats.CountCharacters(s.idx, trackedChars),
		DatasetByHsk:   s.datasetByHsk,
	}, nil
}

func (s *trackerService) Lookup(ctx context.Context, character string) (*model.EnrichedCharacter, error) {
	if _, ok := s.idx.Lookup(character); !ok {
		return nil, model.NewAppError("CHARACTER_NOT_FOUND", "この文字は一覧にありません。", "character", model.ErrNotFound)
	}
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := sess.Store.GetStatus(ctx, []string{character})
	if err != nil {
		return nil, err
	}
	var status *model.CharacterStatus
	if row, ok := rows[s.idx.Canonicalize(character)]; ok {
		st := row.Status
		status = &st
	}
	enriched := s.enrichCharacter(character, status)
	return &enriched, nil
}

func (s *trackerService) Reset(ctx context.Context, req *model.ResetRequest) error {
	if req == nil || !req.Confirm {
		return model.NewAppError("CONFIRMATION_REQUIRED", "全ての記録を削除するには確認が必要です。", "confirm", model.ErrInvalidInput)
	}
	sess, err := s.session(ctx)
	if err != nil {
		return err
	}
	if err := sess.Store.ResetAll(ctx); err != nil {
		return err
	}
	middleware.GetLogger(ctx).Warn("All progress reset", "user_id", sess.Store.UserID())
	return nil
}

// enrichCharacter は表のメタデータに状態を添える。表にない字は文字だけ。
func (s *trackerService) enrichCharacter(ch string, status *model.CharacterStatus) model.EnrichedCharacter {
	if e, ok := s.idx.Lookup(ch); ok {
		return model.EnrichedCharacter{Entry: *e, Status: status}
	}
	return model.EnrichedCharacter{Entry: hanzi.Entry{Character: ch}, Status: status}
}

func (s *trackerService) enrichState(row model.CharacterState) model.EnrichedState {
	enriched := model.EnrichedState{CharacterState: row}
	if e, ok := s.idx.Lookup(row.Character); ok {
		enriched.Pinyin = e.Pinyin
		enriched.Definition = e.Definition
		enriched.HskLevel = e.HskLevel
		enriched.Frequency = e.Frequency
	}
	return enriched
}
