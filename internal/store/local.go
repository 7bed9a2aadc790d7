package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"go_5_wobushizi/internal/hanzi"
	"go_5_wobushizi/internal/model"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
)

const (
	statesKey = "wobushizi:character_states"
	eventsKey = "wobushizi:log_events"

	DefaultNamespace = "default"
)

// "wobushizi:character_states" -> wobushizi/character_states
func keyToPathTransform(key string) *diskv.PathKey {
	parts := strings.Split(key, ":")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string{}, pathKey.Path...), pathKey.FileName), ":")
}

func newDiskv(basePath string) *diskv.Diskv {
	return diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})
}

// LocalStateStore は端末ごとのディレクトリに2つの JSON を丸ごと読み書きする。
// 状態の map と記録の一覧で、どちらも操作のたびに全体を書き直す。
type LocalStateStore struct {
	mu     *sync.Mutex
	d      *diskv.Diskv
	write  func(key string, val []byte) error
	idx    *hanzi.Index
	logger *slog.Logger
}

// NewLocalStateStore は dir 直下に保存する。同じ dir を複数のインスタンスで開かないこと。
func NewLocalStateStore(dir string, idx *hanzi.Index, logger *slog.Logger) *LocalStateStore {
	if logger == nil {
		logger = slog.Default()
	}
	d := newDiskv(dir)
	return &LocalStateStore{
		mu:     &sync.Mutex{},
		d:      d,
		write:  d.Write,
		idx:    idx,
		logger: logger.With(slog.String("store", "local"), slog.String("dir", dir)),
	}
}

func (s *LocalStateStore) UserID() string {
	return model.LocalUserID
}

// readStates は壊れた JSON を空として扱う。
func (s *LocalStateStore) readStates() (map[string]model.CharacterState, error) {
	states := make(map[string]model.CharacterState)
	if !s.d.Has(statesKey) {
		return states, nil
	}
	raw, err := s.d.Read(statesKey)
	if err != nil {
		return nil, fmt.Errorf("LocalStateStore.readStates: %w: %v", model.ErrStorage, err)
	}
	if err := json.Unmarshal(raw, &states); err != nil {
		s.logger.Warn("Corrupt character state blob, treating as empty", "error", err)
		return make(map[string]model.CharacterState), nil
	}
	return states, nil
}

func (s *LocalStateStore) writeStates(states map[string]model.CharacterState) error {
	raw, err := json.Marshal(states)
	if err != nil {
		return fmt.Errorf("LocalStateStore.writeStates: %w", err)
	}
	if err := s.write(statesKey, raw); err != nil {
		return fmt.Errorf("LocalStateStore.writeStates: %w: %v", model.ErrStorage, err)
	}
	return nil
}

func (s *LocalStateStore) readEvents() ([]model.LogEvent, error) {
	events := make([]model.LogEvent, 0)
	if !s.d.Has(eventsKey) {
		return events, nil
	}
	raw, err := s.d.Read(eventsKey)
	if err != nil {
		return nil, fmt.Errorf("LocalStateStore.readEvents: %w: %v", model.ErrStorage, err)
	}
	if err := json.Unmarshal(raw, &events); err != nil {
		s.logger.Warn("Corrupt log event blob, treating as empty", "error", err)
		return make([]model.LogEvent, 0), nil
	}
	return events, nil
}

func (s *LocalStateStore) writeEvents(events []model.LogEvent) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("LocalStateStore.writeEvents: %w", err)
	}
	if err := s.write(eventsKey, raw); err != nil {
		return fmt.Errorf("LocalStateStore.writeEvents: %w: %v", model.ErrStorage, err)
	}
	return nil
}

func (s *LocalStateStore) GetStatus(ctx context.Context, chars []string) (map[string]model.CharacterState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	states, err := s.readStates()
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.CharacterState, len(chars))
	for _, c := range s.idx.CanonicalizeAll(chars) {
		if row, ok := states[c]; ok {
			out[c] = row
		}
	}
	return out, nil
}

func (s *LocalStateStore) GetByStatus(ctx context.Context, status model.CharacterStatus) ([]model.CharacterState, error) {
	s.mu.Lock()
	states, err := s.readStates()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([]model.CharacterState, 0, len(states))
	for _, row := range states {
		if row.Status == status {
			out = append(out, row)
		}
	}
	SortByCharacter(out)
	return out, nil
}

func (s *LocalStateStore) GetAll(ctx context.Context) ([]model.CharacterState, error) {
	s.mu.Lock()
	states, err := s.readStates()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([]model.CharacterState, 0, len(states))
	for _, row := range states {
		out = append(out, row)
	}
	SortByCharacter(out)
	return out, nil
}

func (s *LocalStateStore) SetStatus(ctx context.Context, character string, status model.CharacterStatus, at time.Time) (*model.CharacterState, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("LocalStateStore.SetStatus: status %q: %w", status, model.ErrInvalidInput)
	}
	c := s.idx.Canonicalize(character)
	at = nowOr(at)

	s.mu.Lock()
	defer s.mu.Unlock()

	states, err := s.readStates()
	if err != nil {
		return nil, err
	}
	row := upsertState(states, model.LocalUserID, c, status, at)
	if err := s.writeStates(states); err != nil {
		return nil, err
	}
	return &row, nil
}

// upsertState は created_at を保ったまま status と last_seen_at を更新する。
func upsertState(states map[string]model.CharacterState, userID, c string, status model.CharacterStatus, at time.Time) model.CharacterState {
	createdAt := at
	if prev, ok := states[c]; ok && !prev.CreatedAt.IsZero() {
		createdAt = prev.CreatedAt
	}
	row := model.CharacterState{
		UserID:     userID,
		Character:  c,
		Status:     status,
		LastSeenAt: at,
		CreatedAt:  createdAt,
	}
	states[c] = row
	return row
}

// ApplyLogBatch は状態の blob を書いてから記録の blob に追記する。
// 追記に失敗したときは状態を書き込み前に戻すので、エラーが返れば何も残らず再実行してよい。
func (s *LocalStateStore) ApplyLogBatch(ctx context.Context, batch LogBatch) (*model.LogEvent, error) {
	at := nowOr(batch.At)
	plan := PlanLogBatch(s.idx, batch)

	s.mu.Lock()
	defer s.mu.Unlock()

	states, err := s.readStates()
	if err != nil {
		return nil, err
	}
	events, err := s.readEvents()
	if err != nil {
		return nil, err
	}
	prev := maps.Clone(states)

	event := model.LogEvent{
		ID:         uuid.New(),
		UserID:     model.LocalUserID,
		SourceText: batch.SourceText,
		CreatedAt:  at,
		Items:      make([]model.LogEventItem, 0, len(plan)),
	}
	for _, change := range plan {
		upsertState(states, model.LocalUserID, change.Character, change.Status, at)
		event.Items = append(event.Items, model.LogEventItem{
			LogEventID: event.ID,
			UserID:     model.LocalUserID,
			Character:  change.Character,
			Action:     change.Action,
			CreatedAt:  at,
		})
	}
	if err := s.writeStates(states); err != nil {
		return nil, err
	}

	events = append(events, event)
	if err := s.writeEvents(events); err != nil {
		if rbErr := s.writeStates(prev); rbErr != nil {
			s.logger.Error("Failed to restore character states after log event write failure",
				"error", rbErr, "event_id", event.ID)
		}
		return nil, err
	}
	return &event, nil
}

func (s *LocalStateStore) ListEvents(ctx context.Context, limit int) ([]model.LogEvent, error) {
	s.mu.Lock()
	events, err := s.readEvents()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	SortEventsNewestFirst(events)
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (s *LocalStateStore) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{statesKey, eventsKey} {
		if !s.d.Has(key) {
			continue
		}
		if err := s.d.Erase(key); err != nil {
			return fmt.Errorf("LocalStateStore.ResetAll: %w: %v", model.ErrStorage, err)
		}
	}
	s.logger.Info("Local progress reset")
	return nil
}

// Milestones は同じディレクトリに到達済みフラグを保存する。
func (s *LocalStateStore) Milestones() MilestoneFlags {
	return &diskvMilestones{mu: s.mu, d: s.d}
}

// LocalProvider は端末IDごとの LocalStateStore を使い回す。
type LocalProvider struct {
	basePath string
	idx      *hanzi.Index
	logger   *slog.Logger

	mu     sync.Mutex
	stores map[string]*LocalStateStore
}

func NewLocalProvider(basePath string, idx *hanzi.Index, logger *slog.Logger) *LocalProvider {
	return &LocalProvider{
		basePath: basePath,
		idx:      idx,
		logger:   logger,
		stores:   make(map[string]*LocalStateStore),
	}
}

// 端末名は英小文字・数字・ハイフンのみ。ディレクトリ名に使うので "/" や ".." は通さない
var namespacePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

// ValidNamespace は "default" や "tablet" のような端末名か UUID を受け付ける。
func ValidNamespace(ns string) bool {
	if namespacePattern.MatchString(ns) {
		return true
	}
	_, err := uuid.Parse(ns)
	return err == nil
}

// Store は namespace 用のストアを返す。
func (p *LocalProvider) Store(namespace string) (*LocalStateStore, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if !ValidNamespace(namespace) {
		return nil, fmt.Errorf("LocalProvider.Store: namespace %q: %w", namespace, model.ErrInvalidInput)
	}
	if id, err := uuid.Parse(namespace); err == nil {
		namespace = id.String()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.stores[namespace]; ok {
		return s, nil
	}
	s := NewLocalStateStore(filepath.Join(p.basePath, namespace), p.idx, p.logger)
	p.stores[namespace] = s
	return s, nil
}
