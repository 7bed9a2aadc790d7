package store

import (
	"context"
	"fmt"
	"time"

	"go_5_wobushizi/internal/hanzi"
	"go_5_wobushizi/internal/middleware"
	"go_5_wobushizi/internal/model"
	"go_5_wobushizi/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RemoteStateStore はサインイン済みユーザーの状態を DB に保存する。
// 行は user_id で分かれているので、別ユーザー同士が競合することはない。
type RemoteStateStore struct {
	db        *gorm.DB
	userID    string
	idx       *hanzi.Index
	stateRepo repository.CharacterStateRepository
	eventRepo repository.LogEventRepository
}

func NewRemoteStateStore(db *gorm.DB, userID string, idx *hanzi.Index, stateRepo repository.CharacterStateRepository, eventRepo repository.LogEventRepository) *RemoteStateStore {
	return &RemoteStateStore{
		db:        db,
		userID:    userID,
		idx:       idx,
		stateRepo: stateRepo,
		eventRepo: eventRepo,
	}
}

func (s *RemoteStateStore) UserID() string {
	return s.userID
}

func storageError(op string, err error) error {
	return fmt.Errorf("RemoteStateStore.%s: %w: %w", op, model.ErrStorage, err)
}

func (s *RemoteStateStore) GetStatus(ctx context.Context, chars []string) (map[string]model.CharacterState, error) {
	rows, err := s.stateRepo.FindByCharacters(ctx, s.db, s.userID, s.idx.CanonicalizeAll(chars))
	if err != nil {
		return nil, storageError("GetStatus", err)
	}
	out := make(map[string]model.CharacterState, len(rows))
	for _, row := range rows {
		out[row.Character] = row
	}
	return out, nil
}

func (s *RemoteStateStore) GetByStatus(ctx context.Context, status model.CharacterStatus) ([]model.CharacterState, error) {
	rows, err := s.stateRepo.FindByStatus(ctx, s.db, s.userID, status)
	if err != nil {
		return nil, storageError("GetByStatus", err)
	}
	SortByCharacter(rows)
	return rows, nil
}

func (s *RemoteStateStore) GetAll(ctx context.Context) ([]model.CharacterState, error) {
	rows, err := s.stateRepo.FindAll(ctx, s.db, s.userID)
	if err != nil {
		return nil, storageError("GetAll", err)
	}
	SortByCharacter(rows)
	return rows, nil
}

func (s *RemoteStateStore) SetStatus(ctx context.Context, character string, status model.CharacterStatus, at time.Time) (*model.CharacterState, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("RemoteStateStore.SetStatus: status %q: %w", status, model.ErrInvalidInput)
	}
	c := s.idx.Canonicalize(character)
	at = nowOr(at)

	row := model.CharacterState{
		UserID:     s.userID,
		Character:  c,
		Status:     status,
		LastSeenAt: at,
		CreatedAt:  at,
	}
	if err := s.stateRepo.Upsert(ctx, s.db, []model.CharacterState{row}); err != nil {
		return nil, storageError("SetStatus", err)
	}

	// created_at は既存行のものを返したいので読み直す
	saved, err := s.stateRepo.FindByCharacters(ctx, s.db, s.userID, []string{c})
	if err != nil {
		return nil, storageError("SetStatus", err)
	}
	if len(saved) == 1 {
		return &saved[0], nil
	}
	return &row, nil
}

// ApplyLogBatch はイベント本体、状態、明細の順に書き込む。
// 1つのトランザクションで行うので途中で失敗しても何も残らない。
func (s *RemoteStateStore) ApplyLogBatch(ctx context.Context, batch LogBatch) (*model.LogEvent, error) {
	logger := middleware.GetLogger(ctx)
	at := nowOr(batch.At)
	plan := PlanLogBatch(s.idx, batch)

	event := model.LogEvent{
		ID:         uuid.New(),
		UserID:     s.userID,
		SourceText: batch.SourceText,
		CreatedAt:  at,
	}
	states := make([]model.CharacterState, 0, len(plan))
	items := make([]model.LogEventItem, 0, len(plan))
	for _, change := range plan {
		states = append(states, model.CharacterState{
			UserID:     s.userID,
			Character:  change.Character,
			Status:     change.Status,
			LastSeenAt: at,
			CreatedAt:  at,
		})
		items = append(items, model.LogEventItem{
			LogEventID: event.ID,
			UserID:     s.userID,
			Character:  change.Character,
			Action:     change.Action,
			CreatedAt:  at,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.eventRepo.Create(ctx, tx, &event); err != nil {
			return err
		}
		if err := s.stateRepo.Upsert(ctx, tx, states); err != nil {
			return err
		}
		return s.eventRepo.CreateItems(ctx, tx, items)
	})
	if err != nil {
		logger.Error("Failed to apply log batch", "error", err, "user_id", s.userID, "chars", len(plan))
		return nil, storageError("ApplyLogBatch", err)
	}

	event.Items = items
	logger.Info("Log batch applied", "user_id", s.userID, "event_id", event.ID, "chars", len(plan))
	return &event, nil
}

func (s *RemoteStateStore) ListEvents(ctx context.Context, limit int) ([]model.LogEvent, error) {
	events, err := s.eventRepo.ListByUser(ctx, s.db, s.userID, limit)
	if err != nil {
		return nil, storageError("ListEvents", err)
	}
	return events, nil
}

func (s *RemoteStateStore) ResetAll(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.eventRepo.DeleteAllByUser(ctx, tx, s.userID); err != nil {
			return err
		}
		return s.stateRepo.DeleteAllByUser(ctx, tx, s.userID)
	})
	if err != nil {
		return storageError("ResetAll", err)
	}
	middleware.GetLogger(ctx).Info("Remote progress reset", "user_id", s.userID)
	return nil
}
