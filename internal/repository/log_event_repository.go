//go:generate mockery --name LogEventRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"go_5_wobushizi/internal/middleware"
	"go_5_wobushizi/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LogEventRepository interface {
	// Create はイベント本体だけを保存する。明細は CreateItems で別に保存する。
	Create(ctx context.Context, db *gorm.DB, event *model.LogEvent) error
	CreateItems(ctx context.Context, db *gorm.DB, items []model.LogEventItem) error
	// ListByUser は新しい順。limit <= 0 なら全件。
	ListByUser(ctx context.Context, db *gorm.DB, userID string, limit int) ([]model.LogEvent, error)
	DeleteAllByUser(ctx context.Context, db *gorm.DB, userID string) error
}

type gormLogEventRepository struct{}

func NewGormLogEventRepository() LogEventRepository {
	return &gormLogEventRepository{}
}

func (r *gormLogEventRepository) Create(ctx context.Context, db *gorm.DB, event *model.LogEvent) error {
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(event).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to create log event", "error", err, "user_id", event.UserID)
		return fmt.Errorf("gormLogEventRepository.Create: %w", err)
	}
	return nil
}

func (r *gormLogEventRepository) CreateItems(ctx context.Context, db *gorm.DB, items []model.LogEventItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := db.WithContext(ctx).CreateInBatches(&items, upsertBatchSize).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to create log event items", "error", err, "count", len(items))
		return fmt.Errorf("gormLogEventRepository.CreateItems: %w", err)
	}
	return nil
}

func (r *gormLogEventRepository) ListByUser(ctx context.Context, db *gorm.DB, userID string, limit int) ([]model.LogEvent, error) {
	var events []model.LogEvent
	q := db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("log_event_items.id ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&events).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to list log events", "error", err, "user_id", userID)
		return nil, fmt.Errorf("gormLogEventRepository.ListByUser: %w", err)
	}
	return events, nil
}

func (r *gormLogEventRepository) DeleteAllByUser(ctx context.Context, db *gorm.DB, userID string) error {
	// 明細を先に消す
	if err := db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.LogEventItem{}).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to delete log event items", "error", err, "user_id", userID)
		return fmt.Errorf("gormLogEventRepository.DeleteAllByUser: items: %w", err)
	}
	if err := db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.LogEvent{}).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to delete log events", "error", err, "user_id", userID)
		return fmt.Errorf("gormLogEventRepository.DeleteAllByUser: %w", err)
	}
	return nil
}
