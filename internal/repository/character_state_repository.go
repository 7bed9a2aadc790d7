//go:generate mockery --name CharacterStateRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"go_5_wobushizi/internal/middleware"
	"go_5_wobushizi/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 500

type CharacterStateRepository interface {
	FindByCharacters(ctx context.Context, db *gorm.DB, userID string, chars []string) ([]model.CharacterState, error)
	FindByStatus(ctx context.Context, db *gorm.DB, userID string, status model.CharacterStatus) ([]model.CharacterState, error)
	FindAll(ctx context.Context, db *gorm.DB, userID string) ([]model.CharacterState, error)
	// Upsert は (user_id, character) が既にあれば status と last_seen_at だけを更新する。created_at は保持される。
	Upsert(ctx context.Context, db *gorm.DB, states []model.CharacterState) error
	DeleteAllByUser(ctx context.Context, db *gorm.DB, userID string) error
}

type gormCharacterStateRepository struct{}

func NewGormCharacterStateRepository() CharacterStateRepository {
	return &gormCharacterStateRepository{}
}

func (r *gormCharacterStateRepository) FindByCharacters(ctx context.Context, db *gorm.DB, userID string, chars []string) ([]model.CharacterState, error) {
	states := make([]model.CharacterState, 0, len(chars))
	if len(chars) == 0 {
		return states, nil
	}
	// character は PostgreSQL の型名と衝突するので map 条件で引用させる
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(map[string]interface{}{"character": chars}).
		Find(&states).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to find character states", "error", err, "user_id", userID, "count", len(chars))
		return nil, fmt.Errorf("gormCharacterStateRepository.FindByCharacters: %w", err)
	}
	return states, nil
}

func (r *gormCharacterStateRepository) FindByStatus(ctx context.Context, db *gorm.DB, userID string, status model.CharacterStatus) ([]model.CharacterState, error) {
	var states []model.CharacterState
	if err := db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, status).
		Find(&states).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to find character states by status", "error", err, "user_id", userID, "status", status)
		return nil, fmt.Errorf("gormCharacterStateRepository.FindByStatus: %w", err)
	}
	return states, nil
}

func (r *gormCharacterStateRepository) FindAll(ctx context.Context, db *gorm.DB, userID string) ([]model.CharacterState, error) {
	var states []model.CharacterState
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&states).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to find all character states", "error", err, "user_id", userID)
		return nil, fmt.Errorf("gormCharacterStateRepository.FindAll: %w", err)
	}
	return states, nil
}

func (r *gormCharacterStateRepository) Upsert(ctx context.Context, db *gorm.DB, states []model.CharacterState) error {
	if len(states) == 0 {
		return nil
	}
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "character"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "last_seen_at"}),
		}).
		CreateInBatches(&states, upsertBatchSize)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Failed to upsert character states", "error", result.Error, "count", len(states))
		return fmt.Errorf("gormCharacterStateRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormCharacterStateRepository) DeleteAllByUser(ctx context.Context, db *gorm.DB, userID string) error {
	result := db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CharacterState{})
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Failed to delete character states", "error", result.Error, "user_id", userID)
		return fmt.Errorf("gormCharacterStateRepository.DeleteAllByUser: %w", result.Error)
	}
	middleware.GetLogger(ctx).Info("Character states deleted", "user_id", userID, "rows", result.RowsAffected)
	return nil
}
