//go:generate mockery --name LoginTokenRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_5_wobushizi/internal/middleware"
	"go_5_wobushizi/internal/model"

	"gorm.io/gorm"
)

type LoginTokenRepository interface {
	Create(ctx context.Context, db *gorm.DB, token *model.LoginToken) error
	FindBySelector(ctx context.Context, db *gorm.DB, selector string) (*model.LoginToken, error)
	Delete(ctx context.Context, db *gorm.DB, selector string) error
	DeleteExpired(ctx context.Context, db *gorm.DB, now time.Time) (int64, error)
}

type gormLoginTokenRepository struct{}

func NewGormLoginTokenRepository() LoginTokenRepository {
	return &gormLoginTokenRepository{}
}

func (r *gormLoginTokenRepository) Create(ctx context.Context, db *gorm.DB, token *model.LoginToken) error {
	logger := middleware.GetLogger(ctx)
	if err := db.WithContext(ctx).Create(token).Error; err != nil {
		logger.Error("Failed to create login token", "error", err)
		return fmt.Errorf("gormLoginTokenRepository.Create: %w", err)
	}
	return nil
}

func (r *gormLoginTokenRepository) FindBySelector(ctx context.Context, db *gorm.DB, selector string) (*model.LoginToken, error) {
	logger := middleware.GetLogger(ctx)
	var token model.LoginToken
	if err := db.WithContext(ctx).Where("selector = ?", selector).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Failed to find login token", "error", err)
		return nil, fmt.Errorf("gormLoginTokenRepository.FindBySelector: %w", err)
	}
	return &token, nil
}

func (r *gormLoginTokenRepository) Delete(ctx context.Context, db *gorm.DB, selector string) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Where("selector = ?", selector).Delete(&model.LoginToken{})
	if result.Error != nil {
		logger.Error("Failed to delete login token", "error", result.Error)
		return fmt.Errorf("gormLoginTokenRepository.Delete: %w", result.Error)
	}
	return nil
}

func (r *gormLoginTokenRepository) DeleteExpired(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	result := db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.LoginToken{})
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Failed to delete expired login tokens", "error", result.Error)
		return 0, fmt.Errorf("gormLoginTokenRepository.DeleteExpired: %w", result.Error)
	}
	return result.RowsAffected, nil
}
