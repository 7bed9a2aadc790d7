//go:generate mockery --name ProfileRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_wobushizi/internal/middleware"
	"go_5_wobushizi/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *model.Profile) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.Profile, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Profile, error)
}

type gormProfileRepository struct{}

func NewGormProfileRepository() ProfileRepository {
	return &gormProfileRepository{}
}

func (r *gormProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *model.Profile) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(profile)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if (errors.As(result.Error, &pgErr) && pgErr.Code == "23505") || errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			logger.Warn("Duplicate key error on create profile", "error", result.Error, "email", profile.Email)
			return model.ErrConflict
		}
		logger.Error("Error creating profile in DB", "error", result.Error, "email", profile.Email)
		return fmt.Errorf("gormProfileRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormProfileRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding profile by ID", "error", err, "profile_id", id)
		return nil, fmt.Errorf("gormProfileRepository.FindByID: %w", err)
	}
	return &profile, nil
}

func (r *gormProfileRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Profile, error) {
	var profile model.Profile
	if err := db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding profile by email", "error", err)
		return nil, fmt.Errorf("gormProfileRepository.FindByEmail: %w", err)
	}
	return &profile, nil
}
