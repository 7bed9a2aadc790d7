package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile はリモート保存を使うユーザー
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// ProfileResponse は /auth/me の応答
type ProfileResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}
