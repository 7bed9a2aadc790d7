package model

import (
	"time"

	"github.com/google/uuid"
)

// LoginToken はマジックリンク用のトークン。
// リンクには "selector.verifier" を載せ、DBには verifier のハッシュだけを保存する。
type LoginToken struct {
	Selector     string    `gorm:"type:varchar(64);primaryKey"`
	ProfileID    uuid.UUID `gorm:"type:uuid;not null;index"`
	VerifierHash string    `gorm:"not null"`
	ExpiresAt    time.Time `gorm:"not null"`
	CreatedAt    time.Time
}

func (LoginToken) TableName() string {
	return "login_tokens"
}
