// internal/model/log_event.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// LogAction は記録時に各文字へ付く操作
type LogAction string

const (
	ActionSkipped     LogAction = "skipped"
	ActionLoggedKnown LogAction = "logged_known"
	ActionQueuedStudy LogAction = "queued_study"
)

// LogEvent は「記録」操作1回分。追記のみで更新はしない。
type LogEvent struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string         `gorm:"type:varchar(64);not null;index" json:"user_id"`
	SourceText string         `gorm:"type:text;not null" json:"source_text"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
	Items      []LogEventItem `gorm:"foreignKey:LogEventID;references:ID;constraint:OnDelete:CASCADE" json:"items"`
}

func (LogEvent) TableName() string {
	return "log_events"
}

// LogEventItem は正規形1文字ごとの記録
type LogEventItem struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	LogEventID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	UserID     string    `gorm:"type:varchar(64);not null;index" json:"-"`
	Character  string    `gorm:"type:varchar(16);not null" json:"character"`
	Action     LogAction `gorm:"type:varchar(16);not null" json:"action"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (LogEventItem) TableName() string {
	return "log_event_items"
}
