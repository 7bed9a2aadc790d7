// internal/model/character.go
package model

import (
	"time"

	"go_5_wobushizi/internal/hanzi"
)

// CharacterStatus は1文字ごとの学習状態
type CharacterStatus string

const (
	StatusKnown CharacterStatus = "known"
	StatusStudy CharacterStatus = "study"
)

func (s CharacterStatus) Valid() bool {
	return s == StatusKnown || s == StatusStudy
}

// ローカルストアで使う固定のユーザーID
const LocalUserID = "local-user"

// CharacterState はユーザーと正規化済みの文字ごとに1行。
// Character に繁体字や異体字が入ってはならない。
type CharacterState struct {
	UserID     string          `gorm:"type:varchar(64);primaryKey" json:"user_id"`
	Character  string          `gorm:"type:varchar(16);primaryKey" json:"character"`
	Status     CharacterStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	LastSeenAt time.Time       `gorm:"not null" json:"last_seen_at"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
}

func (CharacterState) TableName() string {
	return "character_states"
}

type ContextKey string

// EnrichedCharacter はメタデータと現在の状態をまとめたもの
type EnrichedCharacter struct {
	hanzi.Entry
	Status *CharacterStatus `json:"status"`
}

// EnrichedState は状態の行にメタデータを添えたもの
type EnrichedState struct {
	CharacterState
	Pinyin     string `json:"pinyin,omitempty"`
	Definition string `json:"definition,omitempty"`
	HskLevel   *int   `json:"hsk_level,omitempty"`
	Frequency  *int   `json:"frequency,omitempty"`
}

// SetStatusRequest は1文字の状態変更
type SetStatusRequest struct {
	Status CharacterStatus `json:"status" validate:"required,oneof=known study"`
}

// GetStatusRequest は複数文字の状態取得
type GetStatusRequest struct {
	Chars []string `json:"chars" validate:"required,min=1,max=5000,dive,required"`
}

// HskCounts は HSK 1〜6 と "unknown" ごとの件数
type HskCounts map[string]int

// SummaryResponse は進捗画面用の集計
type SummaryResponse struct {
	KnownCount     int       `json:"known_count"`
	StudyCount     int       `json:"study_count"`
	ProgressTarget int       `json:"progress_target"`
	ProgressRatio  float64   `json:"progress_ratio"`
	KnownByHsk     HskCounts `json:"known_by_hsk"`
	TrackedByHsk   HskCounts `json:"tracked_by_hsk"`
	DatasetByHsk   HskCounts `json:"dataset_by_hsk"`
}

// MasterListQuery は一覧画面の検索条件
type MasterListQuery struct {
	Query        string `json:"q"`
	Status       string `json:"status" validate:"omitempty,oneof=all known study none"`
	Hsk          string `json:"hsk" validate:"omitempty,oneof=1 2 3 4 5 6 unknown"`
	VariantsOnly bool   `json:"variants_only"`
	Sort         string `json:"sort" validate:"omitempty,oneof=frequency_asc frequency_desc hsk_asc character"`
	Limit        int    `json:"limit" validate:"omitempty,min=1,max=1000"`
	Offset       int    `json:"offset" validate:"omitempty,min=0"`
}

// MasterListResponse はページ分割済みの一覧
type MasterListResponse struct {
	Total int                 `json:"total"`
	Items []EnrichedCharacter `json:"items"`
}
