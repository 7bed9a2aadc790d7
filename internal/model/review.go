// internal/model/review.go
package model

// ReviewRequest は貼り付けた文章。text か html のどちらかを送る。
type ReviewRequest struct {
	Text string `json:"text" validate:"required_without=HTML,max=200000"`
	HTML string `json:"html" validate:"required_without=Text,max=2000000"`
}

// ReviewItem は確認画面の1文字
type ReviewItem struct {
	EnrichedCharacter
	// Glyph は貼り付けた文章中の字形 (貓 など)。known / selected はこの字形で送り返す
	Glyph     string `json:"glyph"`
	Canonical string `json:"canonical"`
	// Known は今回の記録より前から既知だったか
	Known bool `json:"known"`
	// 選択を外した字は study になる。既知の字も外すと study に戻る
	Selected bool `json:"selected"`
}

// ReviewResponse は確認画面のデータ。漢字がなければ Message のみ。
type ReviewResponse struct {
	SourceText  string       `json:"source_text"`
	UniqueChars []string     `json:"unique_chars"`
	Items       []ReviewItem `json:"items"`
	Message     string       `json:"message,omitempty"`
}

// LogRequest は確認画面での選択結果。known は記録前に既知だった字、selected は今回選択した字。
// どちらも unique_chars と同じ字形 (ReviewItem.Glyph) で指定する。
type LogRequest struct {
	SourceText  string   `json:"source_text" validate:"required,max=200000"`
	UniqueChars []string `json:"unique_chars" validate:"required,min=1,dive,han"`
	Known       []string `json:"known"`
	Selected    []string `json:"selected"`
}

// LogResult は記録結果の内訳
type LogResult struct {
	Event       *LogEvent           `json:"event"`
	NewKnown    []EnrichedCharacter `json:"new_known"`
	QueuedStudy []EnrichedCharacter `json:"queued_study"`
	Skipped     []EnrichedCharacter `json:"skipped"`
	KnownCount  int                 `json:"known_count"`
	Milestones  []int               `json:"milestones"`
}

// ResetRequest は全削除の確認
type ResetRequest struct {
	Confirm bool `json:"confirm" validate:"required"`
}
