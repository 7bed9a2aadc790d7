// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "wobushizi"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort      = ":8080"
	DefaultDatabaseDriver  = "postgres"
	DefaultLogLevel        = "info"
	DefaultAuthEnabled     = true
	DefaultProgressTarget  = 2500
	DefaultAccessTokenTTL  = 7 * 24 * time.Hour
	DefaultMagicLinkTTL    = 15 * time.Minute
	DefaultMailerType      = "log"
	DefaultLocalDataDir    = "~/.wobushizi"
	DefaultDatasetJSONPath = "data/hanzidb.json"
)

var DefaultMilestones = []int{500, 1000, 2500}

// 認証なしのリクエストでローカルストアの名前空間を指定するヘッダー
const DeviceIDHeader = "X-Device-ID"
