package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"go_5_wobushizi/internal/config"
	"go_5_wobushizi/internal/model"

	"github.com/google/uuid"
)

// 端末IDがないリクエストはこの名前空間を使う
const DefaultDeviceID = "default"

// DeviceNamespace は X-Device-ID ヘッダーから端末の名前空間を取り出す。
// ローカル保存のディレクトリ名になるので UUID 以外は受け付けない。
func DeviceNamespace(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get(config.DeviceIDHeader))
	if raw == "" || raw == DefaultDeviceID {
		return DefaultDeviceID, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("device id %q: %w", raw, model.ErrInvalidInput)
	}
	return id.String(), nil
}
