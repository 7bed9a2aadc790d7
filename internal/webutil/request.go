package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go_5_wobushizi/internal/model"
)

// 貼り付けた HTML を受けるので大きめに取る
const maxBodyBytes = 4 << 20

// DecodeJSONBody はリクエストボディをデコードします。未知のフィールドはエラー。
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty body: %w", model.ErrInvalidInput)
		}
		return fmt.Errorf("%v: %w", err, model.ErrInvalidInput)
	}
	return nil
}
