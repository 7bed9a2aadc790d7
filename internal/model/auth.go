package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// MagicLinkRequest はサインイン用リンクの送信依頼
type MagicLinkRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// VerifyRequest はリンクに含まれるトークンの検証
type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// LoginResponse はログイン成功時のレスポンス
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// MessageResponse は結果をメッセージだけで返すとき
type MessageResponse struct {
	Message string `json:"message"`
}

// JWTCustomClaims はJWTに含めるカスタムクレーム（ペイロード）
type JWTCustomClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Identity はリクエストの持ち主。サインイン済みなら Remote、そうでなければ端末IDで区別する。
type Identity struct {
	UserID   string
	Email    string
	DeviceID string
	Remote   bool
}

// IdentityKey はコンテキストに Identity を格納するキー
const IdentityKey ContextKey = "identity"

// StoreOwner はログに出す持ち主の名前。端末なら "device:<id>"。
func (i Identity) StoreOwner() string {
	if i.Remote {
		return i.UserID
	}
	return "device:" + i.DeviceID
}
