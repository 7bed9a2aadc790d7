package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go_5_wobushizi/internal/model"
	"go_5_wobushizi/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// IdentityMiddleware はリクエストの持ち主を決めてコンテキストに入れる。
//   - Bearer トークンがあれば検証し、リモートのユーザーとして扱う (不正なら 401)
//   - なければ X-Device-ID の端末として扱う
//
// authEnabled が false のときはトークンを見ずに全て端末として扱う。
func IdentityMiddleware(secretKey string, authEnabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			deviceID, err := DeviceNamespace(r)
			if err != nil {
				logger.Warn("Invalid device id header", "error", err)
				appErr := model.NewAppError("INVALID_DEVICE_ID", "X-Device-IDの形式が正しくありません。", "X-Device-ID", model.ErrInvalidInput)
				webutil.HandleError(w, logger, appErr)
				return
			}
			identity := model.Identity{DeviceID: deviceID}

			authHeader := r.Header.Get("Authorization")
			if authEnabled && authHeader != "" {
				claims, err := parseBearer(authHeader, secretKey)
				if err != nil {
					logger.Warn("JWT auth failed", "error", err)
					appErr := model.NewAppError("INVALID_TOKEN", "トークンが無効です。再度サインインしてください。", "", model.ErrUnauthorized)
					webutil.HandleError(w, logger, appErr)
					return
				}
				identity.UserID = claims.Subject
				identity.Email = claims.Email
				identity.Remote = true
			}

			ctx := context.WithValue(r.Context(), model.IdentityKey, identity)
			ctx = context.WithValue(ctx, logCtxKey{}, logger.With("user_id", identity.StoreOwner()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parseBearer は "Bearer {token}" を検証し、sub が UUID であることを確かめる。
func parseBearer(header, secretKey string) (*model.JWTCustomClaims, error) {
	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
		return nil, errors.New("invalid authorization header format")
	}
	if secretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}

	claims := &model.JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(headerParts[1], claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, errors.New("subject is not a uuid")
	}
	return claims, nil
}

// RequireRemote はサインイン済みのリクエストだけを通す。
func RequireRemote(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetIdentity(r.Context()).Remote {
			logger := GetLogger(r.Context())
			logger.Warn("Sign-in required")
			appErr := model.NewAppError("UNAUTHORIZED", "サインインが必要です。", "", model.ErrUnauthorized)
			webutil.HandleError(w, logger, appErr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetIdentity はコンテキストの Identity を返す。ミドルウェアを通っていなければ既定の端末。
func GetIdentity(ctx context.Context) model.Identity {
	if identity, ok := ctx.Value(model.IdentityKey).(model.Identity); ok {
		return identity
	}
	return model.Identity{DeviceID: DefaultDeviceID}
}

// WithIdentity はテストや CLI からコンテキストに Identity を入れる。
func WithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, model.IdentityKey, identity)
}
