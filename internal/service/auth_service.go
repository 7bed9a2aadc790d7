package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go_5_wobushizi/internal/config"
	"go_5_wobushizi/internal/middleware"
	"go_5_wobushizi/internal/model"
	"go_5_wobushizi/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MagicLinkSentMessage はメールアドレスの有無にかかわらず同じ文面を返す
const MagicLinkSentMessage = "サインイン用のリンクを送信しました。メールをご確認ください。"

// AuthService はマジックリンクによるサインインを扱う
type AuthService interface {
	RequestMagicLink(ctx context.Context, req *model.MagicLinkRequest) error
	VerifyMagicLink(ctx context.Context, req *model.VerifyRequest) (*model.LoginResponse, error)
	EnsureProfile(ctx context.Context, email string) (*model.Profile, error)
	GetProfile(ctx context.Context, profileID uuid.UUID) (*model.Profile, error)
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

type authService struct {
	db          *gorm.DB
	profileRepo repository.ProfileRepository
	tokenRepo   repository.LoginTokenRepository
	mailer      Mailer
	cfg         *config.Config
	now         func() time.Time
}

// NewAuthService は AuthService の新しいインスタンスを生成します
func NewAuthService(db *gorm.DB, profileRepo repository.ProfileRepository, tokenRepo repository.LoginTokenRepository, mailer Mailer, cfg *config.Config) AuthService {
	return &authService{
		db:          db,
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
		mailer:      mailer,
		cfg:         cfg,
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RequestMagicLink はプロフィールを用意し、1回限りのサインイン用リンクを送る。
func (s *authService) RequestMagicLink(ctx context.Context, req *model.MagicLinkRequest) error {
	email := normalizeEmail(req.Email)
	logger := middleware.GetLogger(ctx).With("email", email)

	var link string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.ensureProfile(ctx, tx, email)
		if err != nil {
			return err
		}

		selector, err := randomHex(16)
		if err != nil {
			logger.Error("Failed to generate token selector", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの生成に失敗しました。", "", err)
		}
		verifier, err := randomHex(32)
		if err != nil {
			logger.Error("Failed to generate token verifier", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの生成に失敗しました。", "", err)
		}
		// DB には verifier のハッシュだけを残す
		hash, err := bcrypt.GenerateFromPassword([]byte(verifier), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash token verifier", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの生成に失敗しました。", "", err)
		}

		token := &model.LoginToken{
			Selector:     selector,
			ProfileID:    profile.ID,
			VerifierHash: string(hash),
			ExpiresAt:    s.now().Add(s.magicLinkTTL()),
		}
		if err := s.tokenRepo.Create(ctx, tx, token); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの保存に失敗しました。", "", err)
		}

		link = fmt.Sprintf("%s/auth/callback?token=%s", strings.TrimRight(s.cfg.App.FrontendURL, "/"), url.QueryEscape(selector+"."+verifier))
		return nil
	})
	if err != nil {
		return err
	}

	subject := "【我不识字】サインイン用リンク"
	body := fmt.Sprintf("以下のリンクを開くとサインインできます:\n%s\n\nこのリンクの有効期限は%d分です。心当たりがない場合はこのメールを無視してください。",
		link, int(s.magicLinkTTL().Minutes()))

	logger.Info("Sending magic link email")
	if err := s.mailer.Send(ctx, email, subject, body); err != nil {
		logger.Error("Failed to send magic link email", "error", err)
		return model.NewAppError("EMAIL_SEND_FAILED", "メールの送信に失敗しました。時間をおいて再度お試しください。", "", err)
	}
	return nil
}

// VerifyMagicLink はリンクのトークンを確かめ、JWT を発行する。トークンは1回で使えなくなる。
func (s *authService) VerifyMagicLink(ctx context.Context, req *model.VerifyRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx)
	invalid := model.NewAppError("INVALID_TOKEN", "このリンクは無効か、既に使用されています。", "token", model.ErrInvalidInput)

	selector, verifier, ok := strings.Cut(strings.TrimSpace(req.Token), ".")
	if !ok || selector == "" || verifier == "" {
		logger.Warn("Malformed magic link token")
		return nil, invalid
	}

	var profile *model.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		token, err := s.tokenRepo.FindBySelector(ctx, tx, selector)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Magic link token not found", "selector", selector)
				return invalid
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "エラーが発生しました。", "", err)
		}

		if s.now().After(token.ExpiresAt) {
			logger.Warn("Magic link token expired", "selector", selector, "expires_at", token.ExpiresAt)
			_ = s.tokenRepo.Delete(ctx, tx, selector)
			return model.NewAppError("INVALID_TOKEN", "このリンクの有効期限が切れています。", "token", model.ErrInvalidInput)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(token.VerifierHash), []byte(verifier)); err != nil {
			logger.Warn("Magic link verifier mismatch", "selector", selector)
			return invalid
		}

		if err := s.tokenRepo.Delete(ctx, tx, selector); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "エラーが発生しました。", "", err)
		}

		profile, err = s.profileRepo.FindByID(ctx, tx, token.ProfileID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("PROFILE_NOT_FOUND", "アカウントが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "エラーが発生しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	signed, err := s.issueToken(profile)
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err, "profile_id", profile.ID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの生成に失敗しました。", "", err)
	}

	logger.Info("Magic link verified", "profile_id", profile.ID)
	return &model.LoginResponse{AccessToken: signed}, nil
}

func (s *authService) issueToken(profile *model.Profile) (string, error) {
	if s.cfg.JWT.SecretKey == "" {
		return "", errors.New("jwt secret key is not configured")
	}
	ttl := s.cfg.JWT.AccessTokenTTL
	if ttl <= 0 {
		ttl = config.DefaultAccessTokenTTL
	}
	now := s.now()
	claims := &model.JWTCustomClaims{
		Email: profile.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.App.Name,
			Subject:   profile.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWT.SecretKey))
}

// EnsureProfile はメールアドレスのプロフィールを返す。なければ作る。
func (s *authService) EnsureProfile(ctx context.Context, email string) (*model.Profile, error) {
	return s.ensureProfile(ctx, s.db, normalizeEmail(email))
}

func (s *authService) ensureProfile(ctx context.Context, db *gorm.DB, email string) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)

	profile, err := s.profileRepo.FindByEmail(ctx, db, email)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to find profile by email", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	profile = &model.Profile{ID: uuid.New(), Email: email}
	if err := s.profileRepo.Create(ctx, db, profile); err != nil {
		if errors.Is(err, model.ErrConflict) {
			// 同時に作られた場合は作られた方を使う
			logger.Warn("Profile created concurrently, reloading", "email", email)
			return s.profileRepo.FindByEmail(ctx, db, email)
		}
		logger.Error("Failed to create profile", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "アカウントの作成に失敗しました。", "", err)
	}
	logger.Info("Profile created", "profile_id", profile.ID)
	return profile, nil
}

func (s *authService) GetProfile(ctx context.Context, profileID uuid.UUID) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByID(ctx, s.db, profileID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROFILE_NOT_FOUND", "アカウントが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return profile, nil
}

// PurgeExpiredTokens は期限切れのトークンを消す。起動時と定期的に呼ぶ。
func (s *authService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.tokenRepo.DeleteExpired(ctx, s.db, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		middleware.GetLogger(ctx).Info("Expired login tokens purged", "count", n)
	}
	return n, nil
}

func (s *authService) magicLinkTTL() time.Duration {
	if s.cfg.Auth.MagicLinkTTL > 0 {
		return s.cfg.Auth.MagicLinkTTL
	}
	return config.DefaultMagicLinkTTL
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
