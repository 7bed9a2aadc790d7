package service_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"go_5_wobushizi/internal/config"
	"go_5_wobushizi/internal/model"
	"go_5_wobushizi/internal/repository/mocks"
	"go_5_wobushizi/internal/service"
	servicemocks "go_5_wobushizi/internal/service/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type AuthServiceTestSuite struct {
	suite.Suite

	db              *gorm.DB
	mockProfileRepo *mocks.ProfileRepository
	mockTokenRepo   *mocks.LoginTokenRepository
	mockMailer      *servicemocks.Mailer
	cfg             *config.Config
	authService     service.AuthService
}

// SetupSuite でトランザクション用の空の DB を用意する。リポジトリはモック。
func (s *AuthServiceTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open("file:auth_service_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.db = db
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.mockProfileRepo = new(mocks.ProfileRepository)
	s.mockTokenRepo = new(mocks.LoginTokenRepository)
	s.mockMailer = new(servicemocks.Mailer)

	s.cfg = &config.Config{
		App:  config.AppConfig{Name: "wobushizi", FrontendURL: "http://localhost:5173/"},
		JWT:  config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: time.Hour},
		Auth: config.AuthConfig{Enabled: true, MagicLinkTTL: 15 * time.Minute},
	}

	s.authService = service.NewAuthService(s.db, s.mockProfileRepo, s.mockTokenRepo, s.mockMailer, s.cfg)
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) assertMocks() {
	s.mockProfileRepo.AssertExpectations(s.T())
	s.mockTokenRepo.AssertExpectations(s.T())
	s.mockMailer.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestRequestMagicLink() {
	existing := &model.Profile{ID: uuid.New(), Email: "user@example.com"}

	testCases := []struct {
		name        string
		email       string
		setupMocks  func(captured *string, token **model.LoginToken)
		checkResult func(err error, link string, token *model.LoginToken)
	}{
		{
			name:  "既存のプロフィールにリンクを送る",
			email: "User@Example.com",
			setupMocks: func(captured *string, token **model.LoginToken) {
				s.mockProfileRepo.On("FindByEmail", mock.Anything, mock.Anything, "user@example.com").Return(existing, nil).Once()
				s.mockTokenRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.LoginToken")).
					Run(func(args mock.Arguments) { *token = args.Get(2).(*model.LoginToken) }).
					Return(nil).Once()
				s.mockMailer.On("Send", mock.Anything, "user@example.com", mock.Anything, mock.Anything).
					Run(func(args mock.Arguments) { *captured = args.String(3) }).
					Return(nil).Once()
			},
			checkResult: func(err error, body string, token *model.LoginToken) {
				s.NoError(err)
				s.Require().NotNil(token)
				s.Equal(existing.ID, token.ProfileID)
				s.WithinDuration(time.Now().Add(15*time.Minute), token.ExpiresAt, time.Minute)

				s.Contains(body, "http://localhost:5173/auth/callback?token=")
				raw := body[strings.Index(body, "token=")+len("token="):]
				raw = strings.Fields(raw)[0]
				decoded, err := url.QueryUnescape(raw)
				s.Require().NoError(err)
				selector, verifier, ok := strings.Cut(decoded, ".")
				s.True(ok)
				s.Equal(token.Selector, selector)
				s.Len(selector, 32)
				s.Len(verifier, 64)
				// 保存されるのはハッシュだけ
				s.NotContains(token.VerifierHash, verifier)
				s.NoError(bcrypt.CompareHashAndPassword([]byte(token.VerifierHash), []byte(verifier)))
			},
		},
		{
			name:  "プロフィールがなければ作成する",
			email: "new@example.com",
			setupMocks: func(captured *string, token **model.LoginToken) {
				s.mockProfileRepo.On("FindByEmail", mock.Anything, mock.Anything, "new@example.com").Return(nil, model.ErrNotFound).Once()
				s.mockProfileRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(p *model.Profile) bool {
					return p.Email == "new@example.com" && p.ID != uuid.Nil
				})).Return(nil).Once()
				s.mockTokenRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				s.mockMailer.On("Send", mock.Anything, "new@example.com", mock.Anything, mock.Anything).Return(nil).Once()
			},
			checkResult: func(err error, _ string, _ *model.LoginToken) {
				s.NoError(err)
			},
		},
		{
			name:  "同時作成で競合したら読み直す",
			email: "race@example.com",
			setupMocks: func(captured *string, token **model.LoginToken) {
				raced := &model.Profile{ID: uuid.New(), Email: "race@example.com"}
				s.mockProfileRepo.On("FindByEmail", mock.Anything, mock.Anything, "race@example.com").Return(nil, model.ErrNotFound).Once()
				s.mockProfileRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(model.ErrConflict).Once()
				s.mockProfileRepo.On("FindByEmail", mock.Anything, mock.Anything, "race@example.com").Return(raced, nil).Once()
				s.mockTokenRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).
					Run(func(args mock.Arguments) { *token = args.Get(2).(*model.LoginToken) }).
					Return(nil).Once()
				s.mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
			},
			checkResult: func(err error, _ string, token *model.LoginToken) {
				s.NoError(err)
				s.Require().NotNil(token)
			},
		},
		{
			name:  "メール送信に失敗",
			email: "user@example.com",
			setupMocks: func(captured *string, token **model.LoginToken) {
				s.mockProfileRepo.On("FindByEmail", mock.Anything, mock.Anything, "user@example.com").Return(existing, nil).Once()
				s.mockTokenRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				s.mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
			},
			checkResult: func(err error, _ string, _ *model.LoginToken) {
				var appErr *model.AppError
				s.Require().ErrorAs(err, &appErr)
				s.Equal("EMAIL_SEND_FAILED", appErr.Detail.Code)
			},
		},
		{
			name:  "トークン保存に失敗したらメールは送らない",
			email: "user@example.com",
			setupMocks: func(captured *string, token **model.LoginToken) {
				s.mockProfileRepo.On("FindByEmail", mock.Anything, mock.Anything, "user@example.com").Return(existing, nil).Once()
				s.mockTokenRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
			},
			checkResult: func(err error, _ string, _ *model.LoginToken) {
				s.Error(err)
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			var body string
			var token *model.LoginToken
			tc.setupMocks(&body, &token)

			err := s.authService.RequestMagicLink(context.Background(), &model.MagicLinkRequest{Email: tc.email})

			tc.checkResult(err, body, token)
			s.assertMocks()
		})
	}
}

func (s *AuthServiceTestSuite) TestVerifyMagicLink() {
	profile := &model.Profile{ID: uuid.New(), Email: "user@example.com"}
	hash, err := bcrypt.GenerateFromPassword([]byte("verifier"), bcrypt.MinCost)
	s.Require().NoError(err)

	validToken := func() *model.LoginToken {
		return &model.LoginToken{
			Selector:     "sel",
			ProfileID:    profile.ID,
			VerifierHash: string(hash),
			ExpiresAt:    time.Now().Add(10 * time.Minute),
		}
	}

	testCases := []struct {
		name        string
		token       string
		setupMocks  func()
		checkResult func(res *model.LoginResponse, err error)
	}{
		{
			name:  "正しいトークンでJWTを発行し、トークンを消す",
			token: "sel.verifier",
			setupMocks: func() {
				s.mockTokenRepo.On("FindBySelector", mock.Anything, mock.Anything, "sel").Return(validToken(), nil).Once()
				s.mockTokenRepo.On("Delete", mock.Anything, mock.Anything, "sel").Return(nil).Once()
				s.mockProfileRepo.On("FindByID", mock.Anything, mock.Anything, profile.ID).Return(profile, nil).Once()
			},
			checkResult: func(res *model.LoginResponse, err error) {
				s.Require().NoError(err)
				claims := &model.JWTCustomClaims{}
				parsed, err := jwt.ParseWithClaims(res.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
					return []byte("test-secret"), nil
				}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
				s.Require().NoError(err)
				s.True(parsed.Valid)
				s.Equal(profile.ID.String(), claims.Subject)
				s.Equal("user@example.com", claims.Email)
				s.Equal("wobushizi", claims.Issuer)
			},
		},
		{
			name:       "区切りのないトークン",
			token:      "garbage",
			setupMocks: func() {},
			checkResult: func(res *model.LoginResponse, err error) {
				s.Nil(res)
				s.ErrorIs(err, model.ErrInvalidInput)
			},
		},
		{
			name:  "存在しないトークン",
			token: "missing.verifier",
			setupMocks: func() {
				s.mockTokenRepo.On("FindBySelector", mock.Anything, mock.Anything, "missing").Return(nil, model.ErrNotFound).Once()
			},
			checkResult: func(res *model.LoginResponse, err error) {
				var appErr *model.AppError
				s.Require().ErrorAs(err, &appErr)
				s.Equal("INVALID_TOKEN", appErr.Detail.Code)
			},
		},
		{
			name:  "期限切れは削除して拒否",
			token: "sel.verifier",
			setupMocks: func() {
				expired := validToken()
				expired.ExpiresAt = time.Now().Add(-time.Minute)
				s.mockTokenRepo.On("FindBySelector", mock.Anything, mock.Anything, "sel").Return(expired, nil).Once()
				s.mockTokenRepo.On("Delete", mock.Anything, mock.Anything, "sel").Return(nil).Once()
			},
			checkResult: func(res *model.LoginResponse, err error) {
				s.Nil(res)
				s.ErrorIs(err, model.ErrInvalidInput)
			},
		},
		{
			name:  "verifier が違う",
			token: "sel.wrong",
			setupMocks: func() {
				s.mockTokenRepo.On("FindBySelector", mock.Anything, mock.Anything, "sel").Return(validToken(), nil).Once()
			},
			checkResult: func(res *model.LoginResponse, err error) {
				s.Nil(res)
				s.ErrorIs(err, model.ErrInvalidInput)
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setupMocks()

			res, err := s.authService.VerifyMagicLink(context.Background(), &model.VerifyRequest{Token: tc.token})

			tc.checkResult(res, err)
			s.assertMocks()
		})
	}
}

func (s *AuthServiceTestSuite) TestGetProfile() {
	id := uuid.New()
	s.mockProfileRepo.On("FindByID", mock.Anything, mock.Anything, id).Return(nil, model.ErrNotFound).Once()

	profile, err := s.authService.GetProfile(context.Background(), id)

	s.Nil(profile)
	s.ErrorIs(err, model.ErrNotFound)
	s.assertMocks()
}

func (s *AuthServiceTestSuite) TestPurgeExpiredTokens() {
	s.mockTokenRepo.On("DeleteExpired", mock.Anything, mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()

	n, err := s.authService.PurgeExpiredTokens(context.Background())

	s.NoError(err)
	s.Equal(int64(3), n)
	s.assertMocks()
}
