package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"go_5_wobushizi/internal/config"
	"go_5_wobushizi/internal/handlers"
	"go_5_wobushizi/internal/model"
	servicemocks "go_5_wobushizi/internal/service/mocks"

	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(authEnabled bool) *config.Config {
	return &config.Config{
		App:  config.AppConfig{Name: "wobushizi", ProgressTarget: 2500},
		JWT:  config.JWTConfig{SecretKey: testSecret},
		Auth: config.AuthConfig{Enabled: authEnabled},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}, AllowedMethods: []string{"GET", "POST", "PUT"}},
	}
}

// mockRouter はサービスをモックにしたルーターを返す
type mockRouter struct {
	handler http.Handler
	tracker *servicemocks.TrackerService
	master  *servicemocks.MasterListService
	auth    *servicemocks.AuthService
}

func newMockRouter(t *testing.T) *mockRouter {
	t.Helper()
	m := &mockRouter{
		tracker: servicemocks.NewTrackerService(t),
		master:  servicemocks.NewMasterListService(t),
		auth:    servicemocks.NewAuthService(t),
	}
	m.handler = handlers.NewRouter(handlers.RouterDeps{
		Tracker: handlers.NewTrackerHandler(m.tracker),
		Master:  handlers.NewMasterListHandler(m.master),
		Auth:    handlers.NewAuthHandler(m.auth),
		Health:  handlers.NewHealthHandler(nil, nil, 0),
		Config:  testConfig(true),
		Logger:  discardLogger(),
	})
	return m
}

// createRequest はテスト用のリクエストを作る。body が string ならそのまま送る。
func createRequest(t *testing.T, method, url string, body interface{}, headers map[string]string) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(body)
			require.NoError(t, err, "Failed to marshal request body")
			reader = bytes.NewBuffer(raw)
		}
	}
	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

func executeRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// decodeError はエラーレスポンスの中身を取り出す
func decodeError(t *testing.T, rr *httptest.ResponseRecorder) model.ErrorDetail {
	t.Helper()
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp), "body: %s", rr.Body.String())
	return errResp.Error
}
