package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/repository/memory"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/service"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/util"
)

const testAdminEmail = "admin@glamoure.io"

type capturedReset struct {
	to    string
	token string
	otp   string
}

type recordingNotifier struct {
	sent []capturedReset
	err  error
}

func (n *recordingNotifier) SendPasswordReset(ctx context.Context, to, rawToken, rawOTP, name string) error {
	n.sent = append(n.sent, capturedReset{to: to, token: rawToken, otp: rawOTP})
	return n.err
}

func (n *recordingNotifier) last(t *testing.T) capturedReset {
	t.Helper()
	require.NotEmpty(t, n.sent, "expected a password reset notification")
	return n.sent[len(n.sent)-1]
}

type testServer struct {
	e        *echo.Echo
	users    *memory.UserRepository
	notifier *recordingNotifier
}

func newTestServer(t *testing.T, resetCfg service.PasswordResetConfig) *testServer {
	t.Helper()
	users := memory.NewUserRepo()
	wardrobeRepo := memory.NewWardrobeRepo()
	tokens := util.NewJWTManager("test-secret")
	notifier := &recordingNotifier{}

	auth := service.NewAuthService(users, tokens, time.Hour, testAdminEmail, "")
	resets := service.NewPasswordResetService(users, tokens, notifier, resetCfg)

	e := NewRouter(RouterOptions{AllowOrigins: []string{"*"}})
	RegisterAuth(e, auth, resets)
	RegisterAdmin(e, auth, service.NewAdminService(users, wardrobeRepo))
	RegisterWardrobes(e, auth, service.NewWardrobeService(wardrobeRepo))

	return &testServer{e: e, users: users, notifier: notifier}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns its session token
// and user id.
func (s *testServer) register(t *testing.T, email, password string) (string, string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Tester",
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp AuthTokenResponse
	decode(t, rec, &resp)
	return resp.Token, resp.User.ID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	decode(t, rec, &resp)
	return resp.Code
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, service.PasswordResetConfig{})
	rec := s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"ok":true`)
	require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	s := newTestServer(t, service.PasswordResetConfig{})

	rec := s.do(t, http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", errorCode(t, rec))

	rec = s.do(t, http.MethodDelete, "/api/auth/login", "", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "METHOD_NOT_ALLOWED", errorCode(t, rec))

	rec = s.do(t, http.MethodGet, "/api/auth/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", errorCode(t, rec))

	rec = s.do(t, http.MethodDelete, "/api/auth/profile", "", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "METHOD_NOT_ALLOWED", errorCode(t, rec))
}

func TestRespondErrorHidesUnknownErrors(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, respondError(c, errors.New("dial tcp 10.0.0.1:5432: connection refused")))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "10.0.0.1")
	require.Equal(t, codeInternal, errorCode(t, rec))
}

func TestSwaggerDocServedAsJSON(t *testing.T) {
	e := echo.New()
	RegisterSwagger(e, "../../../docs/swagger.yaml")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]interface{}
	decode(t, rec, &doc)
	paths, ok := doc["paths"].(map[string]interface{})
	require.True(t, ok)
	require.Contains(t, paths, "/api/auth/forgot-password")
	require.Contains(t, paths, "/api/admin/users/{id}")
}

func TestSwaggerDocMissingFile(t *testing.T) {
	e := echo.New()
	RegisterSwagger(e, "does-not-exist.yaml")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestResetPasswordPage(t *testing.T) {
	e := echo.New()
	RegisterPages(e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reset-password?token=abc", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	require.Contains(t, rec.Body.String(), "/api/auth/reset-password")
}
