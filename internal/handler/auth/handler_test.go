package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/apconnect/directory-api/internal/handler"
	"github.com/apconnect/directory-api/internal/model"
	apperrors "github.com/apconnect/directory-api/pkg/errors"
)

type mockService struct{ mock.Mock }

func (m *mockService) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockService) SignInWithPassword(ctx context.Context, req *model.LoginRequest) (*model.Session, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(*model.Session)
	return s, args.Error(1)
}

func (m *mockService) SignOut(ctx context.Context, token string) {
	m.Called(ctx, token)
}

func (m *mockService) ResetPasswordForEmail(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockService) ConfirmPasswordReset(ctx context.Context, req *model.ConfirmResetRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockService) UpdateUser(ctx context.Context, userID uuid.UUID, currentToken string, req *model.UpdatePasswordRequest) error {
	return m.Called(ctx, userID, currentToken, req).Error(0)
}

func (m *mockService) GetUser(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockService) VerifyEmail(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

var signedIn = func() *model.User {
	u := &model.User{Email: "jo@example.com", Role: model.RolePractitioner}
	u.ID = uuid.New()
	return u
}()

func fakeAuth(c *gin.Context) {
	handler.SetCurrentUser(c, signedIn, "tok-123")
	c.Next()
}

func newRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"), fakeAuth)
	return r
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLoginReturnsSession(t *testing.T) {
	svc := new(mockService)
	svc.On("SignInWithPassword", mock.Anything, &model.LoginRequest{Email: "jo@example.com", Password: "secret1", Redirect: "/dashboard/profile"}).
		Return(&model.Session{AccessToken: "jwt", ExpiresAt: time.Now().Add(time.Hour), Redirect: "/dashboard/profile"}, nil)

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/auth/login",
		`{"email":"jo@example.com","password":"secret1","redirect":"/dashboard/profile"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"jwt"`)
	assert.Contains(t, w.Body.String(), `"redirect":"/dashboard/profile"`)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := new(mockService)
	svc.On("SignInWithPassword", mock.Anything, mock.Anything).Return(nil, apperrors.Unauthorized("Invalid login credentials"))

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"jo@example.com","password":"x"}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Invalid login credentials"}`, w.Body.String())
}

func TestSignUpValidation(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(new(mockService)).ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/auth/signup", `{"email":"not-an-email","password":"secret1"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignUpConflict(t *testing.T) {
	svc := new(mockService)
	svc.On("SignUp", mock.Anything, mock.Anything).Return(nil, apperrors.Conflict("User already registered", nil))

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/auth/signup", `{"email":"jo@example.com","password":"secret1"}`))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogoutUsesRequestToken(t *testing.T) {
	svc := new(mockService)
	svc.On("SignOut", mock.Anything, "tok-123").Return()

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestUpdatePasswordForSignedInUser(t *testing.T) {
	svc := new(mockService)
	svc.On("UpdateUser", mock.Anything, signedIn.ID, "tok-123", &model.UpdatePasswordRequest{Password: "newsecret"}).Return(nil)

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, jsonRequest(http.MethodPut, "/api/v1/auth/password", `{"password":"newsecret"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestMe(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(new(mockService)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"jo@example.com"`)
}

func TestVerifyEmailBadToken(t *testing.T) {
	svc := new(mockService)
	svc.On("VerifyEmail", mock.Anything, "stale").Return(apperrors.BadRequest("token is invalid or has expired", nil))

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify-email?token=stale", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
