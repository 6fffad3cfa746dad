package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/apconnect/directory-api/internal/model"
	"github.com/apconnect/directory-api/internal/repository"
	"github.com/apconnect/directory-api/internal/repository/mocks"
	"github.com/apconnect/directory-api/pkg/auth"
	apperrors "github.com/apconnect/directory-api/pkg/errors"
	"github.com/apconnect/directory-api/pkg/security"
)

type memorySessions struct {
	ids map[string]uuid.UUID
}

func (m *memorySessions) Save(_ context.Context, id string, userID uuid.UUID, _ time.Duration) error {
	m.ids[id] = userID
	return nil
}

func (m *memorySessions) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.ids[id]
	return ok, nil
}

func (m *memorySessions) Delete(_ context.Context, id string, _ uuid.UUID) error {
	delete(m.ids, id)
	return nil
}

func (m *memorySessions) DeleteAll(_ context.Context, userID uuid.UUID) error {
	return m.DeleteOthers(context.Background(), userID, "")
}

func (m *memorySessions) DeleteOthers(_ context.Context, userID uuid.UUID, keep string) error {
	for id, owner := range m.ids {
		if owner == userID && id != keep {
			delete(m.ids, id)
		}
	}
	return nil
}

type recordingMailer struct {
	verifyTo, verifyToken string
	resetTo, resetToken   string
}

func (r *recordingMailer) SendVerification(_ context.Context, to, token string) error {
	r.verifyTo, r.verifyToken = to, token
	return nil
}

func (r *recordingMailer) SendPasswordReset(_ context.Context, to, token string) error {
	r.resetTo, r.resetToken = to, token
	return nil
}

func (r *recordingMailer) SendCustom(context.Context, string, string, string) error {
	return nil
}

type fixture struct {
	users    *mocks.UserRepository
	tokens   *mocks.TokenRepository
	sessions *memorySessions
	mailer   *recordingMailer
	hasher   security.PasswordHasher
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		users:    new(mocks.UserRepository),
		tokens:   new(mocks.TokenRepository),
		sessions: &memorySessions{ids: map[string]uuid.UUID{}},
		mailer:   &recordingMailer{},
		hasher:   security.NewBcryptHasher(bcrypt.MinCost),
	}
	jwtSvc := auth.NewJWTService("test-secret", "apconnect", time.Hour)
	f.svc = NewService(f.users, f.tokens, jwtSvc, f.sessions, f.hasher, f.mailer)
	return f
}

func (f *fixture) user(t *testing.T, password string) *model.User {
	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)
	u := &model.User{Email: "jo@example.com", PasswordHash: hash, Role: model.RolePractitioner, EmailVerified: true}
	u.ID = uuid.New()
	return u
}

func TestSignUpSendsVerification(t *testing.T) {
	f := newFixture()
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "jo@example.com" && u.Role == model.RolePractitioner && u.PasswordHash != "secret1"
	})).Return(nil)
	f.tokens.On("Create", mock.Anything, mock.MatchedBy(func(tok *model.UserToken) bool {
		return tok.Purpose == model.TokenPurposeEmailVerification
	})).Return(nil)

	user, err := f.svc.SignUp(context.Background(), &model.SignUpRequest{Email: " Jo@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", user.Email)
	assert.Equal(t, "jo@example.com", f.mailer.verifyTo)
	assert.NotEmpty(t, f.mailer.verifyToken)

	stored := f.tokens.Calls[0].Arguments.Get(1).(*model.UserToken)
	assert.Equal(t, security.HashToken(f.mailer.verifyToken), stored.TokenHash)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	f := newFixture()
	f.users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := f.svc.SignUp(context.Background(), &model.SignUpRequest{Email: "jo@example.com", Password: "secret1"})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestSignInAndGetUser(t *testing.T) {
	f := newFixture()
	u := f.user(t, "secret1")
	f.users.On("GetByEmail", mock.Anything, "jo@example.com").Return(u, nil)
	f.users.On("TouchLastLogin", mock.Anything, u.ID, mock.Anything).Return(nil)
	f.users.On("GetByID", mock.Anything, u.ID).Return(u, nil)

	ctx := context.Background()
	session, err := f.svc.SignInWithPassword(ctx, &model.LoginRequest{Email: "jo@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultLoginRedirect, session.Redirect)
	assert.Len(t, f.sessions.ids, 1)

	got, err := f.svc.GetUser(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	f.svc.SignOut(ctx, session.AccessToken)
	assert.Empty(t, f.sessions.ids)

	_, err = f.svc.GetUser(ctx, session.AccessToken)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestSignInKeepsRedirect(t *testing.T) {
	f := newFixture()
	u := f.user(t, "secret1")
	f.users.On("GetByEmail", mock.Anything, "jo@example.com").Return(u, nil)
	f.users.On("TouchLastLogin", mock.Anything, u.ID, mock.Anything).Return(nil)

	session, err := f.svc.SignInWithPassword(context.Background(),
		&model.LoginRequest{Email: "jo@example.com", Password: "secret1", Redirect: "/admin"})
	require.NoError(t, err)
	assert.Equal(t, "/admin", session.Redirect)
}

func TestSignInWrongPassword(t *testing.T) {
	f := newFixture()
	u := f.user(t, "secret1")
	f.users.On("GetByEmail", mock.Anything, "jo@example.com").Return(u, nil)

	_, err := f.svc.SignInWithPassword(context.Background(), &model.LoginRequest{Email: "jo@example.com", Password: "nope123"})
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, msgInvalidCredentials, appErr.Message)
	assert.Empty(t, f.sessions.ids)
}

func TestSignInUnknownEmail(t *testing.T) {
	f := newFixture()
	f.users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	_, err := f.svc.SignInWithPassword(context.Background(), &model.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestResetPasswordUnknownEmailSucceeds(t *testing.T) {
	f := newFixture()
	f.users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	require.NoError(t, f.svc.ResetPasswordForEmail(context.Background(), "ghost@example.com"))
	assert.Empty(t, f.mailer.resetTo)
	f.tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newFixture()
	u := f.user(t, "secret1")
	ctx := context.Background()
	f.users.On("GetByEmail", mock.Anything, "jo@example.com").Return(u, nil)

	var stored *model.UserToken
	f.tokens.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*model.UserToken)
	}).Return(nil)

	require.NoError(t, f.svc.ResetPasswordForEmail(ctx, "jo@example.com"))
	require.NotNil(t, stored)
	assert.Equal(t, model.TokenPurposePasswordReset, stored.Purpose)
	assert.WithinDuration(t, time.Now().Add(time.Hour), stored.ExpiresAt, time.Minute)

	f.sessions.ids["old"] = u.ID
	f.tokens.On("GetByHash", mock.Anything, security.HashToken(f.mailer.resetToken), model.TokenPurposePasswordReset).Return(stored, nil)
	f.tokens.On("MarkUsed", mock.Anything, stored.ID, mock.Anything).Return(nil)
	f.users.On("UpdatePassword", mock.Anything, u.ID, mock.AnythingOfType("string")).Return(nil)

	err := f.svc.ConfirmPasswordReset(ctx, &model.ConfirmResetRequest{Token: f.mailer.resetToken, Password: "newsecret"})
	require.NoError(t, err)
	assert.Empty(t, f.sessions.ids)
}

func TestConsumeExpiredToken(t *testing.T) {
	f := newFixture()
	expired := &model.UserToken{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Purpose:   model.TokenPurposeEmailVerification,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	f.tokens.On("GetByHash", mock.Anything, security.HashToken("raw"), model.TokenPurposeEmailVerification).Return(expired, nil)

	err := f.svc.VerifyEmail(context.Background(), "raw")
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	f.users.AssertNotCalled(t, "MarkEmailVerified", mock.Anything, mock.Anything)
}

func TestUpdateUserRejectsShortPassword(t *testing.T) {
	f := newFixture()
	err := f.svc.UpdateUser(context.Background(), uuid.New(), "", &model.UpdatePasswordRequest{Password: "abc"})
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestSignInUnconfirmedEmail(t *testing.T) {
	f := newFixture()
	u := f.user(t, "secret1")
	u.EmailVerified = false
	f.users.On("GetByEmail", mock.Anything, "jo@example.com").Return(u, nil)

	_, err := f.svc.SignInWithPassword(context.Background(), &model.LoginRequest{Email: "jo@example.com", Password: "secret1"})
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	assert.Equal(t, msgEmailNotConfirmed, appErr.Message)
	assert.Empty(t, f.sessions.ids)
	f.users.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUserKeepsCurrentSession(t *testing.T) {
	f := newFixture()
	u := f.user(t, "secret1")
	f.users.On("GetByEmail", mock.Anything, "jo@example.com").Return(u, nil)
	f.users.On("TouchLastLogin", mock.Anything, u.ID, mock.Anything).Return(nil)
	f.users.On("GetByID", mock.Anything, u.ID).Return(u, nil)
	f.users.On("UpdatePassword", mock.Anything, u.ID, mock.AnythingOfType("string")).Return(nil)

	ctx := context.Background()
	session, err := f.svc.SignInWithPassword(ctx, &model.LoginRequest{Email: "jo@example.com", Password: "secret1"})
	require.NoError(t, err)
	f.sessions.ids["other-device"] = u.ID

	require.NoError(t, f.svc.UpdateUser(ctx, u.ID, session.AccessToken, &model.UpdatePasswordRequest{Password: "newsecret"}))

	got, err := f.svc.GetUser(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotContains(t, f.sessions.ids, "other-device")
	assert.Len(t, f.sessions.ids, 1)
}
