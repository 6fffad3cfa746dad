package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/apconnect/directory-api/internal/email"
	"github.com/apconnect/directory-api/internal/model"
	"github.com/apconnect/directory-api/internal/repository"
	"github.com/apconnect/directory-api/pkg/auth"
	apperrors "github.com/apconnect/directory-api/pkg/errors"
	"github.com/apconnect/directory-api/pkg/security"
)

const (
	resetTokenExpiry  = 1 * time.Hour
	verifyTokenExpiry = 48 * time.Hour
	tokenBytes        = 32
)

const (
	msgInvalidCredentials = "Invalid login credentials"
	msgEmailNotConfirmed  = "Email not confirmed"
)

type AuthServicer interface {
	SignUp(ctx context.Context, req *model.SignUpRequest) (*model.User, error)
	SignInWithPassword(ctx context.Context, req *model.LoginRequest) (*model.Session, error)
	SignOut(ctx context.Context, token string)
	ResetPasswordForEmail(ctx context.Context, emailAddr string) error
	ConfirmPasswordReset(ctx context.Context, req *model.ConfirmResetRequest) error
	UpdateUser(ctx context.Context, userID uuid.UUID, currentToken string, req *model.UpdatePasswordRequest) error
	GetUser(ctx context.Context, token string) (*model.User, error)
	VerifyEmail(ctx context.Context, token string) error
}

type Service struct {
	users    repository.UserRepository
	tokens   repository.TokenRepository
	jwt      auth.JWTService
	sessions SessionStore
	hasher   security.PasswordHasher
	mailer   email.Service
	now      func() time.Time
}

func NewService(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	jwtSvc auth.JWTService,
	sessions SessionStore,
	hasher security.PasswordHasher,
	mailer email.Service,
) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		jwt:      jwtSvc,
		sessions: sessions,
		hasher:   hasher,
		mailer:   mailer,
		now:      time.Now,
	}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// SignUp creates a practitioner account and emails a verification link.
func (s *Service) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.User, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return nil, apperrors.BadRequest(err.Error(), err)
		}
		return nil, apperrors.Internal("failed to create account", err)
	}

	user := &model.User{
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         model.RolePractitioner,
	}
	user.ID = uuid.New()

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("User already registered", err)
		}
		log.Error().Err(err).Msg("error creating user")
		return nil, apperrors.Internal("failed to create account", err)
	}

	raw, err := s.issueToken(ctx, user.ID, model.TokenPurposeEmailVerification, verifyTokenExpiry)
	if err != nil {
		log.Error().Err(err).Stringer("user_id", user.ID).Msg("error issuing verification token")
		return user, nil
	}
	if err := s.mailer.SendVerification(ctx, user.Email, raw); err != nil {
		log.Warn().Err(err).Stringer("user_id", user.ID).Msg("failed to send verification email")
	}

	log.Info().Stringer("user_id", user.ID).Msg("user signed up")
	return user, nil
}

func (s *Service) SignInWithPassword(ctx context.Context, req *model.LoginRequest) (*model.Session, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized(msgInvalidCredentials)
		}
		log.Error().Err(err).Msg("error loading user for sign in")
		return nil, apperrors.Internal("failed to sign in", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(msgInvalidCredentials)
	}
	if !user.EmailVerified {
		return nil, apperrors.Unauthorized(msgEmailNotConfirmed)
	}

	token, claims, err := s.jwt.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperrors.Internal("failed to sign in", err)
	}

	now := s.now()
	ttl := claims.ExpiresAt.Sub(now)
	if err := s.sessions.Save(ctx, claims.SessionID(), user.ID, ttl); err != nil {
		log.Error().Err(err).Stringer("user_id", user.ID).Msg("error saving session")
		return nil, apperrors.Internal("failed to sign in", err)
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		log.Warn().Err(err).Stringer("user_id", user.ID).Msg("failed to record last login")
	}

	redirect := req.Redirect
	if redirect == "" {
		redirect = model.DefaultLoginRedirect
	}

	return &model.Session{
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAt.Time,
		User:        user,
		Redirect:    redirect,
	}, nil
}

// SignOut revokes the session behind token. Failures are only logged.
func (s *Service) SignOut(ctx context.Context, token string) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		log.Warn().Err(err).Msg("sign out with invalid token")
		return
	}
	if err := s.sessions.Delete(ctx, claims.SessionID(), claims.UserID); err != nil {
		log.Error().Err(err).Stringer("user_id", claims.UserID).Msg("error signing out")
	}
}

// ResetPasswordForEmail succeeds for unknown addresses so accounts cannot be enumerated.
func (s *Service) ResetPasswordForEmail(ctx context.Context, emailAddr string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		log.Error().Err(err).Msg("error loading user for password reset")
		return apperrors.Internal("failed to send reset email", err)
	}

	raw, err := s.issueToken(ctx, user.ID, model.TokenPurposePasswordReset, resetTokenExpiry)
	if err != nil {
		log.Error().Err(err).Stringer("user_id", user.ID).Msg("error issuing reset token")
		return apperrors.Internal("failed to send reset email", err)
	}
	if err := s.mailer.SendPasswordReset(ctx, user.Email, raw); err != nil {
		log.Error().Err(err).Stringer("user_id", user.ID).Msg("error sending reset email")
		return apperrors.Internal("failed to send reset email", err)
	}
	return nil
}

func (s *Service) ConfirmPasswordReset(ctx context.Context, req *model.ConfirmResetRequest) error {
	token, err := s.consumeToken(ctx, req.Token, model.TokenPurposePasswordReset)
	if err != nil {
		return err
	}
	if err := s.setPassword(ctx, token.UserID, req.Password); err != nil {
		return err
	}
	if err := s.sessions.DeleteAll(ctx, token.UserID); err != nil {
		log.Warn().Err(err).Stringer("user_id", token.UserID).Msg("failed to revoke sessions after password reset")
	}
	return nil
}

// UpdateUser changes the signed-in user's password. The session behind
// currentToken stays valid; every other session is revoked.
func (s *Service) UpdateUser(ctx context.Context, userID uuid.UUID, currentToken string, req *model.UpdatePasswordRequest) error {
	if err := s.setPassword(ctx, userID, req.Password); err != nil {
		return err
	}

	var keep string
	if claims, err := s.jwt.ValidateToken(currentToken); err == nil && claims.UserID == userID {
		keep = claims.SessionID()
	}
	if err := s.sessions.DeleteOthers(ctx, userID, keep); err != nil {
		log.Warn().Err(err).Stringer("user_id", userID).Msg("failed to revoke other sessions after password change")
	}
	return nil
}

// GetUser resolves a bearer token to its user. The session must still exist.
func (s *Service) GetUser(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}

	ok, err := s.sessions.Exists(ctx, claims.SessionID())
	if err != nil {
		log.Error().Err(err).Msg("error checking session")
		return nil, apperrors.Internal("failed to load session", err)
	}
	if !ok {
		return nil, apperrors.Unauthorized("session has ended")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized("user no longer exists")
		}
		return nil, apperrors.Internal("failed to load user", err)
	}
	return user, nil
}

func (s *Service) VerifyEmail(ctx context.Context, raw string) error {
	token, err := s.consumeToken(ctx, raw, model.TokenPurposeEmailVerification)
	if err != nil {
		return err
	}
	if err := s.users.MarkEmailVerified(ctx, token.UserID); err != nil {
		log.Error().Err(err).Stringer("user_id", token.UserID).Msg("error verifying email")
		return apperrors.Internal("failed to verify email", err)
	}
	return nil
}

func (s *Service) setPassword(ctx context.Context, userID uuid.UUID, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return apperrors.BadRequest(err.Error(), err)
		}
		return apperrors.Internal("failed to update password", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("user", err)
		}
		log.Error().Err(err).Stringer("user_id", userID).Msg("error updating password")
		return apperrors.Internal("failed to update password", err)
	}
	return nil
}

func (s *Service) issueToken(ctx context.Context, userID uuid.UUID, purpose string, ttl time.Duration) (string, error) {
	raw, err := security.NewToken(tokenBytes)
	if err != nil {
		return "", err
	}
	now := s.now()
	err = s.tokens.Create(ctx, &model.UserToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: security.HashToken(raw),
		Purpose:   purpose,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	})
	if err != nil {
		return "", err
	}
	return raw, nil
}

func (s *Service) consumeToken(ctx context.Context, raw, purpose string) (*model.UserToken, error) {
	if raw == "" {
		return nil, apperrors.BadRequest("token is required", nil)
	}

	token, err := s.tokens.GetByHash(ctx, security.HashToken(raw), purpose)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.BadRequest("token is invalid or has expired", err)
		}
		return nil, apperrors.Internal("failed to read token", err)
	}

	now := s.now()
	if !token.Usable(now) {
		return nil, apperrors.BadRequest("token is invalid or has expired", nil)
	}
	if err := s.tokens.MarkUsed(ctx, token.ID, now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.BadRequest("token is invalid or has expired", err)
		}
		return nil, apperrors.Internal("failed to consume token", err)
	}
	return token, nil
}
