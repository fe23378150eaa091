// Package auth signs admins in and verifies their sessions.
package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 10

// Users is the account storage used by Service.
type Users interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Role(ctx context.Context, userID uuid.UUID) (string, error)
	SetRole(ctx context.Context, userID uuid.UUID, role string) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error
}

type Service struct {
	users  Users
	tokens *Tokens
	logger zerolog.Logger
}

func NewService(users Users, tokens *Tokens) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: log.With().Str("service", "auth").Logger(),
	}
}

func (s *Service) Tokens() *Tokens {
	return s.tokens
}

// placeholder hash compared against when the email is unknown, so both
// failure paths cost one bcrypt comparison
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), bcrypt.DefaultCost)

// Login verifies the password and then the role. An account without the admin
// role gets no session even when the password is right.
func (s *Service) Login(ctx context.Context, email, password string) (string, Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errs.IsNotFound(err) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		s.logger.Info().Str("email", email).Msg("Login failed: unknown email")
		return "", Session{}, errs.NewInvalidCredentialsError()
	}
	if err != nil {
		return "", Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info().Str("email", user.Email).Msg("Login failed: wrong password")
		return "", Session{}, errs.NewInvalidCredentialsError()
	}

	role, err := s.users.Role(ctx, user.ID)
	if err != nil {
		return "", Session{}, err
	}
	if role != models.RoleAdmin {
		s.logger.Warn().Str("email", user.Email).Str("role", role).Msg("Login refused: not an admin")
		return "", Session{}, errs.NewAccessDeniedError()
	}

	token, session, err := s.tokens.Issue(user.ID, user.Email, role)
	if err != nil {
		return "", Session{}, err
	}
	s.logger.Info().Str("email", user.Email).Msg("Admin signed in")
	return token, session, nil
}

// Authenticate verifies a token and re-checks the role it carries.
func (s *Service) Authenticate(token string) (Session, error) {
	session, err := s.tokens.Parse(token)
	if err != nil {
		return Session{}, err
	}
	if session.Role != models.RoleAdmin {
		return Session{}, errs.NewAccessDeniedError()
	}
	return session, nil
}

// EnsureAdmin creates the account if needed, sets its password and grants the
// admin role.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (*models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case errs.IsNotFound(err):
		user = &models.User{Email: email, PasswordHash: hash}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
			return nil, err
		}
	}

	if err := s.users.SetRole(ctx, user.ID, models.RoleAdmin); err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", user.Email).Msg("Admin account ready")
	return user, nil
}

func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", errs.NewInvalidFieldError("password", "must be at least 10 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errs.NewInternalErrorWithCause("could not hash password", err)
	}
	return string(hash), nil
}
