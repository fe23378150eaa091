package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/construction-site-backend/errs"
)

// DefaultSessionTTL is how long an admin session lasts when SESSION_TTL is unset.
const DefaultSessionTTL = 12 * time.Hour

const issuer = "construction-site-backend"

// SessionCookie carries the session token for browser clients.
const SessionCookie = "site_session"

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Session is the identity carried by a verified token.
type Session struct {
	UserID    uuid.UUID
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Tokens issues and verifies HS256 session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) TTL() time.Duration {
	return t.ttl
}

// Issue signs a token for the user with the role resolved at login.
func (t *Tokens) Issue(userID uuid.UUID, email, role string) (string, Session, error) {
	now := t.now()
	session := Session{UserID: userID, Email: email, Role: role, ExpiresAt: now.Add(t.ttl)}
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", Session{}, errs.NewInternalErrorWithCause("could not sign session", err)
	}
	return signed, session, nil
}

// Parse verifies the signature and expiry of a token.
func (t *Tokens) Parse(token string) (Session, error) {
	if token == "" {
		return Session{}, errs.NewMissingTokenError()
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return Session{}, errs.NewTokenExpiredError()
	}
	if err != nil {
		return Session{}, errs.NewInvalidTokenError()
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Session{}, errs.NewInvalidTokenError()
	}
	session := Session{UserID: userID, Email: claims.Email, Role: claims.Role}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
