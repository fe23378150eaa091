package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/construction-site-backend/auth"
	"github.com/rpupo63/construction-site-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder    Responder
	logger       zerolog.Logger
	auth         *auth.Service
	secureCookie bool
}

func newAuthHandler(authService *auth.Service, secureCookie bool) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()
	return authHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		auth:         authService,
		secureCookie: secureCookie,
	}
}

// login verifies credentials and the admin role, then issues a session
// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} LoginResponse
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Router /api/auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input := &validation.LoginInput{}
		if err := decodeJSON(w, r, input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		res, err := validation.Validate("login", input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !res.Valid {
			h.responder.WriteError(w, res.Err())
			return
		}

		token, session, err := h.auth.Login(r.Context(), input.Email, input.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		http.SetCookie(w, h.cookie(token, session.ExpiresAt))
		h.responder.WriteJSON(w, LoginResponse{
			Token:     token,
			Email:     session.Email,
			Role:      session.Role,
			ExpiresAt: session.ExpiresAt,
		})
	}
}

// logout clears the session cookie. Tokens are stateless and simply expire.
// @Router /api/auth/logout [post]
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := h.cookie("", time.Unix(0, 0))
		c.MaxAge = -1
		http.SetCookie(w, c)
		h.responder.WriteNoContent(w)
	}
}

// @Router /api/admin/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := ctxGetSession(r.Context())
		h.responder.WriteJSON(w, SessionResponse{
			Email:     session.Email,
			Role:      session.Role,
			ExpiresAt: session.ExpiresAt,
		})
	}
}

func (h authHandler) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
