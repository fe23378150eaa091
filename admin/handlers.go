// Package admin serves the server-rendered content management screens.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/construction-site-backend/auth"
	"github.com/rpupo63/construction-site-backend/content"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/models"
	"github.com/rpupo63/construction-site-backend/storage"
	"github.com/rpupo63/construction-site-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// BasePath is where the admin screens are mounted.
const BasePath = "/admin"

const (
	eventToast       = "toast"
	eventRowsChanged = "rows-changed"
	toastError       = "error"
	toastSuccess     = "success"
	maxFormBody      = 26 << 20
	maxFormMemory    = 8 << 20
)

type toastEvent struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// ContactLister lists contact form submissions, newest first.
type ContactLister interface {
	List(ctx context.Context, limit int) ([]models.ContactSubmission, error)
}

type Handlers struct {
	auth          *auth.Service
	catalog       *content.Catalog
	contacts      ContactLister
	screens       []screen
	secureCookies bool
	logger        zerolog.Logger
}

func NewHandlers(catalog *content.Catalog, authService *auth.Service, contacts ContactLister, secureCookies bool) *Handlers {
	h := &Handlers{
		auth:          authService,
		catalog:       catalog,
		contacts:      contacts,
		secureCookies: secureCookies,
		logger:        log.With().Str("handlerName", "adminHandlers").Logger(),
	}
	h.screens = append(newScreens(catalog, h), &contactScreen{h: h})
	return h
}

// Routes returns the admin router, to be mounted at BasePath.
func (h *Handlers) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/login", h.loginPage)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Get("/", h.dashboard)
		for _, s := range h.screens {
			s.mount(r)
		}
		h.mountGallery(r)
	})
	return r
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	type card struct {
		Name  string
		Label string
	}
	cards := make([]card, 0, len(h.screens))
	for _, s := range h.screens {
		cards = append(cards, card{Name: s.Name(), Label: s.Label()})
	}
	h.renderPage(w, r, "dashboard", map[string]any{"Title": "Dashboard", "Cards": cards})
}

// LoginPage is the view model of the sign-in screen.
type LoginPage struct {
	Title   string
	Email   string
	Message string
}

func (h *Handlers) loginPage(w http.ResponseWriter, r *http.Request) {
	page := LoginPage{Title: "Sign in"}
	if r.URL.Query().Get("denied") != "" {
		page.Message = "Access denied"
	}
	h.renderPage(w, r, "login", page)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	input := &validation.LoginInput{Email: r.FormValue("email"), Password: r.FormValue("password")}
	page := LoginPage{Title: "Sign in", Email: input.Email}

	res, err := validation.Validate("login", input)
	if err == nil && !res.Valid {
		err = res.Err()
	}
	var token string
	var session auth.Session
	if err == nil {
		token, session, err = h.auth.Login(r.Context(), input.Email, input.Password)
	}
	if err != nil {
		status := http.StatusUnauthorized
		switch {
		case errs.IsAccessDeniedError(err):
			// signed in but not an admin: drop any session and refuse
			h.clearSession(w)
			page.Message = "Access denied"
			status = http.StatusForbidden
		case errs.IsValidationError(err), errs.IsInvalidCredentialsError(err):
			page.Message = "Invalid email or password"
		default:
			h.logger.Error().Err(err).Msg("Sign in failed")
			page.Message = "Sign in is unavailable right now. Try again."
			status = http.StatusServiceUnavailable
		}
		h.renderPageStatus(w, r, status, "login", page)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, BasePath+"/", http.StatusSeeOther)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	h.clearSession(w)
	h.redirect(w, r, BasePath+"/login")
}

func (h *Handlers) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// requireAdmin sends visitors without a valid admin session to the sign-in
// screen. A token whose role is not admin is cleared on the way.
func (h *Handlers) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.SessionCookie)
		if err != nil || cookie.Value == "" {
			h.redirect(w, r, BasePath+"/login")
			return
		}
		if _, err := h.auth.Authenticate(cookie.Value); err != nil {
			h.clearSession(w)
			if errs.IsAccessDeniedError(err) {
				h.logger.Warn().Msg("Session without admin role rejected")
				h.redirect(w, r, BasePath+"/login?denied=1")
				return
			}
			h.redirect(w, r, BasePath+"/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// redirect works for both full page loads and htmx requests.
func (h *Handlers) redirect(w http.ResponseWriter, r *http.Request, to string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (h *Handlers) trigger(w http.ResponseWriter, events map[string]any) {
	raw, err := json.Marshal(events)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode HX-Trigger")
		return
	}
	w.Header().Set("HX-Trigger", string(raw))
}

func (h *Handlers) toast(w http.ResponseWriter, level, message string) {
	h.trigger(w, map[string]any{eventToast: toastEvent{Level: level, Message: message}})
}

// storeError surfaces a failed action as a toast and leaves the page as it is.
func (h *Handlers) storeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("Admin action failed")
	}
	h.toast(w, toastError, userMessage(err))
	w.Header().Set("HX-Reswap", "none")
	w.WriteHeader(status)
}

// userMessage is the toast text for err.
func userMessage(err error) string {
	switch {
	case errs.IsStaleWriteError(err):
		return "Someone else changed this record. Reload it and try again."
	case errs.IsPreconditionRequiredError(err):
		return "Reload the record before saving."
	case errs.IsNotFound(err):
		return "That record no longer exists."
	case errs.IsMalformedPayloadError(err):
		return "The submitted form could not be read. Try again."
	}
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError && apiErr.Details != "" {
		return apiErr.Details
	}
	return "Something went wrong. Try again."
}

func (h *Handlers) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, errs.NewInvalidFieldError("id", "must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// decodeForm reads a multipart or urlencoded form into input and returns the
// optional "file" part.
func (h *Handlers) decodeForm(w http.ResponseWriter, r *http.Request, input any) (*storage.FileUpload, func(), error) {
	cleanup := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, cleanup, errs.NewMalformedPayloadError("form", err)
	}
	if r.MultipartForm == nil {
		return nil, cleanup, validation.DecodeForm(input, r.PostForm)
	}

	cleanup = func() { _ = r.MultipartForm.RemoveAll() }
	if err := validation.DecodeForm(input, r.MultipartForm.Value); err != nil {
		return nil, cleanup, err
	}
	part, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, cleanup, nil
	}
	if err != nil {
		return nil, cleanup, errs.NewMalformedPayloadError("file", err)
	}
	if header.Size == 0 && header.Filename == "" {
		part.Close()
		return nil, cleanup, nil
	}
	removeAll := cleanup
	cleanup = func() {
		part.Close()
		removeAll()
	}
	return &storage.FileUpload{Filename: header.Filename, Size: header.Size, Body: part}, cleanup, nil
}
