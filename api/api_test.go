package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rpupo63/construction-site-backend/auth"
	"github.com/rpupo63/construction-site-backend/cache"
	"github.com/rpupo63/construction-site-backend/content"
	"github.com/rpupo63/construction-site-backend/database"
	"github.com/rpupo63/construction-site-backend/database/dbtest"
	"github.com/rpupo63/construction-site-backend/models"
	"github.com/rpupo63/construction-site-backend/services"
	"github.com/rpupo63/construction-site-backend/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "correct-horse-battery"
	testPublicURL = "https://abc.supabase.co/storage/v1/object/public"
	testBucket    = "company-assets"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{1}, 32)...)

type testServer struct {
	handler http.Handler
	db      database.Database
	store   *storage.MemoryStore
	auth    *auth.Service
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := database.New(dbtest.New(t))
	store := storage.NewMemoryStore()
	files := storage.NewFiles(store, testPublicURL, testBucket)
	catalog := content.NewCatalog(db, content.Deps{Cache: cache.NewLocal(64, time.Minute), Files: files})
	authService := auth.NewService(db.Users(), auth.NewTokens("test-secret", time.Hour))

	_, err := authService.EnsureAdmin(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)
	token, _, err := authService.Login(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)

	handler := NewRouter(Dependencies{
		Catalog: catalog,
		Auth:    authService,
		Contact: services.NewContactService(db.Contacts(), nil),
		Sweeper: services.NewOrphanSweeper(db, files, content.ManagedPrefixes, 0),
		DB:      db,
	}, withConfig(map[string]string{"ACCEPTED_ORIGINS": "https://example.com", "REQUEST_LOGGING": "false"}))

	return &testServer{handler: handler, db: db, store: store, auth: authService, token: token}
}

func (s *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) admin(method, path string, body any) *http.Request {
	req := jsonRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+s.token)
	return req
}

func jsonRequest(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func testimonialBody(published bool) map[string]any {
	return map[string]any{
		"quote":       strings.Repeat("Great crew, finished early and under budget. ", 2),
		"author_name": "Pat Lee",
		"industry":    "healthcare",
		"published":   published,
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, jsonRequest(http.MethodGet, "/api/admin/testimonials", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := jsonRequest(http.MethodGet, "/api/admin/testimonials", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, s.do(t, req).Code)

	req = jsonRequest(http.MethodGet, "/api/admin/testimonials", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: s.token})
	assert.Equal(t, http.StatusOK, s.do(t, req).Code)
}

func TestLoginAndLogout(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{"email": adminEmail, "password": adminPassword}))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[LoginResponse](t, rec)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleAdmin, resp.Role)
	require.NotEmpty(t, rec.Result().Cookies())
	assert.Equal(t, SessionCookie, rec.Result().Cookies()[0].Name)

	rec = s.do(t, jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{"email": adminEmail, "password": "wrong-password"}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{"email": "not-an-email"}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, jsonRequest(http.MethodPost, "/api/auth/logout", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}

func TestLoginNonAdminDenied(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	hash, err := auth.HashPassword(adminPassword)
	require.NoError(t, err)
	user := &models.User{Email: "editor@example.com", PasswordHash: hash}
	require.NoError(t, s.db.Users().Create(ctx, user))
	require.NoError(t, s.db.Users().SetRole(ctx, user.ID, "editor"))

	rec := s.do(t, jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{"email": "editor@example.com", "password": adminPassword}))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestResourceLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, s.admin(http.MethodPost, "/api/admin/testimonials", testimonialBody(false)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Testimonial](t, rec)
	tag := rec.Header().Get("ETag")
	require.NotEmpty(t, tag)

	// drafts stay off the public site
	rec = s.do(t, jsonRequest(http.MethodGet, "/api/public/testimonials", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[ListResponse[models.Testimonial]](t, rec).Total)

	// update without precondition
	rec = s.do(t, s.admin(http.MethodPut, "/api/admin/testimonials/"+created.ID.String(), testimonialBody(true)))
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)

	req := s.admin(http.MethodPut, "/api/admin/testimonials/"+created.ID.String(), testimonialBody(true))
	req.Header.Set("If-Match", tag)
	rec = s.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// the old tag is stale now
	req = s.admin(http.MethodPut, "/api/admin/testimonials/"+created.ID.String(), testimonialBody(false))
	req.Header.Set("If-Match", tag)
	assert.Equal(t, http.StatusConflict, s.do(t, req).Code)

	rec = s.do(t, jsonRequest(http.MethodGet, "/api/public/testimonials", nil))
	list := decode[ListResponse[models.Testimonial]](t, rec)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Pat Lee", list.Items[0].AuthorName)

	rec = s.do(t, s.admin(http.MethodDelete, "/api/admin/testimonials/"+created.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, s.admin(http.MethodDelete, "/api/admin/testimonials/"+created.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, s.admin(http.MethodGet, "/api/admin/testimonials/"+created.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateValidationErrors(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, s.admin(http.MethodPost, "/api/admin/testimonials", map[string]any{"quote": "too short", "industry": "space"}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "Quote must be at least 50 characters", resp.Fields["quote"])
	assert.Contains(t, resp.Fields, "industry")
	assert.Contains(t, resp.Fields, "author_name")
}

func TestMultipartCreateWithFile(t *testing.T) {
	s := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "Mercy Health"))
	require.NoError(t, mw.WriteField("category", "client"))
	require.NoError(t, mw.WriteField("display_order", "3"))
	require.NoError(t, mw.WriteField("published", "on"))
	part, err := mw.CreateFormFile("file", "mercy.png")
	require.NoError(t, err)
	_, _ = part.Write(pngBytes)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/partner_logos", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	rec := s.do(t, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	logo := decode[models.PartnerLogo](t, rec)
	assert.Equal(t, 3, logo.DisplayOrder)
	assert.True(t, logo.Published)
	require.True(t, strings.HasPrefix(logo.ImageURL, testPublicURL+"/"+testBucket+"/partners/"))
	assert.True(t, s.store.Has(strings.TrimPrefix(logo.ImageURL, testPublicURL+"/"+testBucket+"/")))
}

func TestUnsupportedContentType(t *testing.T) {
	s := newTestServer(t)
	req := s.admin(http.MethodPost, "/api/admin/testimonials", nil)
	req.Header.Set("Content-Type", "text/plain")
	assert.Equal(t, http.StatusUnsupportedMediaType, s.do(t, req).Code)
}

func TestHomeFanOut(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, s.admin(http.MethodPost, "/api/admin/testimonials", testimonialBody(true)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, jsonRequest(http.MethodGet, "/api/public/home", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	home := decode[HomeResponse](t, rec)
	assert.Len(t, home.Testimonials, 1)
	assert.Empty(t, home.FeaturedProjects)
}

func TestPublicProjectHidesDrafts(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{
		"title":       "Riverside Clinic",
		"description": "A new patient wing with twelve exam rooms.",
		"industry":    "healthcare",
	}
	rec := s.do(t, s.admin(http.MethodPost, "/api/admin/projects", body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	project := decode[models.Project](t, rec)

	rec = s.do(t, jsonRequest(http.MethodGet, "/api/public/projects/"+project.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, jsonRequest(http.MethodGet, "/api/public/projects/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGalleryUpload(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, s.admin(http.MethodPost, "/api/admin/projects", map[string]any{
		"title":       "Riverside Clinic",
		"description": "A new patient wing with twelve exam rooms.",
		"industry":    "healthcare",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	project := decode[models.Project](t, rec)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range []struct {
		name string
		data []byte
	}{{"a.png", pngBytes}, {"notes.txt", []byte("plain text")}, {"b.png", pngBytes}} {
		part, err := mw.CreateFormFile("files", f.name)
		require.NoError(t, err)
		_, _ = part.Write(f.data)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/projects/"+project.ID.String()+"/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	rec = s.do(t, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	result := decode[content.BatchResult](t, rec)
	assert.Len(t, result.Uploaded, 2)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "notes.txt", result.Failed[0].Filename)

	ids := []string{result.Uploaded[1].ID.String(), result.Uploaded[0].ID.String()}
	rec = s.do(t, s.admin(http.MethodPut, "/api/admin/projects/"+project.ID.String()+"/images/order", map[string]any{"image_ids": ids}))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, s.admin(http.MethodGet, "/api/admin/projects/"+project.ID.String()+"/images", nil))
	images := decode[[]models.ProjectImage](t, rec)
	require.Len(t, images, 2)
	assert.Equal(t, result.Uploaded[1].ID, images[0].ID)
}

func TestOrphanEndpoint(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.store.Put(context.Background(), "partners/orphan.png", bytes.NewReader(pngBytes), int64(len(pngBytes)), "image/png"))

	rec := s.do(t, s.admin(http.MethodPost, "/api/admin/maintenance/orphans", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, s.admin(http.MethodPost, "/api/admin/maintenance/orphans?dry_run=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[services.SweepReport](t, rec)
	assert.Equal(t, []string{"partners/orphan.png"}, report.Orphans)
	assert.True(t, s.store.Has("partners/orphan.png"))

	rec = s.do(t, s.admin(http.MethodPost, "/api/admin/maintenance/orphans?confirm=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, s.store.Has("partners/orphan.png"))
}

func TestContactEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, jsonRequest(http.MethodPost, "/api/public/contact", map[string]any{
		"name":    "Dana Ruiz",
		"email":   "dana" + "@" + "ruiz.example",
		"message": "We are planning a two storey office fit-out.",
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	list, err := s.db.Contacts().List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Dana Ruiz", list[0].Name)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/public/projects", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	assert.Equal(t, http.StatusForbidden, s.do(t, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/public/projects", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := s.do(t, req)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, jsonRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[HealthResponse](t, rec).Status)
}
