package content

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/construction-site-backend/cache"
	"github.com/rpupo63/construction-site-backend/database"
	"github.com/rpupo63/construction-site-backend/database/dbtest"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/models"
	"github.com/rpupo63/construction-site-backend/storage"
	"github.com/rpupo63/construction-site-backend/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	publicBase = "https://abc.supabase.co/storage/v1/object/public"
	bucket     = "company-assets"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{1}, 32)...)

type fixture struct {
	catalog *Catalog
	db      database.Database
	store   *storage.MemoryStore
	files   *storage.Files
	cache   *cache.Local
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := database.New(dbtest.New(t))
	store := storage.NewMemoryStore()
	files := storage.NewFiles(store, publicBase, bucket)
	c := cache.NewLocal(64, time.Minute)
	return fixture{
		catalog: NewCatalog(db, Deps{Cache: c, TTL: time.Minute, Files: files}),
		db:      db,
		store:   store,
		files:   files,
		cache:   c,
	}
}

func pngUpload(name string) *storage.FileUpload {
	return &storage.FileUpload{Filename: name, Size: int64(len(pngBytes)), Body: bytes.NewReader(pngBytes)}
}

func projectInput(title string) *validation.ProjectInput {
	return &validation.ProjectInput{
		Title:       title,
		Description: "A new patient wing with twelve exam rooms.",
		Industry:    "healthcare",
		Services:    []string{"Design-build"},
	}
}

func articleInput(title string) *validation.ArticleInput {
	return &validation.ArticleInput{
		Title:    title,
		Excerpt:  strings.Repeat("e", 60),
		Content:  "Steel topping out ceremony content body.",
		Category: "company-news",
	}
}

func TestListAdminIsSupersetOfListPublic(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	draft := projectInput("Draft project")
	live := projectInput("Live project")
	live.Published = true
	_, err := f.catalog.Projects.Create(ctx, draft, nil)
	require.NoError(t, err)
	_, err = f.catalog.Projects.Create(ctx, live, nil)
	require.NoError(t, err)

	admin, err := f.catalog.Projects.ListAdmin(ctx)
	require.NoError(t, err)
	public, err := f.catalog.Projects.ListPublic(ctx)
	require.NoError(t, err)

	assert.Len(t, admin, 2)
	require.Len(t, public, 1)
	adminIDs := map[uuid.UUID]bool{}
	for _, p := range admin {
		adminIDs[p.ID] = true
	}
	for _, p := range public {
		assert.True(t, p.Published)
		assert.True(t, adminIDs[p.ID])
	}
}

func TestCreateRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	in := &validation.TestimonialInput{
		Quote:        strings.Repeat("Great partner on a complex build. ", 3),
		AuthorName:   "Dana Smith",
		AuthorTitle:  "Facilities Director",
		Company:      "Mercy Health",
		Industry:     "healthcare",
		Rating:       4,
		DisplayOrder: 3,
	}
	created, err := f.catalog.Testimonials.Create(ctx, in, nil)
	require.NoError(t, err)

	rows, err := f.catalog.Testimonials.ListAdmin(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, created.ID, rows[0].ID)
	assert.Equal(t, *in, *f.catalog.Testimonials.InputFor(rows[0]))
}

func TestCreateAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.catalog.Testimonials.Create(ctx, &validation.TestimonialInput{
		Quote:      strings.Repeat("q", 60),
		AuthorName: "Lee",
		Industry:   "retail",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, created.Rating)
	assert.False(t, created.Published)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	in := articleInput("Short excerpt")
	in.Excerpt = "too short"
	_, err := f.catalog.Articles.Create(ctx, in, pngUpload("cover.png"))
	require.Error(t, err)
	assert.True(t, errs.IsValidationError(err))
	assert.Contains(t, errs.FieldErrors(err), "excerpt")

	rows, err := f.catalog.Articles.ListAdmin(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
	objs, _ := f.store.List(ctx, "")
	assert.Empty(t, objs, "nothing is uploaded for invalid input")
}

func TestNewProjectWithImageStaysPrivateUntilPublished(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	project, err := f.catalog.Projects.Create(ctx, projectInput("Healthcare Wing"), pngUpload("wing.png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(project.ImageURL, publicBase+"/"+bucket+"/projects/"), project.ImageURL)
	assert.False(t, project.Published)

	key, ok := f.files.KeyFromURL(project.ImageURL)
	require.True(t, ok)
	assert.True(t, f.store.Has(key))

	public, err := f.catalog.Projects.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)

	in := f.catalog.Projects.InputFor(project)
	in.Published = true
	loadedAt := project.UpdatedAt
	_, err = f.catalog.Projects.Update(ctx, project.ID, in, &loadedAt, nil)
	require.NoError(t, err)

	public, err = f.catalog.Projects.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, project.ImageURL, public[0].ImageURL)
}

func TestListsAreCachedUntilMutation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.catalog.SocialLinks.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, first)

	// written behind the service's back: cached list does not see it
	require.NoError(t, f.db.SocialLinks().Create(ctx, &models.SocialLink{
		Base: models.Base{Published: true}, Platform: "linkedin", URL: "https://linkedin.com/company/acme",
	}))
	cached, err := f.catalog.SocialLinks.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, cached)

	_, err = f.catalog.SocialLinks.Create(ctx, &validation.SocialLinkInput{Platform: "youtube", URL: "https://youtube.com/@acme", Published: true}, nil)
	require.NoError(t, err)

	fresh, err := f.catalog.SocialLinks.ListPublic(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)

	_, err = f.cache.Get(ctx, cache.Key(models.ResourceSocialLinks, cache.Public))
	assert.NoError(t, err)
}

func TestUpdateRequiresPrecondition(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.catalog.Projects.Create(ctx, projectInput("Retail Buildout"), nil)
	require.NoError(t, err)

	_, err = f.catalog.Projects.Update(ctx, p.ID, projectInput("Retail Buildout 2"), nil, nil)
	require.Error(t, err)
	assert.True(t, errs.IsPreconditionRequiredError(err))
}

func TestUpdateRejectsStaleWrite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.catalog.Projects.Create(ctx, projectInput("Original"), nil)
	require.NoError(t, err)
	loadedAt := p.UpdatedAt

	time.Sleep(2 * time.Millisecond)
	_, err = f.catalog.Projects.Update(ctx, p.ID, projectInput("First save"), &loadedAt, nil)
	require.NoError(t, err)

	_, err = f.catalog.Projects.Update(ctx, p.ID, projectInput("Second save"), &loadedAt, nil)
	require.Error(t, err)
	assert.True(t, errs.IsStaleWriteError(err))

	got, err := f.catalog.Projects.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "First save", got.Title)
}

func TestUpdateReplacingFileRemovesOldOne(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	member, err := f.catalog.TeamMembers.Create(ctx, &validation.TeamMemberInput{
		Name: "Pat Rivera", Title: "Superintendent", Department: "field", Bio: strings.Repeat("b", 60),
	}, pngUpload("pat.png"))
	require.NoError(t, err)
	oldKey, _ := f.files.KeyFromURL(member.HeadshotURL)
	require.True(t, f.store.Has(oldKey))

	loadedAt := member.UpdatedAt
	updated, err := f.catalog.TeamMembers.Update(ctx, member.ID, f.catalog.TeamMembers.InputFor(member), &loadedAt, pngUpload("pat-2024.png"))
	require.NoError(t, err)

	newKey, _ := f.files.KeyFromURL(updated.HeadshotURL)
	assert.NotEqual(t, oldKey, newKey)
	assert.True(t, f.store.Has(newKey))
	assert.False(t, f.store.Has(oldKey))
}

func TestDeleteMissingIDIsNoop(t *testing.T) {
	f := newFixture(t)
	assert.NoError(t, f.catalog.Articles.Delete(context.Background(), uuid.New()))
}

func TestDeletePartnerLogoRemovesFileThenRow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.store.Put(ctx, "logos/mercy-health.png", bytes.NewReader(pngBytes), int64(len(pngBytes)), "image/png"))

	logo, err := f.catalog.PartnerLogos.Create(ctx, &validation.PartnerLogoInput{
		Name:     "Mercy Health",
		Category: "client",
		ImageURL: publicBase + "/" + bucket + "/logos/mercy-health.png",
	}, nil)
	require.NoError(t, err)

	require.NoError(t, f.catalog.PartnerLogos.Delete(ctx, logo.ID))
	assert.False(t, f.store.Has("logos/mercy-health.png"))

	_, err = f.catalog.PartnerLogos.Get(ctx, logo.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteRollsBackWhenCascadeFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	project, err := f.catalog.Projects.Create(ctx, projectInput("Clinic"), nil)
	require.NoError(t, err)

	rows := f.catalog.Projects.cascade.rows
	f.catalog.Projects.cascade.rows = func(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
		if err := rows(ctx, tx, id); err != nil {
			return err
		}
		return errors.New("lock timeout")
	}

	err = f.catalog.Projects.Delete(ctx, project.ID)
	require.Error(t, err)
	assert.True(t, errs.IsTransactionFailedError(err))

	_, err = f.db.Projects().FindByID(ctx, project.ID)
	assert.NoError(t, err)
}

func TestDeleteSucceedsWhenFileIsOutsideBucket(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	logo, err := f.catalog.PartnerLogos.Create(ctx, &validation.PartnerLogoInput{
		Name: "Acme", Category: "partner", ImageURL: "https://cdn.acme.com/logo.png",
	}, nil)
	require.NoError(t, err)
	assert.NoError(t, f.catalog.PartnerLogos.Delete(ctx, logo.ID))
}

func TestSlugGeneratedAndKeptUnique(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a, err := f.catalog.Articles.Create(ctx, articleInput("Steel Topping Out!"), nil)
	require.NoError(t, err)
	assert.Equal(t, "steel-topping-out", a.Slug)

	b, err := f.catalog.Articles.Create(ctx, articleInput("Steel topping out"), nil)
	require.NoError(t, err)
	assert.Equal(t, "steel-topping-out-2", b.Slug)

	// saving unchanged keeps the slug
	in := f.catalog.Articles.InputFor(a)
	in.Slug = ""
	loadedAt := a.UpdatedAt
	again, err := f.catalog.Articles.Update(ctx, a.ID, in, &loadedAt, nil)
	require.NoError(t, err)
	assert.Equal(t, "steel-topping-out", again.Slug)
}

func TestExplicitDuplicateSlugIsConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	in := articleInput("First")
	in.Slug = "taken"
	_, err := f.catalog.Articles.Create(ctx, in, nil)
	require.NoError(t, err)

	dup := articleInput("Second")
	dup.Slug = "taken"
	_, err = f.catalog.Articles.Create(ctx, dup, pngUpload("cover.png"))
	require.Error(t, err)
	assert.True(t, errs.IsUniqueConstraintViolationError(err))
	assert.True(t, errs.IsConflict(err))

	objs, _ := f.store.List(ctx, "articles/")
	assert.Empty(t, objs, "upload of the rejected row is discarded")
}

func TestTeamMemberAnchorGenerated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	m, err := f.catalog.TeamMembers.Create(ctx, &validation.TeamMemberInput{
		Name: "José Álvarez", Title: "Estimator", Department: "preconstruction", Bio: strings.Repeat("b", 60),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "jose-alvarez", m.AnchorID)
}

func TestFileRejectedForResourceWithoutMedia(t *testing.T) {
	f := newFixture(t)

	_, err := f.catalog.SocialLinks.Create(context.Background(), &validation.SocialLinkInput{Platform: "x", URL: "https://x.com/acme"}, pngUpload("a.png"))
	require.Error(t, err)
	assert.True(t, errs.IsBadRequest(err))
}

func TestFreeSlug(t *testing.T) {
	assert.Equal(t, "a", freeSlug("a", nil, ""))
	assert.Equal(t, "a-2", freeSlug("a", []string{"a"}, ""))
	assert.Equal(t, "a-3", freeSlug("a", []string{"a", "a-2"}, ""))
	assert.Equal(t, "a", freeSlug("a", []string{"a", "a-2"}, "a"))
}
