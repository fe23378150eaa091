package validation

import (
	"strings"
	"testing"

	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validArticle() *ArticleInput {
	return &ArticleInput{
		Title:    "Topping out the new clinic",
		Excerpt:  strings.Repeat("a", 50),
		Content:  "The steel frame went up in record time this spring.",
		Category: "project-spotlight",
	}
}

func TestValidateAcceptsValidInput(t *testing.T) {
	res, err := Validate(models.ResourceArticles, validArticle())
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.IsType(t, &ArticleInput{}, res.Data)
}

func TestValidateExcerptBounds(t *testing.T) {
	tests := []struct {
		name    string
		excerpt string
		valid   bool
	}{
		{"49 chars", strings.Repeat("a", 49), false},
		{"50 chars", strings.Repeat("a", 50), true},
		{"500 chars", strings.Repeat("a", 500), true},
		{"501 chars", strings.Repeat("a", 501), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validArticle()
			in.Excerpt = tt.excerpt
			res, err := Validate(models.ResourceArticles, in)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.Contains(t, res.Errors, "excerpt")
			}
		})
	}
}

func TestValidateTestimonialQuoteTooShort(t *testing.T) {
	res, err := Validate(models.ResourceTestimonials, map[string]any{
		"quote":       "Great job.",
		"author_name": "Dana Smith",
		"industry":    "healthcare",
	})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "Quote must be at least 50 characters", res.Errors["quote"])
	assert.Len(t, res.Errors, 1)
}

func TestValidateEnumMembership(t *testing.T) {
	in := validArticle()
	in.Category = "gossip"
	res, err := Validate(models.ResourceArticles, in)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors["category"], "must be one of")
	assert.Contains(t, res.Errors["category"], "company-news")
}

func TestValidateOptionalFieldsFallBackToEmpty(t *testing.T) {
	in := &PartnerLogoInput{Name: "Mercy Health", Category: "client"}
	res, err := Validate(models.ResourcePartnerLogos, in)
	require.NoError(t, err)
	assert.True(t, res.Valid)

	in.WebsiteURL = "not a url"
	res, err = Validate(models.ResourcePartnerLogos, in)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "Website URL must be a valid URL", res.Errors["website_url"])
}

func TestValidateTrimsStrings(t *testing.T) {
	in := &SocialLinkInput{Platform: " linkedin ", URL: "https://linkedin.com/company/acme  "}
	res, err := Validate(models.ResourceSocialLinks, in)
	require.NoError(t, err)
	require.True(t, res.Valid, res.Errors)
	assert.Equal(t, "linkedin", in.Platform)
	assert.Equal(t, "https://linkedin.com/company/acme", in.URL)
}

func TestValidateDropsBlankListEntries(t *testing.T) {
	res, err := Validate(models.ResourceProjects, map[string]any{
		"title":       "Riverside Medical Office",
		"description": "A three story medical office building.",
		"industry":    "healthcare",
		"services":    []any{"Design-build", " ", "Preconstruction"},
	})
	require.NoError(t, err)
	require.True(t, res.Valid, res.Errors)
	assert.Equal(t, []string{"Design-build", "Preconstruction"}, res.Data.(*ProjectInput).Services)
}

func TestValidateSlugFormat(t *testing.T) {
	in := validArticle()
	in.Slug = "Not A Slug"
	res, err := Validate(models.ResourceArticles, in)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "slug")
}

func TestValidateUnknownResource(t *testing.T) {
	_, err := Validate("invoices", map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnknownResource)
}

func TestValidateWrongInputType(t *testing.T) {
	_, err := Validate(models.ResourceArticles, &SocialLinkInput{})
	require.Error(t, err)
}

func TestResultErr(t *testing.T) {
	res, err := Validate(models.ResourceSocialLinks, &SocialLinkInput{})
	require.NoError(t, err)
	require.False(t, res.Valid)

	verr := res.Err()
	require.Error(t, verr)
	assert.True(t, errs.IsValidationError(verr))
	assert.Equal(t, map[string]string(res.Errors), errs.FieldErrors(verr))
}

func TestApplyAndLoadRoundTrip(t *testing.T) {
	in := &TeamMemberInput{
		Name:       "Pat Rivera",
		Title:      "Project Executive",
		Department: "leadership",
		Bio:        strings.Repeat("b", 60),
		AnchorID:   "pat-rivera",
	}
	var m models.TeamMember
	in.Apply(&m)
	assert.Equal(t, "pat-rivera", m.AnchorID)

	var back TeamMemberInput
	back.Load(&m)
	assert.Equal(t, *in, back)
}

func TestTestimonialApplyKeepsDefaultRating(t *testing.T) {
	tm := models.Testimonial{Rating: 5}
	(&TestimonialInput{Quote: "q"}).Apply(&tm)
	assert.Equal(t, 5, tm.Rating)

	(&TestimonialInput{Rating: 4}).Apply(&tm)
	assert.Equal(t, 4, tm.Rating)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Image URL", Label("image_url"))
	assert.Equal(t, "Author name", Label("author_name"))
	assert.Equal(t, "Title", Label("title"))
}
