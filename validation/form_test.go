package validation

import (
	"testing"

	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeForm(t *testing.T) {
	in := &ProjectInput{}
	err := DecodeForm(in, map[string][]string{
		"title":           {"Riverside Clinic"},
		"square_footage":  {"12000"},
		"completion_year": {""},
		"services":        {"Design-build\r\nSitework\n"},
		"featured":        {"false", "on"},
		"published":       {"false"},
		"unknown":         {"ignored"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Riverside Clinic", in.Title)
	assert.Equal(t, 12000, in.SquareFootage)
	assert.Zero(t, in.CompletionYear)
	assert.Equal(t, []string{"Design-build", "Sitework", ""}, in.Services)
	assert.True(t, in.Featured)
	assert.False(t, in.Published)
}

func TestDecodeFormMultiValueList(t *testing.T) {
	in := &CaseStudyInput{}
	require.NoError(t, DecodeForm(in, map[string][]string{"results": {"On time", "Under budget"}}))
	assert.Equal(t, []string{"On time", "Under budget"}, in.Results)
}

func TestDecodeFormBadNumber(t *testing.T) {
	in := &TestimonialInput{}
	err := DecodeForm(in, map[string][]string{"rating": {"five"}})
	require.Error(t, err)
	assert.True(t, errs.IsValidationError(err))
	assert.Equal(t, "Rating must be a whole number", errs.FieldErrors(err)["rating"])
}

func TestDecodeFormThenValidate(t *testing.T) {
	in := &SocialLinkInput{}
	require.NoError(t, DecodeForm(in, map[string][]string{"platform": {"myspace"}}))
	res, err := Validate("social_links", in)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "platform")
}
