package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":       "9090",
		"BAD_INT":    "nope",
		"FLAG":       "true",
		"TTL":        "90s",
		"TTL_SECS":   "30",
		"ORIGINS":    "https://a.com, ,https://b.com",
		"EMPTY":      "",
	}

	assert.Equal(t, 9090, GetInt(cfg, "PORT", 1))
	assert.Equal(t, 1, GetInt(cfg, "BAD_INT", 1))
	assert.True(t, GetBool(cfg, "FLAG", false))
	assert.False(t, GetBool(cfg, "MISSING", false))
	assert.Equal(t, 90*time.Second, GetDuration(cfg, "TTL", time.Minute))
	assert.Equal(t, 30*time.Second, GetDuration(cfg, "TTL_SECS", time.Minute))
	assert.Equal(t, time.Minute, GetDuration(cfg, "MISSING", time.Minute))
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, GetList(cfg, "ORIGINS"))
	assert.Equal(t, "fallback", GetString(cfg, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
}

func TestMerge(t *testing.T) {
	base := map[string]string{"A": "env"}
	out := Merge(base, map[string]string{"A": "ssm", "B": "ssm"}, false)
	assert.Equal(t, "env", out["A"])
	assert.Equal(t, "ssm", out["B"])

	out = Merge(map[string]string{"A": "env"}, map[string]string{"A": "ssm"}, true)
	assert.Equal(t, "ssm", out["A"])
}

type fakeSSM struct {
	pages [][]ssmtypes.Parameter
	calls int
	err   error
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, _ *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++
	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestLoadSSM(t *testing.T) {
	client := &fakeSSM{pages: [][]ssmtypes.Parameter{
		{{Name: aws.String("/site/prod/resend_api_key"), Value: aws.String("re_123")}},
		{{Name: aws.String("/site/prod/jwt_secret"), Value: aws.String("s3cret")}},
	}}

	values, err := LoadSSM(context.Background(), client, "/site/prod")
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "re_123", values["RESEND_API_KEY"])
	assert.Equal(t, "s3cret", values["JWT_SECRET"])
}

func TestLoadSSMError(t *testing.T) {
	_, err := LoadSSM(context.Background(), &fakeSSM{err: errors.New("denied")}, "/site/prod")
	assert.ErrorContains(t, err, "denied")
}
