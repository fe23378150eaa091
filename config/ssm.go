package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ParameterGetter is the slice of the SSM client used to read a parameter tree.
type ParameterGetter interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// LoadSSM reads every parameter under parameterPath (recursively, decrypted)
// and returns them keyed by the last path segment upper-cased, so
// /site/prod/resend_api_key becomes RESEND_API_KEY.
func LoadSSM(ctx context.Context, client ParameterGetter, parameterPath string) (map[string]string, error) {
	values := make(map[string]string)

	var nextToken *string
	for {
		out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:           aws.String(parameterPath),
			Recursive:      aws.Bool(true),
			WithDecryption: aws.Bool(true),
			NextToken:      nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read SSM parameters under %s: %w", parameterPath, err)
		}

		for _, p := range out.Parameters {
			name := strings.ToUpper(path.Base(aws.ToString(p.Name)))
			values[name] = aws.ToString(p.Value)
		}

		if out.NextToken == nil || aws.ToString(out.NextToken) == "" {
			break
		}
		nextToken = out.NextToken
	}

	return values, nil
}

// WithSSM overlays SSM parameters on top of cfg when SSM_PARAMETER_PATH is set.
// Environment variables keep precedence so local overrides still work.
func WithSSM(ctx context.Context, cfg map[string]string) map[string]string {
	parameterPath := GetString(cfg, "SSM_PARAMETER_PATH", "")
	if parameterPath == "" {
		return cfg
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(GetString(cfg, "AWS_REGION", "us-east-1")))
	if err != nil {
		log.Warn().Err(err).Msg("Could not load AWS config, skipping SSM parameters")
		return cfg
	}

	params, err := LoadSSM(ctx, ssm.NewFromConfig(awsCfg), parameterPath)
	if err != nil {
		log.Warn().Err(err).Str("path", parameterPath).Msg("Could not load SSM parameters")
		return cfg
	}

	log.Info().Int("count", len(params)).Str("path", parameterPath).Msg("Loaded SSM parameters")
	return Merge(cfg, params, false)
}
