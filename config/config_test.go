package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.Auth.VerificationTTL)
	assert.Equal(t, []string{"*"}, cfg.AcceptedOrigins)
	assert.Equal(t, "smtp", cfg.Mail.Driver)
	assert.False(t, cfg.SMS.Enabled())

	read, write, idle := cfg.Timeouts()
	assert.Equal(t, 180*time.Second, read)
	assert.Equal(t, 180*time.Second, write)
	assert.Equal(t, 180*time.Second, idle)
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"PORT":               "9000",
		"DB_TYPE":            " Postgres ",
		"ACCEPTED_ORIGINS":   "https://a.example.com,https://b.example.com",
		"VERIFICATION_TTL":   "90s",
		"TWILIO_ACCOUNT_SID": "AC1",
		"TWILIO_AUTH_TOKEN":  "tok",
		"TWILIO_FROM_NUMBER": "+15550000000",
	})
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AcceptedOrigins)
	assert.Equal(t, 90*time.Second, cfg.Auth.VerificationTTL)
	assert.True(t, cfg.SMS.Enabled())
}

func TestParseRejectsBadValues(t *testing.T) {
	_, err := Parse(map[string]string{"TOKEN_TTL": "forever"})
	assert.ErrorIs(t, err, errs.ErrConfigInvalid)
}

func TestValidate(t *testing.T) {
	valid := map[string]string{"JWT_SECRET": "secret"}

	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{"sqlite defaults", valid, nil},
		{"missing secret", map[string]string{}, errs.ErrConfigMissing},
		{"postgres without url", map[string]string{"JWT_SECRET": "s", "DB_TYPE": "postgres"}, errs.ErrConfigMissing},
		{"postgres with url", map[string]string{"JWT_SECRET": "s", "DB_TYPE": "postgres", "DATABASE_URL": "postgres://x"}, nil},
		{"unknown engine", map[string]string{"JWT_SECRET": "s", "DB_TYPE": "mysql"}, errs.ErrConfigInvalid},
		{"no engine aliases", map[string]string{"JWT_SECRET": "s", "DB_TYPE": "supa", "DATABASE_URL": "postgres://x"}, errs.ErrConfigInvalid},
		{"resend without key", map[string]string{"JWT_SECRET": "s", "MAIL_DRIVER": "resend"}, errs.ErrConfigMissing},
		{"resend configured", map[string]string{"JWT_SECRET": "s", "MAIL_DRIVER": "resend", "RESEND_API_KEY": "k", "RESEND_FROM_EMAIL": "f@example.com"}, nil},
		{"unknown mailer", map[string]string{"JWT_SECRET": "s", "MAIL_DRIVER": "pigeon"}, errs.ErrConfigInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.env)
			require.NoError(t, err)
			err = cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetString(t *testing.T) {
	assert.Equal(t, "fallback", GetString(nil, "KEY", "fallback"))
	assert.Equal(t, "fallback", GetString(map[string]string{"KEY": ""}, "KEY", "fallback"))
	assert.Equal(t, "value", GetString(map[string]string{"KEY": "value"}, "KEY", "fallback"))
}

type fakeSSM struct {
	pages [][]types.Parameter
	err   error
	calls int
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := &ssm.GetParametersByPathOutput{Parameters: f.pages[f.calls]}
	f.calls++
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestReadParameters(t *testing.T) {
	client := &fakeSSM{pages: [][]types.Parameter{
		{{Name: aws.String("/portfolio/prod/jwt_secret"), Value: aws.String("s3cret")}},
		{{Name: aws.String("/portfolio/prod/database_url"), Value: aws.String("postgres://db")}},
	}}

	params, err := readParameters(context.Background(), client, "/portfolio/prod")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"JWT_SECRET":   "s3cret",
		"DATABASE_URL": "postgres://db",
	}, params)
	assert.Equal(t, 2, client.calls)
}

func TestReadParametersError(t *testing.T) {
	_, err := readParameters(context.Background(), &fakeSSM{err: errors.New("denied")}, "/portfolio/prod")
	assert.ErrorContains(t, err, "denied")
}
