package config

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog/log"
)

// Config holds every setting the service reads from the environment.
type Config struct {
	Port                string `env:"PORT" envDefault:"8080"`
	ReadTimeoutSeconds  int    `env:"READ_TIMEOUT_SECONDS" envDefault:"180"`
	WriteTimeoutSeconds int    `env:"WRITE_TIMEOUT_SECONDS" envDefault:"180"`
	IdleTimeoutSeconds  int    `env:"IDLE_TIMEOUT_SECONDS" envDefault:"180"`

	AcceptedOrigins []string `env:"ACCEPTED_ORIGINS" envSeparator:"," envDefault:"*"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Database DatabaseConfig
	Auth     AuthConfig
	Mail     MailConfig
	SMS      SMSConfig
	Seed     SeedConfig
	Backup   BackupConfig
}

type DatabaseConfig struct {
	Type         string `env:"DB_TYPE" envDefault:"sqlite"`
	SQLitePath   string `env:"SQLITE_PATH" envDefault:"portfolio.db"`
	URL          string `env:"DATABASE_URL"`
	ReplicaURL   string `env:"DATABASE_REPLICA_URL"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"0"`
}

type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET"`
	TokenTTL         time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	VerificationTTL  time.Duration `env:"VERIFICATION_TTL" envDefault:"5m"`
	VerificationSize int           `env:"VERIFICATION_CACHE_SIZE" envDefault:"1024"`
	SweepSpec        string        `env:"VERIFICATION_SWEEP_SPEC" envDefault:"@every 1m"`
	SweepGrace       time.Duration `env:"VERIFICATION_SWEEP_GRACE" envDefault:"1h"`
}

type MailConfig struct {
	Driver       string        `env:"MAIL_DRIVER" envDefault:"smtp"`
	SMTPHost     string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string        `env:"SMTP_USERNAME"`
	SMTPPassword string        `env:"SMTP_PASSWORD"`
	SMTPTimeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
	ResendAPIKey string        `env:"RESEND_API_KEY"`
	ResendFrom   string        `env:"RESEND_FROM_EMAIL"`
}

type SMSConfig struct {
	TwilioAccountSID string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	TwilioFrom       string `env:"TWILIO_FROM_NUMBER"`
}

// Enabled reports whether feedback notifications can be texted.
func (c SMSConfig) Enabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFrom != ""
}

// SeedConfig holds the first-run values for the singleton tables. Credentials
// have no defaults: when they are unset the credentials table is left empty.
type SeedConfig struct {
	AdminEmail       string `env:"ADMIN_EMAIL"`
	AdminPassword    string `env:"ADMIN_PASSWORD"`
	AdminAppPassword string `env:"ADMIN_EMAIL_APP_PASSWORD"`

	ContactAddress string `env:"CONTACT_ADDRESS" envDefault:"123 Main Street"`
	ContactEmail   string `env:"CONTACT_EMAIL" envDefault:"info@example.com"`
	ContactPhone   string `env:"CONTACT_PHONE" envDefault:"123-456-7890"`
}

type BackupConfig struct {
	Bucket string `env:"BACKUP_S3_BUCKET"`
	Prefix string `env:"BACKUP_S3_PREFIX" envDefault:"backups/"`
}

// Load reads .env, snapshots the environment, overlays AWS SSM parameters when
// AWS_SSM_PARAMETER_PATH is set and parses the result into a Config.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded, using process environment")
	}

	environ := New()
	if path := GetString(environ, "AWS_SSM_PARAMETER_PATH", ""); path != "" {
		params, err := fetchSSMParameters(ctx, path)
		if err != nil {
			return nil, err
		}
		for key, value := range params {
			environ[key] = value
		}
		log.Info().Int("count", len(params)).Str("path", path).Msg("Loaded parameters from SSM")
	}

	return Parse(environ)
}

// Parse builds a Config from an explicit environment map.
func Parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, errs.NewConfigInvalidError("environment", err.Error())
	}
	cfg.Database.Type = strings.ToLower(strings.TrimSpace(cfg.Database.Type))
	return cfg, nil
}

// Validate checks the settings the HTTP server cannot run without.
func (c *Config) Validate() error {
	switch c.Database.Type {
	case "sqlite":
	case "postgres":
		if c.Database.URL == "" {
			return errs.NewConfigMissingError("DATABASE_URL")
		}
	default:
		return errs.NewConfigInvalidError("DB_TYPE", "must be sqlite or postgres")
	}
	if c.Auth.JWTSecret == "" {
		return errs.NewConfigMissingError("JWT_SECRET")
	}
	switch c.Mail.Driver {
	case "smtp", "log":
	case "resend":
		if c.Mail.ResendAPIKey == "" {
			return errs.NewConfigMissingError("RESEND_API_KEY")
		}
		if c.Mail.ResendFrom == "" {
			return errs.NewConfigMissingError("RESEND_FROM_EMAIL")
		}
	default:
		return errs.NewConfigInvalidError("MAIL_DRIVER", "must be smtp, resend or log")
	}
	return nil
}

// Timeouts returns the read, write and idle timeouts for the HTTP server.
func (c *Config) Timeouts() (read, write, idle time.Duration) {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second,
		time.Duration(c.WriteTimeoutSeconds) * time.Second,
		time.Duration(c.IdleTimeoutSeconds) * time.Second
}

// Address is the listen address for the HTTP server.
func (c *Config) Address() string {
	return "0.0.0.0:" + c.Port // Bind to 0.0.0.0 for external access
}

// New snapshots the process environment into a map.
func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	key, value, _ = strings.Cut(entry, "=")
	return key, value
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && val != "" {
		return val
	}
	return defaultValue
}
