// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Generation backends selectable through AI_PROVIDER.
const (
	ProviderGemini  = "gemini"
	ProviderFixture = "fixture"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// Identity tokens are HS256 JWTs signed with JWTSecret.
	JWTSecret string
	JWTIssuer string

	// Server
	Debug       bool
	Port        string
	TLSDomains  []string
	CORSOrigins []string

	AI      AIConfig
	Archive ArchiveConfig
}

// AIConfig selects and tunes the plan/analysis generation backend.
type AIConfig struct {
	Provider   string
	APIKey     string
	Model      string
	Timeout    time.Duration
	FixtureDir string
}

// ArchiveConfig points at the S3 compatible bucket receiving generation
// transcripts. An empty Bucket disables archiving.
type ArchiveConfig struct {
	Bucket          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	cfg, err := FromViper(newViper())
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// FromViper builds and validates a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	cfg := &Config{
		DatabaseURL: v.GetString("DATABASE_URL"),
		DBUser:      v.GetString("DB_USER"),
		DBPass:      v.GetString("DB_PASS"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBName:      v.GetString("DB_NAME"),
		DBSSLMode:   v.GetString("DB_SSLMODE"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		JWTIssuer:   v.GetString("JWT_ISSUER"),
		Debug:       v.GetBool("DEBUG"),
		Port:        v.GetString("PORT"),
		TLSDomains:  splitTrimmed(v.GetString("TLS_DOMAINS")),
		CORSOrigins: splitTrimmed(v.GetString("CORS_ORIGINS")),
		AI: AIConfig{
			Provider:   strings.ToLower(strings.TrimSpace(v.GetString("AI_PROVIDER"))),
			APIKey:     v.GetString("AI_API_KEY"),
			Model:      v.GetString("AI_MODEL"),
			Timeout:    v.GetDuration("AI_TIMEOUT"),
			FixtureDir: v.GetString("AI_FIXTURE_DIR"),
		},
		Archive: ArchiveConfig{
			Bucket:          v.GetString("ARCHIVE_BUCKET"),
			Endpoint:        v.GetString("ARCHIVE_ENDPOINT"),
			Region:          v.GetString("ARCHIVE_REGION"),
			AccessKeyID:     v.GetString("ARCHIVE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("ARCHIVE_SECRET_ACCESS_KEY"),
		},
	}

	// Canned responses are only implied in debug mode; production must
	// name its backend.
	if cfg.AI.Provider == "" && cfg.Debug {
		cfg.AI.Provider = ProviderFixture
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_USER", "gofast")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "gofast")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":3001")
	v.SetDefault("TLS_DOMAINS", "")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DEBUG", false)
	v.SetDefault("AI_MODEL", "gemini-2.5-flash")
	v.SetDefault("AI_TIMEOUT", "45s")
	v.SetDefault("ARCHIVE_REGION", "us-east-1")
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

// ArchiveEnabled reports whether generation transcripts should be written to S3.
func (c *Config) ArchiveEnabled() bool {
	return c.Archive.Bucket != ""
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" && c.DBPass == "" {
		return errors.New("config: DATABASE_URL or DB_PASS must be set")
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must be set")
	}
	switch c.AI.Provider {
	case "":
		return errors.New("config: AI_PROVIDER must be set outside debug mode")
	case ProviderFixture:
	case ProviderGemini:
		if c.AI.APIKey == "" {
			return errors.New("config: AI_API_KEY must be set when AI_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("config: unknown AI_PROVIDER %q", c.AI.Provider)
	}
	if c.AI.Timeout <= 0 {
		return errors.New("config: AI_TIMEOUT must be positive")
	}
	if !c.Debug && len(c.TLSDomains) == 0 {
		return errors.New("config: TLS_DOMAINS must be set outside debug mode")
	}
	return nil
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
