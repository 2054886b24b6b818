// Package config handles loading and validating the bot configuration from
// an env file, the process environment and an optional YAML file with
// environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables carrying the credentials.
const (
	EnvEmail    = "SORARE_EMAIL"
	EnvPassword = "SORARE_PASSWORD"
	EnvWebhook  = "DISCORD_WEBHOOK"
)

// DefaultEnvFile is the env file read at startup when none is given.
const DefaultEnvFile = "token.env"

// Config is the top-level bot configuration.
type Config struct {
	Sorare   SorareConfig   `yaml:"sorare"`
	Discord  DiscordConfig  `yaml:"discord"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Status   StatusConfig   `yaml:"status"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Credentials are the account and webhook secrets. They are immutable for
// the life of the process.
type Credentials struct {
	Email      string
	Password   string
	WebhookURL string
}

// SorareConfig defines Sorare API settings.
type SorareConfig struct {
	Email      string          `yaml:"email"`
	Password   string          `yaml:"password"`
	APIURL     string          `yaml:"api_url"`
	GraphQLURL string          `yaml:"graphql_url"`
	Audience   string          `yaml:"audience"`
	Timeout    time.Duration   `yaml:"timeout"`
	RateLimit  RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines GraphQL request pacing.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	WebhookURL string        `yaml:"webhook_url"`
	Timeout    time.Duration `yaml:"timeout"`
}

// ScheduleConfig defines the poll loop timings.
type ScheduleConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	RetryDelay   time.Duration `yaml:"retry_delay"`
}

// StatusConfig defines the optional health and metrics server. An empty
// Listen address disables it.
type StatusConfig struct {
	Listen string `yaml:"listen"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Credentials returns the configured secrets.
func (c *Config) Credentials() Credentials {
	return Credentials{
		Email:      c.Sorare.Email,
		Password:   c.Sorare.Password,
		WebhookURL: c.Discord.WebhookURL,
	}
}

// MissingCredentials lists the credential variables left empty. Missing
// credentials are not a load error; they surface as authentication or
// notification failures at runtime.
func (c *Config) MissingCredentials() []string {
	var missing []string
	if c.Sorare.Email == "" {
		missing = append(missing, EnvEmail)
	}
	if c.Sorare.Password == "" {
		missing = append(missing, EnvPassword)
	}
	if c.Discord.WebhookURL == "" {
		missing = append(missing, EnvWebhook)
	}
	return missing
}

// Load reads envFile into the process environment (existing variables win,
// a missing file is ignored), then parses the YAML config at path if one is
// given, fills credentials from the environment and applies defaults and
// validation.
func Load(path, envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		// Expand environment variables in the YAML content.
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadEnvFile(envFile string) error {
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", envFile, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if cfg.Sorare.Email == "" {
		cfg.Sorare.Email = os.Getenv(EnvEmail)
	}
	if cfg.Sorare.Password == "" {
		cfg.Sorare.Password = os.Getenv(EnvPassword)
	}
	if cfg.Discord.WebhookURL == "" {
		cfg.Discord.WebhookURL = os.Getenv(EnvWebhook)
	}
}

func applyDefaults(cfg *Config) {
	applySorareDefaults(&cfg.Sorare)
	applyDiscordDefaults(&cfg.Discord)
	applyScheduleDefaults(&cfg.Schedule)
	applyLoggingDefaults(&cfg.Logging)
}

func applySorareDefaults(s *SorareConfig) {
	if s.APIURL == "" {
		s.APIURL = "https://api.sorare.com"
	}
	if s.GraphQLURL == "" {
		s.GraphQLURL = "https://api.sorare.com/graphql"
	}
	if s.Audience == "" {
		s.Audience = "sorare-bot"
	}
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	if s.RateLimit.PerSecond == 0 {
		s.RateLimit.PerSecond = 2
	}
	if s.RateLimit.Burst == 0 {
		s.RateLimit.Burst = 4
	}
}

func applyDiscordDefaults(d *DiscordConfig) {
	if d.Timeout == 0 {
		d.Timeout = 5 * time.Second
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.PollInterval == 0 {
		s.PollInterval = 5 * time.Minute
	}
	if s.RetryDelay == 0 {
		s.RetryDelay = 60 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if err := validateHTTPURL(cfg.Sorare.APIURL); err != nil {
		errs = append(errs, fmt.Errorf("sorare.api_url: %w", err))
	}
	if err := validateHTTPURL(cfg.Sorare.GraphQLURL); err != nil {
		errs = append(errs, fmt.Errorf("sorare.graphql_url: %w", err))
	}
	if cfg.Sorare.Timeout < 0 {
		errs = append(errs, fmt.Errorf("sorare.timeout must not be negative"))
	}
	if cfg.Sorare.RateLimit.PerSecond < 0 || cfg.Sorare.RateLimit.Burst < 0 {
		errs = append(errs, fmt.Errorf("sorare.rate_limit values must not be negative"))
	}
	if cfg.Discord.Timeout < 0 {
		errs = append(errs, fmt.Errorf("discord.timeout must not be negative"))
	}
	if cfg.Schedule.PollInterval < 0 {
		errs = append(errs, fmt.Errorf("schedule.poll_interval must not be negative"))
	}
	if cfg.Schedule.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("schedule.retry_delay must not be negative"))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json (got %q)",
			cfg.Logging.Format,
		))
	}

	return errors.Join(errs...)
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https (got %q)", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required (got %q)", raw)
	}
	return nil
}
