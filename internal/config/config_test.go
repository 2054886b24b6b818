package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearCredentialEnv unsets the credential variables for the duration of
// the test, restoring them afterwards.
func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvEmail, EnvPassword, EnvWebhook} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "credentials from environment without config file",
			envVars: map[string]string{
				EnvEmail:    "manager@example.com",
				EnvPassword: "hunter2",
				EnvWebhook:  "https://discord.com/api/webhooks/1/abc",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				creds := cfg.Credentials()
				assert.Equal(t, "manager@example.com", creds.Email)
				assert.Equal(t, "hunter2", creds.Password)
				assert.Equal(t, "https://discord.com/api/webhooks/1/abc", creds.WebhookURL)
				assert.Empty(t, cfg.MissingCredentials())
			},
		},
		{
			name: "defaults applied for optional fields",
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "https://api.sorare.com", cfg.Sorare.APIURL)
				assert.Equal(t, "https://api.sorare.com/graphql", cfg.Sorare.GraphQLURL)
				assert.Equal(t, "sorare-bot", cfg.Sorare.Audience)
				assert.Equal(t, 30*time.Second, cfg.Sorare.Timeout)
				assert.InDelta(t, 2.0, cfg.Sorare.RateLimit.PerSecond, 0.0001)
				assert.Equal(t, 4, cfg.Sorare.RateLimit.Burst)
				assert.Equal(t, 5*time.Second, cfg.Discord.Timeout)
				assert.Equal(t, 5*time.Minute, cfg.Schedule.PollInterval)
				assert.Equal(t, 60*time.Second, cfg.Schedule.RetryDelay)
				assert.Empty(t, cfg.Status.Listen)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "missing credentials are reported, not rejected",
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, []string{EnvEmail, EnvPassword, EnvWebhook}, cfg.MissingCredentials())
			},
		},
		{
			name: "yaml values with env var substitution",
			yaml: `
sorare:
  email: bot@example.com
  password: "${TEST_SORARE_PASSWORD}"
  audience: my-bot
discord:
  webhook_url: https://discord.com/api/webhooks/2/def
  timeout: 2s
schedule:
  poll_interval: 10m
  retry_delay: 30s
status:
  listen: ":9090"
logging:
  level: debug
  format: json
`,
			envVars: map[string]string{
				"TEST_SORARE_PASSWORD": "from-env",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "bot@example.com", cfg.Sorare.Email)
				assert.Equal(t, "from-env", cfg.Sorare.Password)
				assert.Equal(t, "my-bot", cfg.Sorare.Audience)
				assert.Equal(t, "https://discord.com/api/webhooks/2/def", cfg.Discord.WebhookURL)
				assert.Equal(t, 2*time.Second, cfg.Discord.Timeout)
				assert.Equal(t, 10*time.Minute, cfg.Schedule.PollInterval)
				assert.Equal(t, 30*time.Second, cfg.Schedule.RetryDelay)
				assert.Equal(t, ":9090", cfg.Status.Listen)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
		{
			name: "yaml value wins over environment",
			yaml: `
sorare:
  email: yaml@example.com
`,
			envVars: map[string]string{
				EnvEmail: "env@example.com",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "yaml@example.com", cfg.Sorare.Email)
			},
		},
		{
			name: "invalid api url",
			yaml: `
sorare:
  api_url: "ftp://api.sorare.com"
`,
			wantErr: "sorare.api_url",
		},
		{
			name: "graphql url without host",
			yaml: `
sorare:
  graphql_url: "https://"
`,
			wantErr: "sorare.graphql_url",
		},
		{
			name: "negative poll interval",
			yaml: `
schedule:
  poll_interval: -1m
`,
			wantErr: "schedule.poll_interval must not be negative",
		},
		{
			name: "negative retry delay",
			yaml: `
schedule:
  retry_delay: -5s
`,
			wantErr: "schedule.retry_delay must not be negative",
		},
		{
			name: "zero durations select defaults",
			yaml: `
schedule:
  poll_interval: 0s
  retry_delay: 0s
discord:
  timeout: 0s
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, 5*time.Minute, cfg.Schedule.PollInterval)
				assert.Equal(t, 60*time.Second, cfg.Schedule.RetryDelay)
				assert.Equal(t, 5*time.Second, cfg.Discord.Timeout)
			},
		},
		{
			name: "negative discord timeout",
			yaml: `
discord:
  timeout: -1s
`,
			wantErr: "discord.timeout must not be negative",
		},
		{
			name: "invalid log format",
			yaml: `
logging:
  format: xml
`,
			wantErr: "logging.format must be one of",
		},
		{
			name:    "invalid yaml",
			yaml:    "sorare: [unclosed",
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearCredentialEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			path := ""
			if tt.yaml != "" {
				path = writeFile(t, "config.yaml", tt.yaml)
			}

			cfg, err := Load(path, "")

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearCredentialEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_EnvFile(t *testing.T) {
	clearCredentialEnv(t)

	envFile := writeFile(t, "token.env", "SORARE_EMAIL=file@example.com\n"+
		"SORARE_PASSWORD=file-password\n"+
		"DISCORD_WEBHOOK=https://discord.com/api/webhooks/3/ghi\n")

	cfg, err := Load("", envFile)
	require.NoError(t, err)

	assert.Equal(t, Credentials{
		Email:      "file@example.com",
		Password:   "file-password",
		WebhookURL: "https://discord.com/api/webhooks/3/ghi",
	}, cfg.Credentials())
}

func TestLoad_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv(EnvEmail, "process@example.com")

	envFile := writeFile(t, "token.env", "SORARE_EMAIL=file@example.com\nSORARE_PASSWORD=pw\n")

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "process@example.com", cfg.Sorare.Email)
	assert.Equal(t, "pw", cfg.Sorare.Password)
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	clearCredentialEnv(t)

	cfg, err := Load("", filepath.Join(t.TempDir(), DefaultEnvFile))
	require.NoError(t, err)
	assert.Len(t, cfg.MissingCredentials(), 3)
}

func TestLoad_EnvFileFeedsYAMLExpansion(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("TEST_BOT_AUDIENCE", "")
	require.NoError(t, os.Unsetenv("TEST_BOT_AUDIENCE"))

	envFile := writeFile(t, "token.env", "TEST_BOT_AUDIENCE=from-env-file\n")
	path := writeFile(t, "config.yaml", "sorare:\n  audience: ${TEST_BOT_AUDIENCE}\n")

	cfg, err := Load(path, envFile)
	require.NoError(t, err)
	assert.Equal(t, "from-env-file", cfg.Sorare.Audience)
}
