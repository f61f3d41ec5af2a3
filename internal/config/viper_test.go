package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, ',', config.DelimiterRune())
	assert.Equal(t, "downloads", config.Export.Directory)
	assert.Equal(t, "uploads", config.Export.UploadDirectory)
	assert.Equal(t, []string{"csv", "xlsx"}, config.Export.Formats)
	assert.Equal(t, "", config.Categories.File)
	assert.True(t, config.Extraction.AllowSampleFallback)
	assert.Equal(t, ":5000", config.Server.Address)
	assert.Equal(t, 16*1024*1024, config.MaxUploadBytes())
	assert.Equal(t, 15*time.Minute, config.RetentionTTL())
	assert.False(t, config.AI.Enabled)
	assert.Equal(t, "gemini-1.5-flash", config.AI.Model)
	assert.Equal(t, 30*time.Second, config.AITimeout())
	assert.Equal(t, "+91", config.Notify.DefaultCountryCode)
	assert.Equal(t, "noreply@billkaro.com", config.Notify.SendGrid.FromAddress)
	assert.Empty(t, config.Notify.Twilio.AccountSID)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	testEnvVars := map[string]string{
		"BILLKARO_LOG_LEVEL":                        "debug",
		"BILLKARO_LOG_FORMAT":                       "json",
		"BILLKARO_CSV_DELIMITER":                    ";",
		"BILLKARO_EXTRACTION_ALLOW_SAMPLE_FALLBACK": "false",
		"BILLKARO_RETENTION_MINUTES":                "5",
		"BILLKARO_AI_ENABLED":                       "true",
		"BILLKARO_AI_MODEL":                         "gemini-1.5-pro",
		"GEMINI_API_KEY":                            "test-api-key",
		"TWILIO_ACCOUNT_SID":                        "AC123",
		"TWILIO_PHONE_NUMBER":                       "DISABLED",
		"SENDGRID_API_KEY":                          "SG.key",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ';', config.DelimiterRune())
	assert.False(t, config.Extraction.AllowSampleFallback)
	assert.Equal(t, 5*time.Minute, config.RetentionTTL())
	assert.True(t, config.AI.Enabled)
	assert.Equal(t, "gemini-1.5-pro", config.AI.Model)
	assert.Equal(t, "test-api-key", config.AI.APIKey)
	assert.Equal(t, "AC123", config.Notify.Twilio.AccountSID)
	assert.Equal(t, "DISABLED", config.Notify.Twilio.FromNumber)
	assert.Equal(t, "SG.key", config.Notify.SendGrid.APIKey)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := chdirTemp(t)

	configContent := `
log:
  level: "warn"
csv:
  delimiter: "|"
export:
  directory: "out"
  formats: ["csv"]
extraction:
  allow_sample_fallback: false
server:
  address: ":8080"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0o600))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "out", config.Export.Directory)
	assert.Equal(t, []string{"csv"}, config.Export.Formats)
	assert.True(t, config.ExportsFormat("CSV"))
	assert.False(t, config.ExportsFormat("xlsx"))
	assert.False(t, config.Extraction.AllowSampleFallback)
	assert.Equal(t, ":8080", config.Server.Address)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	dir := chdirTemp(t)

	configContent := `
log:
  level: "warn"
csv:
  delimiter: "|"
retention:
  minutes: 30
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0o600))

	t.Setenv("BILLKARO_LOG_LEVEL", "error")
	t.Setenv("BILLKARO_RETENTION_MINUTES", "2")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, 2*time.Minute, config.RetentionTTL())
}

func TestInitializeConfigFromFile(t *testing.T) {
	clearTestEnvVars(t)
	path := filepath.Join(t.TempDir(), "billkaro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  max_upload_mb: 4\n"), 0o600))

	config, err := InitializeConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4*1024*1024, config.MaxUploadBytes())

	_, err = InitializeConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInitializeConfig_InvalidEnvironment(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)
	t.Setenv("BILLKARO_AI_ENABLED", "true")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY required")
}

func validConfig() *Config {
	c := &Config{}
	c.Log.Level = "info"
	c.Log.Format = "text"
	c.CSV.Delimiter = ","
	c.Export.Formats = []string{"csv", "xlsx"}
	c.Retention.Minutes = 15
	c.Server.MaxUploadMB = 16
	c.AI.TimeoutSeconds = 30
	return c
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "invalid" },
			expectError:  "invalid log format",
		},
		{
			name:         "multi character delimiter",
			modifyConfig: func(c *Config) { c.CSV.Delimiter = "abc" },
			expectError:  "CSV delimiter must be a single character",
		},
		{
			name:         "empty delimiter",
			modifyConfig: func(c *Config) { c.CSV.Delimiter = "" },
			expectError:  "CSV delimiter must be a single character",
		},
		{
			name:         "unknown export format",
			modifyConfig: func(c *Config) { c.Export.Formats = []string{"csv", "pdf"} },
			expectError:  "unsupported export format: pdf",
		},
		{
			name:         "retention below one minute",
			modifyConfig: func(c *Config) { c.Retention.Minutes = 0 },
			expectError:  "retention.minutes must be at least 1",
		},
		{
			name:         "upload limit below one megabyte",
			modifyConfig: func(c *Config) { c.Server.MaxUploadMB = 0 },
			expectError:  "server.max_upload_mb must be at least 1",
		},
		{
			name: "AI enabled without API key",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = ""
			},
			expectError: "GEMINI_API_KEY required when AI is enabled",
		},
		{
			name: "invalid timeout seconds",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = "test-key"
				c.AI.TimeoutSeconds = 0
			},
			expectError: "ai.timeout_seconds must be between 1 and 300",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}

	assert.NoError(t, validateConfig(validConfig()))
}

func TestDelimiterRune_Unicode(t *testing.T) {
	c := validConfig()
	c.CSV.Delimiter = "¦"
	assert.NoError(t, validateConfig(c))
	assert.Equal(t, '¦', c.DelimiterRune())
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		t.Run(format, func(t *testing.T) {
			c := validConfig()
			c.Log.Format = format
			assert.NotNil(t, ConfigureLoggingFromConfig(c))
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := chdirTemp(t)
	assert.Equal(t, "", LoadEnv(nil))

	t.Setenv("BILLKARO_TEST_FROM_DOTENV", "")
	require.NoError(t, os.Unsetenv("BILLKARO_TEST_FROM_DOTENV"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BILLKARO_TEST_FROM_DOTENV=loaded\n"), 0o600))

	assert.Equal(t, ".env", LoadEnv(nil))
	assert.Equal(t, "loaded", GetEnv("BILLKARO_TEST_FROM_DOTENV", "fallback"))
	assert.Equal(t, "fallback", GetEnv("BILLKARO_TEST_UNSET_KEY", "fallback"))
}

// chdirTemp moves the test into a fresh directory so no stray config file
// is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
	return dir
}

// clearTestEnvVars blanks every variable the loader reads. Empty values
// are ignored by viper, so this restores the defaults.
func clearTestEnvVars(t *testing.T) {
	for _, envVar := range []string{
		"BILLKARO_LOG_LEVEL",
		"BILLKARO_LOG_FORMAT",
		"BILLKARO_CSV_DELIMITER",
		"BILLKARO_EXPORT_DIRECTORY",
		"BILLKARO_EXPORT_UPLOAD_DIRECTORY",
		"BILLKARO_EXPORT_FORMATS",
		"BILLKARO_CATEGORIES_FILE",
		"BILLKARO_EXTRACTION_ALLOW_SAMPLE_FALLBACK",
		"BILLKARO_SERVER_ADDRESS",
		"BILLKARO_SERVER_MAX_UPLOAD_MB",
		"BILLKARO_RETENTION_MINUTES",
		"BILLKARO_AI_ENABLED",
		"BILLKARO_AI_MODEL",
		"BILLKARO_AI_TIMEOUT_SECONDS",
		"BILLKARO_AI_API_KEY",
		"BILLKARO_NOTIFY_DEFAULT_COUNTRY_CODE",
		"BILLKARO_NOTIFY_TWILIO_ACCOUNT_SID",
		"BILLKARO_NOTIFY_TWILIO_AUTH_TOKEN",
		"BILLKARO_NOTIFY_TWILIO_FROM_NUMBER",
		"BILLKARO_NOTIFY_SENDGRID_API_KEY",
		"BILLKARO_NOTIFY_SENDGRID_FROM_ADDRESS",
		"GEMINI_API_KEY",
		"TWILIO_ACCOUNT_SID",
		"TWILIO_AUTH_TOKEN",
		"TWILIO_PHONE_NUMBER",
		"SENDGRID_API_KEY",
	} {
		t.Setenv(envVar, "")
	}
}
