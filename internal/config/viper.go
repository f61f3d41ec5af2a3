// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BILLKARO_LOG_LEVEL.
const EnvPrefix = "BILLKARO"

// SupportedExportFormats lists the values accepted in export.formats.
var SupportedExportFormats = []string{"csv", "xlsx"}

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Export struct {
		Directory       string   `mapstructure:"directory" yaml:"directory"`
		UploadDirectory string   `mapstructure:"upload_directory" yaml:"upload_directory"`
		Formats         []string `mapstructure:"formats" yaml:"formats"`
	} `mapstructure:"export" yaml:"export"`

	Categories struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`

	Extraction struct {
		AllowSampleFallback bool `mapstructure:"allow_sample_fallback" yaml:"allow_sample_fallback"`
	} `mapstructure:"extraction" yaml:"extraction"`

	Server struct {
		Address     string `mapstructure:"address" yaml:"address"`
		MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	} `mapstructure:"server" yaml:"server"`

	Retention struct {
		Minutes int `mapstructure:"minutes" yaml:"minutes"`
	} `mapstructure:"retention" yaml:"retention"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Notify struct {
		DefaultCountryCode string           `mapstructure:"default_country_code" yaml:"default_country_code"`
		Twilio             TwilioSettings   `mapstructure:"twilio" yaml:"twilio"`
		SendGrid           SendGridSettings `mapstructure:"sendgrid" yaml:"sendgrid"`
	} `mapstructure:"notify" yaml:"notify"`
}

// TwilioSettings holds the WhatsApp provider credentials.
type TwilioSettings struct {
	AccountSID string `mapstructure:"account_sid" yaml:"-"`
	AuthToken  string `mapstructure:"auth_token" yaml:"-"`
	FromNumber string `mapstructure:"from_number" yaml:"from_number"`
}

// SendGridSettings holds the e-mail provider credentials.
type SendGridSettings struct {
	APIKey      string `mapstructure:"api_key" yaml:"-"`
	FromAddress string `mapstructure:"from_address" yaml:"from_address"`
}

// DelimiterRune returns the CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// RetentionTTL returns how long generated files are kept.
func (c *Config) RetentionTTL() time.Duration {
	return time.Duration(c.Retention.Minutes) * time.Minute
}

// AITimeout returns the per-request AI timeout.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// MaxUploadBytes returns the upload body limit in bytes.
func (c *Config) MaxUploadBytes() int {
	return c.Server.MaxUploadMB * 1024 * 1024
}

// ExportsFormat reports whether format is among the configured export formats.
func (c *Config) ExportsFormat(format string) bool {
	for _, f := range c.Export.Formats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile is InitializeConfig with an explicit config file.
// An empty path searches the default locations.
func InitializeConfigFromFile(path string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.billkaro")
		v.AddConfigPath(".billkaro")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. Provider credentials keep their conventional unprefixed names
	for key, env := range map[string]string{
		"ai.api_key":                "GEMINI_API_KEY",
		"notify.twilio.account_sid": "TWILIO_ACCOUNT_SID",
		"notify.twilio.auth_token":  "TWILIO_AUTH_TOKEN",
		"notify.twilio.from_number": "TWILIO_PHONE_NUMBER",
		"notify.sendgrid.api_key":   "SENDGRID_API_KEY",
	} {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			fmt.Printf("Warning: failed to bind %s environment variable: %v\n", env, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("export.directory", "downloads")
	v.SetDefault("export.upload_directory", "uploads")
	v.SetDefault("export.formats", []string{"csv", "xlsx"})

	v.SetDefault("categories.file", "")

	v.SetDefault("extraction.allow_sample_fallback", true)

	v.SetDefault("server.address", ":5000")
	v.SetDefault("server.max_upload_mb", 16)

	v.SetDefault("retention.minutes", 15)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.api_key", "")

	v.SetDefault("notify.default_country_code", "+91")
	v.SetDefault("notify.twilio.account_sid", "")
	v.SetDefault("notify.twilio.auth_token", "")
	v.SetDefault("notify.twilio.from_number", "")
	v.SetDefault("notify.sendgrid.api_key", "")
	v.SetDefault("notify.sendgrid.from_address", "noreply@billkaro.com")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	for _, format := range config.Export.Formats {
		if !isSupportedExportFormat(format) {
			return fmt.Errorf("unsupported export format: %s (must be one of %s)", format, strings.Join(SupportedExportFormats, ", "))
		}
	}

	if config.Retention.Minutes < 1 {
		return fmt.Errorf("retention.minutes must be at least 1, got: %d", config.Retention.Minutes)
	}

	if config.Server.MaxUploadMB < 1 {
		return fmt.Errorf("server.max_upload_mb must be at least 1, got: %d", config.Server.MaxUploadMB)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}

func isSupportedExportFormat(format string) bool {
	for _, f := range SupportedExportFormats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}
