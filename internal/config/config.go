package config

import (
	"os"
	"path/filepath"
	"strings"

	"billkaro/statement-ledger/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// LoadEnv loads variables from a .env file in the working directory or its
// parent. Variables already set in the environment win. It returns the
// file it loaded, or "" when none was found.
func LoadEnv(logger logging.Logger) string {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			logger.Debug("No .env file found, using environment variables")
			return ""
		}
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.WithError(err).Warn("Error loading .env file", logging.Field{Key: logging.FieldFile, Value: envFile})
		return ""
	}
	logger.Debug("Loaded environment variables", logging.Field{Key: logging.FieldFile, Value: envFile})
	return envFile
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}

// ConfigureLoggingFromConfig builds the application logger from config.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logging.NewLogrusAdapterFromLogger(logger)
}
