// Package container provides dependency injection for the billkaro
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"

	"billkaro/statement-ledger/internal/batch"
	"billkaro/statement-ledger/internal/categorizer"
	"billkaro/statement-ledger/internal/config"
	"billkaro/statement-ledger/internal/ledger"
	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/notify"
	"billkaro/statement-ledger/internal/pdfparser"
	"billkaro/statement-ledger/internal/report"
	"billkaro/statement-ledger/internal/retention"
	"billkaro/statement-ledger/internal/statement"
	"billkaro/statement-ledger/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.CategoryStore
	aiClient    categorizer.AIClient
	categorizer *categorizer.Categorizer

	pipeline  *statement.Pipeline
	parser    *pdfparser.Parser
	converter *ledger.Converter
	reports   *report.ReportGenerator
	notifier  *notify.Notifier
	retention *retention.Registry
}

// NewContainer creates and wires all application dependencies with a
// logger built from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	categoryStore := store.NewCategoryStore(cfg.Categories.File, logger)

	var aiClient categorizer.AIClient
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		client, err := categorizer.NewGeminiClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model, cfg.AITimeout(), logger)
		if err != nil {
			logger.WithError(err).Warn("AI categorization unavailable, using keywords only")
		} else {
			aiClient = client
			logger.Info("AI categorization enabled", logging.Field{Key: "model", Value: cfg.AI.Model})
		}
	} else {
		logger.Debug("AI categorization disabled")
	}

	cat, err := categorizer.NewCategorizerFromStore(categoryStore, aiClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create categorizer: %w", err)
	}

	pipeline := statement.NewPipeline(cat, logger,
		statement.WithSampleFallback(cfg.Extraction.AllowSampleFallback))

	pdfParser := pdfparser.NewParser(logger, nil, pipeline)
	pdfParser.SetDelimiter(cfg.DelimiterRune())

	converter := ledger.NewConverter(pdfParser, cfg.DelimiterRune(), cfg.Export.Formats, logger)

	twilioCfg := notify.TwilioConfig{
		AccountSID: cfg.Notify.Twilio.AccountSID,
		AuthToken:  cfg.Notify.Twilio.AuthToken,
		FromNumber: cfg.Notify.Twilio.FromNumber,
	}
	notifier := notify.NewNotifier(
		notify.NewWhatsAppNotifierFromConfig(twilioCfg, cfg.Notify.DefaultCountryCode, logger),
		notify.NewEmailNotifierFromConfig(cfg.Notify.SendGrid.APIKey, cfg.Notify.SendGrid.FromAddress, logger),
	)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "ai_enabled", Value: aiClient != nil},
		logging.Field{Key: "sample_fallback", Value: cfg.Extraction.AllowSampleFallback},
		logging.Field{Key: "whatsapp_enabled", Value: twilioCfg.Enabled()},
		logging.Field{Key: "email_enabled", Value: cfg.Notify.SendGrid.APIKey != ""})

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       categoryStore,
		aiClient:    aiClient,
		categorizer: cat,
		pipeline:    pipeline,
		parser:      pdfParser,
		converter:   converter,
		reports:     report.NewReportGenerator(logger),
		notifier:    notifier,
		retention:   retention.NewRegistry(cfg.RetentionTTL(), logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetStore returns the container's category store instance.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetAIClient returns the container's AI client instance.
// Returns nil if AI is not enabled.
func (c *Container) GetAIClient() categorizer.AIClient {
	return c.aiClient
}

// GetPipeline returns the statement extraction pipeline.
func (c *Container) GetPipeline() *statement.Pipeline {
	return c.pipeline
}

// GetParser returns the statement document parser.
func (c *Container) GetParser() *pdfparser.Parser {
	return c.parser
}

// GetConverter returns the document-to-ledger converter.
func (c *Container) GetConverter() *ledger.Converter {
	return c.converter
}

// GetReportGenerator returns the report renderer.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// GetNotifier returns the WhatsApp and e-mail notifier.
func (c *Container) GetNotifier() *notify.Notifier {
	return c.notifier
}

// GetRetention returns the generated-file retention registry.
func (c *Container) GetRetention() *retention.Registry {
	return c.retention
}

// NewBatchAggregator returns a directory runner over the container's converter.
func (c *Container) NewBatchAggregator() *batch.BatchAggregator {
	return batch.NewBatchAggregator(c.converter, c.config.DelimiterRune(), c.logger)
}

// Close stops pending retention timers and releases the AI client.
func (c *Container) Close() error {
	c.retention.Stop()
	if closer, ok := c.aiClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close AI client: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
