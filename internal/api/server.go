// Package api exposes statement conversion over HTTP.
package api

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"billkaro/statement-ledger/internal/fileutils"
	"billkaro/statement-ledger/internal/ledger"
	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/notify"
	"billkaro/statement-ledger/internal/retention"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
)

// DefaultMaxUploadBytes is the body limit when none is configured.
const DefaultMaxUploadBytes = 16 * 1024 * 1024

// Options configures a Server.
type Options struct {
	UploadDir      string
	ExportDir      string
	MaxUploadBytes int
}

// Server serves the upload, download and health endpoints.
type Server struct {
	app       *fiber.App
	opts      Options
	converter *ledger.Converter
	notifier  *notify.Notifier
	retention *retention.Registry
	logger    logging.Logger
	newID     func() string
}

// NewServer creates the server and registers its routes. notifier may be
// nil to disable notifications.
func NewServer(opts Options, converter *ledger.Converter, notifier *notify.Notifier, registry *retention.Registry, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if registry == nil {
		registry = retention.NewRegistry(0, logger)
	}
	if notifier == nil {
		notifier = notify.NewNotifier(nil, nil)
	}

	s := &Server{
		opts:      opts,
		converter: converter,
		notifier:  notifier,
		retention: registry,
		logger:    logger,
		newID:     uuid.NewString,
	}

	s.app = fiber.New(fiber.Config{
		BodyLimit:             opts.MaxUploadBytes,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(recover.New())
	s.app.Get("/health", s.handleHealth)
	s.app.Post("/upload", s.handleUpload)
	s.app.Get("/download/:type/:filename", s.handleDownload)
	return s
}

// App returns the underlying Fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	if err := s.ensureDirectories(); err != nil {
		return err
	}
	s.logger.Info("Starting HTTP server", logging.Field{Key: "address", Value: addr})
	return s.app.Listen(addr)
}

// Shutdown stops the server and cancels pending file cleanups.
func (s *Server) Shutdown(ctx context.Context) error {
	s.retention.Stop()
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) ensureDirectories() error {
	for _, dir := range []string{s.opts.UploadDir, s.opts.ExportDir} {
		if err := fileutils.EnsureDirectoryExists(dir); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.WithError(err).Error("Request failed",
			logging.Field{Key: "path", Value: c.Path()})
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// Download types and the extension each one serves.
var downloadTypes = map[string]string{
	"csv":   ".csv",
	"excel": ".xlsx",
}

func (s *Server) handleDownload(c *fiber.Ctx) error {
	ext, ok := downloadTypes[c.Params("type")]
	if !ok {
		return badRequest(c, "Invalid file type")
	}

	name := filepath.Base(c.Params("filename"))
	if name == "." || name == ".." || name == string(filepath.Separator) || !strings.EqualFold(filepath.Ext(name), ext) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "File not found"})
	}

	path := filepath.Join(s.opts.ExportDir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "File not found"})
	}
	return c.Download(path, name)
}
