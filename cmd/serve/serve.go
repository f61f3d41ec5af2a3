// Package serve runs the HTTP upload service.
package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"billkaro/statement-ledger/cmd/root"
	"billkaro/statement-ledger/internal/api"
	"billkaro/statement-ledger/internal/container"
	"billkaro/statement-ledger/internal/logging"

	"github.com/spf13/cobra"
)

// ShutdownTimeout bounds the wait for in-flight requests on shutdown.
const ShutdownTimeout = 10 * time.Second

var address string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the statement upload HTTP server",
	Long: `Run an HTTP server that accepts statement PDFs on POST /upload, returns the
spending summary and serves the generated ledgers on GET /download/:type/:filename.
Generated files are deleted after the configured retention period.

Example:
  billkaro serve --addr :5000`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&address, "addr", "", "Listen address (defaults to server.address)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	appContainer, err := root.MustContainer()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, appContainer, address)
}

// NewServer builds the HTTP server from the services and settings of c.
func NewServer(c *container.Container) *api.Server {
	cfg := c.GetConfig()
	return api.NewServer(api.Options{
		UploadDir:      cfg.Export.UploadDirectory,
		ExportDir:      cfg.Export.Directory,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	}, c.GetConverter(), c.GetNotifier(), c.GetRetention(), c.GetLogger())
}

// Run serves on addr, or server.address when empty, until ctx is done.
func Run(ctx context.Context, c *container.Container, addr string) error {
	cfg := c.GetConfig()
	logger := c.GetLogger()
	if addr == "" {
		addr = cfg.Server.Address
	}

	removed, err := api.RemoveUploads(cfg.Export.UploadDirectory)
	if err != nil {
		logger.WithError(err).Warn("Failed to clear upload directory")
	} else if removed > 0 {
		logger.Info("Removed leftover uploads", logging.Field{Key: logging.FieldCount, Value: removed})
	}

	server := NewServer(c)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
