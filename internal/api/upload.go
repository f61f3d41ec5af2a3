package api

import (
	"path/filepath"
	"strings"

	"billkaro/statement-ledger/internal/common"
	"billkaro/statement-ledger/internal/fileutils"
	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
	"billkaro/statement-ledger/internal/notify"
	"billkaro/statement-ledger/internal/report"
	"billkaro/statement-ledger/internal/retention"

	"github.com/gofiber/fiber/v2"
)

// UploadResponse is the body of a successful POST /upload.
type UploadResponse struct {
	Success          bool               `json:"success"`
	Message          string             `json:"message"`
	CSVFile          string             `json:"csv_file"`
	ExcelFile        string             `json:"excel_file"`
	Summary          report.SummaryView `json:"summary"`
	TransactionCount int                `json:"transaction_count"`
	Source           string             `json:"source"`
	Bank             string             `json:"bank"`
	WhatsAppSent     bool               `json:"whatsapp_sent"`
	EmailSent        bool               `json:"email_sent"`
	CleanupTime      string             `json:"cleanup_time"`
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "No file uploaded")
	}
	if fh.Filename == "" {
		return badRequest(c, "No file selected")
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return badRequest(c, "Invalid file type. Please upload a PDF file.")
	}

	id := s.newID()
	log := s.logger.WithField(logging.FieldUploadID, id)

	if err := s.ensureDirectories(); err != nil {
		return err
	}
	uploadPath := filepath.Join(s.opts.UploadDir, id+"_"+common.SanitizeFilename(fh.Filename))
	if err := c.SaveFile(fh, uploadPath); err != nil {
		log.WithError(err).Error("Failed to save upload")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Processing failed: could not save upload"})
	}
	defer func() {
		if err := s.retention.Remove(uploadPath); err != nil {
			log.WithError(err).Warn("Failed to remove upload", logging.Field{Key: logging.FieldFile, Value: uploadPath})
		}
	}()

	log.Info("Processing upload", logging.Field{Key: logging.FieldInputFile, Value: fh.Filename})

	out, err := s.converter.Convert(c.UserContext(), uploadPath, s.opts.ExportDir, id+"_statement")
	if err != nil {
		log.WithError(err).Error("Conversion failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Processing failed: " + err.Error()})
	}

	var generated []string
	for _, p := range []string{out.CSVPath, out.WorkbookPath} {
		if p != "" {
			generated = append(generated, p)
		}
	}
	cleanupAt := s.retention.Schedule(generated...)

	outcome := s.notifier.Notify(notify.Request{
		WhatsAppNumber: strings.TrimSpace(c.FormValue("whatsapp_number")),
		EmailAddress:   strings.TrimSpace(c.FormValue("email_address")),
		FileID:         id,
		WorkbookPath:   out.WorkbookPath,
		Summary:        out.Summary,
	})

	log.Info("Upload processed",
		logging.Field{Key: logging.FieldSource, Value: string(out.Result.Source)},
		logging.Field{Key: logging.FieldCount, Value: len(out.Result.Transactions)})

	return c.JSON(UploadResponse{
		Success:          true,
		Message:          uploadMessage(out.Result),
		CSVFile:          baseOrEmpty(out.CSVPath),
		ExcelFile:        baseOrEmpty(out.WorkbookPath),
		Summary:          report.NewSummaryView(out.Summary),
		TransactionCount: len(out.Result.Transactions),
		Source:           string(out.Result.Source),
		Bank:             out.Result.Bank.String(),
		WhatsAppSent:     outcome.WhatsApp.Sent,
		EmailSent:        outcome.Email.Sent,
		CleanupTime:      cleanupAt.Format(retention.CleanupTimeLayout),
	})
}

func uploadMessage(result models.ExtractionResult) string {
	switch result.Source {
	case models.SourceFallbackSample:
		return "No transactions could be read from the statement; sample data is shown"
	case models.SourceEmpty:
		return "No transactions could be read from the statement"
	default:
		return "Statement processed successfully"
	}
}

func baseOrEmpty(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

// RemoveUploads deletes leftover files in dir. Uploads are normally removed
// as soon as they are processed.
func RemoveUploads(dir string) (int, error) {
	return fileutils.RemoveMatching(dir, func(string) bool { return true })
}
