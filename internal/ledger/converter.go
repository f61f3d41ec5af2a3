// Package ledger turns one statement document into its exported ledger
// files. The CLI, the batch runner and the HTTP server share it.
package ledger

import (
	"context"
	"fmt"
	"path/filepath"

	"billkaro/statement-ledger/internal/common"
	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
	"billkaro/statement-ledger/internal/parser"
	"billkaro/statement-ledger/internal/summary"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Output describes one converted statement.
type Output struct {
	Result       models.ExtractionResult
	Summary      models.Summary
	CSVPath      string
	WorkbookPath string
}

// Converter parses a statement and writes the configured export formats.
type Converter struct {
	parser    parser.StatementParser
	delimiter rune
	formats   []string
	logger    logging.Logger
}

// NewConverter creates a converter. Empty formats means CSV and XLSX.
func NewConverter(p parser.StatementParser, delimiter rune, formats []string, logger logging.Logger) *Converter {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if len(formats) == 0 {
		formats = []string{FormatCSV, FormatXLSX}
	}
	return &Converter{
		parser:    p,
		delimiter: delimiter,
		formats:   formats,
		logger:    logger,
	}
}

// Formats returns the export formats in the order they are written.
func (c *Converter) Formats() []string {
	return append([]string(nil), c.formats...)
}

// Convert parses inputPath and writes <stem>.csv and <stem>.xlsx into
// outputDir. An empty stem derives one from the input file name.
func (c *Converter) Convert(ctx context.Context, inputPath, outputDir, stem string) (Output, error) {
	if stem == "" {
		stem = common.StatementStem(inputPath)
	}

	result, err := c.parser.ParseFile(ctx, inputPath)
	if err != nil {
		return Output{}, fmt.Errorf("failed to parse %s: %w", inputPath, err)
	}

	out := Output{
		Result:  result,
		Summary: summary.Summarize(result.Transactions),
	}

	for _, format := range c.formats {
		switch format {
		case FormatCSV:
			out.CSVPath = filepath.Join(outputDir, stem+".csv")
			if err := common.WriteTransactionsToCSV(result.Transactions, out.CSVPath, c.delimiter, c.logger); err != nil {
				return out, err
			}
		case FormatXLSX:
			out.WorkbookPath = filepath.Join(outputDir, stem+".xlsx")
			if err := common.WriteWorkbook(result.Transactions, out.Summary, out.WorkbookPath, c.logger); err != nil {
				return out, err
			}
		default:
			return out, fmt.Errorf("unsupported export format: %s", format)
		}
	}

	c.logger.Info("Converted statement",
		logging.Field{Key: logging.FieldInputFile, Value: inputPath},
		logging.Field{Key: logging.FieldSource, Value: string(result.Source)},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)})
	return out, nil
}
