package common_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"billkaro/statement-ledger/cmd/common"
	"billkaro/statement-ledger/internal/categorizer"
	"billkaro/statement-ledger/internal/ledger"
	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
	"billkaro/statement-ledger/internal/parser"
	"billkaro/statement-ledger/internal/parsererror"
	"billkaro/statement-ledger/internal/pdfparser"
	"billkaro/statement-ledger/internal/report"
	"billkaro/statement-ledger/internal/statement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hdfcStatement = `HDFC BANK LTD
Statement of account
05/01/2025  Swiggy Order  450.00  0.00  19550.00
07/01/2025  Uber Ride  350.00  0.00  19200.00
`

type stubValidator struct {
	valid bool
	err   error
}

func (s stubValidator) ValidateFormat(string) (bool, error) {
	return s.valid, s.err
}

func newConverter(logger logging.Logger) (*ledger.Converter, *pdfparser.Parser) {
	cat := categorizer.NewCategorizer(nil, nil, logger)
	p := pdfparser.NewParser(logger, nil, statement.NewPipeline(cat, logger))
	return ledger.NewConverter(p, ',', nil, logger), p
}

func writeStatement(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestProcessFile_Converts(t *testing.T) {
	logger := logging.NewMockLogger()
	conv, p := newConverter(logger)
	input := writeStatement(t, "jan.txt", hdfcStatement)
	outDir := t.TempDir()

	out, err := common.ProcessFile(context.Background(), conv, p, input, outDir, true, logger)
	require.NoError(t, err)

	assert.Equal(t, models.SourceExtracted, out.Result.Source)
	assert.Equal(t, models.BankHDFC, out.Result.Bank)
	assert.FileExists(t, filepath.Join(outDir, "jan.csv"))
	assert.FileExists(t, filepath.Join(outDir, "jan.xlsx"))
	assert.True(t, logger.HasEntry("INFO", "Validation successful."))
	assert.True(t, logger.HasEntry("INFO", "Conversion completed successfully!"))
}

func TestProcessFile_Rejections(t *testing.T) {
	conv, _ := newConverter(nil)
	dir := t.TempDir()
	csvInput := writeStatement(t, "ledger.csv", "a,b\n")
	txtInput := writeStatement(t, "jan.txt", hdfcStatement)

	tests := []struct {
		name      string
		input     string
		validator parser.FormatValidator
		validate  bool
		check     func(t *testing.T, err error)
	}{
		{
			name:  "missing file",
			input: filepath.Join(dir, "missing.pdf"),
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "path does not exist")
			},
		},
		{
			name:  "unsupported extension",
			input: csvInput,
			check: func(t *testing.T, err error) {
				var ve *parsererror.ValidationError
				assert.ErrorAs(t, err, &ve)
			},
		},
		{
			name:      "invalid document",
			input:     txtInput,
			validator: stubValidator{valid: false},
			validate:  true,
			check: func(t *testing.T, err error) {
				var fe *parsererror.InvalidFormatError
				assert.ErrorAs(t, err, &fe)
			},
		},
		{
			name:      "validator error",
			input:     txtInput,
			validator: stubValidator{err: errors.New("unreadable")},
			validate:  true,
			check: func(t *testing.T, err error) {
				assert.EqualError(t, err, "error validating file: unreadable")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := common.ProcessFile(context.Background(), conv, tt.validator, tt.input, dir, tt.validate, nil)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestPrintSummary(t *testing.T) {
	conv, _ := newConverter(nil)
	input := writeStatement(t, "jan.txt", hdfcStatement)
	out, err := conv.Convert(context.Background(), input, t.TempDir(), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, common.PrintSummary(&buf, out))

	text := buf.String()
	assert.Contains(t, text, "extracted (HDFC)")
	assert.Contains(t, text, "₹800.00")
	assert.Contains(t, text, "Top category:")
	assert.Contains(t, text, models.CategoryFoodDining)
	assert.Contains(t, text, "Spending by category:")
	assert.Contains(t, text, out.CSVPath)
	assert.NotContains(t, text, "Note:")
}

func TestPrintSummary_FallbackNote(t *testing.T) {
	out := ledger.Output{
		Result: models.ExtractionResult{
			Source: models.SourceEmpty,
			Bank:   models.BankGeneric,
			Reason: statement.ReasonNoTransactions,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, common.PrintSummary(&buf, out))
	assert.Contains(t, buf.String(), "Note:            "+statement.ReasonNoTransactions)
	assert.Contains(t, buf.String(), "Top category:    N/A")
	assert.NotContains(t, buf.String(), "Spending by category:")
}

func TestRenderReport(t *testing.T) {
	conv, _ := newConverter(nil)
	input := writeStatement(t, "jan.txt", hdfcStatement)
	out, err := conv.Convert(context.Background(), input, t.TempDir(), "")
	require.NoError(t, err)

	gen := report.NewReportGenerator(nil)
	data, err := common.RenderReport(gen, out, "json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"bank": "HDFC"`)
	assert.Contains(t, string(data), `"transaction_count": 2`)

	_, err = common.RenderReport(gen, out, "xml")
	assert.ErrorContains(t, err, "unsupported report format")
}
