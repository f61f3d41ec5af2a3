package pdf_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"billkaro/statement-ledger/cmd/pdf"
	"billkaro/statement-ledger/internal/config"
	"billkaro/statement-ledger/internal/container"
	"billkaro/statement-ledger/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const axisStatement = "AXIS BANK\n" +
	"02/03/2025  Amazon Purchase  1500.00  0.00  48500.00\n" +
	"04/03/2025  Salary  0.00  60000.00  108500.00\n"

func newContainer(t *testing.T) (*container.Container, *logging.MockLogger) {
	t.Helper()
	cfg, err := config.InitializeConfig()
	require.NoError(t, err)
	logger := logging.NewMockLogger()
	c, err := container.NewContainerWithLogger(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, logger
}

func writeStatement(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestPdfCommand_Metadata(t *testing.T) {
	assert.Equal(t, "pdf", pdf.Cmd.Use)
	assert.Contains(t, pdf.Cmd.Short, "Convert a PDF statement")
	assert.NotNil(t, pdf.Cmd.RunE)
	assert.NotNil(t, pdf.Cmd.Flags().Lookup("report"))

	strictFlag := pdf.Cmd.Flags().Lookup("strict")
	require.NotNil(t, strictFlag)
	assert.Equal(t, "false", strictFlag.DefValue)
}

func TestRun_WritesLedgerAndSummary(t *testing.T) {
	c, logger := newContainer(t)
	input := writeStatement(t, "feb.txt", axisStatement)
	outDir := t.TempDir()

	var buf bytes.Buffer
	err := pdf.Run(context.Background(), c, pdf.Options{Input: input, Output: outDir, Report: "yaml"}, &buf)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "feb.csv"))
	assert.FileExists(t, filepath.Join(outDir, "feb.xlsx"))
	assert.Contains(t, buf.String(), "extracted (AXIS)")
	assert.Contains(t, buf.String(), "source: extracted")
	assert.True(t, logger.HasEntry("INFO", "PDF convert command called"))
}

func TestRun_StrictRejectsFallback(t *testing.T) {
	c, _ := newContainer(t)
	input := writeStatement(t, "blank.txt", "no rows in here\n")

	var buf bytes.Buffer
	err := pdf.Run(context.Background(), c, pdf.Options{Input: input, Output: t.TempDir(), Strict: true}, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no transactions extracted")
	assert.Contains(t, buf.String(), "fallback_sample")
}

func TestRun_Errors(t *testing.T) {
	c, _ := newContainer(t)
	input := writeStatement(t, "feb.txt", axisStatement)

	tests := []struct {
		name    string
		opts    pdf.Options
		wantErr string
	}{
		{name: "no input", opts: pdf.Options{}, wantErr: "an input file must be specified"},
		{name: "bad report format", opts: pdf.Options{Input: input, Output: t.TempDir(), Report: "xml"}, wantErr: "unsupported report format"},
		{name: "missing file", opts: pdf.Options{Input: input + ".pdf", Output: t.TempDir()}, wantErr: "path does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pdf.Run(context.Background(), c, tt.opts, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
