// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"

	"billkaro/statement-ledger/internal/batch"
	"billkaro/statement-ledger/internal/currencyutils"
	"billkaro/statement-ledger/internal/ledger"
	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/parser"
	"billkaro/statement-ledger/internal/parsererror"
	"billkaro/statement-ledger/internal/report"
	"billkaro/statement-ledger/internal/summary"
	"billkaro/statement-ledger/internal/validation"
)

// StatementConverter converts one statement into its ledger files.
type StatementConverter interface {
	Convert(ctx context.Context, inputPath, outputDir, stem string) (ledger.Output, error)
}

// ProcessFile converts inputFile into outputDir, validating the document
// first when validate is set.
func ProcessFile(ctx context.Context, conv StatementConverter, v parser.FormatValidator, inputFile, outputDir string, validate bool, log logging.Logger) (ledger.Output, error) {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	if err := validation.ValidateInputFile(inputFile, batch.StatementExtensions...); err != nil {
		return ledger.Output{}, err
	}

	if validate {
		log.Info("Validating format...")
		valid, err := v.ValidateFormat(inputFile)
		if err != nil {
			return ledger.Output{}, fmt.Errorf("error validating file: %w", err)
		}
		if !valid {
			return ledger.Output{}, &parsererror.InvalidFormatError{
				FilePath:       inputFile,
				ExpectedFormat: "PDF",
				Msg:            "the file is not in a valid format",
			}
		}
		log.Info("Validation successful.")
	}

	out, err := conv.Convert(ctx, inputFile, outputDir, "")
	if err != nil {
		return out, fmt.Errorf("error converting statement: %w", err)
	}
	log.Info("Conversion completed successfully!",
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldCount, Value: len(out.Result.Transactions)})
	return out, nil
}

// PrintSummary writes a human-readable digest of out to w.
func PrintSummary(w io.Writer, out ledger.Output) error {
	s := out.Summary
	h := summary.HighlightsOf(s)

	lines := []struct {
		label string
		value string
	}{
		{"Source", fmt.Sprintf("%s (%s)", out.Result.Source, out.Result.Bank)},
		{"Transactions", fmt.Sprintf("%d", s.TotalTransactions)},
		{"Total debits", currencyutils.FormatRupees(s.TotalDebits)},
		{"Total credits", currencyutils.FormatRupees(s.TotalCredits)},
		{"Net amount", currencyutils.FormatRupees(s.NetAmount)},
		{"Opening balance", currencyutils.FormatRupees(s.OpeningBalance)},
		{"Closing balance", currencyutils.FormatRupees(s.ClosingBalance)},
		{"Top category", h.TopCategory},
	}
	if out.Result.Reason != "" {
		lines = append(lines, struct {
			label string
			value string
		}{"Note", out.Result.Reason})
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-16s %s\n", l.label+":", l.value); err != nil {
			return err
		}
	}

	if ranked := s.CategoriesBySpend(); len(ranked) > 0 {
		if _, err := fmt.Fprintln(w, "Spending by category:"); err != nil {
			return err
		}
		for _, c := range ranked {
			if _, err := fmt.Fprintf(w, "  %-14s %s\n", c.Category, currencyutils.FormatRupees(c.Amount)); err != nil {
				return err
			}
		}
	}

	for _, f := range []struct{ label, path string }{{"CSV", out.CSVPath}, {"Workbook", out.WorkbookPath}} {
		if f.path == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-16s %s\n", f.label+":", f.path); err != nil {
			return err
		}
	}
	return nil
}

// RenderReport renders out, transactions included, as format.
func RenderReport(gen *report.ReportGenerator, out ledger.Output, format string) ([]byte, error) {
	if err := validation.IsValidReportFormat(format); err != nil {
		return nil, err
	}
	return gen.GenerateReport(report.NewStatementReport(out.Result, out.Summary, true), format)
}
