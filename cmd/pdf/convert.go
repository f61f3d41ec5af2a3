// Package pdf handles PDF statement conversion commands
package pdf

import (
	"context"
	"fmt"
	"io"

	"billkaro/statement-ledger/cmd/common"
	"billkaro/statement-ledger/cmd/root"
	"billkaro/statement-ledger/internal/container"
	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"

	"github.com/spf13/cobra"
)

// Options are the inputs of one pdf run.
type Options struct {
	Input    string
	Output   string
	Validate bool
	Report   string
	Strict   bool
}

var (
	reportFormat string
	strict       bool
)

// Cmd represents the pdf command
var Cmd = &cobra.Command{
	Use:   "pdf",
	Short: "Convert a PDF statement to CSV and Excel",
	Long: `Convert a bank statement PDF into a categorized CSV ledger and Excel workbook,
then print the spending summary.

Example:
  billkaro pdf -i statement.pdf -o out/
  billkaro pdf -i statement.pdf -o out/ --report json --strict`,
	RunE: pdfFunc,
}

func init() {
	Cmd.Flags().StringVar(&reportFormat, "report", "", "Also print a report (json or yaml)")
	Cmd.Flags().BoolVar(&strict, "strict", false, "Fail when no transactions could be extracted")
}

func pdfFunc(cmd *cobra.Command, args []string) error {
	appContainer, err := root.MustContainer()
	if err != nil {
		return err
	}
	return Run(cmd.Context(), appContainer, Options{
		Input:    root.SharedFlags.Input,
		Output:   root.SharedFlags.Output,
		Validate: root.SharedFlags.Validate,
		Report:   reportFormat,
		Strict:   strict,
	}, cmd.OutOrStdout())
}

// Run converts opts.Input with the services of c and writes the summary,
// and the report when requested, to w.
func Run(ctx context.Context, c *container.Container, opts Options, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := c.GetLogger()
	if opts.Input == "" {
		return fmt.Errorf("an input file must be specified with --input")
	}
	if opts.Output == "" {
		opts.Output = c.GetConfig().Export.Directory
	}
	logger.Info("PDF convert command called",
		logging.Field{Key: logging.FieldInputFile, Value: opts.Input},
		logging.Field{Key: logging.FieldOutputFile, Value: opts.Output})

	out, err := common.ProcessFile(ctx, c.GetConverter(), c.GetParser(), opts.Input, opts.Output, opts.Validate, logger)
	if err != nil {
		return err
	}

	if err := common.PrintSummary(w, out); err != nil {
		return err
	}
	if opts.Report != "" {
		data, err := common.RenderReport(c.GetReportGenerator(), out, opts.Report)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return err
		}
	}

	if opts.Strict && out.Result.Source != models.SourceExtracted {
		return fmt.Errorf("no transactions extracted from %s: %s", opts.Input, out.Result.Reason)
	}
	return nil
}
