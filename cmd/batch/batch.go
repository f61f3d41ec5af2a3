// Package batch handles batch processing of files
package batch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"billkaro/statement-ledger/cmd/root"
	"billkaro/statement-ledger/internal/batch"
	"billkaro/statement-ledger/internal/container"
	"billkaro/statement-ledger/internal/fileutils"
	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process statements from a directory",
	Long: `Batch process every statement in an input directory and write the ledgers to
another directory.

Each .pdf or .txt file is converted independently into a CSV ledger and an
Excel workbook. The extracted transactions of all files are also merged into
one consolidated CSV named after the covered date range.

Example:
  billkaro batch -i statements/ -o ledgers/`,
	RunE: batchFunc,
}

func init() {
	// Override the usage text for the input/output flags in batch context
	Cmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags (for batch, -i/-o refer to directories):
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`)
}

func batchFunc(cmd *cobra.Command, args []string) error {
	appContainer, err := root.MustContainer()
	if err != nil {
		return err
	}
	return Run(cmd.Context(), appContainer, root.SharedFlags.Input, root.SharedFlags.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// Run converts every statement in inputDir into outputDir. Per-file results
// go to w and the progress bar to progressOut. progressOut may be nil.
func Run(ctx context.Context, c *container.Container, inputDir, outputDir string, w, progressOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := c.GetLogger()

	if inputDir == "" {
		return fmt.Errorf("an input directory must be specified with --input")
	}
	if err := validation.ValidateInputDir(inputDir); err != nil {
		return err
	}
	if outputDir == "" {
		outputDir = c.GetConfig().Export.Directory
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	logger.Info("Batch command called",
		logging.Field{Key: logging.FieldInputFile, Value: inputDir},
		logging.Field{Key: logging.FieldOutputFile, Value: outputDir})

	files, err := batch.ListStatementFiles(inputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		_, err := fmt.Fprintf(w, "No statement files found in %s\n", inputDir)
		return err
	}

	start := time.Now()
	var progress batch.Progress
	if progressOut != nil {
		progress = batch.NewProgressBar(progressOut, len(files))
	}

	result, err := c.NewBatchAggregator().ProcessDirectory(ctx, inputDir, outputDir, progress)
	if err != nil {
		return fmt.Errorf("batch processing failed: %w", err)
	}

	for _, f := range result.Files {
		name := filepath.Base(f.InputFile)
		if f.Err != nil {
			_, _ = fmt.Fprintf(w, "FAIL %s: %v\n", name, f.Err)
			continue
		}
		_, _ = fmt.Fprintf(w, "OK   %s: %s, %d transactions\n", name, f.Output.Result.Source, len(f.Output.Result.Transactions))
	}
	_, _ = fmt.Fprintf(w, "Processed %d of %d files\n", result.Succeeded(), len(result.Files))
	if result.ConsolidatedPath != "" {
		_, _ = fmt.Fprintf(w, "Consolidated ledger (%s): %s\n", result.DateRange, result.ConsolidatedPath)
	}

	logger.Info("Batch processing completed",
		logging.Field{Key: logging.FieldCount, Value: result.Succeeded()},
		logging.Field{Key: logging.FieldStatus, Value: fmt.Sprintf("%d/%d", result.Succeeded(), len(result.Files))},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return nil
}
