// Package categorize handles the categorize command
package categorize

import (
	"context"
	"fmt"
	"io"
	"strings"

	"billkaro/statement-ledger/cmd/root"
	"billkaro/statement-ledger/internal/categorizer"
	"billkaro/statement-ledger/internal/common"
	"billkaro/statement-ledger/internal/logging"

	"github.com/spf13/cobra"
)

var (
	explain bool
	ledger  string
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize [description]",
	Short: "Categorize a transaction description",
	Long: `Categorize a transaction description with the keyword table, and the AI
strategy when it is enabled, and print the resulting category.

With --ledger, recategorize every row of a ledger CSV written by the pdf or
batch commands instead. The result goes to --output, or replaces the file.

Example:
  billkaro categorize "POS SWIGGY BANGALORE"
  billkaro categorize --explain "UPI/ZOMATO/1234"
  billkaro categorize --ledger out/statement.csv`,
	Args: func(cmd *cobra.Command, args []string) error {
		if ledger != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&explain, "explain", "e", false, "Also print which strategies were tried")
	Cmd.Flags().StringVarP(&ledger, "ledger", "l", "", "Recategorize the rows of this ledger CSV")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	appContainer, err := root.MustContainer()
	if err != nil {
		return err
	}
	if ledger != "" {
		return RunLedger(cmd.Context(), appContainer.GetCategorizer(), ledger, root.SharedFlags.Output,
			appContainer.GetConfig().DelimiterRune(), cmd.OutOrStdout(), appContainer.GetLogger())
	}
	return Run(cmd.Context(), appContainer.GetCategorizer(), strings.Join(args, " "), explain, cmd.OutOrStdout(), appContainer.GetLogger())
}

// Run categorizes description with cat and prints the category to w.
func Run(ctx context.Context, cat *categorizer.Categorizer, description string, explain bool, w io.Writer, logger logging.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("a description must be given")
	}

	category, results := cat.CategorizeWithResults(ctx, description)
	for _, err := range results.GetErrors() {
		logger.WithError(err).Warn("Categorization strategy failed",
			logging.Field{Key: logging.FieldDescription, Value: description})
	}
	logger.Debug("Categorized description",
		logging.Field{Key: logging.FieldDescription, Value: description},
		logging.Field{Key: logging.FieldCategory, Value: category})

	if _, err := fmt.Fprintln(w, category); err != nil {
		return err
	}
	if explain {
		if _, err := fmt.Fprintf(w, "Strategies: %s\n", results.Summary()); err != nil {
			return err
		}
	}
	return nil
}

// RunLedger recategorizes the ledger CSV at path and writes it to output,
// or back to path when output is empty.
func RunLedger(ctx context.Context, cat common.Categorizer, path, output string, delimiter rune, w io.Writer, logger logging.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if output == "" {
		output = path
	}

	transactions, err := common.ReadTransactionsFromCSV(path, delimiter, logger)
	if err != nil {
		return fmt.Errorf("failed to read ledger: %w", err)
	}
	updated := common.RecategorizeTransactions(ctx, transactions, cat, logger)
	if err := common.WriteTransactionsToCSV(updated, output, delimiter, logger); err != nil {
		return err
	}

	changed := 0
	for i := range updated {
		if updated[i].Category != transactions[i].Category {
			changed++
		}
	}
	_, err = fmt.Fprintf(w, "Recategorized %d transactions (%d changed): %s\n", len(updated), changed, output)
	return err
}
