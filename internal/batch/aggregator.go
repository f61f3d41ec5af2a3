// Package batch converts every statement in a directory and consolidates
// the resulting ledgers.
package batch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"billkaro/statement-ledger/internal/common"
	"billkaro/statement-ledger/internal/dateutils"
	"billkaro/statement-ledger/internal/fileutils"
	"billkaro/statement-ledger/internal/ledger"
	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"

	"github.com/schollz/progressbar/v3"
)

// StatementExtensions are the input file types picked up from a directory.
var StatementExtensions = []string{".pdf", ".txt"}

// DateRange is the span of ISO dates covered by a ledger.
type DateRange struct {
	Start string
	End   string
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start == "" || dr.End == "" {
		return ""
	}
	return dr.Start + "_" + dr.End
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	out := dr
	if out.Start == "" || (other.Start != "" && other.Start < out.Start) {
		out.Start = other.Start
	}
	if out.End == "" || (other.End != "" && other.End > out.End) {
		out.End = other.End
	}
	return out
}

// FileOutcome is the result of converting one input file.
type FileOutcome struct {
	InputFile string
	Output    ledger.Output
	Err       error
}

// Result summarizes a directory run.
type Result struct {
	Files            []FileOutcome
	Consolidated     []models.Transaction
	ConsolidatedPath string
	DateRange        DateRange
}

// Succeeded counts the files converted without error.
func (r Result) Succeeded() int {
	n := 0
	for _, f := range r.Files {
		if f.Err == nil {
			n++
		}
	}
	return n
}

// Progress is advanced once per processed file.
type Progress interface {
	Add(n int) error
	Finish() error
}

// NewProgressBar renders batch progress on w.
func NewProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Processing statements"),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}

// BatchAggregator runs the converter over a directory.
type BatchAggregator struct {
	converter *ledger.Converter
	delimiter rune
	logger    logging.Logger
}

// NewBatchAggregator creates a new BatchAggregator instance
func NewBatchAggregator(converter *ledger.Converter, delimiter rune, logger logging.Logger) *BatchAggregator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &BatchAggregator{
		converter: converter,
		delimiter: delimiter,
		logger:    logger,
	}
}

// ListStatementFiles returns the statement files directly under dir in
// lexical order.
func ListStatementFiles(dir string) ([]string, error) {
	files, err := fileutils.ListFilesWithExtensions(dir, StatementExtensions...)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	return files, nil
}

// ProcessDirectory converts every statement in inputDir into outputDir and
// writes the consolidated ledger next to them. A failing file is recorded
// and skipped. progress may be nil.
func (ba *BatchAggregator) ProcessDirectory(ctx context.Context, inputDir, outputDir string, progress Progress) (Result, error) {
	files, err := ListStatementFiles(inputDir)
	if err != nil {
		return Result{}, err
	}

	ba.logger.Info("Found statement files",
		logging.Field{Key: logging.FieldInputFile, Value: inputDir},
		logging.Field{Key: logging.FieldCount, Value: len(files)})

	var result Result
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		out, err := ba.converter.Convert(ctx, file, outputDir, "")
		if err != nil {
			ba.logger.WithError(err).Error("Failed to convert statement",
				logging.Field{Key: logging.FieldFile, Value: file})
		}
		result.Files = append(result.Files, FileOutcome{InputFile: file, Output: out, Err: err})

		if progress != nil {
			if perr := progress.Add(1); perr != nil {
				ba.logger.WithError(perr).Debug("Failed to update progress bar")
			}
		}
	}
	if progress != nil {
		_ = progress.Finish()
	}

	result.Consolidated = ba.AggregateTransactions(result.Files)
	if len(result.Consolidated) == 0 {
		return result, nil
	}

	result.DateRange = CalculateDateRangeFromTransactions(result.Consolidated)
	result.ConsolidatedPath = filepath.Join(outputDir, GenerateOutputFilename(result.DateRange))
	if err := common.WriteTransactionsToCSV(result.Consolidated, result.ConsolidatedPath, ba.delimiter, ba.logger); err != nil {
		return result, err
	}
	return result, nil
}

// AggregateTransactions concatenates the extracted ledgers of outcomes in
// chronological order. Sample substitutions and failed files are left out.
func (ba *BatchAggregator) AggregateTransactions(outcomes []FileOutcome) []models.Transaction {
	var all []models.Transaction
	var sourceFiles []string

	for _, o := range outcomes {
		if o.Err != nil || o.Output.Result.Source != models.SourceExtracted {
			continue
		}
		all = append(all, o.Output.Result.Transactions...)
		sourceFiles = append(sourceFiles, filepath.Base(o.InputFile))
	}

	sortTransactionsChronologically(all)
	ba.detectAndLogDuplicates(all)

	ba.logger.Info("Aggregated transactions",
		logging.Field{Key: logging.FieldCount, Value: len(all)},
		logging.Field{Key: "source_files", Value: strings.Join(sourceFiles, ", ")})
	return all
}

// sortTransactionsChronologically orders ISO-dated rows by date and keeps
// the original order among equal dates. Rows whose date could not be
// normalized go last.
func sortTransactionsChronologically(transactions []models.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		iISO := dateutils.IsISODate(transactions[i].Date)
		jISO := dateutils.IsISODate(transactions[j].Date)
		if iISO != jISO {
			return iISO
		}
		if !iISO {
			return false
		}
		return transactions[i].Date < transactions[j].Date
	})
}

// detectAndLogDuplicates warns about rows that look identical. All rows
// are kept.
func (ba *BatchAggregator) detectAndLogDuplicates(transactions []models.Transaction) {
	duplicateCount := 0
	seen := make(map[string]bool, len(transactions))
	for _, tx := range transactions {
		key := duplicateKey(tx)
		if seen[key] {
			duplicateCount++
			ba.logger.Warn("Potential duplicate transaction",
				logging.Field{Key: "date", Value: tx.Date},
				logging.Field{Key: logging.FieldDescription, Value: tx.Description})
			continue
		}
		seen[key] = true
	}

	if duplicateCount > 0 {
		ba.logger.Warn("Found potential duplicate transactions",
			logging.Field{Key: logging.FieldCount, Value: duplicateCount})
	}
}

func duplicateKey(tx models.Transaction) string {
	return strings.Join([]string{
		tx.Date,
		strings.ToLower(strings.TrimSpace(tx.Description)),
		tx.Debit.String(),
		tx.Credit.String(),
	}, "|")
}

// GenerateOutputFilename names the consolidated ledger:
// consolidated_{start}_{end}.csv, or consolidated.csv without dates.
func GenerateOutputFilename(dateRange DateRange) string {
	if s := dateRange.String(); s != "" {
		return fmt.Sprintf("consolidated_%s.csv", s)
	}
	return "consolidated.csv"
}

// CalculateDateRangeFromTransactions returns the span of the ISO dates in
// transactions.
func CalculateDateRangeFromTransactions(transactions []models.Transaction) DateRange {
	var dr DateRange
	for _, tx := range transactions {
		if !dateutils.IsISODate(tx.Date) {
			continue
		}
		dr = dr.Merge(DateRange{Start: tx.Date, End: tx.Date})
	}
	return dr
}
