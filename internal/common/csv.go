// Package common provides the tabular ledger writers and readers shared by
// the CLI, the batch runner and the HTTP server.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"billkaro/statement-ledger/internal/currencyutils"
	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
	"billkaro/statement-ledger/internal/parsererror"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is the field separator used when none is configured.
const DefaultDelimiter = ','

// CSVRow is the on-disk shape of one ledger row. Amounts carry two decimals.
type CSVRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Debit       string `csv:"Debit"`
	Credit      string `csv:"Credit"`
	Balance     string `csv:"Balance"`
	Category    string `csv:"Category"`
}

// ToCSVRows converts transactions into export rows.
func ToCSVRows(transactions []models.Transaction) []CSVRow {
	rows := make([]CSVRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, CSVRow{
			Date:        tx.Date,
			Description: tx.Description,
			Debit:       currencyutils.FormatAmount(tx.Debit),
			Credit:      currencyutils.FormatAmount(tx.Credit),
			Balance:     currencyutils.FormatAmount(tx.Balance),
			Category:    tx.Category,
		})
	}
	return rows
}

// FromCSVRow parses an export row back into a transaction.
func FromCSVRow(row CSVRow) (models.Transaction, error) {
	debit, err := currencyutils.ParseAmount(row.Debit)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{Component: "CSV", Field: "Debit", Value: row.Debit, Err: err}
	}
	credit, err := currencyutils.ParseAmount(row.Credit)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{Component: "CSV", Field: "Credit", Value: row.Credit, Err: err}
	}
	balance, err := currencyutils.ParseAmount(row.Balance)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{Component: "CSV", Field: "Balance", Value: row.Balance, Err: err}
	}
	category := row.Category
	if category == "" {
		category = models.CategoryOther
	}
	return models.Transaction{
		Date:        row.Date,
		Description: row.Description,
		Debit:       debit,
		Credit:      credit,
		Balance:     balance,
		Category:    category,
	}, nil
}

// MarshalTransactionsCSV writes the header and one row per transaction to w.
func MarshalTransactionsCSV(w io.Writer, transactions []models.Transaction, delimiter rune) error {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	rows := ToCSVRows(transactions)
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteTransactionsToCSV writes transactions to csvFile, creating its
// directory when needed.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string, delimiter rune, logger logging.Logger) error {
	if transactions == nil {
		return &parsererror.ExportError{Format: "csv", Path: csvFile, Err: fmt.Errorf("cannot write nil transactions")}
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}

	if err := os.MkdirAll(filepath.Dir(csvFile), models.PermissionDirectory); err != nil {
		return &parsererror.ExportError{Format: "csv", Path: csvFile, Err: err}
	}

	file, err := os.Create(csvFile) // #nosec G304 -- output path chosen by the operator
	if err != nil {
		return &parsererror.ExportError{Format: "csv", Path: csvFile, Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file", logging.Field{Key: logging.FieldFile, Value: csvFile})
		}
	}()

	if err := MarshalTransactionsCSV(file, transactions, delimiter); err != nil {
		return &parsererror.ExportError{Format: "csv", Path: csvFile, Err: err}
	}

	logger.Info("Wrote transactions to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(delimiter)})
	return nil
}

// ReadCSVFile reads a delimited file into a slice of gocsv-tagged rows.
func ReadCSVFile[TCSVRow any](filePath string, delimiter rune, logger logging.Logger) ([]TCSVRow, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}

	file, err := os.Open(filePath) // #nosec G304 -- input path chosen by the operator
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file", logging.Field{Key: logging.FieldFile, Value: filePath})
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = delimiter

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.Debug("Read CSV rows",
		logging.Field{Key: logging.FieldInputFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}

// ReadTransactionsFromCSV loads a ledger previously written by WriteTransactionsToCSV.
func ReadTransactionsFromCSV(csvFile string, delimiter rune, logger logging.Logger) ([]models.Transaction, error) {
	rows, err := ReadCSVFile[CSVRow](csvFile, delimiter, logger)
	if err != nil {
		return nil, err
	}
	transactions := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := FromCSVRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}
