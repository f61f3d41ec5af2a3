package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"billkaro/statement-ledger/internal/currencyutils"
	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
	"billkaro/statement-ledger/internal/parsererror"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetTransactions = "Transactions"
	SheetSummary      = "Summary"
	SheetCategories   = "Categories"
)

// BuildWorkbook lays out the ledger and its summary as a workbook. The
// Categories sheet is present only when there is debit spend. The caller
// must Close the returned file.
func BuildWorkbook(transactions []models.Transaction, summary models.Summary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetTransactions); err != nil {
		_ = f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := writeTransactionsSheet(f, transactions, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeSummarySheet(f, summary, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}
	if len(summary.CategoryExpenses) > 0 {
		if err := writeCategoriesSheet(f, summary, headerStyle); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

// WriteWorkbook builds the workbook and saves it to path.
func WriteWorkbook(transactions []models.Transaction, summary models.Summary, path string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return &parsererror.ExportError{Format: "xlsx", Path: path, Err: err}
	}

	f, err := BuildWorkbook(transactions, summary)
	if err != nil {
		return &parsererror.ExportError{Format: "xlsx", Path: path, Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close workbook", logging.Field{Key: logging.FieldFile, Value: path})
		}
	}()

	if err := f.SaveAs(path); err != nil {
		return &parsererror.ExportError{Format: "xlsx", Path: path, Err: err}
	}

	logger.Info("Wrote workbook",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return nil
}

// MarshalWorkbook writes the workbook to w.
func MarshalWorkbook(w io.Writer, transactions []models.Transaction, summary models.Summary) error {
	f, err := BuildWorkbook(transactions, summary)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	_, err = f.WriteTo(w)
	return err
}

func writeTransactionsSheet(f *excelize.File, transactions []models.Transaction, headerStyle int) error {
	header := make([]interface{}, len(models.ColumnNames))
	for i, name := range models.ColumnNames {
		header[i] = name
	}
	if err := writeHeader(f, SheetTransactions, header, headerStyle); err != nil {
		return err
	}

	for i, tx := range transactions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			tx.Date,
			tx.Description,
			tx.Debit.InexactFloat64(),
			tx.Credit.InexactFloat64(),
			tx.Balance.InexactFloat64(),
			tx.Category,
		}
		if err := f.SetSheetRow(SheetTransactions, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(SheetTransactions, "B", "B", 45); err != nil {
		return err
	}
	return f.SetColWidth(SheetTransactions, "C", "F", 15)
}

func writeSummarySheet(f *excelize.File, summary models.Summary, headerStyle int) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	if err := writeHeader(f, SheetSummary, []interface{}{"Metric", "Value"}, headerStyle); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Total Transactions", summary.TotalTransactions},
		{"Total Debits", currencyutils.FormatRupees(summary.TotalDebits)},
		{"Total Credits", currencyutils.FormatRupees(summary.TotalCredits)},
		{"Net Amount", currencyutils.FormatRupees(summary.NetAmount)},
		{"Opening Balance", currencyutils.FormatRupees(summary.OpeningBalance)},
		{"Closing Balance", currencyutils.FormatRupees(summary.ClosingBalance)},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSummary, cell, &rows[i]); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetSummary, "A", "B", 22)
}

func writeCategoriesSheet(f *excelize.File, summary models.Summary, headerStyle int) error {
	if _, err := f.NewSheet(SheetCategories); err != nil {
		return err
	}
	if err := writeHeader(f, SheetCategories, []interface{}{"Category", "Amount Spent"}, headerStyle); err != nil {
		return err
	}

	for i, c := range summary.CategoriesBySpend() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{c.Category, c.Amount.InexactFloat64()}
		if err := f.SetSheetRow(SheetCategories, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetCategories, "A", "B", 20)
}

func writeHeader(f *excelize.File, sheet string, header []interface{}, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}
