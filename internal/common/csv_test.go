package common

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
	"billkaro/statement-ledger/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLedger() []models.Transaction {
	return []models.Transaction{
		models.NewTransactionBuilder().WithDate("2025-01-02").WithDescription("ATM Withdrawal - Cash").
			WithFloatAmounts(5000, 0, 20000).WithCategory(models.CategoryBanking).MustBuild(),
		models.NewTransactionBuilder().WithDate("2025-01-03").WithDescription("Swiggy, Food Order").
			WithFloatAmounts(450.5, 0, 19549.5).WithCategory(models.CategoryFoodDining).MustBuild(),
		models.NewTransactionBuilder().WithDate("2025-01-04").WithDescription("Salary Credit").
			WithFloatAmounts(0, 75000, 94549.5).MustBuild(),
	}
}

func TestMarshalTransactionsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MarshalTransactionsCSV(&buf, sampleLedger(), ','))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Date,Description,Debit,Credit,Balance,Category", lines[0])
	assert.Equal(t, "2025-01-02,ATM Withdrawal - Cash,5000.00,0.00,20000.00,Banking", lines[1])
	assert.Equal(t, `2025-01-03,"Swiggy, Food Order",450.50,0.00,19549.50,Food & Dining`, lines[2])
	assert.Equal(t, "2025-01-04,Salary Credit,0.00,75000.00,94549.50,Other", lines[3])
}

func TestMarshalTransactionsCSV_Delimiter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MarshalTransactionsCSV(&buf, sampleLedger()[:1], ';'))
	assert.True(t, strings.HasPrefix(buf.String(), "Date;Description;Debit;Credit;Balance;Category\n"))
}

func TestWriteAndReadTransactionsCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "ledger.csv")
	logger := logging.NewMockLogger()

	require.NoError(t, WriteTransactionsToCSV(sampleLedger(), path, ';', logger))
	assert.True(t, logger.HasEntry("INFO", "Wrote transactions to CSV file"))

	read, err := ReadTransactionsFromCSV(path, ';', nil)
	require.NoError(t, err)
	require.Len(t, read, 3)
	for i, tx := range sampleLedger() {
		assert.True(t, tx.Equal(read[i]), "row %d: %+v", i, read[i])
	}
}

func TestWriteTransactionsToCSV_Errors(t *testing.T) {
	err := WriteTransactionsToCSV(nil, filepath.Join(t.TempDir(), "x.csv"), ',', nil)
	var exportErr *parsererror.ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, "csv", exportErr.Format)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	err = WriteTransactionsToCSV(sampleLedger(), filepath.Join(blocker, "out.csv"), ',', nil)
	assert.Error(t, err)
}

func TestReadTransactionsFromCSV_BadAmount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "Date,Description,Debit,Credit,Balance,Category\n2025-01-01,Coffee,abc,0,0,Other\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := ReadTransactionsFromCSV(path, ',', nil)
	var parseErr *parsererror.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "Debit", parseErr.Field)
	assert.Contains(t, err.Error(), "row 1")
}

func TestReadCSVFile_Missing(t *testing.T) {
	_, err := ReadCSVFile[CSVRow]("does-not-exist.csv", ',', nil)
	assert.Error(t, err)
}

func TestFromCSVRow_DefaultsCategory(t *testing.T) {
	tx, err := FromCSVRow(CSVRow{Date: "2025-01-01", Description: "Coffee", Debit: "₹1,200.00"})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryOther, tx.Category)
	assert.Equal(t, "1200", tx.Debit.String())
	assert.True(t, tx.Credit.IsZero())
}
