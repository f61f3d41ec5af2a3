package parser

import (
	"os"
	"path/filepath"
	"testing"

	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseParser(t *testing.T) {
	t.Run("with provided logger", func(t *testing.T) {
		mockLog := logging.NewMockLogger()
		baseParser := NewBaseParser(mockLog)

		assert.Equal(t, mockLog, baseParser.logger)
		assert.Equal(t, ',', baseParser.Delimiter())
	})

	t.Run("with nil logger uses default", func(t *testing.T) {
		baseParser := NewBaseParser(nil)
		assert.NotNil(t, baseParser.GetLogger())
	})
}

func TestBaseParser_SetLogger(t *testing.T) {
	t.Run("sets new logger", func(t *testing.T) {
		baseParser := NewBaseParser(nil)
		mockLog := logging.NewMockLogger()

		baseParser.SetLogger(mockLog)

		assert.Equal(t, mockLog, baseParser.GetLogger())
	})

	t.Run("ignores nil logger", func(t *testing.T) {
		mockLog := logging.NewMockLogger()
		baseParser := NewBaseParser(mockLog)

		baseParser.SetLogger(nil)

		assert.Equal(t, mockLog, baseParser.GetLogger())
	})
}

func TestBaseParser_SetDelimiter(t *testing.T) {
	baseParser := NewBaseParser(nil)
	baseParser.SetDelimiter(';')
	assert.Equal(t, ';', baseParser.Delimiter())
	baseParser.SetDelimiter(0)
	assert.Equal(t, ';', baseParser.Delimiter())
}

func TestBaseParser_WriteToCSV(t *testing.T) {
	t.Run("writes transactions to CSV successfully", func(t *testing.T) {
		csvFile := filepath.Join(t.TempDir(), "test_output.csv")
		mockLog := logging.NewMockLogger()
		baseParser := NewBaseParser(mockLog)
		baseParser.SetDelimiter(';')

		transactions := []models.Transaction{
			models.NewTransactionBuilder().WithDate("2024-01-01").WithDescription("Test transaction 1").
				WithFloatAmounts(0, 100.5, 100.5).MustBuild(),
			models.NewTransactionBuilder().WithDate("2024-01-02").WithDescription("Test transaction 2").
				WithFloatAmounts(50.25, 0, 50.25).MustBuild(),
		}

		require.NoError(t, baseParser.WriteToCSV(transactions, csvFile))
		assert.True(t, mockLog.HasEntry("INFO", "Writing transactions to CSV using common writer"))

		content, err := os.ReadFile(csvFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Date;Description;Debit;Credit;Balance;Category")
		assert.Contains(t, string(content), "2024-01-02;Test transaction 2;50.25;0.00;50.25;Other")
	})

	t.Run("handles nil transactions", func(t *testing.T) {
		baseParser := NewBaseParser(logging.NewMockLogger())
		err := baseParser.WriteToCSV(nil, filepath.Join(t.TempDir(), "test_output.csv"))
		assert.ErrorContains(t, err, "cannot write nil transactions")
	})

	t.Run("handles empty transactions slice", func(t *testing.T) {
		csvFile := filepath.Join(t.TempDir(), "test_output.csv")
		baseParser := NewBaseParser(logging.NewMockLogger())

		require.NoError(t, baseParser.WriteToCSV([]models.Transaction{}, csvFile))
		assert.FileExists(t, csvFile)
	})
}

func TestBaseParser_InterfaceCompliance(t *testing.T) {
	var _ LoggerConfigurable = &BaseParser{}
}
