// Package parser provides the base parser functionality and common interfaces.
package parser

import (
	"billkaro/statement-ledger/internal/common"
	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
)

// BaseParser provides common functionality for statement parsers.
// Parsers embed it to share logger handling and CSV output:
//
//	type MyParser struct {
//		BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger    logging.Logger
	delimiter rune
}

// NewBaseParser creates a new BaseParser with the provided logger.
// If logger is nil, a default logger is used.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return BaseParser{
		logger:    logger,
		delimiter: common.DefaultDelimiter,
	}
}

// SetLogger implements the LoggerConfigurable interface.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// SetDelimiter sets the CSV field separator used by WriteToCSV.
func (b *BaseParser) SetDelimiter(delimiter rune) {
	if delimiter != 0 {
		b.delimiter = delimiter
	}
}

// Delimiter returns the CSV field separator.
func (b *BaseParser) Delimiter() rune {
	return b.delimiter
}

// WriteToCSV writes transactions with the common ledger writer.
func (b *BaseParser) WriteToCSV(transactions []models.Transaction, csvFile string) error {
	b.logger.Info("Writing transactions to CSV using common writer",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	return common.WriteTransactionsToCSV(transactions, csvFile, b.delimiter, b.logger)
}
