package parser

import (
	"context"
	"io"

	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
)

// StatementParser turns a statement document into an extraction result.
// Extraction failures are reported through the result's Source and Reason;
// the error return is reserved for I/O problems with the input itself.
type StatementParser interface {
	// ParseFile reads the statement at path.
	ParseFile(ctx context.Context, path string) (models.ExtractionResult, error)
	// Parse reads a statement from r.
	Parse(ctx context.Context, r io.Reader) (models.ExtractionResult, error)
}

// FormatValidator reports whether a file looks like input a parser accepts.
type FormatValidator interface {
	ValidateFormat(path string) (bool, error)
}

// LoggerConfigurable is implemented by components whose logger can be swapped.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}
