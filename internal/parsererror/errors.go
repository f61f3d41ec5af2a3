// Package parsererror defines the typed errors raised around the statement
// engine: reading input documents, exporting ledgers and delivering reports.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrNoText is returned by text collaborators when a document has no
// extractable text at all.
var ErrNoText = errors.New("document contains no extractable text")

// ParseError represents a value that could not be parsed.
type ParseError struct {
	Component string
	Field     string
	Value     string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Component, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents rejected input, such as an upload with the
// wrong extension or an invalid configuration value.
type ValidationError struct {
	Subject string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Subject, e.Reason)
}

// InvalidFormatError represents a file that is not of the expected format.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
	Err            error
}

func (e *InvalidFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s: %v",
			e.FilePath, e.Msg, e.ExpectedFormat, e.Err)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// DataExtractionError represents a readable file whose content could not be
// turned into text or transactions.
type DataExtractionError struct {
	FilePath string
	Page     int
	Reason   string
	Err      error
}

func (e *DataExtractionError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("data extraction failed in file '%s' on page %d: %s",
			e.FilePath, e.Page, e.Reason)
	}
	return fmt.Sprintf("data extraction failed in file '%s': %s", e.FilePath, e.Reason)
}

func (e *DataExtractionError) Unwrap() error {
	return e.Err
}

// CategorizationError represents a failing categorization strategy.
type CategorizationError struct {
	Description string
	Strategy    string
	Err         error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization failed for %q using %s: %v",
		e.Description, e.Strategy, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}

// ExportError represents a failure to write a ledger in some format.
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export %s to '%s': %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// NotificationError represents a failed delivery on an outbound channel.
type NotificationError struct {
	Channel   string
	Recipient string
	Err       error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("%s delivery to %s failed: %v", e.Channel, e.Recipient, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
