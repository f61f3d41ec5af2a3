// Package validation checks command-line inputs before any work starts.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"billkaro/statement-ledger/internal/parsererror"
)

// ReportFormats lists the values accepted by --report.
var ReportFormats = []string{"json", "yaml", "yml"}

// IsValidPath checks if a given path exists and is a file or a directory.
func IsValidPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return &parsererror.ValidationError{Subject: "path", Reason: "must not be empty"}
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}
	return nil
}

// ValidateInputFile checks that path is an existing regular file with one of
// extensions. No extensions means any file.
func ValidateInputFile(path string, extensions ...string) error {
	if err := IsValidPath(path); err != nil {
		return err
	}
	if info, _ := os.Stat(path); info.IsDir() {
		return &parsererror.ValidationError{Subject: path, Reason: "expected a file, got a directory"}
	}
	if len(extensions) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range extensions {
		if ext == strings.ToLower(want) {
			return nil
		}
	}
	return &parsererror.ValidationError{
		Subject: path,
		Reason:  fmt.Sprintf("unsupported extension %q, expected one of %s", ext, strings.Join(extensions, ", ")),
	}
}

// ValidateInputDir checks that path is an existing directory.
func ValidateInputDir(path string) error {
	if err := IsValidPath(path); err != nil {
		return err
	}
	if info, _ := os.Stat(path); !info.IsDir() {
		return &parsererror.ValidationError{Subject: path, Reason: "expected a directory"}
	}
	return nil
}

// IsValidReportFormat checks if the given report format is supported.
func IsValidReportFormat(format string) error {
	for _, f := range ReportFormats {
		if strings.EqualFold(format, f) {
			return nil
		}
	}
	return fmt.Errorf("unsupported report format: %s. Supported formats are 'json', 'yaml'", format)
}
