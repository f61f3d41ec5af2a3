// Package pdfparser reads bank-statement documents and runs the statement
// pipeline over their page text.
package pdfparser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
	"billkaro/statement-ledger/internal/parser"
	"billkaro/statement-ledger/internal/statement"
)

var pdfMagic = []byte("%PDF-")

// Parser implements parser.StatementParser for PDF and plain-text statements.
type Parser struct {
	parser.BaseParser
	extractor PageExtractor
	pipeline  *statement.Pipeline
}

// NewParser creates a parser. A nil extractor selects one per file
// extension; a nil pipeline uses the default pipeline without a categorizer.
func NewParser(logger logging.Logger, extractor PageExtractor, pipeline *statement.Pipeline) *Parser {
	base := parser.NewBaseParser(logger)
	if pipeline == nil {
		pipeline = statement.NewPipeline(nil, base.GetLogger())
	}
	return &Parser{
		BaseParser: base,
		extractor:  extractor,
		pipeline:   pipeline,
	}
}

// ParseFile extracts the pages of path and processes them. A document whose
// text cannot be read still yields a result, flagged through its Source.
func (p *Parser) ParseFile(ctx context.Context, path string) (models.ExtractionResult, error) {
	if _, err := os.Stat(path); err != nil {
		return models.ExtractionResult{}, fmt.Errorf("error opening input file: %w", err)
	}

	extractor := p.extractor
	if extractor == nil {
		var err error
		extractor, err = ExtractorFor(path)
		if err != nil {
			return models.ExtractionResult{}, err
		}
	}

	p.GetLogger().Info("Parsing statement",
		logging.Field{Key: logging.FieldInputFile, Value: path})

	pages, err := extractor.ExtractPages(path)
	if err != nil {
		p.GetLogger().WithError(err).Warn("Failed to extract statement text",
			logging.Field{Key: logging.FieldInputFile, Value: path})
	}

	result := p.pipeline.ProcessPages(ctx, pages, err)
	p.GetLogger().Info("Parsed statement",
		logging.Field{Key: logging.FieldInputFile, Value: path},
		logging.Field{Key: logging.FieldPages, Value: len(pages)},
		logging.Field{Key: logging.FieldSource, Value: string(result.Source)},
		logging.Field{Key: logging.FieldBank, Value: result.Bank.String()},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)})
	return result, nil
}

// Parse copies r into a temporary PDF file and parses it.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (models.ExtractionResult, error) {
	tempFile, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return models.ExtractionResult{}, fmt.Errorf("failed to create temporary PDF file: %w", err)
	}
	defer func() {
		if err := os.Remove(tempFile.Name()); err != nil {
			p.GetLogger().WithError(err).Warn("Failed to remove temporary file",
				logging.Field{Key: logging.FieldFile, Value: tempFile.Name()})
		}
	}()

	if _, err := io.Copy(tempFile, r); err != nil {
		_ = tempFile.Close()
		return models.ExtractionResult{}, fmt.Errorf("failed to write to temporary PDF file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return models.ExtractionResult{}, fmt.Errorf("failed to close temporary PDF file: %w", err)
	}

	return p.ParseFile(ctx, tempFile.Name())
}

// ConvertToCSV parses inputFile and writes its ledger to outputFile.
func (p *Parser) ConvertToCSV(ctx context.Context, inputFile, outputFile string) (models.ExtractionResult, error) {
	result, err := p.ParseFile(ctx, inputFile)
	if err != nil {
		return result, err
	}
	return result, p.WriteToCSV(result.Transactions, outputFile)
}

// ValidateFormat checks that path is a PDF by its header, or a text file by
// its extension.
func (p *Parser) ValidateFormat(path string) (bool, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		_, err := os.Stat(path)
		return err == nil, err
	}

	f, err := os.Open(path) // #nosec G304 -- input path chosen by the operator
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	header := make([]byte, len(pdfMagic))
	n, err := io.ReadFull(f, header)
	if err != nil && n == 0 {
		return false, nil
	}
	valid := bytes.Equal(header[:n], pdfMagic)
	if !valid {
		p.GetLogger().Debug("File does not start with a PDF header",
			logging.Field{Key: logging.FieldFile, Value: path})
	}
	return valid, nil
}
