package pdfparser

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"billkaro/statement-ledger/internal/parsererror"

	"github.com/ledongthuc/pdf"
)

// PageExtractor returns the text of every page of a document, in page order.
// It allows the parser to be tested without real PDF files.
type PageExtractor interface {
	ExtractPages(path string) ([]string, error)
}

// ExtractorFor picks the extractor matching the extension of path: PDF
// files go through the PDF reader, .txt files are read as already-extracted
// text.
func ExtractorFor(path string) (PageExtractor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return NewLedongthucExtractor(), nil
	case ".txt":
		return NewPlainTextExtractor(), nil
	default:
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "PDF or TXT",
			Msg:            "unsupported file extension",
		}
	}
}

// LedongthucExtractor reads PDF text with github.com/ledongthuc/pdf.
type LedongthucExtractor struct{}

// NewLedongthucExtractor creates a new LedongthucExtractor.
func NewLedongthucExtractor() *LedongthucExtractor {
	return &LedongthucExtractor{}
}

// ExtractPages rebuilds the text rows of each page. The reader is known to
// panic on some malformed files; those panics surface as InvalidFormatError.
func (e *LedongthucExtractor) ExtractPages(path string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = &parsererror.InvalidFormatError{
				FilePath:       path,
				ExpectedFormat: "PDF",
				Msg:            fmt.Sprintf("pdf reader crashed: %v", r),
			}
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "PDF",
			Msg:            "file is not a valid PDF",
			Err:            err,
		}
	}
	defer func() { _ = f.Close() }()

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, &parsererror.DataExtractionError{FilePath: path, Reason: "document has no pages", Err: parsererror.ErrNoText}
	}

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text := textByPosition(page)
		if strings.TrimSpace(text) == "" {
			plain, plainErr := page.GetPlainText(nil)
			if plainErr == nil {
				text = plain
			}
		}
		pages = append(pages, cleanPageText(text))
	}

	if totalTextLen(pages) == 0 {
		return pages, &parsererror.DataExtractionError{FilePath: path, Reason: "no text on any page", Err: parsererror.ErrNoText}
	}
	return pages, nil
}

// textByPosition groups the positioned glyphs of a page into rows by
// baseline and orders each row left to right. A horizontal gap wider than a
// fifth of the font size becomes a space.
func textByPosition(page pdf.Page) string {
	content := page.Content()
	if len(content.Text) == 0 {
		return ""
	}

	rows := make(map[int][]pdf.Text)
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		y := int(math.Round(t.Y))
		rows[y] = append(rows[y], t)
	}

	ys := make([]int, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	// PDF y grows upwards.
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	lines := make([]string, 0, len(ys))
	for _, y := range ys {
		items := rows[y]
		sort.SliceStable(items, func(a, b int) bool { return items[a].X < items[b].X })

		var line strings.Builder
		prevEnd := math.Inf(-1)
		for _, item := range items {
			if line.Len() > 0 && item.X-prevEnd > item.FontSize*0.2 {
				line.WriteByte(' ')
			}
			line.WriteString(item.S)
			prevEnd = item.X + item.W
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// PlainTextExtractor reads a text file, splitting pages on form feeds.
type PlainTextExtractor struct{}

// NewPlainTextExtractor creates a new PlainTextExtractor.
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// ExtractPages returns the form-feed separated pages of the file.
func (e *PlainTextExtractor) ExtractPages(path string) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- input path chosen by the operator
	if err != nil {
		return nil, &parsererror.DataExtractionError{FilePath: path, Reason: "failed to read text file", Err: err}
	}
	var pages []string
	for _, page := range strings.Split(string(data), "\f") {
		pages = append(pages, cleanPageText(page))
	}
	if totalTextLen(pages) == 0 {
		return pages, &parsererror.DataExtractionError{FilePath: path, Reason: "file is empty", Err: parsererror.ErrNoText}
	}
	return pages, nil
}

// MockPageExtractor returns fixed pages for testing.
type MockPageExtractor struct {
	Pages []string
	Err   error
	Calls []string
}

// NewMockPageExtractor creates a MockPageExtractor with the given pages and error.
func NewMockPageExtractor(pages []string, err error) *MockPageExtractor {
	return &MockPageExtractor{Pages: pages, Err: err}
}

// ExtractPages records the call and returns the configured pages and error.
func (m *MockPageExtractor) ExtractPages(path string) ([]string, error) {
	m.Calls = append(m.Calls, path)
	return m.Pages, m.Err
}

// cleanPageText replaces tabs and strips trailing whitespace and blank lines.
func cleanPageText(text string) string {
	text = strings.ReplaceAll(text, "\t", " ")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
