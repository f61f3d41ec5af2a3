package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"billkaro/statement-ledger/internal/ledger"
	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/notify"
	"billkaro/statement-ledger/internal/pdfparser"
	"billkaro/statement-ledger/internal/retention"
	"billkaro/statement-ledger/internal/statement"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var axisPage = "AXIS BANK\n" +
	"02/03/2025  Amazon Purchase  1500.00  0.00  48500.00\n" +
	"04/03/2025  Salary  0.00  60000.00  108500.00\n"

type testServer struct {
	server    *Server
	uploadDir string
	exportDir string
	whatsapp  *notify.MockWhatsAppSender
	logger    *logging.MockLogger
}

func newTestServer(t *testing.T, extractor pdfparser.PageExtractor, formats []string) *testServer {
	t.Helper()
	root := t.TempDir()
	logger := logging.NewMockLogger()
	pipeline := statement.NewPipeline(nil, logger)
	converter := ledger.NewConverter(pdfparser.NewParser(logger, extractor, pipeline), ',', formats, logger)

	whatsapp := &notify.MockWhatsAppSender{}
	notifier := notify.NewNotifier(
		notify.NewWhatsAppNotifier(whatsapp, "+14155238886", "+91", logger),
		notify.NewEmailNotifier(nil, "", logger),
	)
	registry := retention.NewRegistry(time.Hour, logger)
	t.Cleanup(registry.Stop)

	ts := &testServer{
		uploadDir: filepath.Join(root, "uploads"),
		exportDir: filepath.Join(root, "downloads"),
		whatsapp:  whatsapp,
		logger:    logger,
	}
	ts.server = NewServer(Options{UploadDir: ts.uploadDir, ExportDir: ts.exportDir}, converter, notifier, registry, logger)
	ts.server.newID = func() string { return "11111111-2222-3333-4444-555555555555" }
	return ts
}

func uploadRequest(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v), string(data))
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, nil, nil)

	resp, err := ts.server.App().Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestUpload_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		req      func(t *testing.T) *http.Request
		expected string
	}{
		{
			name:     "no file field",
			req:      func(t *testing.T) *http.Request { return uploadRequest(t, "", nil, map[string]string{"x": "y"}) },
			expected: "No file uploaded",
		},
		{
			name:     "not a pdf",
			req:      func(t *testing.T) *http.Request { return uploadRequest(t, "statement.txt", []byte(axisPage), nil) },
			expected: "Invalid file type. Please upload a PDF file.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil, nil)
			resp, err := ts.server.App().Test(tt.req(t), -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			var body map[string]string
			decodeBody(t, resp, &body)
			assert.Equal(t, tt.expected, body["error"])
		})
	}
}

func TestUpload_Success(t *testing.T) {
	ts := newTestServer(t, pdfparser.NewMockPageExtractor([]string{axisPage}, nil), nil)

	req := uploadRequest(t, "My Statement.pdf", []byte("%PDF-1.4 fake"), map[string]string{
		"whatsapp_number": "9876543210",
	})
	resp, err := ts.server.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body UploadResponse
	decodeBody(t, resp, &body)

	id := "11111111-2222-3333-4444-555555555555"
	assert.True(t, body.Success)
	assert.Equal(t, "extracted", body.Source)
	assert.Equal(t, "AXIS", body.Bank)
	assert.Equal(t, 2, body.TransactionCount)
	assert.Equal(t, id+"_statement.csv", body.CSVFile)
	assert.Equal(t, id+"_statement.xlsx", body.ExcelFile)
	assert.InDelta(t, 1500.0, body.Summary.TotalDebits, 0.001)
	assert.InDelta(t, 108500.0, body.Summary.ClosingBalance, 0.001)
	assert.True(t, body.WhatsAppSent)
	assert.False(t, body.EmailSent)
	_, err = time.Parse(retention.CleanupTimeLayout, body.CleanupTime)
	assert.NoError(t, err)

	assert.FileExists(t, filepath.Join(ts.exportDir, body.CSVFile))
	assert.FileExists(t, filepath.Join(ts.exportDir, body.ExcelFile))
	assert.NoFileExists(t, filepath.Join(ts.uploadDir, id+"_My_Statement.pdf"))
	assert.Len(t, ts.server.retention.Pending(), 2)

	require.Len(t, ts.whatsapp.Messages, 1)
	assert.Equal(t, "whatsapp:+919876543210", ts.whatsapp.Messages[0].To)
	assert.Contains(t, ts.whatsapp.Messages[0].Body, id)
}

func TestUpload_UnreadablePDFFallsBackToSample(t *testing.T) {
	ts := newTestServer(t, nil, []string{ledger.FormatCSV})

	resp, err := ts.server.App().Test(uploadRequest(t, "broken.pdf", []byte("not a pdf"), nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body UploadResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "fallback_sample", body.Source)
	assert.Equal(t, 8, body.TransactionCount)
	assert.Empty(t, body.ExcelFile)
	assert.False(t, body.WhatsAppSent)
}

func TestUpload_ProcessingFailure(t *testing.T) {
	ts := newTestServer(t, pdfparser.NewMockPageExtractor([]string{axisPage}, nil), []string{"ods"})

	resp, err := ts.server.App().Test(uploadRequest(t, "s.pdf", []byte("%PDF-"), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Processing failed: unsupported export format: ods", body["error"])
}

func TestDownload(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	require.NoError(t, os.MkdirAll(ts.exportDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(ts.exportDir, "abc_statement.csv"), []byte("Date\n"), 0o600))

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "csv file", path: "/download/csv/abc_statement.csv", wantStatus: fiber.StatusOK},
		{name: "missing file", path: "/download/csv/nope.csv", wantStatus: fiber.StatusNotFound},
		{name: "wrong extension for type", path: "/download/excel/abc_statement.csv", wantStatus: fiber.StatusNotFound},
		{name: "unknown type", path: "/download/pdf/abc_statement.csv", wantStatus: fiber.StatusBadRequest},
		{name: "parent directory", path: "/download/csv/..", wantStatus: fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ts.server.App().Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	resp, err := ts.server.App().Test(httptest.NewRequest(http.MethodGet, "/download/csv/abc_statement.csv", nil), -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Date\n", string(data))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "abc_statement.csv")
}

func TestRemoveUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("x"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "keep"), 0o750))

	removed, err := RemoveUploads(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep", entries[0].Name())

	removed, err = RemoveUploads(filepath.Join(dir, "missing"))
	assert.NoError(t, err)
	assert.Zero(t, removed)
}
