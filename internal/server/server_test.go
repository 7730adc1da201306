package server

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carefoundry/intake-server/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.UploadDir = t.TempDir()
	cfg.SupportItemsCSV = "/nonexistent/items.csv"
	cfg.StaffCSVWA = "/nonexistent/staff_wa.csv"
	cfg.StaffCSVNSW = "/nonexistent/staff_nsw.csv"
	return NewServer(cfg)
}

// uploadBody builds a multipart request body with one file part and the
// given form values.
func uploadBody(t *testing.T, filename string, content []byte, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func postUpload(s *Server, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "generate_csv")
	assert.Contains(t, body, "generate_medication_plan")
	assert.Contains(t, body, `action="/upload"`)
}

func TestIndexShowsFlash(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: "No%20file%20selected"})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "No file selected")
}

func TestUploadMissingFile(t *testing.T) {
	s := newTestServer(t)
	body, ct := uploadBody(t, "", nil, map[string]string{"generate_csv": "1"})

	rec := postUpload(s, body, ct)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestUploadRejectsNonPDF(t *testing.T) {
	s := newTestServer(t)
	body, ct := uploadBody(t, "notes.txt", []byte("hello"), map[string]string{"generate_csv": "1"})

	rec := postUpload(s, body, ct)
	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestUploadRequiresOutputSelection(t *testing.T) {
	s := newTestServer(t)
	body, ct := uploadBody(t, "form.pdf", []byte("%PDF-1.7\n"), nil)

	rec := postUpload(s, body, ct)
	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestUploadSingleOutput(t *testing.T) {
	s := newTestServer(t)

	// An unreadable PDF still yields a complete, empty-valued export;
	// extraction never fails a request.
	body, ct := uploadBody(t, "form.pdf", []byte("%PDF-1.7 garbage"), map[string]string{"generate_csv": "1"})
	rec := postUpload(s, body, ct)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "client_export.csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Salutation", records[0][0])
	assert.Equal(t, "They", records[1][0])
}

func TestUploadZipBundle(t *testing.T) {
	s := newTestServer(t)

	body, ct := uploadBody(t, "form.pdf", []byte("%PDF-1.7 garbage"), map[string]string{
		"generate_csv":              "1",
		"generate_service_estimate": "1",
	})
	rec := postUpload(s, body, ct)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "outputs.zip")

	data, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"client_export.csv", "Service Estimate.csv"}, names)
}

func TestUploadCleansScratchDir(t *testing.T) {
	s := newTestServer(t)

	body, ct := uploadBody(t, "form.pdf", []byte("%PDF-1.7 garbage"), map[string]string{"generate_csv": "1"})
	rec := postUpload(s, body, ct)
	require.Equal(t, http.StatusOK, rec.Code)

	entries, err := os.ReadDir(s.cfg.UploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_form.pdf", sanitizeFilename("my form.pdf"))
	assert.Equal(t, "form.pdf", sanitizeFilename("../../etc/form.pdf"))
	assert.Equal(t, "upload.pdf", sanitizeFilename(""))
}
