package server

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/retailops/pos-iif-converter/internal/config"
)

const sampleCSV = "Bill#,Code,Type,Trans Date,Till#,Description,Total,Qty\n" +
	"7,A1,sale,2024-02-03 09.00.00,1,Widget,20.00,2\n" +
	"7,A1,void,2024-02-03 09.00.00,1,Widget,10.00,1\n"

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	return New(config.Default(), nil).Router()
}

func multipartUpload(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &body, w.FormDataContentType()
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	newTestServer(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestConvertUpload(t *testing.T) {
	body, contentType := multipartUpload(t, "file", "export.csv", sampleCSV)
	req := httptest.NewRequest(http.MethodPost, "/convert", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestServer(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", rec.Code, rec.Body.String())
	}

	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, `"qb_sales_import.iif"`) {
		t.Errorf("Content-Disposition: got %q", got)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Errorf("Content-Type: got %q", got)
	}

	doc := rec.Body.String()
	if !strings.HasPrefix(doc, "!TRNS\t") {
		t.Errorf("document missing IIF headers:\n%s", doc)
	}
	if !strings.Contains(doc, "TRNS\tINVOICE\t02/03/2024") {
		t.Errorf("expected one invoice in the output:\n%s", doc)
	}
}

func TestConvertMissingFileField(t *testing.T) {
	body, contentType := multipartUpload(t, "wrong", "export.csv", sampleCSV)
	req := httptest.NewRequest(http.MethodPost, "/convert", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestServer(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestConvertStructuralErrorIs400(t *testing.T) {
	// Missing the required Total column.
	csv := "Bill#,Code,Type,Trans Date,Till#,Description\n7,A1,sale,2024-02-03 09.00.00,1,Widget\n"
	body, contentType := multipartUpload(t, "file", "export.csv", csv)
	req := httptest.NewRequest(http.MethodPost, "/convert", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestServer(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Total") {
		t.Errorf("error should name the missing column: %s", rec.Body.String())
	}
}

func TestConvertUnsupportedUploadType(t *testing.T) {
	body, contentType := multipartUpload(t, "file", "export.pdf", "nope")
	req := httptest.NewRequest(http.MethodPost, "/convert", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestServer(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}
