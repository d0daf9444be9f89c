package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"pdf-parser/internal/models"
	"pdf-parser/internal/service"
)

type stubSource struct {
	text  string
	err   error
	calls int
}

func (s *stubSource) ExtractText(data []byte) (string, error) {
	s.calls++
	return s.text, s.err
}

func newTestRouter(direct, ocr *stubSource) http.Handler {
	svc := service.NewParseService(direct, ocr, nil)
	return NewRouter(NewParseHandler(svc), NewHealthHandler())
}

// uploadRequest builds a POST /parse with a single file part of the given content type.
func uploadRequest(t *testing.T, field, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("note", "ignored"); err != nil {
		t.Fatal(err)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename="upload.pdf"`, field))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/parse", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var e models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("decoding error body %q: %v", rec.Body.String(), err)
	}
	return e.Detail
}

func TestParse_Success(t *testing.T) {
	direct := &stubSource{text: "A  B  C\nfoo  bar  baz\n"}
	ocr := &stubSource{}
	rec := httptest.NewRecorder()

	newTestRouter(direct, ocr).ServeHTTP(rec, uploadRequest(t, "file", "application/pdf", []byte("%PDF-1.4")))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`"rawText":"A  B  C\nfoo  bar  baz\n"`,
		`"rows":[{"a":"foo","b":"bar","c":"baz"}]`,
		`"headers":["a","b","c"]`,
		`"format":"pdf"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body %s missing %s", body, want)
		}
	}
	if ocr.calls != 0 {
		t.Errorf("OCR called %d times", ocr.calls)
	}
}

func TestParse_EmptyTableEncodesArrays(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubSource{text: "hello\n"}, &stubSource{}).
		ServeHTTP(rec, uploadRequest(t, "file", "application/pdf", []byte("%PDF")))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"rows":[]`) || !strings.Contains(body, `"headers":[]`) {
		t.Errorf("body = %s, want empty arrays", body)
	}
}

func TestParse_RejectsNonPDF(t *testing.T) {
	for _, ct := range []string{"image/png", "text/plain", "application/octet-stream"} {
		t.Run(ct, func(t *testing.T) {
			direct := &stubSource{text: "A  B  C"}
			rec := httptest.NewRecorder()

			// Real PDF bytes still fail when the declared type is wrong.
			newTestRouter(direct, &stubSource{}).ServeHTTP(rec, uploadRequest(t, "file", ct, []byte("%PDF-1.7 ...")))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if d := decodeDetail(t, rec); d != "File must be a PDF" {
				t.Errorf("detail = %q", d)
			}
			if direct.calls != 0 {
				t.Errorf("extractor called %d times", direct.calls)
			}
		})
	}
}

func TestParse_ExtractionFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubSource{err: errors.New("opening PDF: not a PDF file")}, &stubSource{}).
		ServeHTTP(rec, uploadRequest(t, "file", "application/pdf", []byte("garbage")))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	d := decodeDetail(t, rec)
	if !strings.HasPrefix(d, "PDF parsing failed: ") {
		t.Errorf("detail = %q, want prefix", d)
	}
	if !strings.Contains(d, "not a PDF file") {
		t.Errorf("detail = %q, want cause message", d)
	}
}

func TestParse_OCRFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubSource{text: " \n"}, &stubSource{err: errors.New("recognizing page 1: tesseract failed")}).
		ServeHTTP(rec, uploadRequest(t, "file", "application/pdf", []byte("%PDF")))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if d := decodeDetail(t, rec); d != "PDF parsing failed: recognizing page 1: tesseract failed" {
		t.Errorf("detail = %q", d)
	}
}

func TestParse_MissingFile(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubSource{}, &stubSource{}).
		ServeHTTP(rec, uploadRequest(t, "document", "application/pdf", []byte("%PDF")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if d := decodeDetail(t, rec); d != "file is required" {
		t.Errorf("detail = %q", d)
	}
}

func TestParse_NotMultipart(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader("%PDF-1.4"))
	req.Header.Set("Content-Type", "application/pdf")
	rec := httptest.NewRecorder()

	newTestRouter(&stubSource{}, &stubSource{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if d := decodeDetail(t, rec); !strings.HasPrefix(d, "failed to parse form") {
		t.Errorf("detail = %q", d)
	}
}

func TestParse_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubSource{}, &stubSource{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/parse", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubSource{}, &stubSource{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"ok"}` {
		t.Errorf("body = %s", got)
	}
}
