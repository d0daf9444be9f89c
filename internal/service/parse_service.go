package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"pdf-parser/internal/logging"
	"pdf-parser/internal/models"
)

// ErrNotPDF is returned for uploads not declared as application/pdf.
var ErrNotPDF = errors.New("File must be a PDF")

// ExtractionError wraps any failure that happened while turning an upload
// into a ParseResponse. Its message is the cause's message.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string { return e.Err.Error() }

func (e *ExtractionError) Unwrap() error { return e.Err }

// CheckContentType validates the declared MIME type of an upload. The bytes
// themselves are not inspected.
func CheckContentType(contentType string) error {
	if contentType != models.MIMETypePDF {
		return ErrNotPDF
	}
	return nil
}

// TextSource produces the full text of a PDF.
type TextSource interface {
	ExtractText(data []byte) (string, error)
}

// ParseService runs direct extraction, falls back to OCR when it finds no
// text, and maps the result into table rows.
type ParseService struct {
	extractor TextSource
	fallback  TextSource
	logger    *slog.Logger
}

// NewParseService creates a new ParseService. A nil logger discards records.
func NewParseService(extractor, fallback TextSource, logger *slog.Logger) *ParseService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ParseService{
		extractor: extractor,
		fallback:  fallback,
		logger:    logger,
	}
}

// Parse converts an uploaded PDF into a ParseResponse. Every failure, panics
// included, comes back as *ExtractionError.
func (s *ParseService) Parse(ctx context.Context, doc models.UploadedDocument) (*models.ParseResponse, error) {
	resp, err := s.parse(ctx, doc)
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}
	return resp, nil
}

func (s *ParseService) parse(ctx context.Context, doc models.UploadedDocument) (resp *models.ParseResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, fmt.Errorf("%v", r)
		}
	}()

	rawText, err := s.extractor.ExtractText(doc.Data)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(rawText) == "" {
		logging.FromContext(ctx, s.logger).InfoContext(ctx, "no text found, falling back to OCR",
			slog.String("filename", doc.Filename),
			slog.Int("bytes", len(doc.Data)),
		)
		rawText, err = s.fallback.ExtractText(doc.Data)
		if err != nil {
			return nil, err
		}
	}

	headers, rows := MapRows(rawText)
	return models.NewParseResponse(rawText, headers, rows), nil
}
