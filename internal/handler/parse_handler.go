package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"pdf-parser/internal/models"
	"pdf-parser/internal/service"
)

// uploadField is the multipart field that carries the PDF.
const uploadField = "file"

var errFileRequired = errors.New("file is required")

// ParseHandler handles the PDF parsing endpoint.
type ParseHandler struct {
	parseService *service.ParseService
}

// NewParseHandler creates a new ParseHandler.
func NewParseHandler(parseService *service.ParseService) *ParseHandler {
	return &ParseHandler{parseService: parseService}
}

// RegisterRoutes registers parse routes.
func (h *ParseHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /parse", h.Parse)
}

// Parse handles POST /parse (multipart: file)
func (h *ParseHandler) Parse(w http.ResponseWriter, r *http.Request) {
	// Stream the form so the upload is buffered in memory only, never spilled to disk.
	mr, err := r.MultipartReader()
	if err != nil {
		Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	part, err := nextFilePart(mr)
	if errors.Is(err, errFileRequired) {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}
	defer part.Close()

	if err := service.CheckContentType(part.Header.Get("Content-Type")); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := io.ReadAll(part)
	if err != nil {
		writeParseError(w, &service.ExtractionError{Err: fmt.Errorf("reading upload: %w", err)})
		return
	}

	resp, err := h.parseService.Parse(r.Context(), models.UploadedDocument{
		Filename:    part.FileName(),
		ContentType: part.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		writeParseError(w, err)
		return
	}

	JSON(w, http.StatusOK, resp)
}

// nextFilePart skips parts until the upload field.
func nextFilePart(mr *multipart.Reader) (*multipart.Part, error) {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, errFileRequired
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() == uploadField {
			return part, nil
		}
		part.Close()
	}
}

// writeParseError maps service errors onto HTTP statuses.
func writeParseError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrNotPDF) {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	Error(w, http.StatusInternalServerError, "PDF parsing failed: "+err.Error())
}
