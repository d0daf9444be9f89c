package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FormatPDF is the only format value the parser reports.
const FormatPDF = "pdf"

// MIMETypePDF is the declared content type an upload must carry.
const MIMETypePDF = "application/pdf"

// -------------------------------------------------------
// Domain Models
// -------------------------------------------------------

// UploadedDocument is a PDF upload held in memory for the lifetime of one request.
type UploadedDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

// TableRow maps header names to cell values and remembers the order in which
// headers were first assigned. It marshals to a JSON object with keys in that order.
type TableRow struct {
	keys   []string
	values map[string]string
}

// NewTableRow creates an empty row with room for n cells.
func NewTableRow(n int) TableRow {
	return TableRow{
		keys:   make([]string, 0, n),
		values: make(map[string]string, n),
	}
}

// Set assigns value to key. A key assigned twice keeps its first position.
func (r *TableRow) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the cell stored under key.
func (r TableRow) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the row's keys in insertion order.
func (r TableRow) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of distinct keys in the row.
func (r TableRow) Len() int { return len(r.keys) }

// MarshalJSON encodes the row as an object with keys in insertion order.
func (r TableRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("encoding row key: %w", err)
		}
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("encoding row value: %w", err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of string values, keeping key order.
func (r *TableRow) UnmarshalJSON(data []byte) error {
	*r = TableRow{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding row: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decoding row: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding row key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decoding row key: unexpected token %v", tok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decoding value for %q: %w", key, err)
		}
		r.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decoding row end: %w", err)
	}
	return nil
}

// -------------------------------------------------------
// API payloads
// -------------------------------------------------------

// ParseResponse is the full result of a /parse request.
type ParseResponse struct {
	RawText string     `json:"rawText"`
	Rows    []TableRow `json:"rows"`
	Headers []string   `json:"headers"`
	Format  string     `json:"format"`
}

// NewParseResponse builds a response, normalizing nil slices so they encode as [].
func NewParseResponse(rawText string, headers []string, rows []TableRow) *ParseResponse {
	if headers == nil {
		headers = []string{}
	}
	if rows == nil {
		rows = []TableRow{}
	}
	return &ParseResponse{
		RawText: rawText,
		Rows:    rows,
		Headers: headers,
		Format:  FormatPDF,
	}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
