// Package client talks to a running pdf-parser service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"pdf-parser/internal/models"
)

// APIError is a non-200 answer from the service.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Detail)
}

// Client calls the parse and health endpoints.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a Client for the service at baseURL (e.g. http://localhost:8000).
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: http.DefaultClient,
	}
}

// Result is a successful parse along with the exact body the service sent.
type Result struct {
	Response *models.ParseResponse
	Body     []byte
}

// Parse uploads a PDF and decodes the service's answer.
func (c *Client) Parse(ctx context.Context, filename string, data []byte) (*Result, error) {
	body, contentType, err := encodeUpload(filename, data)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/parse", body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp models.ParseResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding parse response: %w", err)
	}
	return &Result{Response: &resp, Body: raw}, nil
}

// Health reports the service's health status string.
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	raw, err := c.do(req)
	if err != nil {
		return "", err
	}
	var h models.HealthResponse
	if err := json.Unmarshal(raw, &h); err != nil {
		return "", fmt.Errorf("decoding health response: %w", err)
	}
	return h.Status, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	res, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", req.URL.Path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		var e models.ErrorResponse
		if json.Unmarshal(raw, &e) != nil || e.Detail == "" {
			e.Detail = strings.TrimSpace(string(raw))
		}
		return nil, &APIError{Status: res.StatusCode, Detail: e.Detail}
	}
	return raw, nil
}

// encodeUpload builds a multipart body with one application/pdf file part.
func encodeUpload(filename string, data []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", models.MIMETypePDF)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("creating file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("writing file part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}
