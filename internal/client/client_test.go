package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Parse(t *testing.T) {
	const body = `{"rawText":"A  B  C\nx  y  z\n","rows":[{"a":"x","b":"y","c":"z"}],"headers":["a","b","c"],"format":"pdf"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/parse" {
			http.Error(w, "unexpected route", http.StatusNotFound)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if hdr.Filename != "bank.pdf" || hdr.Header.Get("Content-Type") != "application/pdf" || string(data) != "%PDF-1.4" {
			http.Error(w, "bad upload", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	defer srv.Close()

	res, err := New(srv.URL+"/").Parse(context.Background(), "bank.pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if string(res.Body) != body {
		t.Errorf("Body = %s", res.Body)
	}
	if len(res.Response.Rows) != 1 || res.Response.Format != "pdf" {
		t.Errorf("Response = %+v", res.Response)
	}
	if v, _ := res.Response.Rows[0].Get("b"); v != "y" {
		t.Errorf("b = %q", v)
	}
}

func TestClient_APIError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"json detail", http.StatusBadRequest, `{"detail":"File must be a PDF"}`, "File must be a PDF"},
		{"plain body", http.StatusBadGateway, "upstream down\n", "upstream down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := New(srv.URL).Parse(context.Background(), "x.pdf", nil)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if apiErr.Status != tt.status || apiErr.Detail != tt.wantDetail {
				t.Errorf("APIError = %+v", apiErr)
			}
		})
	}
}

func TestClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	}))
	defer srv.Close()

	status, err := New(srv.URL).Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if status != "ok" {
		t.Errorf("status = %q", status)
	}
}
