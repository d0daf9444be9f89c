// Command parsectl uploads a PDF to a running pdf-parser and summarizes the result.
//
//	parsectl [-url http://localhost:8000] [-out response.json] statement.pdf
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pdf-parser/internal/client"
)

func main() {
	url := flag.String("url", "http://localhost:8000", "base URL of the parser service")
	out := flag.String("out", "response.json", "file to save the raw response to (empty to skip)")
	timeout := flag.Duration("timeout", 5*time.Minute, "request timeout")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: parsectl [flags] <file.pdf>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(*url, *out, *timeout, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "parsectl: %v\n", err)
		os.Exit(1)
	}
}

func run(url, out string, timeout time.Duration, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res, err := client.New(url).Parse(ctx, filepath.Base(path), data)
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Println("Status code:", apiErr.Status)
		return errors.New(apiErr.Detail)
	}
	if err != nil {
		return err
	}

	resp := res.Response
	fmt.Println("Status code:", 200)
	fmt.Println("Extracted text length:", len(resp.RawText))
	fmt.Println("Structured rows count:", len(resp.Rows))
	if len(resp.Rows) > 0 {
		first, err := json.Marshal(resp.Rows[0])
		if err != nil {
			return fmt.Errorf("encoding first row: %w", err)
		}
		fmt.Println("Preview of first row:", string(first))
	} else {
		fmt.Println("Preview of first row: None")
	}

	if out != "" {
		if err := os.WriteFile(out, res.Body, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		fmt.Println("Saved raw output to", out)
	}
	return nil
}
