package service

import (
	"strings"

	"pdf-parser/internal/models"
)

const (
	// columnSeparator splits a line into cells. Layout extraction keeps wide
	// gaps between columns, so two spaces mark a boundary.
	columnSeparator = "  "
	// minColumns is the fewest cells a line needs to count as tabular.
	minColumns = 3
)

// MapRows turns raw text into a header and data rows. The first line with at
// least minColumns cells becomes the header (lowercased); every later line
// with at least minColumns cells becomes a row. Shorter lines are skipped.
func MapRows(rawText string) ([]string, []models.TableRow) {
	var headers []string
	var rows []models.TableRow

	for _, line := range strings.Split(rawText, "\n") {
		parts := splitColumns(line)
		if len(parts) < minColumns {
			continue
		}

		if len(headers) == 0 {
			headers = make([]string, len(parts))
			for i, p := range parts {
				headers[i] = strings.ToLower(p)
			}
			continue
		}

		row := models.NewTableRow(len(headers))
		for i, h := range headers {
			cell := ""
			if i < len(parts) {
				cell = parts[i]
			}
			row.Set(h, cell)
		}
		rows = append(rows, row)
	}

	return headers, rows
}

func splitColumns(line string) []string {
	var parts []string
	for _, p := range strings.Split(line, columnSeparator) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
