package service

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Character grid used to lay text out, in points per text column and per
// text row. These are pdfplumber's defaults.
const (
	layoutXDensity = 7.25
	layoutYDensity = 13.0
)

type textLine struct {
	y      float64
	glyphs []pdf.Text
}

type textWord struct {
	x    float64
	end  float64
	text string
}

// renderPage assembles positioned glyphs into lines of text, top to bottom.
func renderPage(glyphs []pdf.Text, opts TextOptions) string {
	lines := groupLines(glyphs, opts.YTolerance)

	var sb strings.Builder
	var prevY float64
	written := false
	for _, ln := range lines {
		words := splitWords(ln.glyphs, opts.XTolerance)
		if len(words) == 0 {
			continue
		}
		if written {
			sb.WriteByte('\n')
			if opts.Layout {
				sb.WriteString(strings.Repeat("\n", blankLines(prevY-ln.y)))
			}
		}
		sb.WriteString(renderLine(words, opts.Layout))
		prevY = ln.y
		written = true
	}
	return sb.String()
}

// groupLines clusters glyphs whose baselines lie within tolerance of the
// first glyph of the line. PDF y grows upwards, so lines come out top first.
func groupLines(glyphs []pdf.Text, tolerance float64) []textLine {
	sorted := make([]pdf.Text, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S != "" {
			sorted = append(sorted, g)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []textLine
	for _, g := range sorted {
		if n := len(lines); n > 0 && math.Abs(lines[n-1].y-g.Y) <= tolerance {
			lines[n-1].glyphs = append(lines[n-1].glyphs, g)
			continue
		}
		lines = append(lines, textLine{y: g.Y, glyphs: []pdf.Text{g}})
	}
	return lines
}

// splitWords cuts a line into words at whitespace glyphs and at horizontal
// gaps wider than tolerance.
func splitWords(glyphs []pdf.Text, tolerance float64) []textWord {
	sorted := make([]pdf.Text, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var words []textWord
	var cur strings.Builder
	var start, end float64
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, textWord{x: start, end: end, text: cur.String()})
			cur.Reset()
		}
	}

	for _, g := range sorted {
		if isBlank(g.S) {
			flush()
			continue
		}
		if cur.Len() > 0 && g.X-end > tolerance {
			flush()
		}
		if cur.Len() == 0 {
			start = g.X
		}
		cur.WriteString(g.S)
		end = g.X + g.W
	}
	flush()
	return words
}

// renderLine writes words separated by single spaces, or in layout mode at
// the text column matching their x position (at least one space apart).
func renderLine(words []textWord, layout bool) string {
	if !layout {
		parts := make([]string, len(words))
		for i, w := range words {
			parts[i] = w.text
		}
		return strings.Join(parts, " ")
	}

	var sb strings.Builder
	col := 0
	for i, w := range words {
		pad := int(math.Round(w.x/layoutXDensity)) - col
		if i > 0 && pad < 1 {
			pad = 1
		}
		if pad > 0 {
			sb.WriteString(strings.Repeat(" ", pad))
			col += pad
		}
		sb.WriteString(w.text)
		col += utf8.RuneCountInString(w.text)
	}
	return sb.String()
}

// blankLines is the number of empty lines that stand for a vertical gap.
func blankLines(gap float64) int {
	n := int(math.Round(gap/layoutYDensity)) - 1
	if n < 0 {
		return 0
	}
	return n
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}
