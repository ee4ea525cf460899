package pdfkit

import (
	"bytes"
	"fmt"
	"strings"
)

// Plain-text report PDFs built by hand: one Helvetica font, A4 pages,
// a content stream per page and a classic xref table. Good enough for
// exports, no external renderer involved.

const (
	pageWidth    = 595
	pageHeight   = 842
	topY         = 800
	leading      = 14
	linesPerPage = 52
	maxLineRunes = 96
)

// Document accumulates lines of text and renders them into a PDF.
type Document struct {
	lines []string
}

func NewDocument() *Document {
	return &Document{}
}

// AddLine appends one line, wrapping it when it exceeds the page width.
func (d *Document) AddLine(line string) {
	for _, part := range wrapLine(line) {
		d.lines = append(d.lines, part)
	}
}

func (d *Document) AddLinef(format string, args ...any) {
	d.AddLine(fmt.Sprintf(format, args...))
}

func (d *Document) AddBlank() {
	d.lines = append(d.lines, "")
}

// Bytes renders the accumulated lines into a finished PDF file.
func (d *Document) Bytes() ([]byte, error) {
	lines := d.lines
	if len(lines) == 0 {
		lines = []string{""}
	}

	pages := paginate(lines)

	// Object layout: 1 catalog, 2 pages, 3 font, then for page i
	// (0-based): page object 4+2i, content stream 5+2i.
	objects := make([]string, 0, 3+2*len(pages))

	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}

	objects = append(objects,
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
			strings.Join(kids, " "), len(pages)),
		"3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
	)

	for i, pageLines := range pages {
		stream := buildContentStream(pageLines)
		objects = append(objects,
			fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>\nendobj\n",
				4+2*i, pageWidth, pageHeight, 5+2*i),
			fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
				5+2*i, len(stream), stream),
		)
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func buildContentStream(lines []string) string {
	var content strings.Builder
	content.WriteString(fmt.Sprintf("BT\n/F1 12 Tf\n%d TL\n50 %d Td\n", leading, topY))
	for i, line := range lines {
		escaped := Escape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")
	return content.String()
}

func paginate(lines []string) [][]string {
	var pages [][]string
	for len(lines) > linesPerPage {
		pages = append(pages, lines[:linesPerPage])
		lines = lines[linesPerPage:]
	}
	return append(pages, lines)
}

func wrapLine(line string) []string {
	runes := []rune(line)
	if len(runes) <= maxLineRunes {
		return []string{line}
	}

	var parts []string
	for len(runes) > maxLineRunes {
		cut := maxLineRunes
		// break on the last space when there is one nearby
		for i := maxLineRunes; i > maxLineRunes-20; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		parts = append(parts, strings.TrimRight(string(runes[:cut]), " "))
		runes = []rune(strings.TrimLeft(string(runes[cut:]), " "))
	}
	return append(parts, string(runes))
}

// Escape escapes the characters PDF string literals reserve.
func Escape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
