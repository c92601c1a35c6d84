package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/frherrer/docx2testlink/internal/document"
)

// AsciiDocLoader reads AsciiDoc documents using regex patterns. Only the
// subset needed for requirement and test procedure documents is understood:
// section titles, paragraphs, list items and |=== tables with one row per
// line.
type AsciiDocLoader struct{}

// NewAsciiDocLoader creates a new AsciiDocLoader.
func NewAsciiDocLoader() *AsciiDocLoader {
	return &AsciiDocLoader{}
}

// SupportedExtensions returns the file extensions this loader handles.
func (l *AsciiDocLoader) SupportedExtensions() []string {
	return []string{".adoc", ".asciidoc"}
}

var (
	// Matches = Title, == Section, === Subsection, etc.
	asciidocHeadingRe = regexp.MustCompile(`^(={1,6})\s+(.+)$`)
	// Matches |=== table delimiter
	asciidocTableRe = regexp.MustCompile(`^\|===+\s*$`)
	// Matches ---- and .... delimited blocks
	asciidocDelimRe = regexp.MustCompile(`^(----+|\.\.\.\.+)\s*$`)
	// Matches * item and . item
	asciidocListRe = regexp.MustCompile(`^(\*+|\.+)\s+(.+)$`)
	// Hard line break inside a table cell
	asciidocBreakRe = regexp.MustCompile(`\s\+\s`)
)

// Load parses an AsciiDoc document. A section title with n equals signs is
// a paragraph styled "Heading n-1"; a table cell starting with "==== " opens
// with a "Heading 3" paragraph.
func (l *AsciiDocLoader) Load(path string, content []byte) (*document.Document, error) {
	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	doc := &document.Document{}

	var para []string
	flush := func() {
		if len(para) > 0 {
			doc.Body = append(doc.Body, &document.Paragraph{Style: normalStyle, Text: strings.Join(para, " ")})
			para = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			flush()

		// Single-line comments and attribute entries
		case strings.HasPrefix(trimmed, "//"), strings.HasPrefix(trimmed, ":") && strings.Count(trimmed, ":") >= 2:
			flush()

		case asciidocHeadingRe.MatchString(line):
			flush()
			m := asciidocHeadingRe.FindStringSubmatch(line)
			style := "Title"
			if level := len(m[1]) - 1; level > 0 {
				style = fmt.Sprintf("Heading %d", level)
			}
			doc.Body = append(doc.Body, &document.Paragraph{Style: style, Text: strings.TrimSpace(m[2])})

		case asciidocTableRe.MatchString(line):
			flush()
			tbl := &document.Table{}
			for i++; i < len(lines) && !asciidocTableRe.MatchString(lines[i]); i++ {
				row := strings.TrimSpace(lines[i])
				if !strings.HasPrefix(row, "|") {
					continue
				}
				tbl.Rows = append(tbl.Rows, asciidocRow(row))
			}
			doc.Body = append(doc.Body, tbl)

		case asciidocDelimRe.MatchString(line):
			flush()
			delim := trimmed
			for i++; i < len(lines) && strings.TrimSpace(lines[i]) != delim; i++ {
			}
			doc.Body = append(doc.Body, &document.Unknown{Name: "listing"})

		case asciidocListRe.MatchString(trimmed):
			flush()
			m := asciidocListRe.FindStringSubmatch(trimmed)
			doc.Body = append(doc.Body, &document.Paragraph{Style: listParagraphStyle, Text: strings.TrimSpace(m[2])})

		default:
			para = append(para, trimmed)
		}
	}
	flush()

	return doc, nil
}

// asciidocRow splits a "| a | b" line into cells; " + " breaks a cell into
// paragraphs.
func asciidocRow(line string) *document.Row {
	row := &document.Row{}
	for _, raw := range splitAsciidocCells(line) {
		cell := &document.Cell{}
		for j, text := range asciidocBreakRe.Split(raw, -1) {
			text = strings.TrimSpace(text)
			style := normalStyle
			if j == 0 && strings.HasPrefix(text, "==== ") {
				style = "Heading 3"
				text = strings.TrimSpace(strings.TrimPrefix(text, "==== "))
			}
			cell.Content = append(cell.Content, &document.Paragraph{Style: style, Text: text})
		}
		row.Cells = append(row.Cells, cell)
	}
	return row
}

// splitAsciidocCells splits on unescaped pipes; the leading pipe opens the
// first cell.
func splitAsciidocCells(line string) []string {
	var cells []string
	var current strings.Builder
	started := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line) && line[i+1] == '|':
			current.WriteByte('|')
			i++
		case c == '|':
			if started {
				cells = append(cells, current.String())
				current.Reset()
			}
			started = true
		default:
			current.WriteByte(c)
		}
	}
	if started {
		cells = append(cells, current.String())
	}
	return cells
}
