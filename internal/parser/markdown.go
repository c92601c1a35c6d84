package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/frherrer/docx2testlink/internal/document"
)

const (
	normalStyle        = "Normal"
	listParagraphStyle = "List Paragraph"
	cellHeadingPrefix  = "### "
)

var lineBreakTag = regexp.MustCompile(`(?i)^<br\s*/?>$`)

// MarkdownLoader reads Markdown documents using goldmark with GFM tables, so
// requirement and test procedure documents can be written without Word.
// Headings become paragraphs styled "Heading N" and table cells starting with
// "### " open with a "Heading 3" paragraph.
type MarkdownLoader struct {
	md goldmark.Markdown
}

// NewMarkdownLoader creates a new MarkdownLoader.
func NewMarkdownLoader() *MarkdownLoader {
	return &MarkdownLoader{
		md: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// SupportedExtensions returns the file extensions this loader handles.
func (l *MarkdownLoader) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

// Load parses a Markdown document into paragraphs and tables.
func (l *MarkdownLoader) Load(path string, content []byte) (*document.Document, error) {
	root := l.md.Parser().Parse(text.NewReader(content))
	b := &markdownBuilder{source: content}
	b.appendChildren(root)
	return &document.Document{Body: b.body}, nil
}

type markdownBuilder struct {
	source []byte
	body   []document.Node
}

func (b *markdownBuilder) appendChildren(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		b.appendNode(n)
	}
}

func (b *markdownBuilder) appendNode(n ast.Node) {
	switch node := n.(type) {
	case *ast.Heading:
		b.body = append(b.body, &document.Paragraph{
			Style: fmt.Sprintf("Heading %d", node.Level),
			Text:  inlineText(node, b.source),
		})
	case *ast.Paragraph, *ast.TextBlock:
		b.body = append(b.body, &document.Paragraph{Style: normalStyle, Text: inlineText(node, b.source)})
	case *ast.List:
		b.appendList(node)
	case *ast.Blockquote:
		b.appendChildren(node)
	case *extast.Table:
		b.body = append(b.body, b.table(node))
	default:
		b.body = append(b.body, &document.Unknown{Name: n.Kind().String()})
	}
}

func (b *markdownBuilder) appendList(list *ast.List) {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch child := c.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				b.body = append(b.body, &document.Paragraph{Style: listParagraphStyle, Text: inlineText(child, b.source)})
			case *ast.List:
				b.appendList(child)
			default:
				b.appendNode(child)
			}
		}
	}
}

// table converts a GFM table; the header row becomes row 1.
func (b *markdownBuilder) table(t *extast.Table) *document.Table {
	tbl := &document.Table{}
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		row := &document.Row{}
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			if cell, ok := c.(*extast.TableCell); ok {
				row.Cells = append(row.Cells, b.cell(cell))
			}
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl
}

// cell splits the cell text into paragraphs at <br> tags.
func (b *markdownBuilder) cell(c *extast.TableCell) *document.Cell {
	var paras []string
	var cur bytes.Buffer
	for n := c.FirstChild(); n != nil; n = n.NextSibling() {
		if raw, ok := n.(*ast.RawHTML); ok && lineBreakTag.Match(bytes.TrimSpace(rawHTML(raw, b.source))) {
			paras = append(paras, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		writeInline(&cur, n, b.source)
	}
	paras = append(paras, strings.TrimSpace(cur.String()))

	cell := &document.Cell{}
	for i, p := range paras {
		style := normalStyle
		if i == 0 && strings.HasPrefix(p, cellHeadingPrefix) {
			style = "Heading 3"
			p = strings.TrimSpace(strings.TrimPrefix(p, cellHeadingPrefix))
		}
		cell.Content = append(cell.Content, &document.Paragraph{Style: style, Text: p})
	}
	return cell
}

// inlineText returns the plain text of the inline children of n.
func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		writeInline(&buf, c, source)
	}
	return strings.TrimSpace(buf.String())
}

func writeInline(buf *bytes.Buffer, n ast.Node, source []byte) {
	switch node := n.(type) {
	case *ast.Text:
		buf.Write(node.Segment.Value(source))
		switch {
		case node.HardLineBreak():
			buf.WriteByte('\n')
		case node.SoftLineBreak():
			buf.WriteByte(' ')
		}
	case *ast.String:
		buf.Write(node.Value)
	case *ast.AutoLink:
		buf.Write(node.Label(source))
	case *ast.RawHTML:
		buf.Write(rawHTML(node, source))
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			writeInline(buf, c, source)
		}
	}
}

func rawHTML(n *ast.RawHTML, source []byte) []byte {
	var buf bytes.Buffer
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.Bytes()
}
