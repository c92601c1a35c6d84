package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/frherrer/docx2testlink/internal/document"
	"github.com/frherrer/docx2testlink/internal/domain"
)

const (
	documentPart = "word/document.xml"
	stylesPart   = "word/styles.xml"
)

// DocxLoader reads Word (.docx) packages.
type DocxLoader struct{}

// NewDocxLoader creates a new DocxLoader.
func NewDocxLoader() *DocxLoader {
	return &DocxLoader{}
}

// SupportedExtensions returns the file extensions this loader handles.
func (l *DocxLoader) SupportedExtensions() []string {
	return []string{".docx"}
}

// Load parses the main document part of a .docx package. Paragraph styles are
// reported by name ("Heading 2"), not by style id.
func (l *DocxLoader) Load(path string, content []byte) (*document.Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, openError(path, "not a zip package", err)
	}

	body, err := readPart(zr, documentPart)
	if err != nil {
		return nil, openError(path, "cannot read main document", err)
	}

	styles := newStyleTable()
	if raw, err := readPart(zr, stylesPart); err == nil {
		if err := styles.parse(raw); err != nil {
			return nil, openError(path, "cannot parse styles", err)
		}
	}

	r := &docxReader{d: xml.NewDecoder(bytes.NewReader(body)), styles: styles}
	doc, err := r.readDocument()
	if err != nil {
		return nil, openError(path, "cannot parse main document", err)
	}
	return doc, nil
}

func openError(path, message string, err error) error {
	return domain.NewErrorWithSuggestion("load", path, message,
		"make sure the file is a Word .docx document and not a legacy .doc",
		fmt.Errorf("%w: %w", domain.ErrDocumentOpen, err))
}

func readPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s not found in package", name)
}

// styleTable resolves paragraph style ids to style names.
type styleTable struct {
	names        map[string]string
	defaultStyle string
}

type stylesXML struct {
	Styles []struct {
		Type    string `xml:"type,attr"`
		ID      string `xml:"styleId,attr"`
		Default string `xml:"default,attr"`
		Name    struct {
			Val string `xml:"val,attr"`
		} `xml:"name"`
	} `xml:"style"`
}

func newStyleTable() *styleTable {
	return &styleTable{names: make(map[string]string), defaultStyle: "Normal"}
}

func (s *styleTable) parse(raw []byte) error {
	var sx stylesXML
	if err := xml.Unmarshal(raw, &sx); err != nil {
		return err
	}
	for _, st := range sx.Styles {
		if st.Type != "paragraph" {
			continue
		}
		name := builtinStyleName(st.Name.Val)
		if name == "" {
			name = st.ID
		}
		s.names[st.ID] = name
		if st.Default == "1" || st.Default == "true" {
			s.defaultStyle = name
		}
	}
	return nil
}

// lookup returns the name of style id, or the default paragraph style when
// the id is empty or unknown.
func (s *styleTable) lookup(id string) string {
	if name, ok := s.names[id]; ok {
		return name
	}
	return s.defaultStyle
}

// builtinStyleName turns the lowercase names Word stores for built-in styles
// ("heading 2", "normal") into the names Word displays.
func builtinStyleName(name string) string {
	switch {
	case strings.HasPrefix(name, "heading "):
		return "Heading " + strings.TrimPrefix(name, "heading ")
	case name == "normal", name == "title", name == "subtitle", name == "caption",
		name == "header", name == "footer", name == "quote":
		return strings.ToUpper(name[:1]) + name[1:]
	}
	return name
}

type docxReader struct {
	d      *xml.Decoder
	styles *styleTable
}

func (r *docxReader) readDocument() (*document.Document, error) {
	for {
		tok, err := r.d.Token()
		if err == io.EOF {
			return nil, errors.New("no w:body element")
		}
		if err != nil {
			return nil, err
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "body" {
			body, err := r.readBody()
			if err != nil {
				return nil, err
			}
			return &document.Document{Body: body}, nil
		}
	}
}

func (r *docxReader) readBody() ([]document.Node, error) {
	var body []document.Node
	for {
		tok, err := r.d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				p, err := r.readParagraph()
				if err != nil {
					return nil, err
				}
				body = append(body, p)
			case "tbl":
				tbl, err := r.readTable()
				if err != nil {
					return nil, err
				}
				body = append(body, tbl)
			default:
				if err := r.d.Skip(); err != nil {
					return nil, err
				}
				body = append(body, &document.Unknown{Name: t.Name.Local})
			}
		case xml.EndElement:
			return body, nil
		}
	}
}

// readParagraph reads a w:p whose start tag was just consumed.
func (r *docxReader) readParagraph() (*document.Paragraph, error) {
	var (
		sb      strings.Builder
		styleID string
		inText  bool
		depth   = 1
	)
	for depth > 0 {
		tok, err := r.d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pStyle":
				styleID = attr(t, "val")
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			case "drawing", "pict", "AlternateContent", "del", "instrText",
				"pPrChange", "rPrChange", "sectPrChange":
				// text boxes, tracked deletions and the properties a tracked
				// formatting change replaced are not part of the paragraph
				if err := r.d.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			depth++
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
			depth--
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return &document.Paragraph{Text: sb.String(), Style: r.styles.lookup(styleID)}, nil
}

// readTable reads a w:tbl whose start tag was just consumed.
func (r *docxReader) readTable() (*document.Table, error) {
	tbl := &document.Table{}
	var above *document.Row
	for {
		tok, err := r.d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "tr" {
				if err := r.d.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			row, err := r.readRow(above)
			if err != nil {
				return nil, err
			}
			tbl.Rows = append(tbl.Rows, row)
			above = row
		case xml.EndElement:
			return tbl, nil
		}
	}
}

// readRow reads a w:tr. A cell spanning n grid columns appears n times; a
// vertically merged continuation cell is the cell above it.
func (r *docxReader) readRow(above *document.Row) (*document.Row, error) {
	row := &document.Row{}
	for {
		tok, err := r.d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "tc" {
				if err := r.d.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			cell, span, cont, err := r.readCell()
			if err != nil {
				return nil, err
			}
			col := len(row.Cells)
			if cont && above != nil && col < len(above.Cells) {
				cell = above.Cells[col]
			}
			for i := 0; i < span; i++ {
				row.Cells = append(row.Cells, cell)
			}
		case xml.EndElement:
			return row, nil
		}
	}
}

// readCell reads a w:tc and reports its grid span and whether it continues a
// vertical merge.
func (r *docxReader) readCell() (cell *document.Cell, span int, cont bool, err error) {
	cell = &document.Cell{}
	span = 1
	for {
		tok, err := r.d.Token()
		if err != nil {
			return nil, 0, false, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tcPr":
				span, cont, err = r.readCellProperties()
				if err != nil {
					return nil, 0, false, err
				}
			case "p":
				p, err := r.readParagraph()
				if err != nil {
					return nil, 0, false, err
				}
				cell.Content = append(cell.Content, p)
			case "tbl":
				tbl, err := r.readTable()
				if err != nil {
					return nil, 0, false, err
				}
				cell.Content = append(cell.Content, tbl)
			default:
				if err := r.d.Skip(); err != nil {
					return nil, 0, false, err
				}
			}
		case xml.EndElement:
			return cell, span, cont, nil
		}
	}
}

func (r *docxReader) readCellProperties() (span int, cont bool, err error) {
	span = 1
	for {
		tok, err := r.d.Token()
		if err != nil {
			return 0, false, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "gridSpan":
				if n, err := strconv.Atoi(attr(t, "val")); err == nil && n > 1 {
					span = n
				}
			case "vMerge":
				// a bare vMerge continues, "restart" opens a new merge
				cont = attr(t, "val") != "restart"
			}
			if err := r.d.Skip(); err != nil {
				return 0, false, err
			}
		case xml.EndElement:
			return span, cont, nil
		}
	}
}

func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
