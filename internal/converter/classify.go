package converter

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/frherrer/docx2testlink/internal/document"
)

// Kind is the structural role of a block.
type Kind int

const (
	Unrecognized Kind = iota
	SpecHeading
	ReqTable
	SuiteHeading
	CaseTable
	// Paragraph and Table are blocks with no structural role of their own.
	Paragraph
	Table
)

var kindNames = map[Kind]string{
	Unrecognized: "unrecognized",
	SpecHeading:  "spec heading",
	ReqTable:     "requirement table",
	SuiteHeading: "suite heading",
	CaseTable:    "case table",
	Paragraph:    "paragraph",
	Table:        "table",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unrecognized"
}

// ClassifyOptions tells Classify which markers to look for.
type ClassifyOptions struct {
	// Mode limits recognition to the markers of one document kind, so a
	// heading such as "Test suite requirements" is never claimed twice.
	Mode Mode
	// ReqID is the prefix that marks a requirement table.
	ReqID string
}

const (
	headingLevel2 = "heading 2"
	headingLevel3 = "heading 3"
	requirements  = "requirements"
	testSuite     = "test suite"
	testCase      = "test case"
)

// Classify returns the role of b. Paragraphs and tables that carry no marker
// come back as Paragraph and Table; anything else is Unrecognized.
func Classify(b document.Block, opts ClassifyOptions) Kind {
	switch v := b.(type) {
	case *document.Paragraph:
		return classifyParagraph(v, opts)
	case *document.Table:
		return classifyTable(v, opts)
	}
	return Unrecognized
}

func classifyParagraph(p *document.Paragraph, opts ClassifyOptions) Kind {
	if !containsFold(p.Style, headingLevel2) {
		return Paragraph
	}
	switch opts.Mode {
	case ModeRequirements:
		if containsFold(p.Text, requirements) {
			return SpecHeading
		}
	case ModeTestCases:
		if containsFold(p.Text, testSuite) {
			return SuiteHeading
		}
	}
	return Paragraph
}

func classifyTable(t *document.Table, opts ClassifyOptions) Kind {
	switch opts.Mode {
	case ModeRequirements:
		if isRequirementTable(t, opts.ReqID) {
			return ReqTable
		}
	case ModeTestCases:
		if isCaseTable(t) {
			return CaseTable
		}
	}
	return Table
}

// isRequirementTable reports whether some cell of t starts with the
// requirement id prefix.
func isRequirementTable(t *document.Table, reqID string) bool {
	if reqID == "" {
		return false
	}
	for _, row := range t.Rows {
		for _, c := range row.Cells {
			if strings.HasPrefix(strings.TrimSpace(c.Text()), reqID) {
				return true
			}
		}
	}
	return false
}

// isCaseTable reports whether the first cell of t names a test case and opens
// with a level 3 heading.
func isCaseTable(t *document.Table) bool {
	first := t.Cell(0, 0)
	if first == nil {
		return false
	}
	paras := first.Paragraphs()
	if len(paras) == 0 {
		return false
	}
	return containsFold(first.Text(), testCase) && containsFold(paras[0].Style, headingLevel3)
}

func containsFold(s, substr string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(substr))
}
