package parser_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/docx2testlink/internal/document"
	"github.com/frherrer/docx2testlink/internal/parser"
)

var _ = Describe("MarkdownLoader", func() {
	var l *parser.MarkdownLoader

	BeforeEach(func() {
		l = parser.NewMarkdownLoader()
	})

	Describe("SupportedExtensions", func() {
		It("should support .md and .markdown", func() {
			Expect(l.SupportedExtensions()).To(ContainElements(".md", ".markdown"))
		})
	})

	It("should style headings by level", func() {
		doc, err := l.Load("doc.md", []byte("# Title\n\n## System *Requirements*\n\nPlain `text` with a\nsoft break.\n"))
		Expect(err).ToNot(HaveOccurred())
		Expect(doc.Body).To(Equal([]document.Node{
			&document.Paragraph{Style: "Heading 1", Text: "Title"},
			&document.Paragraph{Style: "Heading 2", Text: "System Requirements"},
			&document.Paragraph{Style: "Normal", Text: "Plain text with a soft break."},
		}))
	})

	It("should turn list items into list paragraphs", func() {
		doc, err := l.Load("doc.md", []byte("- first\n- second\n  - nested\n"))
		Expect(err).ToNot(HaveOccurred())
		Expect(doc.Body).To(HaveLen(3))
		for _, n := range doc.Body {
			Expect(n.(*document.Paragraph).Style).To(Equal("List Paragraph"))
		}
		Expect(doc.Body[2].(*document.Paragraph).Text).To(Equal("nested"))
	})

	It("should keep code blocks as unknown nodes", func() {
		doc, err := l.Load("doc.md", []byte("```\nmake flash\n```\n"))
		Expect(err).ToNot(HaveOccurred())
		Expect(doc.Body).To(HaveLen(1))
		Expect(doc.Body[0]).To(BeAssignableToTypeOf(&document.Unknown{}))
	})

	Describe("Load requirements.md", func() {
		var doc *document.Document

		BeforeEach(func() {
			content, err := os.ReadFile(filepath.Join("..", "..", "testdata", "markdown", "requirements.md"))
			Expect(err).ToNot(HaveOccurred())
			doc, err = l.Load("requirements.md", content)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should read tables with the header as the first row", func() {
			blocks, err := document.Blocks(doc)
			Expect(err).ToNot(HaveOccurred())

			var tables []*document.Table
			for _, b := range blocks {
				if t, ok := b.(*document.Table); ok {
					tables = append(tables, t)
				}
			}
			Expect(tables).To(HaveLen(3))

			col := tables[0].Column(1)
			Expect(col).To(HaveLen(5))
			Expect(col[0].Text()).To(Equal("Heater regulation"))
			Expect(col[1].Text()).To(Equal("XIFU-DRE-DMX-FW-R-001"))
			Expect(col[2].Text()).To(ContainSubstring("T < 40 degC"))
			Expect(col[4].Text()).To(Equal("Validated"))
			Expect(tables[1].Column(1)[3].Text()).To(BeEmpty())
		})

		It("should join wrapped paragraph lines", func() {
			p := doc.Body[2].(*document.Paragraph)
			Expect(p.Style).To(Equal("Normal"))
			Expect(p.Text).To(HavePrefix("This chapter lists"))
			Expect(p.Text).To(HaveSuffix("instrument level requirements."))
		})
	})

	Describe("Load testcases.md", func() {
		var tbl *document.Table

		BeforeEach(func() {
			content, err := os.ReadFile(filepath.Join("..", "..", "testdata", "markdown", "testcases.md"))
			Expect(err).ToNot(HaveOccurred())
			doc, err := l.Load("testcases.md", content)
			Expect(err).ToNot(HaveOccurred())
			for _, n := range doc.Body {
				if t, ok := n.(*document.Table); ok {
					tbl = t
					break
				}
			}
			Expect(tbl).ToNot(BeNil())
		})

		It("should open a cell starting with ### with a level 3 heading", func() {
			first := tbl.Cell(0, 0).Paragraphs()[0]
			Expect(first.Style).To(Equal("Heading 3"))
			Expect(first.Text).To(Equal("Test Case 1: power on"))
		})

		It("should split cells at <br>", func() {
			paras := tbl.Cell(2, 0).Paragraphs()
			Expect(paras).To(HaveLen(2))
			Expect(paras[0].Text).To(Equal("Board unpowered"))
			Expect(paras[1].Text).To(Equal("Bench supply set to 12 V"))
		})

		It("should keep every row", func() {
			Expect(tbl.Rows).To(HaveLen(8))
			Expect(tbl.ColumnCount()).To(Equal(3))
		})
	})
})
