package parser_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/docx2testlink/internal/document"
	"github.com/frherrer/docx2testlink/internal/parser"
)

var _ = Describe("AsciiDocLoader", func() {
	var l *parser.AsciiDocLoader

	BeforeEach(func() {
		l = parser.NewAsciiDocLoader()
	})

	Describe("SupportedExtensions", func() {
		It("should support .adoc and .asciidoc", func() {
			Expect(l.SupportedExtensions()).To(ContainElements(".adoc", ".asciidoc"))
		})
	})

	Describe("Load testcases.adoc", func() {
		var doc *document.Document

		BeforeEach(func() {
			content, err := os.ReadFile(filepath.Join("..", "..", "testdata", "asciidoc", "testcases.adoc"))
			Expect(err).ToNot(HaveOccurred())
			doc, err = l.Load("testcases.adoc", content)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should map section titles to heading styles", func() {
			Expect(doc.Body[0]).To(Equal(&document.Paragraph{Style: "Title", Text: "DRE-DMX acceptance test procedure"}))
			Expect(doc.Body[1]).To(Equal(&document.Paragraph{Style: "Heading 2", Text: "Test Suite: power supply"}))
		})

		It("should join paragraph lines and skip comments and attributes", func() {
			Expect(doc.Body[2]).To(Equal(&document.Paragraph{Style: "Normal", Text: "Checks the power supply of the board."}))
		})

		It("should read table rows and cells", func() {
			tbl, ok := doc.Body[3].(*document.Table)
			Expect(ok).To(BeTrue())
			Expect(tbl.Rows).To(HaveLen(8))
			Expect(tbl.Cell(0, 0).Paragraphs()[0]).To(Equal(&document.Paragraph{Style: "Heading 3", Text: "Test Case 1: power on"}))
			Expect(tbl.Cell(2, 0).Text()).To(Equal("Board unpowered\nBench supply set to 12 V"))
			Expect(tbl.Cell(4, 1).Text()).To(Equal("Switch on the supply"))
			Expect(tbl.Cell(4, 2).Text()).To(Equal("Power LED lit"))
		})

		It("should keep listing blocks as unknown nodes and lists as list paragraphs", func() {
			Expect(doc.Body[4]).To(Equal(&document.Unknown{Name: "listing"}))
			Expect(doc.Body[5]).To(Equal(&document.Paragraph{Style: "List Paragraph", Text: "Power LED is on the front panel"}))
			Expect(doc.Body).To(HaveLen(6))
		})
	})

	It("should honour escaped pipes inside cells", func() {
		doc, err := l.Load("t.adoc", []byte("|===\n| a \\| b | c\n|===\n"))
		Expect(err).ToNot(HaveOccurred())
		tbl := doc.Body[0].(*document.Table)
		Expect(tbl.Rows[0].Cells).To(HaveLen(2))
		Expect(tbl.Cell(0, 0).Text()).To(Equal("a | b"))
	})
})
