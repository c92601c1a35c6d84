package parser_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/docx2testlink/internal/parser"
)

var _ = Describe("DefaultRegistry", func() {
	var registry *parser.DefaultRegistry

	BeforeEach(func() {
		registry = parser.NewDefaultRegistry()
	})

	It("should find loaders by extension with or without the dot", func() {
		l, err := registry.LoaderFor(".docx")
		Expect(err).ToNot(HaveOccurred())
		Expect(l).To(BeAssignableToTypeOf(&parser.DocxLoader{}))

		l, err = registry.LoaderFor("md")
		Expect(err).ToNot(HaveOccurred())
		Expect(l).To(BeAssignableToTypeOf(&parser.MarkdownLoader{}))
	})

	It("should match extensions case-insensitively", func() {
		l, err := registry.LoaderForPath("docs/PROCEDURE.DOCX")
		Expect(err).ToNot(HaveOccurred())
		Expect(l).To(BeAssignableToTypeOf(&parser.DocxLoader{}))
	})

	It("should resolve AsciiDoc files", func() {
		l, err := registry.LoaderForPath("docs/procedure.adoc")
		Expect(err).ToNot(HaveOccurred())
		Expect(l).To(BeAssignableToTypeOf(&parser.AsciiDocLoader{}))
	})

	It("should list supported extensions for an unknown one", func() {
		_, err := registry.LoaderFor(".doc")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring(".docx"))
	})

	It("should let a later registration win", func() {
		r := parser.NewRegistry()
		r.Register(parser.NewDocxLoader())
		md := parser.NewMarkdownLoader()
		r.Register(md)
		l, err := r.LoaderFor(".md")
		Expect(err).ToNot(HaveOccurred())
		Expect(l).To(BeIdenticalTo(md))
	})
})
