package template_test

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/docx2testlink/internal/domain"
	tmpl "github.com/frherrer/docx2testlink/internal/template"
)

var _ = Describe("TemplateEngine", func() {
	var engine *tmpl.DefaultEngine

	BeforeEach(func() {
		var err error
		engine, err = tmpl.NewEngine("")
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("ListTemplates", func() {
		It("should list the embedded templates", func() {
			Expect(engine.ListTemplates()).To(Equal([]string{"requirements.xml", "testsuites.xml"}))
		})
	})

	Describe("RenderRequirements", func() {
		It("should render only the root wrapper for no specifications", func() {
			out, err := engine.RenderRequirements(nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
				"<requirement-specification>\n" +
				"</requirement-specification>\n"))
		})

		It("should nest requirements inside their specification", func() {
			specs := []domain.RequirementSpec{{
				Title: "System Requirements",
				DocID: "V1.0-SRS1",
				Type:  3,
				Order: 1,
				Scope: "Scope & purpose",
				Requirements: []domain.Requirement{{
					DocID:       "XIFU-DRE-DMX-FW-R-001",
					Title:       "Heater",
					Description: "The heater shall \"regulate\"",
					Status:      "V",
					Type:        2,
					Order:       1,
				}},
			}}

			out, err := engine.RenderRequirements(specs)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring(`<req_spec title="System Requirements" doc_id="V1.0-SRS1">`))
			Expect(out).To(ContainSubstring("<total_req>1</total_req>"))
			Expect(out).To(ContainSubstring("<scope>Scope &amp; purpose</scope>"))
			Expect(out).To(ContainSubstring("<docid>XIFU-DRE-DMX-FW-R-001</docid>"))
			Expect(out).To(ContainSubstring("<description>The heater shall &quot;regulate&quot;</description>"))
			Expect(strings.Count(out, "</req_spec>")).To(Equal(1))
			Expect(strings.Index(out, "</requirement>")).To(BeNumerically("<", strings.Index(out, "</req_spec>")))
		})
	})

	Describe("RenderTestSuites", func() {
		It("should render only the root wrapper for no suites", func() {
			out, err := engine.RenderTestSuites(nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
				"<testsuite id=\"\" name=\"\">\n" +
				"</testsuite>\n"))
		})

		It("should wrap text in CDATA sections", func() {
			suites := []domain.TestSuite{{
				Name:    "Test Suite <power>",
				Details: "<p>Power tests</p>\n",
				Order:   1,
				Cases: []domain.TestCase{{
					Name:          "Test Case 1",
					Order:         1,
					Preconditions: "<p>Board powered</p>\n",
					Steps: []domain.Step{
						{Number: 1, Actions: "<p>Switch on</p>\n", ExpectedResults: "<p>LED ]]> on</p>\n"},
						{Number: 2, Actions: "list the participants"},
					},
				}},
			}}

			out, err := engine.RenderTestSuites(suites)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring(`<testsuite name="Test Suite &lt;power&gt;">`))
			Expect(out).To(ContainSubstring("<details><![CDATA[<p>Power tests</p>\n]]></details>"))
			Expect(out).To(ContainSubstring("<step_number><![CDATA[2]]></step_number>"))
			Expect(strings.Count(out, "<step>")).To(Equal(2))

			var parsed struct {
				Suites []struct {
					Name  string `xml:"name,attr"`
					Cases []struct {
						Steps []struct {
							Expected string `xml:"expectedresults"`
						} `xml:"steps>step"`
					} `xml:"testcase"`
				} `xml:"testsuite"`
			}
			Expect(xml.Unmarshal([]byte(out), &parsed)).To(Succeed())
			Expect(parsed.Suites).To(HaveLen(1))
			Expect(parsed.Suites[0].Name).To(Equal("Test Suite <power>"))
			Expect(parsed.Suites[0].Cases[0].Steps[0].Expected).To(Equal("<p>LED ]]> on</p>\n"))
		})
	})

	Describe("Template directory override", func() {
		It("should fall back to embedded templates for a nonexistent directory", func() {
			engine, err := tmpl.NewEngine("nonexistent_dir")
			Expect(err).ToNot(HaveOccurred())
			Expect(engine.ListTemplates()).To(ContainElement("requirements.xml"))
		})

		It("should prefer a template from the directory", func() {
			dir := GinkgoT().TempDir()
			custom := `<requirement-specification count="{{len .Specs}}"/>`
			Expect(os.WriteFile(filepath.Join(dir, "requirements.xml.tmpl"), []byte(custom), 0644)).To(Succeed())

			engine, err := tmpl.NewEngine(dir)
			Expect(err).ToNot(HaveOccurred())
			out, err := engine.RenderRequirements(nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal(`<requirement-specification count="0"/>`))
		})

		It("should reject a template that renders broken XML", func() {
			dir := GinkgoT().TempDir()
			broken := `<testsuite><testcase></testsuite>`
			Expect(os.WriteFile(filepath.Join(dir, "testsuites.xml.tmpl"), []byte(broken), 0644)).To(Succeed())

			engine, err := tmpl.NewEngine(dir)
			Expect(err).ToNot(HaveOccurred())
			_, err = engine.RenderTestSuites(nil)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("not well formed"))
		})

		It("should fail on a template that does not parse", func() {
			dir := GinkgoT().TempDir()
			Expect(os.WriteFile(filepath.Join(dir, "testsuites.xml.tmpl"), []byte("{{range}"), 0644)).To(Succeed())

			_, err := tmpl.NewEngine(dir)
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("Functions", func() {
	It("should escape XML special characters", func() {
		Expect(tmpl.EscapeXML(`a<b>&"c'`)).To(Equal("a&lt;b&gt;&amp;&quot;c&apos;"))
	})

	It("should split CDATA terminators", func() {
		Expect(tmpl.CDATA("x]]>y")).To(Equal("<![CDATA[x]]]]><![CDATA[>y]]>"))
	})

	It("should drop characters XML cannot carry", func() {
		Expect(tmpl.EscapeXML("A\x0cB\x00<")).To(Equal("AB&lt;"))
		Expect(tmpl.CDATA("line\x0b\tone\nline two")).To(Equal("<![CDATA[line\tone\nline two]]>"))
		Expect(tmpl.StripInvalidXML("Température ≤ 40")).To(Equal("Température ≤ 40"))
	})

	It("should only expose the functions the templates use", func() {
		Expect(tmpl.CustomFuncMap()).To(HaveLen(2))
		Expect(tmpl.CustomFuncMap()).To(HaveKey("xml"))
		Expect(tmpl.CustomFuncMap()).To(HaveKey("cdata"))
	})
})
