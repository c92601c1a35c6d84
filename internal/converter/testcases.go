package converter

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/docx2testlink/internal/config"
	"github.com/frherrer/docx2testlink/internal/document"
	"github.com/frherrer/docx2testlink/internal/domain"
	tmpl "github.com/frherrer/docx2testlink/internal/template"
)

// DefaultClosingStepAction is the action of the step appended to every case.
const DefaultClosingStepAction = "list the participants"

// TestCaseOptions configures a TestProcedureExtractor.
type TestCaseOptions struct {
	ClosingStepAction string
}

// TestCaseOptionsFromConfig builds TestCaseOptions from the testcases section
// of the configuration.
func TestCaseOptionsFromConfig(cfg config.TestCasesConfig) TestCaseOptions {
	return TestCaseOptions{ClosingStepAction: cfg.ClosingStepAction}
}

// TestProcedureExtractor recognizes test suites and their test case tables.
type TestProcedureExtractor struct {
	opts   TestCaseOptions
	engine tmpl.TemplateEngine
	log    logrus.FieldLogger
}

// NewTestProcedureExtractor creates a TestProcedureExtractor. A nil log
// discards all output.
func NewTestProcedureExtractor(opts TestCaseOptions, engine tmpl.TemplateEngine, log logrus.FieldLogger) *TestProcedureExtractor {
	if opts.ClosingStepAction == "" {
		opts.ClosingStepAction = DefaultClosingStepAction
	}
	return &TestProcedureExtractor{opts: opts, engine: engine, log: orDiscard(log)}
}

// Convert extracts the test suites of doc and renders them as a <testsuite>
// document.
func (x *TestProcedureExtractor) Convert(doc *document.Document) (string, error) {
	suites, err := x.Extract(doc)
	if err != nil {
		return "", err
	}
	return x.engine.RenderTestSuites(suites)
}

type suiteBuilder struct {
	name           string
	details        string
	acceptsDetails bool
}

// Extract walks doc once and returns its test suites in document order.
func (x *TestProcedureExtractor) Extract(doc *document.Document) ([]domain.TestSuite, error) {
	s, err := document.NewScanner(doc)
	if err != nil {
		return nil, err
	}

	opts := ClassifyOptions{Mode: ModeTestCases}
	var suites []domain.TestSuite
	var open *suiteBuilder
	// cases found before the first heading go to the first suite
	var cases []domain.TestCase

	for {
		b, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch Classify(b, opts) {
		case SuiteHeading:
			if open != nil {
				suites = append(suites, finishSuite(open, len(suites)+1, cases))
				cases = nil
			}
			p := b.(*document.Paragraph)
			open = &suiteBuilder{name: p.Text, acceptsDetails: true}
			x.log.WithField("suite", p.Text).Debug("Test suite heading")

		case Paragraph:
			p := b.(*document.Paragraph)
			if open != nil && open.acceptsDetails && p.Text != "" {
				open.details += "<p>" + p.Text + "</p>\n"
			}

		case CaseTable:
			if open != nil {
				open.acceptsDetails = false
			}
			tc, err := x.readCase(b.(*document.Table), len(cases)+1)
			if err != nil {
				return nil, err
			}
			cases = append(cases, tc)
			x.log.WithFields(logrus.Fields{
				"case":  tc.Name,
				"steps": len(tc.Steps),
			}).Debug("Test case extracted")
		}
	}

	if open != nil {
		suites = append(suites, finishSuite(open, len(suites)+1, cases))
	} else if len(cases) > 0 {
		x.log.WithField("cases", len(cases)).Warn("Test cases found but no test suite heading, nothing to emit")
	}
	return suites, nil
}

func finishSuite(b *suiteBuilder, order int, cases []domain.TestCase) domain.TestSuite {
	return domain.TestSuite{
		Name:    b.name,
		Details: b.details,
		Order:   order,
		Cases:   cases,
	}
}

// readCase reads a test case table row by row.
func (x *TestProcedureExtractor) readCase(t *document.Table, order int) (domain.TestCase, error) {
	total := len(t.Rows)
	if total < minCaseRows {
		return domain.TestCase{}, fmt.Errorf("%w: test case table has %d rows, need at least %d",
			domain.ErrMalformedTableShape, total, minCaseRows)
	}

	tc := domain.TestCase{Order: order}
	var steps []domain.Step

rows:
	for i, row := range t.Rows {
		switch caseRowRole(i+1, total) {
		case roleHeader:
			continue
		case roleStop:
			break rows
		case roleName:
			tc.Name = cellText(firstCell(row))
		case rolePreconditions:
			tc.Preconditions = paragraphLines(firstCell(row))
		case roleStep:
			if len(row.Cells) == 0 {
				continue
			}
			step := domain.Step{Number: len(steps) + 1}
			if len(row.Cells) > 1 {
				step.Actions = paragraphLines(row.Cells[1])
			}
			if len(row.Cells) > 2 {
				step.ExpectedResults = paragraphLines(row.Cells[2])
			}
			steps = append(steps, step)
		}
	}

	tc.Steps = append(steps, domain.Step{
		Number:  len(steps) + 1,
		Actions: x.opts.ClosingStepAction,
	})
	return tc, nil
}
