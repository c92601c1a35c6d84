package converter

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/docx2testlink/internal/config"
	"github.com/frherrer/docx2testlink/internal/document"
	tmpl "github.com/frherrer/docx2testlink/internal/template"
)

// Mode selects which kind of document a conversion expects.
type Mode string

const (
	ModeRequirements Mode = "requirements"
	ModeTestCases    Mode = "testcases"
)

// ParseMode returns the Mode named by s.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRequirements, ModeTestCases:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown conversion mode %q (expected %q or %q)", s, ModeRequirements, ModeTestCases)
}

// Converter turns a parsed document into a TestLink import XML document.
type Converter interface {
	Convert(doc *document.Document) (string, error)
}

// New returns the converter for mode, configured from cfg.
func New(mode Mode, cfg *config.Config, engine tmpl.TemplateEngine, log logrus.FieldLogger) (Converter, error) {
	switch mode {
	case ModeRequirements:
		return NewRequirementExtractor(RequirementOptionsFromConfig(cfg.Requirements), engine, log), nil
	case ModeTestCases:
		return NewTestProcedureExtractor(TestCaseOptionsFromConfig(cfg.TestCases), engine, log), nil
	}
	return nil, fmt.Errorf("unknown conversion mode %q", mode)
}

func orDiscard(log logrus.FieldLogger) logrus.FieldLogger {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
