package template

import (
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/frherrer/docx2testlink/internal/domain"
)

const (
	RequirementsTemplate = "requirements.xml"
	TestSuitesTemplate   = "testsuites.xml"
)

//go:embed templates/*.tmpl
var embedded embed.FS

// TemplateEngine renders extracted sections into TestLink XML.
type TemplateEngine interface {
	RenderRequirements(specs []domain.RequirementSpec) (string, error)
	RenderTestSuites(suites []domain.TestSuite) (string, error)
	ListTemplates() []string
}

type requirementsData struct {
	Specs []domain.RequirementSpec
}

type testSuitesData struct {
	Suites []domain.TestSuite
}

// DefaultEngine implements TemplateEngine.
type DefaultEngine struct {
	templates   map[string]*template.Template
	templateDir string
}

// NewEngine creates a template engine from the embedded templates. Templates
// found in templateDir replace the embedded ones of the same name; an empty
// or missing directory leaves the embedded set untouched.
func NewEngine(templateDir string) (*DefaultEngine, error) {
	engine := &DefaultEngine{
		templates:   make(map[string]*template.Template),
		templateDir: templateDir,
	}

	if err := engine.loadEmbedded(); err != nil {
		return nil, err
	}
	if err := engine.loadDirectory(); err != nil {
		return nil, err
	}

	return engine, nil
}

func (e *DefaultEngine) loadEmbedded() error {
	entries, err := fs.ReadDir(embedded, "templates")
	if err != nil {
		return domain.NewError("template", "", "failed to read embedded templates", err)
	}
	for _, entry := range entries {
		content, err := fs.ReadFile(embedded, "templates/"+entry.Name())
		if err != nil {
			return domain.NewError("template", entry.Name(), "failed to read embedded template", err)
		}
		if err := e.add(entry.Name(), content); err != nil {
			return err
		}
	}
	return nil
}

// loadDirectory reads all .tmpl files from the template directory.
func (e *DefaultEngine) loadDirectory() error {
	if e.templateDir == "" {
		return nil
	}
	entries, err := os.ReadDir(e.templateDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return domain.NewError("template", e.templateDir, "failed to read template directory", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tmpl") {
			continue
		}
		path := filepath.Join(e.templateDir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return domain.NewError("template", path, "failed to read template file", err)
		}
		if err := e.add(entry.Name(), content); err != nil {
			return err
		}
	}
	return nil
}

func (e *DefaultEngine) add(fileName string, content []byte) error {
	name := strings.TrimSuffix(fileName, ".tmpl")
	tmpl, err := template.New(name).Funcs(CustomFuncMap()).Parse(string(content))
	if err != nil {
		return domain.NewError("template", fileName, "failed to parse template", err)
	}
	e.templates[name] = tmpl
	return nil
}

// RenderRequirements renders requirement specifications as a
// <requirement-specification> document.
func (e *DefaultEngine) RenderRequirements(specs []domain.RequirementSpec) (string, error) {
	return e.render(RequirementsTemplate, requirementsData{Specs: specs})
}

// RenderTestSuites renders test suites as a <testsuite> document.
func (e *DefaultEngine) RenderTestSuites(suites []domain.TestSuite) (string, error) {
	return e.render(TestSuitesTemplate, testSuitesData{Suites: suites})
}

func (e *DefaultEngine) render(name string, data any) (string, error) {
	tmpl, ok := e.templates[name]
	if !ok {
		return "", domain.NewError("template", "",
			fmt.Sprintf("template %q not found (available: %s)", name, strings.Join(e.ListTemplates(), ", ")), nil)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", domain.NewError("template", name, "failed to execute template", err)
	}

	// Reject output a TestLink import would choke on
	if err := checkWellFormed(buf.Bytes()); err != nil {
		return buf.String(), domain.NewError("template", name, "rendered XML is not well formed", err)
	}

	return buf.String(), nil
}

// checkWellFormed decodes every token of doc.
func checkWellFormed(doc []byte) error {
	d := xml.NewDecoder(bytes.NewReader(doc))
	for {
		_, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// ListTemplates returns the names of all loaded templates.
func (e *DefaultEngine) ListTemplates() []string {
	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
