package generator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/docx2testlink/internal/config"
	"github.com/frherrer/docx2testlink/internal/converter"
	"github.com/frherrer/docx2testlink/internal/domain"
	"github.com/frherrer/docx2testlink/internal/parser"
	"github.com/frherrer/docx2testlink/internal/scanner"
	tmpl "github.com/frherrer/docx2testlink/internal/template"
)

// Generator is the top-level orchestrator.
type Generator interface {
	Generate(cfg *config.Config, mode converter.Mode, files []string) ([]Result, error)
	ConvertFile(cfg *config.Config, mode converter.Mode, path string) (string, error)
}

// Result describes one converted source document.
type Result struct {
	Source  string
	Output  string
	Written bool // false in dry-run mode
}

// DefaultGenerator implements Generator by wiring all components together.
type DefaultGenerator struct {
	scanner  scanner.Scanner
	registry parser.LoaderRegistry
	engine   tmpl.TemplateEngine
	log      logrus.FieldLogger
}

// NewGenerator creates a new DefaultGenerator with all dependencies.
func NewGenerator(
	s scanner.Scanner,
	r parser.LoaderRegistry,
	e tmpl.TemplateEngine,
	log logrus.FieldLogger,
) *DefaultGenerator {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &DefaultGenerator{
		scanner:  s,
		registry: r,
		engine:   e,
		log:      log,
	}
}

// Generate runs the full pipeline for every source document: load, convert,
// render and write. Explicit files replace the configured input directories.
// Every document is converted before the output directory is touched, so a
// failing document or an output name collision leaves it as it was.
func (g *DefaultGenerator) Generate(cfg *config.Config, mode converter.Mode, files []string) ([]Result, error) {
	// Step 1: Collect source documents
	if len(files) == 0 {
		g.log.Debugf("Scanning directories: %s", strings.Join(cfg.Input.Directories, ", "))
		found, err := g.scanner.ScanAll(cfg.Input.Directories, cfg.Input.Include, cfg.Input.Exclude)
		if err != nil {
			return nil, err
		}
		files = found
	}

	if len(files) == 0 {
		g.log.Warn("No source documents found")
		return nil, nil
	}

	g.log.Infof("Found %d source document(s)", len(files))

	// Step 2: Map every source to its output file
	outputs := make(map[string]string, len(files))
	for _, f := range files {
		out := outputPath(f, cfg.Output)
		if prev, dup := outputs[out]; dup {
			return nil, domain.NewErrorWithSuggestion("write", f,
				fmt.Sprintf("output %s would also be written for %s", out, prev),
				"rename one of the documents or convert them in separate runs",
				nil)
		}
		outputs[out] = f
	}

	// Step 3: Convert everything in memory
	rendered := make([]string, len(files))
	for i, f := range files {
		out, err := g.ConvertFile(cfg, mode, f)
		if err != nil {
			return nil, err
		}
		rendered[i] = out
	}

	if cfg.DryRun {
		results := make([]Result, 0, len(files))
		for i, f := range files {
			out := outputPath(f, cfg.Output)
			g.log.Infof("[DRY-RUN] Would write: %s", out)
			g.log.Debugf("[DRY-RUN] Content:\n%s", rendered[i])
			results = append(results, Result{Source: f, Output: out})
		}
		return results, nil
	}

	// Step 4: Clean output directory if configured
	if cfg.Output.CleanBeforeGenerate {
		g.log.Debugf("Cleaning output directory: %s", cfg.Output.Directory)
		if err := cleanOutputDir(cfg.Output); err != nil {
			return nil, domain.NewErrorWithSuggestion("write", cfg.Output.Directory,
				"failed to clean output directory",
				"check file permissions or set output.clean_before_generate to false in docx2testlink.yaml",
				err)
		}
	}

	// Step 5: Ensure output directory exists
	if err := os.MkdirAll(cfg.Output.Directory, 0755); err != nil {
		return nil, domain.NewErrorWithSuggestion("write", cfg.Output.Directory,
			"failed to create output directory",
			"check that the parent directory exists and has write permissions",
			err)
	}

	// Step 6: Write one output file per source document
	var results []Result
	for i, f := range files {
		out := outputPath(f, cfg.Output)
		g.log.Infof("Writing: %s", out)
		if err := os.WriteFile(out, []byte(rendered[i]), 0644); err != nil {
			return results, domain.NewErrorWithSuggestion("write", out,
				"failed to write output file",
				"check disk space and write permissions for the output directory",
				err)
		}
		results = append(results, Result{Source: f, Output: out, Written: true})
	}

	g.log.Info("Conversion complete")
	return results, nil
}

// ConvertFile loads one source document and returns its TestLink XML.
func (g *DefaultGenerator) ConvertFile(cfg *config.Config, mode converter.Mode, path string) (string, error) {
	log := g.log.WithFields(logrus.Fields{"file": path, "mode": mode})
	log.Debug("Processing")

	content, err := os.ReadFile(path)
	if err != nil {
		return "", domain.NewErrorWithSuggestion("load", path,
			"failed to read file",
			"check that the file exists and has read permissions",
			err)
	}

	loader, err := g.registry.LoaderForPath(path)
	if err != nil {
		return "", domain.NewError("load", path, "unsupported document type", err)
	}

	doc, err := loader.Load(path, content)
	if err != nil {
		return "", err
	}

	conv, err := converter.New(mode, cfg, g.engine, log)
	if err != nil {
		return "", domain.NewError("convert", path, "cannot build converter", err)
	}

	rendered, err := conv.Convert(doc)
	if err != nil {
		var ce *domain.ConvertError
		if errors.As(err, &ce) {
			return "", err
		}
		return "", domain.NewError("convert", path, "conversion failed", err)
	}
	return rendered, nil
}

func outputPath(source string, output config.OutputConfig) string {
	return filepath.Join(output.Directory, buildOutputFilename(source, output))
}

// buildOutputFilename constructs the output filename from the source base
// name without its extension.
func buildOutputFilename(source string, output config.OutputConfig) string {
	base := filepath.Base(source)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s%s%s", output.FilePrefix, name, output.FileSuffix)
}

// cleanOutputDir removes previously generated files from the output directory.
func cleanOutputDir(output config.OutputConfig) error {
	info, err := os.Stat(output.Directory)
	if os.IsNotExist(err) {
		return nil // Nothing to clean
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", output.Directory)
	}

	entries, err := os.ReadDir(output.Directory)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, output.FilePrefix) || !strings.HasSuffix(name, output.FileSuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(output.Directory, name)); err != nil {
			return err
		}
	}

	return nil
}
