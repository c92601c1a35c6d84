package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frherrer/docx2testlink/internal/config"
	"github.com/frherrer/docx2testlink/internal/converter"
	"github.com/frherrer/docx2testlink/internal/generator"
	"github.com/frherrer/docx2testlink/internal/parser"
	"github.com/frherrer/docx2testlink/internal/scanner"
	tmpl "github.com/frherrer/docx2testlink/internal/template"
	"github.com/frherrer/docx2testlink/internal/ui"
)

// stdoutPath selects standard output for --output.
const stdoutPath = "-"

// newGenerator wires all components for cfg.
func newGenerator(cfg *config.Config) (*generator.DefaultGenerator, error) {
	recursive := true
	if cfg.Input.Recursive != nil {
		recursive = *cfg.Input.Recursive
	}

	engine, err := tmpl.NewEngine(cfg.Templates.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to create template engine: %w", err)
	}

	return generator.NewGenerator(scanner.NewScanner(recursive), parser.NewDefaultRegistry(), engine, log), nil
}

// runConvert converts files (or the configured directories when files is
// empty). With output set, exactly one file is converted to that path.
func runConvert(cmd *cobra.Command, cfg *config.Config, mode converter.Mode, files []string, output string) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}

	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	if output != "" {
		if len(files) != 1 {
			return fmt.Errorf("--output needs exactly one input file, got %d", len(files))
		}
		return convertOne(cmd, gen, cfg, mode, files[0], output)
	}

	log.WithField("mode", mode).Info("Configuration loaded successfully")
	results, err := gen.Generate(cfg, mode, files)
	for _, r := range results {
		if r.Written {
			ui.OkLine(cmd.OutOrStdout(), r.Source, r.Output)
		} else {
			ui.DryLine(cmd.OutOrStdout(), r.Source, r.Output)
		}
	}
	if err != nil {
		return err
	}
	ui.SummaryLine(cmd.OutOrStdout(), len(results), cfg.DryRun)
	return nil
}

func convertOne(cmd *cobra.Command, gen *generator.DefaultGenerator, cfg *config.Config, mode converter.Mode, file, output string) error {
	rendered, err := gen.ConvertFile(cfg, mode, file)
	if err != nil {
		ui.FailLine(cmd.ErrOrStderr(), file, err)
		return err
	}

	switch {
	case output == stdoutPath:
		_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
		return err
	case cfg.DryRun:
		ui.DryLine(cmd.ErrOrStderr(), file, output)
		return nil
	}

	if err := os.WriteFile(output, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	ui.OkLine(cmd.ErrOrStderr(), file, output)
	return nil
}
