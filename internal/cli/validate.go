package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frherrer/docx2testlink/internal/config"
	tmpl "github.com/frherrer/docx2testlink/internal/template"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the docx2testlink.yaml configuration file",
	Long: `Loads the configuration file, checks its values and compiles the XML
templates it selects, then prints the settings each conversion would use.
Input directories that do not exist are reported as warnings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		engine, err := tmpl.NewEngine(cfg.Templates.Directory)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		for _, dir := range cfg.Input.Directories {
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				log.Warnf("Input directory %s does not exist", dir)
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration file %q is valid.\n", cfgFile)
		printSettings(out, cfg, engine.ListTemplates())
		return nil
	},
}

// printSettings shows the values the requirements and testcases commands
// derive from cfg.
func printSettings(w io.Writer, cfg *config.Config, templates []string) {
	req := cfg.Requirements
	fmt.Fprintf(w, "  requirements: reqid %s, first doc id %s-%s1, type %d, default status %s\n",
		req.ReqID, req.Version, req.Level, req.SpecType(), req.DefaultStatus)
	fmt.Fprintf(w, "  testcases:    closing step %q\n", cfg.TestCases.ClosingStepAction)
	fmt.Fprintf(w, "  input:        %s (%s)\n",
		strings.Join(cfg.Input.Directories, ", "), strings.Join(cfg.Input.Include, ", "))
	fmt.Fprintf(w, "  output:       %s/%s<name>%s\n",
		cfg.Output.Directory, cfg.Output.FilePrefix, cfg.Output.FileSuffix)
	fmt.Fprintf(w, "  templates:    %s\n", strings.Join(templates, ", "))
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
