package cli

import (
	"github.com/spf13/cobra"

	"github.com/frherrer/docx2testlink/internal/converter"
)

var caseFlags struct {
	output      string
	closingStep string
}

var testcasesCmd = &cobra.Command{
	Use:   "testcases [files...]",
	Short: "Convert test procedures to TestLink test suite XML",
	Long: `Finds "test suite" level 2 headings and the test case tables that follow
them, and writes a <testsuite> document per source file.

Without arguments the configured input directories are scanned.`,
	Example: `  docx2testlink testcases docs/ATP.docx -o build/ATP.xml
  docx2testlink testcases --closing-step "Lister les participants au test"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("closing-step") {
			cfg.TestCases.ClosingStepAction = caseFlags.closingStep
		}

		return runConvert(cmd, cfg, converter.ModeTestCases, args, caseFlags.output)
	},
}

func init() {
	f := testcasesCmd.Flags()
	f.StringVarP(&caseFlags.output, "output", "o", "", `write the XML of a single file to this path ("-" for stdout)`)
	f.StringVar(&caseFlags.closingStep, "closing-step", "", "action of the step appended to every test case")
	rootCmd.AddCommand(testcasesCmd)
}
