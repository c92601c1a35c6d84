package cli

import (
	"github.com/spf13/cobra"

	"github.com/frherrer/docx2testlink/internal/converter"
)

var reqFlags struct {
	output  string
	reqID   string
	version string
	level   string
}

var requirementsCmd = &cobra.Command{
	Use:   "requirements [files...]",
	Short: "Convert requirement specifications to TestLink requirement XML",
	Long: `Finds "requirements" level 2 headings and the requirement tables that follow
them, and writes a <requirement-specification> document per source file.

Without arguments the configured input directories are scanned.`,
	Example: `  docx2testlink requirements docs/SRS.docx -o - --reqid XIFU-DRE-DMX-FW-R
  docx2testlink requirements --level USR --version V1.2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("reqid") {
			cfg.Requirements.ReqID = reqFlags.reqID
		}
		if cmd.Flags().Changed("version") {
			cfg.Requirements.Version = reqFlags.version
		}
		if cmd.Flags().Changed("level") {
			cfg.Requirements.Level = reqFlags.level
		}

		return runConvert(cmd, cfg, converter.ModeRequirements, args, reqFlags.output)
	},
}

func init() {
	f := requirementsCmd.Flags()
	f.StringVarP(&reqFlags.output, "output", "o", "", `write the XML of a single file to this path ("-" for stdout)`)
	f.StringVar(&reqFlags.reqID, "reqid", "", "requirement id prefix (overrides requirements.reqid)")
	f.StringVar(&reqFlags.version, "version", "", "document version used in spec doc ids (overrides requirements.version)")
	f.StringVar(&reqFlags.level, "level", "", "specification level: Section, SRS or USR (overrides requirements.level)")
	rootCmd.AddCommand(requirementsCmd)
}
