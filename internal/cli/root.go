package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/frherrer/docx2testlink/internal/config"
)

const defaultConfigFile = "docx2testlink.yaml"

var (
	cfgFile string
	verbose bool
	dryRun  bool
	log     = logrus.New()
)

// rootCmd is the base command for docx2testlink.
var rootCmd = &cobra.Command{
	Use:   "docx2testlink",
	Short: "Convert Word requirement and test procedure documents to TestLink XML",
	Long: `docx2testlink reads requirement specifications and test procedures written
in Word (.docx), Markdown or AsciiDoc and writes TestLink import XML.

Input directories, the requirement id prefix and the output layout come from
a YAML configuration file (docx2testlink.yaml).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(cmd.ErrOrStderr())
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "load and convert but don't write files")

	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file. A missing default config file is not an
// error: the built-in defaults apply.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) && !cmd.Flags().Changed("config") {
		log.Debugf("No %s found, using defaults", cfgFile)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
	}

	if dryRun {
		cfg.DryRun = true
	}
	if !verbose {
		if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
			log.SetLevel(level)
		}
	}
	return cfg, nil
}
