package config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	recursive := true
	return &Config{
		Input: InputConfig{
			Directories: []string{"docs"},
			Include:     []string{"*.docx"},
			Exclude:     []string{"~$*"},
			Recursive:   &recursive,
		},
		Output: OutputConfig{
			Directory:  "out",
			FileSuffix: ".xml",
		},
		Requirements: RequirementsConfig{
			ReqID:         "XIFU-DRE-DMX-FW-R",
			Version:       "V1.0",
			Level:         "SRS",
			DefaultStatus: "V",
		},
		TestCases: TestCasesConfig{
			ClosingStepAction: "list the participants",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		DryRun: false,
	}
}
