package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/frherrer/docx2testlink/internal/domain"
)

// Config is the top-level configuration struct.
type Config struct {
	Input        InputConfig        `yaml:"input"`
	Output       OutputConfig       `yaml:"output"`
	Requirements RequirementsConfig `yaml:"requirements"`
	TestCases    TestCasesConfig    `yaml:"testcases"`
	Templates    TemplateConfig     `yaml:"templates"`
	Logging      LoggingConfig      `yaml:"logging"`
	DryRun       bool               `yaml:"dry_run"`
}

type InputConfig struct {
	Directories []string `yaml:"directories"`
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	Recursive   *bool    `yaml:"recursive"` // pointer to distinguish unset from false
}

type OutputConfig struct {
	Directory           string `yaml:"directory"`
	FilePrefix          string `yaml:"file_prefix"`
	FileSuffix          string `yaml:"file_suffix"`
	CleanBeforeGenerate bool   `yaml:"clean_before_generate"`
}

// RequirementsConfig drives the requirement extractor.
type RequirementsConfig struct {
	ReqID         string `yaml:"reqid"`   // prefix of requirement reference ids
	Version       string `yaml:"version"` // document version, first part of the spec doc id
	Level         string `yaml:"level"`   // Section, SRS or USR
	TypeSpec      string `yaml:"typespec"`
	DefaultStatus string `yaml:"default_status"`
}

// TestCasesConfig drives the test-procedure extractor.
type TestCasesConfig struct {
	ClosingStepAction string `yaml:"closing_step_action"`
}

type TemplateConfig struct {
	Directory string `yaml:"directory"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML configuration file and returns a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError("config", path, "failed to read config file", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, domain.NewError("config", path, "failed to parse config file", err)
	}
	cfg.Requirements.normalize()

	return cfg, nil
}

// normalize folds the typespec alias into level.
func (r *RequirementsConfig) normalize() {
	if r.TypeSpec != "" {
		r.Level = r.TypeSpec
		r.TypeSpec = ""
	}
}

// SpecType maps the specification level to the TestLink req_spec type.
func (r RequirementsConfig) SpecType() int {
	switch r.Level {
	case "Section":
		return 1
	case "USR":
		return 2
	default:
		return 3
	}
}
