package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/frherrer/docx2testlink/internal/domain"
)

var validLevels = []string{"Section", "SRS", "USR"}

var validStatuses = "DRWFIVNO"

// Validate checks the Config for required fields and valid values.
func Validate(cfg *Config) error {
	var errs []string

	// Input validation
	if len(cfg.Input.Directories) == 0 {
		errs = append(errs, "input.directories must not be empty")
	}
	if len(cfg.Input.Include) == 0 {
		errs = append(errs, "input.include must not be empty")
	}
	for _, p := range append(append([]string{}, cfg.Input.Include...), cfg.Input.Exclude...) {
		if _, err := filepath.Match(p, ""); err != nil {
			errs = append(errs, fmt.Sprintf("input pattern %q is not a valid glob: %v", p, err))
		}
	}

	// Output validation
	if cfg.Output.Directory == "" {
		errs = append(errs, "output.directory must not be empty")
	}
	if !strings.HasSuffix(cfg.Output.FileSuffix, ".xml") {
		errs = append(errs, "output.file_suffix must end with .xml")
	}

	// Requirements validation
	if strings.TrimSpace(cfg.Requirements.ReqID) == "" {
		errs = append(errs, "requirements.reqid must not be empty")
	}
	if cfg.Requirements.Version == "" {
		errs = append(errs, "requirements.version must not be empty")
	}
	if !contains(validLevels, cfg.Requirements.Level) {
		errs = append(errs, fmt.Sprintf("requirements.level must be one of: %s (got %q)",
			strings.Join(validLevels, ", "), cfg.Requirements.Level))
	}
	if s := cfg.Requirements.DefaultStatus; len(s) != 1 || !strings.Contains(validStatuses, s) {
		errs = append(errs, fmt.Sprintf("requirements.default_status must be one letter of %s (got %q)", validStatuses, s))
	}

	if strings.TrimSpace(cfg.TestCases.ClosingStepAction) == "" {
		errs = append(errs, "testcases.closing_step_action must not be empty")
	}

	// Validate logging level
	if cfg.Logging.Level != "" {
		valid := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !valid[cfg.Logging.Level] {
			errs = append(errs, fmt.Sprintf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
		}
	}

	if len(errs) > 0 {
		return domain.NewError("config", "", fmt.Sprintf("validation failed: %s", strings.Join(errs, "; ")), nil)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
