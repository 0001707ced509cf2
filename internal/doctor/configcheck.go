package doctor

import (
	"fmt"

	"github.com/rileyhilliard/gitstrap/internal/config"
)

// ConfigCheck verifies the config file, when present, parses cleanly.
type ConfigCheck struct {
	// Path is the explicit --config value; empty means search the usual
	// locations.
	Path string
}

func (c *ConfigCheck) Name() string     { return "config_file" }
func (c *ConfigCheck) Category() string { return "CONFIG" }

func (c *ConfigCheck) Run() CheckResult {
	path, err := config.Find(c.Path)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Config file not found: " + c.Path,
			Suggestion: "Check the --config path, or drop the flag to use defaults",
		}
	}

	if path == "" {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No config file; built-in defaults apply",
		}
	}

	if _, err := config.Load(path); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Config file %s does not parse", path),
			Suggestion: err.Error(),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Config file OK: " + path,
	}
}
