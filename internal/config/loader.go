package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/gitstrap/internal/errors"
)

// Load reads config from the specified path. An empty path loads the first
// config file found by Find, or pure defaults when none exists.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := Find("")
		if err != nil {
			return nil, err
		}
		if found == "" {
			return Default(), nil
		}
		path = found
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found: "+path,
				"Check the path passed to --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file: "+path,
			"Check the file is valid YAML")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to parse config file: "+path,
			"Check the field names against the documented config format")
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Find locates the config file using the search order:
//  1. Explicit path (from --config flag)
//  2. .gitstrap.yaml in the current directory
//  3. ~/.config/gitstrap/config.yaml
//
// Returns the path to the config file, or empty string if none exists.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err == nil {
		local := filepath.Join(cwd, ConfigFileName)
		if _, err := os.Stat(local); err == nil {
			return local, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}

	global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}

	return "", nil
}

// GlobalPath returns the global config file location under $HOME.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine home directory",
			"Set the HOME environment variable")
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile), nil
}
