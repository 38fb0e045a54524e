package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load merges configuration from the global and working-directory
// sources over the defaults. Missing files are fine; a present but
// unreadable file is skipped rather than fatal.
func Load() (*Config, error) {
	cfg := Default()

	if home, err := os.UserHomeDir(); err == nil {
		loadFile(filepath.Join(home, ".taskforge", "config.yaml"), cfg)
	}

	if cwd, err := os.Getwd(); err == nil {
		loadFile(filepath.Join(cwd, ".taskforge.yaml"), cfg)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// GlobalConfigPath returns the path of the per-user config file.
func GlobalConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".taskforge", "config.yaml")
}

// ProjectConfigPath returns the path of the working-directory config file.
func ProjectConfigPath() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, ".taskforge.yaml")
}
