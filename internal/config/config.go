package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level repoaudit configuration. It covers presentation
// and the deep/track commands only; the quick scan's depth and file caps
// are fixed and deliberately absent from here.
type Config struct {
	Deep         Deep   `mapstructure:"deep"`
	Output       Output `mapstructure:"output"`
	HistoryLimit int    `mapstructure:"history_limit"`
}

// Deep defines settings for the uncapped deep scan.
type Deep struct {
	MaxDepth    int      `mapstructure:"max_depth"`
	ExcludeDirs []string `mapstructure:"exclude_dirs"`
	TopFiles    int      `mapstructure:"top_files"`
	Concurrency int      `mapstructure:"concurrency"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. A missing config file is
// not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("deep.max_depth", DefaultDeep.MaxDepth)
	v.SetDefault("deep.exclude_dirs", DefaultDeep.ExcludeDirs)
	v.SetDefault("deep.top_files", DefaultDeep.TopFiles)
	v.SetDefault("deep.concurrency", DefaultDeep.Concurrency)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
	v.SetDefault("history_limit", DefaultHistoryLimit)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DBPath returns the full path to the SQLite snapshot database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
