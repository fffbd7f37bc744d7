// Package config provides configuration loading and defaults for repoaudit.
package config

// DefaultConfigDir is the default location for repoaudit configuration.
const DefaultConfigDir = "~/.config/repoaudit"

// DefaultDBName is the filename for the SQLite snapshot database.
const DefaultDBName = "repoaudit.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultDeep holds the default deep-scan settings.
var DefaultDeep = Deep{
	MaxDepth:    0,
	TopFiles:    10,
	Concurrency: 4,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}

// DefaultHistoryLimit is the number of snapshots shown by track --history.
const DefaultHistoryLimit = 10
