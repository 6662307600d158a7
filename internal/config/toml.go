// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Server   ServerConfig   `toml:"server"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Mode     *string `toml:"mode"`
	WordList *string `toml:"word-list"`
	Words    *int    `toml:"words"`
	Duration *int    `toml:"duration"`
}

// ServerConfig maps server-related settings.
type ServerConfig struct {
	Addr      *string `toml:"addr"`
	PublicDir *string `toml:"public-dir"`
	LogLevel  *string `toml:"log-level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
