package config

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
)

type LogConfig struct {
	File       string `json:"file"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

type Config struct {
	Mode string    `json:"mode"`
	Addr string    `json:"addr"`
	Log  LogConfig `json:"log"`
}

func Default() Config {
	return Config{
		Mode: "development",
		Addr: ":8080",
		Log: LogConfig{
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":     c.Mode,
		"addr":     c.Addr,
		"log_file": c.Log.File,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

// ReadConfig loads a JSON config file over *config and then applies
// MINEFIELD_MODE / MINEFIELD_ADDR environment overrides (set directly or
// via a .env file). A missing file is fine: defaults plus environment.
func ReadConfig(path string, config *Config) error {
	if b, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(b, config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}
	if mode, ok := os.LookupEnv("MINEFIELD_MODE"); ok {
		config.Mode = mode
	}
	if addr, ok := os.LookupEnv("MINEFIELD_ADDR"); ok {
		config.Addr = addr
	}
	return nil
}
