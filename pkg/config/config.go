package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Storage struct {
		DBPath string `yaml:"db_path"`
	} `yaml:"storage"`
	AI struct {
		Model  string `yaml:"model"`
		APIKey string `yaml:"api_key"`
	} `yaml:"ai"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
	Limits struct {
		LoginRPS   float64 `yaml:"login_rps"`
		LoginBurst int     `yaml:"login_burst"`
	} `yaml:"limits"`
}

// Default returns a config populated with usable defaults: a local DB
// directory and the stock Gemini model.
func Default() *Config {
	var cfg Config
	cfg.Storage.DBPath = "./.database"
	cfg.AI.Model = "gemini-2.5-flash"
	return &cfg
}

// Load reads a YAML config from path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvOverrides applies environment overrides onto the provided cfg and
// reports whether any env vars were used.
func LoadEnvOverrides(cfg *Config) bool {
	envUsed := false
	if v := os.Getenv("RCHAT_DB_PATH"); v != "" {
		envUsed = true
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("RCHAT_AI_MODEL"); v != "" {
		envUsed = true
		cfg.AI.Model = v
	}
	if v := os.Getenv("RCHAT_AI_API_KEY"); v != "" {
		envUsed = true
		cfg.AI.APIKey = v
	} else if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.AI.APIKey == "" {
		envUsed = true
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("RCHAT_LOG_LEVEL"); v != "" {
		envUsed = true
		cfg.Logging.Level = v
	}
	if v := os.Getenv("RCHAT_LOGIN_RPS"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			envUsed = true
			cfg.Limits.LoginRPS = f
		}
	}
	if v := os.Getenv("RCHAT_LOGIN_BURST"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			envUsed = true
			cfg.Limits.LoginBurst = n
		}
	}
	return envUsed
}

// LoadEffective loads config from the given path and applies environment
// overrides. A missing file is not an error; defaults are used instead.
func LoadEffective(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if err != nil {
		cfg = Default()
	}
	envUsed := LoadEnvOverrides(cfg)
	return cfg, envUsed, nil
}

// ResolveConfigPath returns the explicit path when non-empty, otherwise the
// RCHAT_CONFIG environment variable, otherwise the default location.
func ResolveConfigPath(path string) string {
	if path != "" {
		return path
	}
	if p := os.Getenv("RCHAT_CONFIG"); p != "" {
		return p
	}
	return "./config.yaml"
}
