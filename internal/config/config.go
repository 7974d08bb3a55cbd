package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type UserConfig struct {
	Username     string `yaml:"username" toml:"username"`
	PasswordHash string `yaml:"passwordHash" toml:"password_hash"` // bcrypt hash
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // text | json | logfmt
}

type UIConfig struct {
	Title        string `yaml:"title" toml:"title"`
	ShowActivity bool   `yaml:"showActivity" toml:"show_activity"`
	ActivityMax  int    `yaml:"activityMax" toml:"activity_max"`
	Markdown     bool   `yaml:"markdown" toml:"markdown"`
}

type Config struct {
	Listen    string        `yaml:"listen" toml:"listen"`
	TasksFile string        `yaml:"tasksFile" toml:"tasks_file"`
	Logging   LoggingConfig `yaml:"logging" toml:"logging"`
	UI        UIConfig      `yaml:"ui" toml:"ui"`
	Users     []UserConfig  `yaml:"users" toml:"users"`
}

func Default() *Config {
	return &Config{
		TasksFile: "tasks.json",
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		UI: UIConfig{
			Title:        "To-Do List",
			ShowActivity: true,
			ActivityMax:  200,
		},
		Users: []UserConfig{},
	}
}

// Load reads an optional YAML or TOML file (by extension). A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TODOWEB_TASKS_FILE"); v != "" {
		cfg.TasksFile = v
	}
	if v := os.Getenv("TODOWEB_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TODOWEB_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("TODOWEB_UI_SHOW_ACTIVITY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UI.ShowActivity = b
		}
	}
	if v := os.Getenv("TODOWEB_ACTIVITY_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.UI.ActivityMax = n
		}
	}
	if v := os.Getenv("TODOWEB_UI_MARKDOWN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UI.Markdown = b
		}
	}
	if cfg.TasksFile == "" {
		cfg.TasksFile = "tasks.json"
	}
	if cfg.UI.Title == "" {
		cfg.UI.Title = "To-Do List"
	}
}

// FindFile returns the first existing config file among the candidates, or "".
func FindFile(candidates ...string) string {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return c
		}
	}
	return ""
}
