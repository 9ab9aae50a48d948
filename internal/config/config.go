package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
	"github.com/joho/godotenv"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultRowHeight = 3

	EnvBaseURL = "NUTRIFY_BASE_URL"
	EnvToken   = "NUTRIFY_TOKEN"
	EnvTimeout = "NUTRIFY_TIMEOUT"
)

// Config is the client configuration stored in ~/.nutrify/config.json.
type Config struct {
	BaseURL   string `json:"base_url,omitempty"`
	Token     string `json:"token,omitempty"`
	Timeout   string `json:"timeout,omitempty"`
	RowHeight int    `json:"row_height,omitempty"`
	MinWeek   string `json:"min_week,omitempty"`
}

// Dir returns the global nutrify config directory.
func Dir(homeDir string) string {
	return filepath.Join(homeDir, ".nutrify")
}

// Path returns the path to config.json.
func Path(homeDir string) string {
	return filepath.Join(Dir(homeDir), "config.json")
}

// Read reads the config file.
// Returns an empty config if the file does not exist.
func Read(homeDir string) (*Config, error) {
	data, err := os.ReadFile(Path(homeDir))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", Path(homeDir), err)
	}
	return &cfg, nil
}

// Write writes the config file, creating the directory if needed.
func Write(homeDir string, cfg *Config) error {
	if err := os.MkdirAll(Dir(homeDir), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(Path(homeDir), data, 0600)
}

// Load reads the config file and applies environment overrides.
// A .env file in workDir is loaded first; it never replaces variables
// that are already set.
func Load(homeDir, workDir string) (*Config, error) {
	if workDir != "" {
		envFile := filepath.Join(workDir, ".env")
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}

	cfg, err := Read(homeDir)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		c.Token = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		c.Timeout = v
	}
}

// Validate checks the settings needed to talk to the backend.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base_url is not set (run 'nutrify config set base_url <url>' or set %s)", EnvBaseURL)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("base_url %q must be an absolute URL", c.BaseURL)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.MinWeekDate(time.Local); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration returns the request timeout, defaulting to 10s.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q (expected a duration like 10s)", c.Timeout)
	}
	return d, nil
}

// Rows returns the number of terminal lines per meal band.
func (c *Config) Rows() int {
	if c.RowHeight <= 0 {
		return DefaultRowHeight
	}
	return c.RowHeight
}

// MinWeekDate returns the Monday of the floor week, or zero when unset.
func (c *Config) MinWeekDate(loc *time.Location) (time.Time, error) {
	if c.MinWeek == "" {
		return time.Time{}, nil
	}
	d, err := week.ParseISO(c.MinWeek, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid min_week %q: %w", c.MinWeek, err)
	}
	return week.StartOfWeek(d), nil
}

type field struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

var fields = map[string]field{
	"base_url": {
		get: func(c *Config) string { return c.BaseURL },
		set: func(c *Config, v string) error { c.BaseURL = strings.TrimRight(v, "/"); return nil },
	},
	"token": {
		get: func(c *Config) string { return c.Token },
		set: func(c *Config, v string) error { c.Token = v; return nil },
	},
	"timeout": {
		get: func(c *Config) string {
			d, err := c.TimeoutDuration()
			if err != nil {
				return c.Timeout
			}
			return d.String()
		},
		set: func(c *Config, v string) error {
			if _, err := (&Config{Timeout: v}).TimeoutDuration(); err != nil {
				return err
			}
			c.Timeout = v
			return nil
		},
	},
	"row_height": {
		get: func(c *Config) string { return strconv.Itoa(c.Rows()) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return fmt.Errorf("invalid row_height %q (expected a positive integer)", v)
			}
			c.RowHeight = n
			return nil
		},
	},
	"min_week": {
		get: func(c *Config) string { return c.MinWeek },
		set: func(c *Config, v string) error {
			if v == "" {
				c.MinWeek = ""
				return nil
			}
			d, err := week.ParseISO(v, time.Local)
			if err != nil {
				return fmt.Errorf("invalid min_week %q: %w", v, err)
			}
			c.MinWeek = week.FormatISO(week.StartOfWeek(d))
			return nil
		},
	},
}

// Keys lists the settable keys in alphabetical order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the effective value of key.
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", unknownKey(key)
	}
	return f.get(c), nil
}

// Set validates and stores value under key.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return unknownKey(key)
	}
	return f.set(c, strings.TrimSpace(value))
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
}
