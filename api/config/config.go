package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes where the daemon's three shared files live and how the
// API is served. Values come from built-in defaults, overridden by an
// optional YAML file (NAGAPI_CONFIG), overridden by environment variables.
type Config struct {
	Port     string `yaml:"port"`
	BindAddr string `yaml:"bind"`

	StatusFile  string `yaml:"status_file"`  // written by the daemon, polled by us
	CommandFile string `yaml:"command_file"` // read by the daemon, written by us
	LogFile     string `yaml:"log_file"`     // appended by the daemon, tailed by us

	PollIntervalSec int `yaml:"poll_interval"` // cadence for poller and tailer, seconds

	APIToken       string `yaml:"api_token"`       // optional bearer token
	AllowedOrigins string `yaml:"allowed_origins"` // comma-separated CORS extras
}

func defaults() *Config {
	return &Config{
		Port:            "8866",
		BindAddr:        "",
		StatusFile:      "/var/cache/nagios/status.dat",
		CommandFile:     "/var/lib/nagios/rw/nagios.cmd",
		LogFile:         "/var/log/nagios/nagios.log",
		PollIntervalSec: 1,
	}
}

// Load builds the effective configuration.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("NAGAPI_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if cfg.PollIntervalSec <= 0 {
		return nil, fmt.Errorf("config: poll interval must be positive, got %d", cfg.PollIntervalSec)
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setStr(&c.Port, "NAGAPI_PORT")
	setStr(&c.BindAddr, "NAGAPI_BIND")
	setStr(&c.StatusFile, "NAGAPI_STATUS_FILE")
	setStr(&c.CommandFile, "NAGAPI_COMMAND_FILE")
	setStr(&c.LogFile, "NAGAPI_LOG_FILE")
	setStr(&c.APIToken, "NAGAPI_API_TOKEN")
	setStr(&c.AllowedOrigins, "NAGAPI_ALLOWED_ORIGINS")
	if v, ok := os.LookupEnv("NAGAPI_POLL_INTERVAL"); ok {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			c.PollIntervalSec = n
		}
	}
}

func setStr(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
