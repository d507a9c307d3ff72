package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration.
type Config struct {
	// APIURL is the root URL of the Atelier API.
	APIURL string `mapstructure:"api_url" yaml:"api_url"`

	// WebURL is the root URL of the Atelier web app, used when a
	// notification routes to a page the terminal cannot render.
	WebURL string `mapstructure:"web_url" yaml:"web_url"`

	// PollIntervalSec is how often (in seconds) the inbox refreshes.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`

	// LogFile is where the client writes its JSON log.
	LogFile string `mapstructure:"log_file" yaml:"log_file"`
}

const (
	defaultAPIURL          = "https://api.atelier.community"
	defaultWebURL          = "https://atelier.community"
	defaultPollIntervalSec = 30
)

// DefaultPath returns the default path for the configuration file,
// located at ~/.config/atelier/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "atelier", "config.yaml")
}

// DefaultLogPath returns the default path for the log file.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "atelier.log")
	}
	return filepath.Join(home, ".config", "atelier", "atelier.log")
}

func defaultConfig() *Config {
	return &Config{
		APIURL:          defaultAPIURL,
		WebURL:          defaultWebURL,
		PollIntervalSec: defaultPollIntervalSec,
		LogFile:         DefaultLogPath(),
	}
}

// Load reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns the default configuration.
// The ATELIER_API_URL environment variable overrides api_url.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("api_url", defaultAPIURL)
	v.SetDefault("web_url", defaultWebURL)
	v.SetDefault("poll_interval_sec", defaultPollIntervalSec)
	v.SetDefault("log_file", DefaultLogPath())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return applyEnv(defaultConfig()), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return applyEnv(defaultConfig()), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.PollIntervalSec <= 0 {
		cfg.PollIntervalSec = defaultPollIntervalSec
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg *Config) *Config {
	if u := os.Getenv("ATELIER_API_URL"); u != "" {
		cfg.APIURL = u
	}
	return cfg
}

// Save writes the given configuration to a YAML file at path, creating
// parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api_url", cfg.APIURL)
	v.Set("web_url", cfg.WebURL)
	v.Set("poll_interval_sec", cfg.PollIntervalSec)
	v.Set("log_file", cfg.LogFile)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
