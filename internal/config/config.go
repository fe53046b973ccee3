package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultEndpoint is the prediction service the form posts to when nothing overrides it.
const DefaultEndpoint = "https://7000-01hygkvng4h65en1z1b7mtfd9p.cloudspaces.litng.ai/predict"

// DefaultPath is where the CLI looks for a config file when --config is not given.
const DefaultPath = ".stockprofit/config.yaml"

// Config holds all stockprofit configuration.
type Config struct {
	// Prediction endpoint
	Endpoint EndpointConfig `yaml:"endpoint"`

	// Typing animation
	Animation AnimationConfig `yaml:"animation"`

	// Interactive form
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// EndpointConfig configures the prediction endpoint client.
type EndpointConfig struct {
	URL string `yaml:"url"`
	// Timeout bounds a single request. Empty or "0s" means no timeout.
	Timeout string `yaml:"timeout"`
	// ContentType adds "Content-Type: application/json" to the POST.
	ContentType bool `yaml:"content_type"`
}

// AnimationConfig configures the typewriter reveal.
type AnimationConfig struct {
	Interval string `yaml:"interval"` // per-character cadence
	// CancelPrevious stops an in-flight request or reveal when a new submission starts.
	CancelPrevious bool `yaml:"cancel_previous"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			URL:         DefaultEndpoint,
			Timeout:     "",
			ContentType: true,
		},
		Animation: AnimationConfig{
			Interval:       "50ms",
			CancelPrevious: true,
		},
		UI: UIConfig{
			Theme:          "",
			RenderMarkdown: false,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			File:       "",
			DebugMode:  false,
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if u := os.Getenv("STOCKPROFIT_ENDPOINT"); u != "" {
		c.Endpoint.URL = u
	}
	if d := os.Getenv("STOCKPROFIT_TIMEOUT"); d != "" {
		c.Endpoint.Timeout = d
	}
	if lvl := os.Getenv("STOCKPROFIT_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
		c.Logging.DebugMode = true
	}
	if os.Getenv("STOCKPROFIT_DARK_MODE") == "1" {
		c.UI.Theme = "dark"
	}
}

// GetTimeout returns the request timeout. Zero means the request is bounded
// only by its context.
func (c *Config) GetTimeout() time.Duration {
	if c.Endpoint.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Endpoint.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// GetInterval returns the per-character reveal cadence.
func (c *Config) GetInterval() time.Duration {
	d, err := time.ParseDuration(c.Animation.Interval)
	if err != nil || d <= 0 {
		return 50 * time.Millisecond
	}
	return d
}

// ValidThemes lists the accepted ui.theme values. Empty means auto-detect.
var ValidThemes = []string{"", "light", "dark"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Endpoint.URL == "" {
		return fmt.Errorf("endpoint url not configured (set endpoint.url or STOCKPROFIT_ENDPOINT)")
	}
	u, err := url.Parse(c.Endpoint.URL)
	if err != nil {
		return fmt.Errorf("invalid endpoint url %q: %w", c.Endpoint.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint url %q: scheme must be http or https", c.Endpoint.URL)
	}

	if c.Endpoint.Timeout != "" {
		if d, err := time.ParseDuration(c.Endpoint.Timeout); err != nil || d < 0 {
			return fmt.Errorf("invalid endpoint timeout: %q", c.Endpoint.Timeout)
		}
	}
	if d, err := time.ParseDuration(c.Animation.Interval); err != nil || d <= 0 {
		return fmt.Errorf("invalid animation interval: %q", c.Animation.Interval)
	}

	validTheme := false
	for _, t := range ValidThemes {
		if c.UI.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("invalid ui theme: %s (valid: light, dark)", c.UI.Theme)
	}

	return nil
}
