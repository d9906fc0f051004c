package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address     string               `yaml:"address"`
	MaxBodySize string               `yaml:"maxBodySize"`
	RateLimit   RateLimitConfig      `yaml:"rateLimit"`
	CORS        CORSConfig           `yaml:"cors"`
	Logging     config.LoggingConfig `yaml:"logging"`

	bodySizeBytes int64
	window        time.Duration
}

// RateLimitConfig bounds how many requests a client may make per window.
// A Requests value of 0 or less disables limiting.
type RateLimitConfig struct {
	Requests int    `yaml:"requests"`
	Window   string `yaml:"window"` // Go duration, e.g. "1m"
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Address:     constants.DefaultServerAddress,
		MaxBodySize: strconv.FormatInt(constants.DefaultMaxBodySizeBytes, 10),
		RateLimit: RateLimitConfig{
			Requests: constants.DefaultRateLimitRequests,
			Window:   defaultWindow().String(),
		},
		bodySizeBytes: constants.DefaultMaxBodySizeBytes,
		window:        defaultWindow(),
	}
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BodySizeBytes returns the configured request body limit in bytes.
func (c *Config) BodySizeBytes() int64 {
	return c.bodySizeBytes
}

// SetBodySizeBytes overrides the configured request body limit.
func (c *Config) SetBodySizeBytes(size int64) {
	if size > 0 {
		c.bodySizeBytes = size
		c.MaxBodySize = strconv.FormatInt(size, 10)
	}
}

// RateLimitWindow returns the parsed rate limit window.
func (c *Config) RateLimitWindow() time.Duration {
	return c.window
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	bytes, err := ParseSize(c.MaxBodySize)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxBodySizeBytes
	}
	c.bodySizeBytes = bytes

	window := strings.TrimSpace(c.RateLimit.Window)
	if window == "" {
		c.window = defaultWindow()
		return nil
	}
	parsed, err := time.ParseDuration(window)
	if err != nil {
		return fmt.Errorf("invalid rate limit window %q: %w", window, err)
	}
	if parsed <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %s", window)
	}
	c.window = parsed
	return nil
}

func defaultWindow() time.Duration {
	return time.Duration(constants.DefaultRateLimitWindow) * time.Second
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
// An empty string yields the default body size.
func ParseSize(value string) (int64, error) {
	upper := strings.ToUpper(strings.TrimSpace(value))
	if upper == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	idx := strings.LastIndexFunc(upper, unicode.IsDigit) + 1
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	n, err := strconv.ParseInt(strings.TrimSpace(upper[:idx]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var shift uint
	switch strings.TrimSpace(upper[idx:]) {
	case "", "B":
	case "K", "KB":
		shift = 10
	case "M", "MB":
		shift = 20
	case "G", "GB":
		shift = 30
	default:
		return 0, fmt.Errorf("unsupported size unit %q", upper[idx:])
	}

	if n < 0 || n > (1<<62)>>shift {
		return 0, fmt.Errorf("size out of range for value %s", value)
	}
	return n << shift, nil
}
