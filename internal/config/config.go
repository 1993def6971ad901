package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrMissingEndpoint = errors.New("CHECK_ENDPOINT is not set")

// Config is assembled from defaults, an optional YAML file and the environment.
// CheckTimeout of 0 leaves the transport default in place; CheckRPM of 0
// disables submission rate limiting.
type Config struct {
	Addr           string        `yaml:"addr"`
	LogDir         string        `yaml:"log_dir"`
	LogLevel       string        `yaml:"log_level"`
	CheckEndpoint  string        `yaml:"check_endpoint"`
	CheckTimeout   time.Duration `yaml:"-"`
	CheckTimeoutMS int           `yaml:"check_timeout_ms"`
	CheckRPM       int           `yaml:"check_rpm"`
	CheckBurst     int           `yaml:"check_burst"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	TrustProxy     bool          `yaml:"trust_proxy"`
	SlackWebhook   string        `yaml:"slack_webhook"`
	OTLPEndpoint   string        `yaml:"otlp_endpoint"`
	ServiceName    string        `yaml:"service_name"`

	DevCheckerAddr    string   `yaml:"devchecker_addr"`
	DevCheckerRegions []string `yaml:"devchecker_regions"`
}

func Default() Config {
	return Config{
		Addr:              "127.0.0.1:8080",
		LogDir:            "logs",
		LogLevel:          "info",
		CheckRPM:          30,
		CheckBurst:        10,
		AllowedOrigins:    []string{"*"},
		ServiceName:       "uptime-tracker",
		DevCheckerAddr:    "127.0.0.1:8090",
		DevCheckerRegions: []string{"local"},
	}
}

// FromEnv returns defaults overridden by the environment.
func FromEnv() Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// Load reads an optional YAML file, then applies environment overrides.
// A missing file falls back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(content, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
			if cfg.CheckTimeoutMS > 0 {
				cfg.CheckTimeout = time.Duration(cfg.CheckTimeoutMS) * time.Millisecond
			}
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Addr, "ADDR")
	setString(&c.LogDir, "LOG_DIR")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.CheckEndpoint, "CHECK_ENDPOINT")
	setString(&c.SlackWebhook, "NOTIFY_SLACK_WEBHOOK")
	setString(&c.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&c.ServiceName, "OTEL_SERVICE_NAME")
	setString(&c.DevCheckerAddr, "DEVCHECKER_ADDR")

	if v := os.Getenv("CHECK_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			c.CheckTimeoutMS = ms
			c.CheckTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	// Rate limit tuning
	if v := os.Getenv("CHECK_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.CheckRPM = n
		}
	}
	if v := os.Getenv("CHECK_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.CheckBurst = n
		}
	}

	if v := os.Getenv("TRUST_PROXY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.TrustProxy = b
		}
	}

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("DEVCHECKER_REGIONS"); v != "" {
		c.DevCheckerRegions = splitList(v)
	}
}

// Validate reports configuration the client cannot run without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.CheckEndpoint) == "" {
		return ErrMissingEndpoint
	}
	u, err := url.Parse(c.CheckEndpoint)
	if err != nil {
		return fmt.Errorf("CHECK_ENDPOINT: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("CHECK_ENDPOINT must be an absolute http(s) URL, got %q", c.CheckEndpoint)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
