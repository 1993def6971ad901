package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnv_ParsesAndDefaults(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("LOG_DIR", "./_testlogs")
	t.Setenv("CHECK_ENDPOINT", "https://checker.example.com/check")
	t.Setenv("CHECK_TIMEOUT_MS", "1234")
	t.Setenv("CHECK_RPM", "111")
	t.Setenv("CHECK_BURST", "22")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DEVCHECKER_REGIONS", "us-east,eu-west")

	cfg := FromEnv()

	if cfg.Addr != ":9090" || cfg.LogDir != "./_testlogs" {
		t.Fatalf("addr/logdir wrong: %+v", cfg)
	}
	if cfg.CheckEndpoint != "https://checker.example.com/check" {
		t.Fatalf("endpoint wrong: %q", cfg.CheckEndpoint)
	}
	if cfg.CheckTimeout != 1234*time.Millisecond {
		t.Fatalf("timeout wrong: %v", cfg.CheckTimeout)
	}
	if cfg.CheckRPM != 111 || cfg.CheckBurst != 22 {
		t.Fatalf("rate limit wrong: rpm=%d burst=%d", cfg.CheckRPM, cfg.CheckBurst)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins wrong: %+v", cfg.AllowedOrigins)
	}
	if len(cfg.DevCheckerRegions) != 2 || cfg.DevCheckerRegions[0] != "us-east" {
		t.Fatalf("regions wrong: %+v", cfg.DevCheckerRegions)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	// ensure defaults don't crash if missing env
	os.Unsetenv("ADDR")
	_ = FromEnv()
}

func TestFromEnv_NoTimeoutByDefault(t *testing.T) {
	t.Setenv("CHECK_TIMEOUT_MS", "")
	cfg := FromEnv()
	if cfg.CheckTimeout != 0 {
		t.Fatalf("want no client timeout by default, got %v", cfg.CheckTimeout)
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracker.yaml")
	content := []byte(`
addr: ":7070"
check_endpoint: "https://yaml.example.com/check"
check_timeout_ms: 2500
devchecker_regions: ["eu-central", "ap-south"]
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CHECK_ENDPOINT", "https://env.example.com/check")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("want yaml addr, got %q", cfg.Addr)
	}
	if cfg.CheckEndpoint != "https://env.example.com/check" {
		t.Fatalf("env should win over yaml, got %q", cfg.CheckEndpoint)
	}
	if cfg.CheckTimeout != 2500*time.Millisecond {
		t.Fatalf("timeout wrong: %v", cfg.CheckTimeout)
	}
	if len(cfg.DevCheckerRegions) != 2 {
		t.Fatalf("regions wrong: %+v", cfg.DevCheckerRegions)
	}
}

func TestLoad_MissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != Default().Addr {
		t.Fatalf("want default addr, got %q", cfg.Addr)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("addr: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("want parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); !errors.Is(err, ErrMissingEndpoint) {
		t.Fatalf("want ErrMissingEndpoint, got %v", err)
	}
	cfg.CheckEndpoint = "ftp://checker"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("want error for non-http endpoint")
	}
	cfg.CheckEndpoint = "http://127.0.0.1:8090/check"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestFromEnv_TrustProxy(t *testing.T) {
	if FromEnv().TrustProxy {
		t.Fatalf("forwarded headers must not be trusted by default")
	}
	t.Setenv("TRUST_PROXY", "true")
	if !FromEnv().TrustProxy {
		t.Fatalf("want TrustProxy from TRUST_PROXY=true")
	}
	t.Setenv("TRUST_PROXY", "nonsense")
	if FromEnv().TrustProxy {
		t.Fatalf("unparseable TRUST_PROXY should keep the default")
	}
}
