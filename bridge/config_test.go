package bridge

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bridge.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
endpoint: http://localhost:44755/request
poll_interval: 500ms
retry_backoff: 3s
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	opts, err := cfg.Options(nil, nil)
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if opts.Endpoint != "http://localhost:44755/request" {
		t.Errorf("endpoint = %q", opts.Endpoint)
	}
	if opts.PollInterval != 500*time.Millisecond {
		t.Errorf("poll interval = %v", opts.PollInterval)
	}
	if opts.RetryBackoff != 3*time.Second {
		t.Errorf("retry backoff = %v", opts.RetryBackoff)
	}
	if opts.RequestTimeout != 0 {
		t.Errorf("request timeout = %v, want zero for default fallback", opts.RequestTimeout)
	}
}

func TestLoadConfig_BadDuration(t *testing.T) {
	path := writeConfig(t, "endpoint: http://x\npoll_interval: soonish\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if _, err := cfg.Options(nil, nil); err == nil {
		t.Error("Options() error = nil, want duration parse failure")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfig() error = nil, want read failure")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := writeConfig(t, "endpoint: [unterminated")
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() error = nil, want parse failure")
	}
}
