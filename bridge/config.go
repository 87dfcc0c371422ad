package bridge

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/scenebridge/tools"
)

// Config is the on-disk bridge configuration. Durations are Go duration
// strings ("1s", "500ms"); zero values fall back to the package defaults.
type Config struct {
	Endpoint       string `yaml:"endpoint"`
	PollInterval   string `yaml:"poll_interval"`
	RetryBackoff   string `yaml:"retry_backoff"`
	RequestTimeout string `yaml:"request_timeout"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("bridge: read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("bridge: parse config: %w", err)
	}
	return cfg, nil
}

// Options converts the file config into runtime Options.
func (c Config) Options(reg *tools.Registry, log *zap.Logger) (Options, error) {
	opts := Options{
		Endpoint: c.Endpoint,
		Registry: reg,
		Logger:   log,
	}
	var err error
	if opts.PollInterval, err = parseDuration(c.PollInterval, "poll_interval"); err != nil {
		return Options{}, err
	}
	if opts.RetryBackoff, err = parseDuration(c.RetryBackoff, "retry_backoff"); err != nil {
		return Options{}, err
	}
	if opts.RequestTimeout, err = parseDuration(c.RequestTimeout, "request_timeout"); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func parseDuration(s, field string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("bridge: config %s: %w", field, err)
	}
	return d, nil
}
