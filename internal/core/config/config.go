package config

import (
	"fmt"
	"net/url"
	"time"
)

// Default values applied when the environment or config file leaves a
// setting unset.
const (
	DefaultLagThreshold  = 3
	DefaultAlertCooldown = 15 * time.Minute
	DefaultPollInterval  = 60 * time.Second
	DefaultRPCTimeout    = 5 * time.Second
	DefaultHealthPort    = 8080
)

// Config is the validated, immutable application configuration. It is built
// once at startup and never mutated afterwards.
type Config struct {
	LocalRPCURL  string
	RemoteRPCURL string
	WebhookURL   string

	LagThreshold  uint64
	AlertCooldown time.Duration
	PollInterval  time.Duration
	RPCTimeout    time.Duration

	NotifyOnRecovery bool

	HealthPort int
	LogLevel   string
}

// fileConfig mirrors the optional YAML config file. Environment variables
// always take precedence over values loaded here.
type fileConfig struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Nodes struct {
		LocalRPCURL  string `yaml:"local_rpc_url"`
		RemoteRPCURL string `yaml:"remote_rpc_url"`
	} `yaml:"nodes"`
	Alerting struct {
		WebhookURL          string  `yaml:"webhook_url"`
		LagThreshold        *uint64 `yaml:"lag_threshold"`
		CooldownMinutes     int     `yaml:"cooldown_minutes"`
		PollIntervalSeconds int     `yaml:"poll_interval_seconds"`
		RPCTimeoutSeconds   int     `yaml:"rpc_timeout_seconds"`
		NotifyOnRecovery    *bool   `yaml:"notify_on_recovery"`
	} `yaml:"alerting"`
	Logging struct {
		Level string `yaml:"level"` // debug, info, warn, error
	} `yaml:"logging"`
}

// Validate checks the configuration invariants. Missing required URLs or
// out-of-range durations are fatal startup errors.
func (c *Config) Validate() error {
	if err := validateURL("LOCAL_RPC_URL", c.LocalRPCURL); err != nil {
		return err
	}
	if err := validateURL("REMOTE_RPC_URL", c.RemoteRPCURL); err != nil {
		return err
	}
	if err := validateURL("DISCORD_WEBHOOK_URL", c.WebhookURL); err != nil {
		return err
	}
	if c.AlertCooldown <= 0 {
		return fmt.Errorf("alert cooldown must be positive, got %s", c.AlertCooldown)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.RPCTimeout <= 0 {
		return fmt.Errorf("rpc timeout must be positive, got %s", c.RPCTimeout)
	}
	// Both queries must settle before the next tick fires.
	if c.RPCTimeout >= c.PollInterval {
		return fmt.Errorf("rpc timeout (%s) must be shorter than poll interval (%s)",
			c.RPCTimeout, c.PollInterval)
	}
	if c.HealthPort <= 0 || c.HealthPort > 65535 {
		return fmt.Errorf("invalid health port: %d", c.HealthPort)
	}
	return nil
}

func validateURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host: %q", name, raw)
	}
	return nil
}
