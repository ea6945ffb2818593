package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Load builds the configuration from an optional YAML file and the process
// environment. The file is read first (with ${VAR} substitution, same as the
// watcher's loader); environment variables then override anything it set.
// Path may be empty, in which case only the environment is consulted.
func Load(path string) (*Config, error) {
	cfg := &Config{
		LagThreshold:     DefaultLagThreshold,
		AlertCooldown:    DefaultAlertCooldown,
		PollInterval:     DefaultPollInterval,
		RPCTimeout:       DefaultRPCTimeout,
		NotifyOnRecovery: true,
		HealthPort:       DefaultHealthPort,
		LogLevel:         "info",
	}

	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fc.Nodes.LocalRPCURL != "" {
		cfg.LocalRPCURL = fc.Nodes.LocalRPCURL
	}
	if fc.Nodes.RemoteRPCURL != "" {
		cfg.RemoteRPCURL = fc.Nodes.RemoteRPCURL
	}
	if fc.Alerting.WebhookURL != "" {
		cfg.WebhookURL = fc.Alerting.WebhookURL
	}
	if fc.Alerting.LagThreshold != nil {
		cfg.LagThreshold = *fc.Alerting.LagThreshold
	}
	if fc.Alerting.CooldownMinutes > 0 {
		cfg.AlertCooldown = time.Duration(fc.Alerting.CooldownMinutes) * time.Minute
	}
	if fc.Alerting.PollIntervalSeconds > 0 {
		cfg.PollInterval = time.Duration(fc.Alerting.PollIntervalSeconds) * time.Second
	}
	if fc.Alerting.RPCTimeoutSeconds > 0 {
		cfg.RPCTimeout = time.Duration(fc.Alerting.RPCTimeoutSeconds) * time.Second
	}
	if fc.Alerting.NotifyOnRecovery != nil {
		cfg.NotifyOnRecovery = *fc.Alerting.NotifyOnRecovery
	}
	if fc.Server.Port > 0 {
		cfg.HealthPort = fc.Server.Port
	}
	if fc.Logging.Level != "" {
		cfg.LogLevel = fc.Logging.Level
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("LOCAL_RPC_URL"); v != "" {
		cfg.LocalRPCURL = v
	}
	if v := os.Getenv("REMOTE_RPC_URL"); v != "" {
		cfg.RemoteRPCURL = v
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.WebhookURL = v
	}

	if v := os.Getenv("LAG_THRESHOLD"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("LAG_THRESHOLD must be a non-negative integer: %w", err)
		}
		cfg.LagThreshold = n
	}
	if v := os.Getenv("ALERT_COOLDOWN_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("ALERT_COOLDOWN_MINUTES must be a positive integer, got %q", v)
		}
		cfg.AlertCooldown = time.Duration(n) * time.Minute
	}
	if v := os.Getenv("POLL_INTERVAL_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("POLL_INTERVAL_SECONDS must be a positive integer, got %q", v)
		}
		cfg.PollInterval = time.Duration(n) * time.Second
	}
	if v := os.Getenv("RPC_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("RPC_TIMEOUT_SECONDS must be a positive integer, got %q", v)
		}
		cfg.RPCTimeout = time.Duration(n) * time.Second
	}
	if v := os.Getenv("NOTIFY_ON_RECOVERY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("NOTIFY_ON_RECOVERY must be a boolean, got %q", v)
		}
		cfg.NotifyOnRecovery = b
	}
	if v := os.Getenv("HEALTH_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HEALTH_PORT must be an integer, got %q", v)
		}
		cfg.HealthPort = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}
